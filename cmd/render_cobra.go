package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/archetect/archetect/internal/adapters/answers"
	"github.com/archetect/archetect/internal/adapters/archetype"
	"github.com/archetect/archetect/internal/adapters/filesystem"
	"github.com/archetect/archetect/internal/adapters/io/headless"
	"github.com/archetect/archetect/internal/adapters/io/terminal"
	"github.com/archetect/archetect/internal/adapters/logging"
	"github.com/archetect/archetect/internal/adapters/resolver"
	"github.com/archetect/archetect/internal/adapters/scripting"
	"github.com/archetect/archetect/internal/adapters/template"
	"github.com/archetect/archetect/internal/core/entities"
	"github.com/archetect/archetect/internal/core/usecases"
)

var (
	renderAnswers     []string
	renderAnswerFiles []string
	renderSwitches    []string
	renderHeadless    bool
	renderOffline     bool
	renderLocal       bool
	renderDestination string
	renderWatch       bool
)

var renderCmd = &cobra.Command{
	Use:     "render <source> [destination]",
	Short:   "Render an archetype at source into destination",
	GroupID: "scaffolding",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		destination := renderDestination
		if len(args) == 2 {
			destination = args[1]
		}
		if destination == "" {
			destination = "."
		}

		logger := logging.New(logging.LevelInfo)
		if Verbose {
			logger = logging.New(logging.LevelDebug)
		}

		l := currentLayout()
		var resolverOpts []resolver.Option
		if renderLocal {
			resolverOpts = append(resolverOpts, resolver.WithLocalMode())
		}
		res := resolver.New(l, resolverOpts...)
		archetypes := archetype.New(res, appVersion, nil)
		scriptHost := scripting.New(archetypes)
		templates := template.NewEngine()

		var driver usecases.IODriver
		if renderHeadless {
			driver = headless.New(logger)
		} else {
			driver = terminal.New()
		}

		answerMap, err := gatherAnswers(cmd.Context(), l, renderAnswers, renderAnswerFiles)
		if err != nil {
			return err
		}

		req := &usecases.RenderRequest{
			Source:      entities.ClassifyReference(source),
			Destination: destination,
			Answers:     answerMap,
			Switches:    entities.NewSwitchSet(renderSwitches...),
			Offline:     renderOffline,
			Headless:    renderHeadless,
		}

		useCase := usecases.NewRenderArchetype(res, archetypes, l, scriptHost, driver, templates,
			usecases.WithRenderLogger(logger))

		if renderWatch {
			return renderWithWatch(cmd.Context(), useCase, req)
		}

		if _, err := useCase.Execute(cmd.Context(), req); err != nil {
			return err
		}
		return nil
	},
}

// renderWithWatch runs one render, then re-renders every time the resolved
// archetype's template root changes, until the process is interrupted.
func renderWithWatch(ctx context.Context, useCase *usecases.RenderArchetype, req *usecases.RenderRequest) error {
	result, err := useCase.Execute(ctx, req)
	if err != nil {
		return err
	}

	watcher, err := filesystem.NewFileWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	templateRoot := result.Archetype.Root
	events, err := watcher.Watch(ctx, templateRoot)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", templateRoot, err)
	}

	fmt.Fprintf(os.Stderr, "watching %s for changes, Ctrl-C to stop\n", templateRoot)
	for range events {
		fmt.Fprintln(os.Stderr, "change detected, re-rendering")
		if _, err := useCase.Execute(ctx, req); err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		}
	}
	return nil
}

// gatherAnswers merges the three answer sources in ascending precedence
// order per §3: user-config answers, then answer files in the order given
// on the command line, then individual --answer pairs.
func gatherAnswers(ctx context.Context, l usecases.SystemLayout, answerPairs, answerFiles []string) (entities.AnswerMap, error) {
	loader := currentConfigLoader()
	cfg, err := loader.LoadConfig(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	layers := []entities.AnswerMap{}
	if cfgAnswers, err := entities.AnswerMapFromAny(toAnyMap(cfg.Answers)); err == nil {
		layers = append(layers, cfgAnswers)
	}

	decoder := answers.NewFileDecoder()
	for _, path := range answerFiles {
		fileAnswers, err := decoder.DecodeFile(ctx, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fileAnswers)
	}

	flagAnswers, err := answers.ParsePairs(answerPairs)
	if err != nil {
		return nil, err
	}
	layers = append(layers, flagAnswers)

	return entities.MergeAll(layers...), nil
}

func toAnyMap(m map[string]any) any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderAnswers, "answer", nil, "answer in key=value form (repeatable)")
	renderCmd.Flags().StringArrayVar(&renderAnswerFiles, "answer-file", nil, "path to a YAML/JSON/script-literal answer file (repeatable)")
	renderCmd.Flags().StringArrayVar(&renderSwitches, "switches", nil, "enable a named switch (repeatable)")
	renderCmd.Flags().BoolVar(&renderHeadless, "headless", false, "never prompt; fail if an answer is missing")
	renderCmd.Flags().BoolVar(&renderOffline, "offline", false, "use cached sources only, never fetch")
	renderCmd.Flags().BoolVar(&renderLocal, "local", false, "rewrite known vendor git URLs to a local sibling directory")
	renderCmd.Flags().StringVarP(&renderDestination, "destination", "d", "", "destination directory (overrides the positional argument)")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render whenever the archetype's template root changes")

	rootCmd.AddCommand(renderCmd)
}
