package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archetect/archetect/internal/adapters/archetype"
	"github.com/archetect/archetect/internal/adapters/catalog"
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
	catalogAnswers     []string
	catalogAnswerFiles []string
	catalogSwitches    []string
	catalogHeadless    bool
	catalogOffline     bool
	catalogDestination string
	catalogSelect      string
)

var catalogCmd = &cobra.Command{
	Use:     "catalog <source> [destination]",
	Short:   "Browse a catalog and render the chosen archetype",
	GroupID: "scaffolding",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		destination := catalogDestination
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
		res := resolver.New(l)
		archetypes := archetype.New(res, appVersion, nil)
		scriptHost := scripting.New(archetypes)
		templates := template.NewEngine()
		catalogs := catalog.New(res)

		var driver usecases.IODriver
		if catalogHeadless {
			driver = headless.New(logger)
		} else {
			driver = terminal.New()
		}

		answerMap, err := gatherAnswers(cmd.Context(), l, catalogAnswers, catalogAnswerFiles)
		if err != nil {
			return err
		}

		cat, err := catalogs.Load(cmd.Context(), entities.ClassifyReference(source), catalogOffline)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		selection := usecases.NewSelectCatalogEntry(catalogs, driver)
		result, err := selection.Execute(cmd.Context(), &usecases.SelectCatalogEntryRequest{
			Catalog:  cat,
			Override: catalogSelect,
		})
		if err != nil {
			return fmt.Errorf("failed to select catalog entry: %w", err)
		}
		if result.Entry.IsGroup() || result.Entry.Source == nil {
			return fmt.Errorf("selected entry %q has no archetype to render", result.Entry.Description)
		}

		useCase := usecases.NewRenderArchetype(res, archetypes, l, scriptHost, driver, templates,
			usecases.WithRenderLogger(logger), usecases.WithRenderCatalogs(catalogs))

		req := &usecases.RenderRequest{
			Source:      *result.Entry.Source,
			Destination: destination,
			Answers:     answerMap,
			Switches:    entities.NewSwitchSet(catalogSwitches...),
			Offline:     catalogOffline,
			Headless:    catalogHeadless,
		}

		if _, err := useCase.Execute(cmd.Context(), req); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringArrayVar(&catalogAnswers, "answer", nil, "answer in key=value form (repeatable)")
	catalogCmd.Flags().StringArrayVar(&catalogAnswerFiles, "answer-file", nil, "path to a YAML/JSON/script-literal answer file (repeatable)")
	catalogCmd.Flags().StringArrayVar(&catalogSwitches, "switches", nil, "enable a named switch (repeatable)")
	catalogCmd.Flags().BoolVar(&catalogHeadless, "headless", false, "never prompt; fail if an answer is missing")
	catalogCmd.Flags().BoolVar(&catalogOffline, "offline", false, "use cached sources only, never fetch")
	catalogCmd.Flags().StringVarP(&catalogDestination, "destination", "d", "", "destination directory (overrides the positional argument)")
	catalogCmd.Flags().StringVar(&catalogSelect, "select", "", "select a leaf entry by description directly, bypassing the prompt walk")

	rootCmd.AddCommand(catalogCmd)
}
