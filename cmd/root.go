// Package cmd implements the archetect CLI commands using Cobra.
package cmd

import (
	"fmt"
	"strings"

	"github.com/archetect/archetect/internal/adapters/config"
	"github.com/archetect/archetect/internal/adapters/layout"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
	appBuiltBy = "unknown"
)

// Persistent flag values accessible to all subcommands.
var (
	cfgFile string
	rootDir string
	Verbose bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "archetect",
	Short: "Generate projects and files from archetypes",
	Long: `archetect renders project and file trees from archetypes: versioned
bundles of a driver script, a template tree, and a manifest. Archetypes
may be discovered directly by source reference or through a catalog, a
hierarchical menu of nested catalogs and archetypes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root())
	},
	SilenceUsage: true,
}

func init() {
	// Persistent flags available to all subcommands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file or directory (env: ARCHETECT_CONFIG_HOME)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "confine configs/cache to this directory instead of the user home")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "enable verbose output (env: ARCHETECT_VERBOSE)")

	// Command groups for organized help output.
	rootCmd.AddGroup(
		&cobra.Group{ID: "scaffolding", Title: "Scaffolding"},
		&cobra.Group{ID: "inspection", Title: "Inspection"},
	)
}

// Execute runs the root command. This is the main entry point called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
// Call this from main.go before Execute().
func SetVersionInfo(version, commit, date, builtBy string) {
	appVersion = version
	appCommit = commit
	appDate = date
	appBuiltBy = builtBy

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("archetect %s (commit: %s, built: %s by %s)\n", version, commit, date, builtBy),
	)
}

// initConfig sets up Viper configuration with the full hierarchy:
// CLI flags > ARCHETECT_* env vars > project .archetect.toml > global XDG config.toml > defaults
func initConfig(root *cobra.Command) error {
	viper.SetConfigType("toml")

	// 1. Set built-in defaults.
	viper.SetDefault("overwrite", "prompt")
	viper.SetDefault("offline", false)

	// 2. Read global config (lowest priority file).
	if cfgFile != "" {
		// --config flag overrides all path resolution.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		paths := currentLayout()
		viper.SetConfigFile(paths.ConfigsDir() + "/config.toml")
		_ = viper.ReadInConfig() // Silent fail if not found.
	}

	// 3. Merge project config (overrides global).
	viper.SetConfigFile(".archetect.toml")
	_ = viper.MergeInConfig() // Silent fail if not found.

	// 4. Environment variables override config files.
	viper.SetEnvPrefix("ARCHETECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if viper.GetBool("verbose") {
		Verbose = true
	}

	// 5. Apply custom command aliases from [aliases] config section.
	applyCustomAliases(root)

	return nil
}

// currentLayout resolves the System Layout honoring --root, used both by
// initConfig and by the render/catalog/config/cache subcommands so every
// command sees the same configs/cache directories for one invocation.
func currentLayout() *layout.Layout {
	if rootDir != "" {
		return layout.NewRooted(rootDir)
	}
	return layout.NewNative()
}

// currentConfigLoader builds a ConfigLoader bound to currentLayout.
func currentConfigLoader() *config.Loader {
	return config.NewLoader(currentLayout())
}

// applyCustomAliases reads the [aliases] section from config and appends
// custom aliases to matching top-level commands. Config values can be a
// single string or an array of strings. Invalid entries are silently skipped.
func applyCustomAliases(root *cobra.Command) {
	aliasMap := viper.GetStringMap("aliases")
	if len(aliasMap) == 0 {
		return
	}

	commands := root.Commands()
	cmdByName := make(map[string]*cobra.Command, len(commands))
	for _, cmd := range commands {
		cmdByName[cmd.Name()] = cmd
	}

	for name, value := range aliasMap {
		cmd, ok := cmdByName[name]
		if !ok {
			continue
		}

		var aliases []string
		switch v := value.(type) {
		case string:
			aliases = []string{v}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					aliases = append(aliases, s)
				}
			}
		default:
			continue
		}

		cmd.Aliases = append(cmd.Aliases, aliases...)
	}
}
