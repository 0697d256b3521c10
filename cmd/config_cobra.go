package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archetect/archetect/internal/adapters/encoding"
	"github.com/archetect/archetect/internal/core/entities"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect archetect's configuration",
	GroupID: "inspection",
}

var configMergedCmd = &cobra.Command{
	Use:   "merged",
	Short: "Print the merged global + project configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := currentConfigLoader()
		cfg, err := loader.LoadConfig(cmd.Context(), ".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return printConfig(cfg)
	},
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the compiled-in default configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfig(entities.DefaultConfiguration())
	},
}

func printConfig(cfg *entities.Configuration) error {
	enc := encoding.NewEncoder()
	var data []byte
	var err error
	switch configOutput {
	case "toon":
		data, err = enc.EncodeTOON(cfg)
	default:
		data, err = enc.EncodeJSON(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	configMergedCmd.Flags().StringVar(&configOutput, "output", "json", "output format: json|toon")
	configDefaultsCmd.Flags().StringVar(&configOutput, "output", "json", "output format: json|toon")
	configCmd.AddCommand(configMergedCmd, configDefaultsCmd)
	rootCmd.AddCommand(configCmd)
}
