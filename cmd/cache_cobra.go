package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archetect/archetect/internal/adapters/encoding"
)

var cacheListOutput string

var cacheCmd = &cobra.Command{
	Use:     "cache",
	Short:   "Inspect and manage archetect's cache directories",
	GroupID: "inspection",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved configs/cache/catalog directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := currentLayout()
		fmt.Printf("Configs:        %s\n", l.ConfigsDir())
		fmt.Printf("Answers:        %s\n", l.AnswersConfigPath())
		fmt.Printf("User catalog:   %s\n", l.UserCatalogPath())
		fmt.Printf("Cache:          %s\n", l.CacheDir())
		fmt.Printf("Git cache:      %s\n", l.GitCacheDir())
		fmt.Printf("HTTP cache:     %s\n", l.HTTPCacheDir())
		fmt.Printf("Catalog cache:  %s\n", l.CatalogCacheDir())
		return nil
	},
}

// cacheEntry is one row of `cache list`'s output, kept small and flat so
// the TOON encoding stays token-efficient.
type cacheEntry struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every cached git/http source and catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := currentLayout()
		var rows []cacheEntry
		for _, pair := range []struct{ label, dir string }{
			{"git", l.GitCacheDir()},
			{"http", l.HTTPCacheDir()},
			{"catalog", l.CatalogCacheDir()},
		} {
			entries, err := os.ReadDir(pair.dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				rows = append(rows, cacheEntry{Kind: pair.label, Path: filepath.Join(pair.dir, e.Name())})
			}
		}

		if cacheListOutput == "toon" {
			enc := encoding.NewEncoder()
			data, err := enc.EncodeTOON(rows)
			if err != nil {
				return fmt.Errorf("failed to encode cache listing: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		for _, row := range rows {
			fmt.Printf("%s\t%s\n", row.Kind, row.Path)
		}
		return nil
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached git/http source and catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := currentLayout()
		for _, dir := range []string{l.GitCacheDir(), l.HTTPCacheDir(), l.CatalogCacheDir()} {
			entries, err := os.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, e := range entries {
				path := filepath.Join(dir, e.Name())
				if err := os.RemoveAll(path); err != nil {
					return fmt.Errorf("failed to remove %s: %w", path, err)
				}
			}
		}
		return nil
	},
}

func init() {
	cacheListCmd.Flags().StringVar(&cacheListOutput, "output", "table", "output format: table|toon")
	cacheCmd.AddCommand(cachePathCmd, cacheListCmd, cacheCleanCmd)
	rootCmd.AddCommand(cacheCmd)
}
