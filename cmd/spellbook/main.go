package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/coolbeans/spellbook/pkg/api"
	"github.com/coolbeans/spellbook/pkg/config"
	"github.com/coolbeans/spellbook/pkg/export"
	"github.com/coolbeans/spellbook/pkg/extract"
	"github.com/coolbeans/spellbook/pkg/library"
	"github.com/coolbeans/spellbook/pkg/validate"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "spellbook",
		Short: "Spell description extractor",
		Long: `Spellbook turns the plain-text dump of a rulebook's spell-description
section into structured spell records.

It produces:
  - A JSON array of spell records with level, school, classes and fields
  - Per-slot-level damage tables inferred from the description text
  - Quality reports, CSV and XLSX exports
  - A read-only HTTP API over the extracted spells`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (YAML, JSON or TOML)")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(configFile, cmd.Flags())
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract spell records from a text dump",
		Long: `Extract spell records from the plain-text spell-description section.

Example:
  spellbook parse --source spells.txt
  spellbook parse --source spells.txt --output out/spells.json --stats
  spellbook parse --source spells.txt --trace "Acid Arrow"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("output")
			showStats, _ := cmd.Flags().GetBool("stats")

			if source == "" {
				return fmt.Errorf("--source is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			file, err := os.Open(source)
			if err != nil {
				return fmt.Errorf("failed to open source: %w", err)
			}
			defer file.Close()

			logger := log.New(os.Stderr, "", 0)
			parser := extract.NewParserWithConfig(cfg.ParserConfig(logger))
			spells, err := parser.Parse(file)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", source, err)
			}

			if err := library.SaveSpells(output, spells); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Printf("Wrote %d spells to %s\n", len(spells), output)

			if showStats {
				printStats(library.NewCatalog(spells).Stats())
			}
			return nil
		},
	}

	cmd.Flags().StringP("source", "s", "", "Source text dump path")
	cmd.Flags().StringP("output", "o", "spells.json", "Output JSON file")
	cmd.Flags().Bool("stats", false, "Show extraction statistics")
	cmd.Flags().String("trace", "", "Log intermediate parse state for the named spell")
	cmd.Flags().Int("lookahead", extract.DefaultHeaderLookahead, "Lines searched after a name for its level line")

	return cmd
}

func printStats(stats *library.CatalogStats) {
	fmt.Println("\nStatistics:")
	fmt.Printf("  Total spells:     %d\n", stats.TotalSpells)
	fmt.Printf("  Cantrips:         %d\n", stats.Cantrips)
	for _, level := range library.SortedKeys(stats.ByLevel) {
		if level == 0 {
			continue
		}
		fmt.Printf("  Level %d:          %d\n", level, stats.ByLevel[level])
	}
	fmt.Printf("  Ritual:           %d\n", stats.Ritual)
	fmt.Printf("  Concentration:    %d\n", stats.Concentration)
	fmt.Printf("  Damage tables:    %d\n", stats.WithDamageTables)
	if stats.DuplicateIndexes > 0 {
		fmt.Printf("  Duplicate index:  %d\n", stats.DuplicateIndexes)
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report extraction quality problems",
		Long: `Check extracted spell records for missing schools, missing classes,
incomplete preambles and unscaled damage.

Exits with status 1 when any error-level issue is found.

Example:
  spellbook validate --input spells.json
  spellbook validate --input spells.json --format md > report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			format, _ := cmd.Flags().GetString("format")

			if input == "" {
				return fmt.Errorf("--input is required")
			}

			spells, err := library.LoadSpells(input)
			if err != nil {
				return err
			}

			result := validate.Validate(spells)
			switch strings.ToLower(format) {
			case "md", "markdown":
				fmt.Print(result.ToMarkdown())
			case "text", "":
				fmt.Print(result.String())
			default:
				return fmt.Errorf("unknown format %q (use md or text)", format)
			}

			if result.Status == validate.StatusFail {
				return fmt.Errorf("validation failed with %d errors", result.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "Spell JSON file")
	cmd.Flags().StringP("format", "f", "text", "Report format: md or text")

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export spell records as CSV or XLSX",
		Long: `Export extracted spell records to a spreadsheet format.

Example:
  spellbook export --input spells.json --format csv --output spells.csv
  spellbook export --input spells.json --format xlsx --output spells.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			if input == "" {
				return fmt.Errorf("--input is required")
			}

			var write func(*os.File, []*extract.Spell) error
			switch strings.ToLower(format) {
			case "csv":
				write = func(f *os.File, spells []*extract.Spell) error { return export.WriteCSV(f, spells) }
			case "xlsx":
				write = func(f *os.File, spells []*extract.Spell) error { return export.WriteXLSX(f, spells) }
			default:
				return fmt.Errorf("unknown format %q (use csv or xlsx)", format)
			}
			if output == "" {
				output = "spells." + strings.ToLower(format)
			}

			spells, err := library.LoadSpells(input)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			if err := write(file, spells); err != nil {
				file.Close()
				return fmt.Errorf("failed to export: %w", err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to close output: %w", err)
			}

			fmt.Printf("Exported %d spells to %s\n", len(spells), output)
			return nil
		},
	}

	cmd.Flags().StringP("input", "i", "", "Spell JSON file")
	cmd.Flags().StringP("format", "f", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringP("output", "o", "", "Output file (default spells.<format>)")

	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve extracted spells over HTTP",
		Long: `Serve a read-only JSON API over extracted spell records.

Routes:
  GET /healthz
  GET /api/spells?level=&class=&concentration=
  GET /api/spells/:index
  GET /api/classes/:class/spells
  GET /api/stats

Example:
  spellbook serve --input spells.json --addr :8880`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			if input == "" {
				return fmt.Errorf("--input is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			catalog, err := library.Open(input)
			if err != nil {
				return err
			}
			log.Printf("Loaded %d spells from %s", catalog.Len(), input)

			gin.SetMode(gin.ReleaseMode)
			engine := api.Setup(catalog, log.Default())
			server := api.NewServer(cfg.ServerConfig(), engine)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Server starting on %s", server.Addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			log.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringP("input", "i", "spells.json", "Spell JSON file")
	cmd.Flags().String("addr", ":8880", "Listen address")

	return cmd
}
