package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/nbetharia/itax/internal/breakeven"
	"github.com/nbetharia/itax/internal/calculation"
	"github.com/nbetharia/itax/internal/compare"
	"github.com/nbetharia/itax/internal/config"
	"github.com/nbetharia/itax/internal/domain"
	"github.com/nbetharia/itax/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

const (
	envTables = "ITAX_TABLES"
	envYear   = "ITAX_YEAR"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "itax",
	Short: "Indian income tax calculator CLI",
	Long: "Computes income tax under the old and new regimes from versioned tax tables,\n" +
		"itemizing deductions, slab tax, rebate, surcharge and cess.",
	SilenceUsage: true,
}

// loadStore reads the tax tables named by --tables or ITAX_TABLES, else the embedded ones
func loadStore(cmd *cobra.Command) (*calculation.TaxTableStore, error) {
	path, _ := cmd.Flags().GetString("tables")
	if path == "" {
		path = os.Getenv(envTables)
	}

	parser := config.NewTablesParser()
	var tables *domain.TaxTables
	var err error
	if path != "" {
		tables, err = parser.LoadFromFile(path)
	} else {
		tables, err = parser.LoadDefaultTables()
	}
	if err != nil {
		return nil, err
	}
	return calculation.NewTaxTableStore(tables), nil
}

// newEngine builds a calculation engine, attaching the CLI logger in debug mode
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	store, err := loadStore(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(store)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

// resolveYear picks --year, then ITAX_YEAR, then the newest year in the tables
func resolveYear(cmd *cobra.Command, store *calculation.TaxTableStore) domain.FinancialYear {
	if year, _ := cmd.Flags().GetString("year"); year != "" {
		return domain.FinancialYear(year)
	}
	if year := os.Getenv(envYear); year != "" {
		return domain.FinancialYear(year)
	}
	return store.LatestYear()
}

// loadProfile parses a profile and reports review warnings on stderr
func loadProfile(cmd *cobra.Command, store *calculation.TaxTableStore, filename string) (*domain.IncomeProfile, error) {
	parser := config.NewInputParser(store.ReviewLimits())
	profile, warnings, err := parser.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	printWarnings(cmd.ErrOrStderr(), warnings)
	return profile, nil
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintln(w, output.WarningStyle.Render("Warning: "+warning))
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	formatter := &compare.JSONFormatter{Pretty: true}
	data, err := formatter.Format(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), data)
	return nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [profile-file]",
	Short: "Calculate tax under one regime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd, engine.Store, args[0])
		if err != nil {
			return err
		}

		regime, _ := cmd.Flags().GetString("regime")
		if !domain.Regime(regime).Valid() {
			return &domain.ValidationError{Field: "regime", Value: regime, Limit: "old|new", Reason: "unknown regime"}
		}

		result, err := engine.Calculate(profile, resolveYear(cmd, engine.Store), domain.Regime(regime))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			return writeJSON(cmd, result)
		case "table", "console":
			formatter := &output.BreakdownFormatter{}
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(result))
			return nil
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [profile-file]",
	Short: "Compare the old and new regimes for one profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd, engine.Store, args[0])
		if err != nil {
			return err
		}

		comparison, err := compare.NewCompareEngine(engine).Compare(profile, resolveYear(cmd, engine.Store))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			return writeJSON(cmd, comparison)
		case "table", "console":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(comparison))
			return nil
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch [profile-file...]",
	Short: "Compare regimes for many profiles concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}

		profiles := make([]*domain.IncomeProfile, 0, len(args))
		for _, filename := range args {
			profile, err := loadProfile(cmd, engine.Store, filename)
			if err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
			profiles = append(profiles, profile)
		}

		year := resolveYear(cmd, engine.Store)
		workers, _ := cmd.Flags().GetInt("workers")
		comparisons, err := compare.NewCompareEngine(engine).CompareAll(cmd.Context(), profiles, year, workers)
		if err != nil {
			return err
		}
		summary := compare.Summarize(year, comparisons)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			return writeJSON(cmd, summary)
		case "table", "console":
			formatter := &compare.TableFormatter{}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatch(summary))
			return nil
		case "csv":
			formatter := &compare.CSVFormatter{}
			data, err := formatter.Format(summary)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), data)
			return nil
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var breakEvenCmd = &cobra.Command{
	Use:   "breakeven [profile-file]",
	Short: "Find the deductions at which the old regime matches the new one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd, engine.Store, args[0])
		if err != nil {
			return err
		}

		result, err := breakeven.NewDefaultSolver(engine).Solve(cmd.Context(), profile, resolveYear(cmd, engine.Store))
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			return writeJSON(cmd, result)
		case "table", "console":
			formatter := &breakeven.TableFormatter{}
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(result))
			return nil
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Validate an income profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore(cmd)
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd, store, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Profile is valid")
		fmt.Fprintf(out, "Gross income: %s\n", output.FormatCurrency(profile.GrossIncome()))
		fmt.Fprintf(out, "Category: %s   Role: %s\n", profile.EffectiveCategory(), profile.EffectiveRole())
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show or check tax tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if check, _ := cmd.Flags().GetString("check"); check != "" {
			if _, err := config.NewTablesParser().LoadFromFile(check); err != nil {
				return err
			}
			fmt.Fprintf(out, "Tax tables in %s are valid\n", check)
			return nil
		}

		store, err := loadStore(cmd)
		if err != nil {
			return err
		}

		meta := store.Metadata()
		fmt.Fprintln(out, output.TitleStyle.Render("TAX TABLES"))
		fmt.Fprintf(out, "Version: %s (updated %s by %s)\n", meta.Version, meta.LastUpdated, meta.UpdatedBy)
		if meta.SourceAuthority != "" {
			fmt.Fprintf(out, "Source: %s\n", meta.SourceAuthority)
		}
		if meta.NextReviewDate != "" {
			fmt.Fprintf(out, "Next review: %s\n", meta.NextReviewDate)
		}
		for _, year := range store.Years() {
			fmt.Fprintf(out, "  %s:", year)
			for _, category := range store.Categories(year) {
				fmt.Fprintf(out, " %s", category)
			}
			fmt.Fprintln(out)
		}
		if meta.Disclaimer != "" {
			fmt.Fprintln(out, output.MutedStyle.Render(meta.Disclaimer))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("tables", "", "Path to a tax tables YAML file (default: $ITAX_TABLES or built-in tables)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	calculateCmd.Flags().String("year", "", "Financial year, e.g. 2025-26 (default: $ITAX_YEAR or latest)")
	calculateCmd.Flags().StringP("regime", "r", string(domain.RegimeNew), "Tax regime (old, new)")
	calculateCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	compareCmd.Flags().String("year", "", "Financial year, e.g. 2025-26 (default: $ITAX_YEAR or latest)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	batchCmd.Flags().String("year", "", "Financial year, e.g. 2025-26 (default: $ITAX_YEAR or latest)")
	batchCmd.Flags().IntP("workers", "w", compare.DefaultWorkers, "Maximum profiles compared concurrently")
	batchCmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")

	breakEvenCmd.Flags().String("year", "", "Financial year, e.g. 2025-26 (default: $ITAX_YEAR or latest)")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")

	tablesCmd.Flags().String("check", "", "Validate a tax tables file instead of showing the active tables")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// a missing .env is fine; flags and the real environment still apply
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
