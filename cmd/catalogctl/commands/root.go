// Package commands implements the catalogctl command tree.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/infrastructure/catalog"
	"github.com/shopassist/backend/internal/logging"
	"github.com/shopassist/backend/internal/usecase"
)

const defaultCatalogFile = "data/products.json"

// app carries the state shared by every subcommand
type app struct {
	fs          afero.Fs
	out         io.Writer
	catalogFile string
	jsonOutput  bool
	verbose     bool
	seed        uint64
	threshold   float64

	logger zerolog.Logger
	store  *catalog.Store
}

// NewRootCmd builds the catalogctl command tree over fs, writing results to out
func NewRootCmd(fs afero.Fs, out io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out}

	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect and maintain the ShopAssist product catalog",
		Long: `catalogctl reads and edits the product catalog file used by the ShopAssist
backend and runs the recommendation engine against it from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	rootCmd.SetOut(out)

	envFile := os.Getenv("SHOPASSIST_CATALOG_FILE")
	if envFile == "" {
		envFile = defaultCatalogFile
	}
	rootCmd.PersistentFlags().StringVarP(&a.catalogFile, "catalog", "f", envFile, "catalog file path")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Uint64Var(&a.seed, "seed", 0, "random seed for fallback sampling (0 seeds from the clock)")
	rootCmd.PersistentFlags().Float64Var(&a.threshold, "threshold", usecase.DefaultSimilarityThreshold, "minimum similarity score")

	rootCmd.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
		newResetCmd(a),
		newRecommendCmd(a),
		newSearchCmd(a),
		newImageSearchCmd(a),
	)
	return rootCmd
}

// open loads the catalog file, seeding it when missing
func (a *app) open() error {
	if a.threshold <= 0 || a.threshold >= 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %g", a.threshold)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.New(logging.Config{Level: level, Format: "console", Output: os.Stderr})

	a.store = catalog.NewStore(a.fs, a.catalogFile, a.logger)
	a.store.Load()
	return nil
}

func (a *app) recommendConfig() usecase.RecommendationConfig {
	return usecase.RecommendationConfig{
		DefaultLimit:        usecase.DefaultRecommendationLimit,
		SimilarityThreshold: a.threshold,
		MaxFeatures:         usecase.DefaultMaxFeatures,
	}
}

func (a *app) recommender() *usecase.RecommendationService {
	return usecase.NewRecommendationService(a.store, usecase.NewSampler(a.seed), a.recommendConfig(), a.logger)
}

// printProducts writes products as a table, or as JSON with --json
func (a *app) printProducts(products []domain.Product) error {
	if a.jsonOutput {
		return a.printJSON(products)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBRAND\tPRICE")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Brand, p.Price.StringFixed(2))
	}
	return w.Flush()
}

func (a *app) printJSON(v interface{}) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
