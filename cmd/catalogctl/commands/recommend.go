package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/usecase"
)

func newRecommendCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Recommend products for a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.recommender().Recommend(cmd.Context(), joinArgs(args), limit)
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.DefaultRecommendationLimit, "maximum number of products")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by similarity and keywords, without fallbacks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.recommender().Search(cmd.Context(), joinArgs(args), limit)
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", usecase.DefaultRecommendationLimit, "maximum number of products")
	return cmd
}

func newImageSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "image-search <description>",
		Short: "Match a description of an image against the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := usecase.NewImageSearchService(a.store, usecase.NewTextNormalizer(a.logger),
				usecase.NewSampler(a.seed), a.recommendConfig(), a.logger)

			result, err := service.SearchByDescription(cmd.Context(), joinArgs(args))
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(result)
			}
			if result.Features.Category != "" {
				fmt.Fprintf(a.out, "category: %s\n", result.Features.Category)
			}
			for _, attr := range result.Features.Attributes {
				fmt.Fprintf(a.out, "attribute: %s\n", attr)
			}
			return a.printProducts(result.Products)
		},
	}
}

func (a *app) printResult(result *domain.RecommendationResult) error {
	if a.jsonOutput {
		return a.printJSON(result)
	}
	fmt.Fprintf(a.out, "strategy: %s\n", result.Strategy)
	return a.printProducts(result.Products)
}
