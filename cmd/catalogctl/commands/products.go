package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shopassist/backend/internal/domain"
)

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.store.All(cmd.Context())
			if err != nil {
				return err
			}
			if category != "" {
				filtered := products[:0]
				for _, p := range products {
					if strings.EqualFold(p.Category, category) {
						filtered = append(filtered, p)
					}
				}
				products = filtered
			}
			return a.printProducts(products)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list products of this category")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("product %d: %w", id, err)
			}
			return a.printJSON(product)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var (
		product domain.Product
		price   string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product and print its assigned id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(product.Name) == "" {
				return fmt.Errorf("%w: --name is required", domain.ErrInvalidRequest)
			}
			parsed, err := decimal.NewFromString(price)
			if err != nil || parsed.IsNegative() {
				return fmt.Errorf("%w: invalid price %q", domain.ErrInvalidRequest, price)
			}
			product.Price = parsed
			product.Tags = tags

			id, err := a.store.Add(cmd.Context(), product)
			if err != nil {
				return err
			}
			if err := a.store.LastSaveError(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "added product %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&product.Name, "name", "", "product name (required)")
	cmd.Flags().StringVar(&product.Description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "0", "product price")
	cmd.Flags().StringVar(&product.Category, "category", "", "product category")
	cmd.Flags().StringVar(&product.Brand, "brand", "", "product brand")
	cmd.Flags().StringVar(&product.ImageURL, "image-url", "", "product image URL")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "product tag (repeatable or comma separated)")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("product %d: %w", id, err)
			}
			if err := a.store.LastSaveError(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted product %d\n", id)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the catalog with the sample products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.store.Reset()
			if err := a.store.LastSaveError(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "catalog reset to %d sample products\n", a.store.Len())
			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: product id must be a positive integer, got %q", domain.ErrInvalidRequest, arg)
	}
	return id, nil
}
