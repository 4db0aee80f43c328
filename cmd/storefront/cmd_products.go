package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sweetslice/storefront/internal/bootstrap"
	"github.com/sweetslice/storefront/internal/catalog"
	"github.com/sweetslice/storefront/pkg/enums"
)

var (
	productCategory string
	productSort     string
	includeCategory bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the bakery catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered by category",
	RunE:  runProductsList,
}

var productsSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search products by name and description",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsSearch,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsShow,
}

func init() {
	productsListCmd.Flags().StringVar(&productCategory, "category", "", "cakes, cupcakes or pastries")
	productsListCmd.Flags().StringVar(&productSort, "sort", "", "name, price-low or price-high")
	productsSearchCmd.Flags().BoolVar(&includeCategory, "include-category", false, "Also match the category name")
}

func runProductsList(cmd *cobra.Command, args []string) error {
	input := catalog.BrowseInput{}
	if productCategory != "" {
		category, err := enums.ParseProductCategory(productCategory)
		if err != nil {
			return err
		}
		input.Category = &category
	}
	order, err := enums.ParseProductSort(productSort)
	if err != nil {
		return err
	}
	input.Sort = order

	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		products, err := c.Catalog.Browse(ctx, input)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), catalog.NewProductDTOs(products))
	})
}

func runProductsSearch(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		products, err := c.Catalog.Search(ctx, args[0], includeCategory)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), catalog.NewProductDTOs(products))
	})
}

func runProductsShow(cmd *cobra.Command, args []string) error {
	id, ok := catalog.ParseID(args[0])
	if !ok {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		product, err := c.Catalog.Find(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), catalog.NewProductDTO(*product))
	})
}
