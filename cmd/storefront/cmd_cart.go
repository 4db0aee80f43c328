package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sweetslice/storefront/internal/bootstrap"
	"github.com/sweetslice/storefront/internal/cart"
)

var (
	addQuantity int
	addSize     string
	addFlavor   string
	addMessage  string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the cart for --session",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cart lines and totals",
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a configured product to the cart",
	Long: `Add a product in a given size and flavor. Adding the same configuration again
increases the quantity of the existing line.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <line-id>",
	Short: "Remove one cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "Quantity to add")
	cartAddCmd.Flags().StringVar(&addSize, "size", "", "Size offered by the product")
	cartAddCmd.Flags().StringVar(&addFlavor, "flavor", "", "Flavor offered by the product")
	cartAddCmd.Flags().StringVar(&addMessage, "message", "", "Custom message for customizable products")
	_ = cartAddCmd.MarkFlagRequired("size")
	_ = cartAddCmd.MarkFlagRequired("flavor")
}

func runCartList(cmd *cobra.Command, args []string) error {
	return cartCommand(cmd, func(ctx context.Context, carts cart.Service) (*cart.View, error) {
		return carts.Get(ctx, session)
	})
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	input := cart.AddItemInput{
		ProductID:     args[0],
		Quantity:      addQuantity,
		Size:          addSize,
		Flavor:        addFlavor,
		CustomMessage: addMessage,
	}
	return cartCommand(cmd, func(ctx context.Context, carts cart.Service) (*cart.View, error) {
		return carts.Add(ctx, session, input)
	})
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	return cartCommand(cmd, func(ctx context.Context, carts cart.Service) (*cart.View, error) {
		return carts.Remove(ctx, session, args[0])
	})
}

func runCartClear(cmd *cobra.Command, args []string) error {
	return cartCommand(cmd, func(ctx context.Context, carts cart.Service) (*cart.View, error) {
		return carts.Clear(ctx, session)
	})
}

func cartCommand(cmd *cobra.Command, fn func(ctx context.Context, carts cart.Service) (*cart.View, error)) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		view, err := fn(ctx, c.Carts)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), cart.NewViewDTO(*view))
	})
}
