package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sweetslice/storefront/internal/bootstrap"
	"github.com/sweetslice/storefront/internal/checkout"
	"github.com/sweetslice/storefront/internal/checkout/helpers"
	"github.com/sweetslice/storefront/internal/orders"
	"github.com/sweetslice/storefront/pkg/enums"
)

var (
	deliveryMethod string
	draft          checkout.Draft
	orderEmail     string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Quote and place orders from the cart for --session",
}

var checkoutQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price the cart for a delivery method",
	RunE:  runCheckoutQuote,
}

var checkoutPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order and empty the cart",
	Long: `Place an order from the current cart. Contact details and the delivery slot are
required; address, city and zip code are only required for delivery.`,
	RunE: runCheckoutPlace,
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Look up placed orders",
}

var ordersGetCmd = &cobra.Command{
	Use:   "get <order-code>",
	Short: "Show an order by its ORD-YYYY-NNN code",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersGet,
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, optionally for one customer email",
	RunE:  runOrdersList,
}

func init() {
	checkoutQuoteCmd.Flags().StringVar(&deliveryMethod, "method", "pickup", "pickup or delivery")

	f := checkoutPlaceCmd.Flags()
	f.StringVar(&draft.CustomerName, "name", "", "Customer name")
	f.StringVar(&draft.Email, "email", "", "Customer email")
	f.StringVar(&draft.Phone, "phone", "", "Customer phone")
	f.StringVar(&draft.DeliveryMethod, "method", "pickup", "pickup or delivery")
	f.StringVar(&draft.DeliveryDate, "date", "", "Delivery date, YYYY-MM-DD")
	f.StringVar(&draft.DeliveryTime, "time", "", "Time slot: "+strings.Join(helpers.TimeSlots, ", "))
	f.StringVar(&draft.Address, "address", "", "Street address")
	f.StringVar(&draft.City, "city", "", "City")
	f.StringVar(&draft.ZipCode, "zip", "", "Zip code")
	f.StringVar(&draft.SpecialInstructions, "instructions", "", "Special instructions")

	ordersListCmd.Flags().StringVar(&orderEmail, "email", "", "Only orders placed with this email")
}

func runCheckoutQuote(cmd *cobra.Command, args []string) error {
	method, err := enums.ParseDeliveryMethod(deliveryMethod)
	if err != nil {
		return err
	}
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		quote, err := c.Checkout.Quote(ctx, session, method)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), checkout.NewQuoteDTO(*quote))
	})
}

func runCheckoutPlace(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		order, err := c.Checkout.PlaceOrder(ctx, session, draft)
		if err != nil {
			return describe(err)
		}
		return printJSON(cmd.OutOrStdout(), orders.NewOrderDTO(*order))
	})
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	code := strings.ToUpper(strings.TrimSpace(args[0]))
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		order, err := c.Orders.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), orders.NewOrderDTO(*order))
	})
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *bootstrap.Container) error {
		var (
			list []orders.Order
			err  error
		)
		if orderEmail != "" {
			list, err = c.Orders.ListByCustomer(ctx, orderEmail)
		} else {
			list, err = c.Orders.List(ctx)
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), orders.NewOrderDTOs(list))
	})
}
