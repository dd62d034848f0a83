package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dokon/app/models"
)

// dokon checkout
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Turn the cart into an order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := stores.Cart.Fetch(ctx); err != nil {
			return err
		}
		order, err := stores.Orders.Checkout(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Order #%d placed, total %.2f, status %s\n",
			order.ID, order.TotalPrice, order.Status)
		return nil
	},
}

// dokon orders
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Orders.Fetch(cmd.Context()); err != nil {
			return err
		}

		orders := stores.Orders.Orders()
		if len(orders) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}
		for _, o := range orders {
			when := ""
			if o.CreatedAt != nil {
				when = o.CreatedAt.Format("2006-01-02")
			}
			fmt.Printf("#%-5d %-10s %10.2f  %s\n", o.ID, o.Status, o.TotalPrice, when)
		}
		return nil
	},
}

// dokon order <id>
var orderShowCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Show one order with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Orders.FetchDetail(cmd.Context(), id); err != nil {
			return err
		}

		o := stores.Orders.Detail()
		fmt.Printf("Order #%d  status %s  total %.2f\n", o.ID, o.Status, o.TotalPrice)
		for _, item := range o.Items {
			name := item.ProductName
			if name == "" {
				name = fmt.Sprintf("product %d", item.ProductID)
			}
			fmt.Printf("  %-40s %3d x %8.2f\n", name, item.Quantity, item.Price)
		}
		return nil
	},
}

// dokon order:cancel <id>
var orderCancelCmd = &cobra.Command{
	Use:   "order:cancel <id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Orders.Cancel(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Order #%d cancelled.\n", id)
		return nil
	},
}

// dokon order:status <id> <status>  (admin)
var orderStatusCmd = &cobra.Command{
	Use:   "order:status <id> <status>",
	Short: "Transition an order's status (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		stores, err := boot()
		if err != nil {
			return err
		}
		status := models.OrderStatus(args[1])
		if err := stores.Orders.UpdateStatus(cmd.Context(), id, status); err != nil {
			return err
		}
		fmt.Printf("Order #%d is now %s.\n", id, status)
		return nil
	},
}
