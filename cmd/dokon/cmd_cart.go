package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dokon/app/store"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// dokon cart
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Cart.Fetch(cmd.Context()); err != nil {
			return err
		}

		lines := stores.Cart.Lines()
		if len(lines) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}
		for _, l := range lines {
			fmt.Printf("#%-5d %-40s %3d x %8.2f = %10.2f\n",
				l.Product.ID, l.Product.Name, l.Quantity, l.Product.Price, l.Total())
		}
		fmt.Printf("%51s total %10.2f\n", "", stores.Cart.TotalPrice())
		return nil
	},
}

// dokon cart:add <product-id>
var cartAddCmd = &cobra.Command{
	Use:   "cart:add <product-id>",
	Short: "Add one unit of a product to the cart",
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
		ctx := cmd.Context()

		product, err := stores.Catalog.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		if err := stores.Cart.Add(ctx, *product); err != nil {
			return err
		}
		fmt.Printf("Added %s. Cart has %d line(s), total %.2f\n",
			product.Name, stores.Cart.Len(), stores.Cart.TotalPrice())
		return nil
	},
}

// dokon cart:remove <product-id>
var cartRemoveCmd = &cobra.Command{
	Use:   "cart:remove <product-id>",
	Short: "Remove a product's whole line from the cart",
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
		ctx := cmd.Context()

		if err := stores.Cart.Fetch(ctx); err != nil {
			return err
		}
		if err := stores.Cart.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Removed. Cart has %d line(s) left.\n", stores.Cart.Len())
		return nil
	},
}

func nudge(cmd *cobra.Command, arg string, dir store.Direction) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	stores, err := boot()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	// Resync first so the line ids are the backend's, not placeholders.
	if err := stores.Cart.Fetch(ctx); err != nil {
		return err
	}
	if err := stores.Cart.UpdateQuantity(ctx, id, dir); err != nil {
		return err
	}
	fmt.Printf("Cart has %d line(s), total %.2f\n", stores.Cart.Len(), stores.Cart.TotalPrice())
	return nil
}

// dokon cart:inc <product-id>
var cartIncCmd = &cobra.Command{
	Use:   "cart:inc <product-id>",
	Short: "Increase a cart line's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nudge(cmd, args[0], store.Increment)
	},
}

// dokon cart:dec <product-id>
var cartDecCmd = &cobra.Command{
	Use:   "cart:dec <product-id>",
	Short: "Decrease a cart line's quantity by one (removes the line at 1)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return nudge(cmd, args[0], store.Decrement)
	},
}
