package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dokon favorites
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorited products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Favorites.Fetch(cmd.Context()); err != nil {
			return err
		}
		printProducts(stores.Favorites.Products())
		return nil
	},
}

// dokon favorite:add <product-id>
var favoriteAddCmd = &cobra.Command{
	Use:   "favorite:add <product-id>",
	Short: "Mark a product as favorite",
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
		if err := stores.Favorites.Add(ctx, *product); err != nil {
			return err
		}
		fmt.Printf("Favorited %s.\n", product.Name)
		return nil
	},
}

// dokon favorite:remove <product-id>
var favoriteRemoveCmd = &cobra.Command{
	Use:   "favorite:remove <product-id>",
	Short: "Unmark a favorited product",
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
		if err := stores.Favorites.Remove(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Removed from favorites.")
		return nil
	},
}
