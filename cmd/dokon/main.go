package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dokon",
	Short: "Dokon — storefront terminal client",
	Long:  "Dokon is a terminal client for the Dokon storefront backend: browse the catalogue, manage your cart and favorites, and place orders.",
}

func init() {
	// Session
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)

	// Catalogue
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(productShowCmd)
	rootCmd.AddCommand(categoriesCmd)

	// Cart
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(cartAddCmd)
	rootCmd.AddCommand(cartRemoveCmd)
	rootCmd.AddCommand(cartIncCmd)
	rootCmd.AddCommand(cartDecCmd)

	// Favorites
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(favoriteAddCmd)
	rootCmd.AddCommand(favoriteRemoveCmd)

	// Orders
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(orderShowCmd)
	rootCmd.AddCommand(orderCancelCmd)
	rootCmd.AddCommand(orderStatusCmd)

	// Everything at once
	rootCmd.AddCommand(syncCmd)
}
