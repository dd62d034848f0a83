package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/app/store"
)

var (
	productsSearch   string
	productsCategory int64
	productsLatest   bool
)

func init() {
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "server-side search text")
	productsCmd.Flags().Int64Var(&productsCategory, "category", 0, "filter by category id")
	productsCmd.Flags().BoolVar(&productsLatest, "latest", false, "show only the newest arrivals")
}

func printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Println("No products.")
		return
	}
	for _, p := range products {
		marker := "  "
		if store.IsNew(p.CreatedAt) {
			marker = "* " // new arrival
		}
		fmt.Printf("%s#%-5d %-40s %10.2f\n", marker, p.ID, p.Name, p.Price)
	}
}

// dokon products [--search text] [--category id] [--latest]
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalogue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		switch {
		case productsSearch != "":
			err = stores.Catalog.Search(ctx, productsSearch)
		case productsCategory > 0:
			err = stores.Catalog.FetchByCategory(ctx, productsCategory)
		default:
			err = stores.Catalog.Fetch(ctx)
		}
		if err != nil {
			return err
		}

		if productsLatest {
			printProducts(stores.Catalog.Latest())
			return nil
		}
		printProducts(stores.Catalog.Products())
		return nil
	},
}

// dokon product <id>
var productShowCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		stores, err := boot()
		if err != nil {
			return err
		}

		p, err := stores.Catalog.FetchByID(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("#%d %s\n", p.ID, p.Name)
		fmt.Printf("Price:    %.2f\n", p.Price)
		fmt.Printf("Category: %d\n", p.CategoryID)
		if p.Description != "" {
			fmt.Printf("\n%s\n", p.Description)
		}
		return nil
	},
}

// dokon categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}
		if err := stores.Categories.Fetch(cmd.Context()); err != nil {
			return err
		}
		for _, c := range stores.Categories.Categories() {
			fmt.Printf("#%-5d %s\n", c.ID, c.Name)
		}
		return nil
	},
}
