package main

import (
	"fmt"
	gohttp "net/http"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dokon/pkg/logger"
	"github.com/shashiranjanraj/dokon/pkg/metrics"
)

var syncMetricsAddr string

func init() {
	syncCmd.Flags().StringVar(&syncMetricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address after syncing (blocks)")
}

// dokon sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the session and fetch everything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := boot()
		if err != nil {
			return err
		}

		stores.Sync(cmd.Context())
		if err := persistSession(stores); err != nil {
			return err
		}

		if user := stores.Session.User(); user != nil {
			fmt.Printf("Signed in as %s\n", user.Email)
			fmt.Printf("Cart:       %d line(s), total %.2f\n", stores.Cart.Len(), stores.Cart.TotalPrice())
			fmt.Printf("Favorites:  %d\n", stores.Favorites.Len())
			fmt.Printf("Orders:     %d\n", len(stores.Orders.Orders()))
		} else {
			fmt.Println("Not signed in.")
		}
		fmt.Printf("Catalogue:  %d product(s), %d categorie(s)\n",
			len(stores.Catalog.Products()), len(stores.Categories.Categories()))

		if syncMetricsAddr != "" {
			logger.Info("serving metrics", "addr", syncMetricsAddr)
			mux := gohttp.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			return gohttp.ListenAndServe(syncMetricsAddr, mux)
		}
		return nil
	},
}
