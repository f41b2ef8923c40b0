package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var flagCategory string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := client.Products(cmd.Context())
		if err != nil {
			return err
		}

		shown := 0
		for _, p := range products {
			if flagCategory != "" && !strings.EqualFold(p.Category, flagCategory) {
				continue
			}
			shown++
			fmt.Printf("%s  %s\n", titleStyle.Render(fmt.Sprintf("#%d %s %s", p.ID, p.Brand, p.Title)),
				faintStyle.Render(p.Category))
			fmt.Printf("  from %s, %d variant(s)\n", money(p.MinPrice()), len(p.Variants))
		}
		if shown == 0 {
			fmt.Println(faintStyle.Render("no products"))
		}
		return nil
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a product with its variants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		p, err := client.Product(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n", titleStyle.Render(p.Brand), titleStyle.Render(p.Title))
		fmt.Println(p.Description)
		for _, v := range p.Variants {
			fmt.Printf("  variant %d: %s / %s  %s  (%d in stock, sku %s)\n",
				v.ID, v.Size, v.Color, money(v.Price), v.Quantity, v.SKU)
		}
		for _, img := range p.Images {
			fmt.Println(faintStyle.Render("image: " + img))
		}
		return nil
	},
}

func init() {
	productsCmd.Flags().StringVar(&flagCategory, "category", "", "filter by category name")
}
