package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spec-kit/storefront/internal/domain"
)

var (
	flagTitle       string
	flagDescription string
	flagCategoryID  int64
	flagBrandID     int64
	flagSize        string
	flagColor       string
	flagPrice       float64
	flagStock       int
	flagSKU         string
)

var sellerCmd = &cobra.Command{
	Use:   "seller",
	Short: "Seller console: orders, shipping, product management",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		// Role decode gates messaging only; the server enforces access.
		if role, ok := store.Role(); !ok || !role.IsSeller() {
			fmt.Println(faintStyle.Render("note: current session has no seller role"))
		}
		return nil
	},
}

var sellerOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders containing your products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := client.SellerOrders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println(faintStyle.Render("no orders"))
			return nil
		}
		for _, o := range orders {
			printOrder(o)
		}
		return nil
	},
}

var sellerOrderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Show one order from the seller view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		o, err := client.SellerOrder(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	},
}

var sellerShipCmd = &cobra.Command{
	Use:   "ship <id>",
	Short: "Mark a paid order as shipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		o, err := client.Ship(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	},
}

var sellerCreateProductCmd = &cobra.Command{
	Use:   "create-product",
	Short: "Create a product with one variant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.CreateProductRequest{
			Title:       flagTitle,
			Description: flagDescription,
			CategoryID:  flagCategoryID,
			BrandID:     flagBrandID,
			Variants: []domain.CreateVariantRequest{{
				Size:     flagSize,
				Color:    flagColor,
				Price:    flagPrice,
				Quantity: flagStock,
				SKU:      flagSKU,
			}},
		}

		id, err := client.CreateProduct(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Printf("product %s created\n", titleStyle.Render(fmt.Sprintf("#%d", id)))
		return nil
	},
}

var sellerUploadImageCmd = &cobra.Command{
	Use:   "upload-image <productId> <file>",
	Short: "Attach an image to a product",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := client.UploadProductImage(cmd.Context(), productID, f.Name(), f)
		if err != nil {
			return err
		}
		fmt.Printf("image stored at %s\n", url)
		return nil
	},
}

func init() {
	sellerCreateProductCmd.Flags().StringVar(&flagTitle, "title", "", "product title")
	sellerCreateProductCmd.Flags().StringVar(&flagDescription, "description", "", "product description")
	sellerCreateProductCmd.Flags().Int64Var(&flagCategoryID, "category-id", 0, "category id")
	sellerCreateProductCmd.Flags().Int64Var(&flagBrandID, "brand-id", 0, "brand id")
	sellerCreateProductCmd.Flags().StringVar(&flagSize, "size", "Standard", "variant size")
	sellerCreateProductCmd.Flags().StringVar(&flagColor, "color", "Black", "variant color")
	sellerCreateProductCmd.Flags().Float64Var(&flagPrice, "price", 0, "variant price")
	sellerCreateProductCmd.Flags().IntVar(&flagStock, "stock", 1, "variant stock quantity")
	sellerCreateProductCmd.Flags().StringVar(&flagSKU, "sku", "", "variant sku")
	_ = sellerCreateProductCmd.MarkFlagRequired("title")
	_ = sellerCreateProductCmd.MarkFlagRequired("description")
	_ = sellerCreateProductCmd.MarkFlagRequired("category-id")
	_ = sellerCreateProductCmd.MarkFlagRequired("brand-id")
	_ = sellerCreateProductCmd.MarkFlagRequired("sku")

	sellerCmd.AddCommand(sellerOrdersCmd, sellerOrderCmd, sellerShipCmd, sellerCreateProductCmd, sellerUploadImageCmd)
}
