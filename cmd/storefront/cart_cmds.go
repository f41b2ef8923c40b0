package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/views"
)

var flagQty int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the effective cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := client.Cart(cmd.Context())
		if err != nil {
			return err
		}
		printCartItems(items)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <variantId>",
	Short: "Add a variant to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variantID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid variant id %q", args[0])
		}

		counter := views.NewCartCounter(client, bus, logger)
		defer counter.Close()

		if err := client.AddToCart(cmd.Context(), variantID, flagQty); err != nil {
			return err
		}
		bus.Publish(events.TopicCartChanged)

		printCartBadge(counter.Count())
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <variantId> <qty>",
	Short: "Set the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		variantID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid variant id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}

		items, err := client.UpdateQuantity(cmd.Context(), variantID, qty)
		if err != nil {
			return err
		}
		bus.Publish(events.TopicCartChanged)

		printCartItems(items)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <variantId>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variantID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid variant id %q", args[0])
		}

		items, err := client.RemoveItem(cmd.Context(), variantID)
		if err != nil {
			return err
		}
		bus.Publish(events.TopicCartChanged)

		printCartItems(items)
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the cart (requires login)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher := views.NewSessionWatcher(store, bus)
		defer watcher.Close()
		watcher.Refresh()
		if watcher.State() != views.StateAuthenticated {
			return fmt.Errorf("checkout requires login; run 'storefront login' first")
		}

		resp, err := client.Checkout(cmd.Context())
		if err != nil {
			return err
		}
		bus.Publish(events.TopicCartChanged)

		fmt.Printf("order %s created\n", titleStyle.Render(fmt.Sprintf("#%d", resp.ID)))
		fmt.Println(faintStyle.Render(fmt.Sprintf("pay with 'storefront pay %d'", resp.ID)))
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&flagQty, "qty", 1, "quantity to add")
	cartCmd.AddCommand(cartAddCmd, cartSetCmd, cartRemoveCmd)
}
