package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := client.MyOrders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println(faintStyle.Render("no orders yet"))
			return nil
		}
		for _, o := range orders {
			printOrder(o)
		}
		return nil
	},
}

var orderCmd = &cobra.Command{
	Use:   "order <id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		o, err := client.Order(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Pay an order (mock payment)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		o, err := client.Pay(cmd.Context(), id)
		if err != nil {
			return err
		}
		printOrder(*o)
		return nil
	},
}
