package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/storefront/internal/views"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in; the guest cart is merged into the account cart",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		guestCart := store.EffectiveCartID()

		resp, err := client.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("logged in as %s\n", titleStyle.Render(args[0]))
		if guestCart != resp.CartID {
			fmt.Println(faintStyle.Render(fmt.Sprintf("cart %s merged into %s", guestCart, resp.CartID)))
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create an account (does not log in)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.Register(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("account created; run 'storefront login' to sign in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out; the guest cart survives for the next anonymous session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client.Logout()
		fmt.Printf("logged out, continuing as guest with cart %s\n", store.EffectiveCartID())
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show session state, role and effective cart id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher := views.NewSessionWatcher(store, bus)
		defer watcher.Close()
		watcher.Refresh()

		fmt.Printf("session: %s\n", watcher.State())
		if role, ok := store.Role(); ok {
			fmt.Printf("role: %s\n", role)
		}
		fmt.Printf("cart: %s\n", store.EffectiveCartID())
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the account profile and order history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := client.Profile(cmd.Context())
		if err != nil {
			return err
		}

		name := profile.Username
		if profile.DisplayName != nil {
			name = *profile.DisplayName
		}
		fmt.Printf("%s (%s)\n", titleStyle.Render(name), profile.Role)

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
