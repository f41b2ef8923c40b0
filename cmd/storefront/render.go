package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/storefront/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func printCartItems(items []domain.CartItem) {
	if len(items) == 0 {
		fmt.Println(faintStyle.Render("cart is empty"))
		return
	}
	for _, it := range items {
		fmt.Printf("%s  %s\n", titleStyle.Render(it.Title), faintStyle.Render(fmt.Sprintf("(%s / %s)", it.Size, it.Color)))
		fmt.Printf("  variant %d  qty %d  %s each\n", it.VariantID, it.Quantity, money(it.Price))
	}
	fmt.Printf("total: %s\n", money(domain.CartTotal(items)))
}

func printOrder(o domain.Order) {
	fmt.Printf("%s  %s  total %s  %s\n",
		titleStyle.Render(fmt.Sprintf("order #%d", o.ID)),
		string(o.Status),
		money(o.TotalAmount),
		faintStyle.Render(o.CreatedAt.Format("2006-01-02 15:04")),
	)
	for _, it := range o.Items {
		fmt.Printf("  %s (%s/%s) x%d  %s\n", it.Title, it.Size, it.Color, it.Quantity, money(it.Price))
	}
}

func printCartBadge(count int) {
	fmt.Println(badgeStyle.Render(fmt.Sprintf("cart: %d item(s)", count)))
}
