package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yogarn/filkompedia-client/bookstore"
)

func (a *App) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage your cart",
	}
	cmd.AddCommand(
		a.cartListCmd(),
		a.cartAddCmd(),
		a.cartSetCmd(),
		a.cartRemoveCmd(),
		a.cartCheckoutCmd(),
	)
	return cmd
}

func (a *App) cartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the items waiting for checkout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.client.CartWithBooks(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				a.notifier.Info("Your cart is empty")
				return nil
			}
			var total float64
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				subtotal := it.Book.Price * float64(it.Amount)
				total += subtotal
				rows = append(rows, []string{it.ID.String(), it.Book.Title, strconv.Itoa(it.Amount), rupiah(subtotal)})
			}
			printTable(a.out, []string{"ID", "Book", "Amount", "Subtotal"}, rows)
			fmt.Fprintf(a.out, "total %s\n", rupiah(total))
			return nil
		},
	}
}

func (a *App) cartAddCmd() *cobra.Command {
	var amount int
	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Put a book in the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.AddToCart(cmd.Context(), bookstore.ID(args[0]), amount); err != nil {
				return err
			}
			a.notifier.Success("Added to cart")
			return nil
		},
	}
	cmd.Flags().IntVarP(&amount, "amount", "n", 1, "number of copies")
	return cmd
}

func (a *App) cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <cart-id> <amount>",
		Short: "Change the amount of a cart item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("amount must be a number: %q", args[1])
			}
			if err := a.client.UpdateCartAmount(cmd.Context(), bookstore.ID(args[0]), amount); err != nil {
				return err
			}
			a.notifier.Success("Cart updated")
			return nil
		},
	}
}

func (a *App) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <cart-id>",
		Short: "Remove an item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.RemoveCartItem(cmd.Context(), bookstore.ID(args[0])); err != nil {
				return err
			}
			a.notifier.Success("Removed from cart")
			return nil
		},
	}
}

func (a *App) cartCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout [cart-id...]",
		Short: "Check out the given items, or the whole cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]bookstore.ID, 0, len(args))
			for _, arg := range args {
				ids = append(ids, bookstore.ID(arg))
			}
			if len(ids) == 0 {
				items, err := a.client.Cart(cmd.Context())
				if err != nil {
					return err
				}
				for _, it := range items {
					ids = append(ids, it.ID)
				}
			}
			if len(ids) == 0 {
				a.notifier.Info("Your cart is empty")
				return nil
			}

			res, err := a.client.Checkout(cmd.Context(), ids)
			if err != nil {
				return err
			}
			a.notifier.Success("Checkout created")
			fmt.Fprintf(a.out, "pay at %s\n", a.paymentLink(res.Token, res.RedirectURL))
			return nil
		},
	}
}

func (a *App) paymentLink(token, fallback string) string {
	if token == "" {
		return fallback
	}
	return a.client.PaymentURL(token)
}

func (a *App) checkoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkouts",
		Short: "List your checkouts and their payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := a.client.CheckoutHistory(cmd.Context())
			if err != nil {
				return err
			}
			if len(history) == 0 {
				a.notifier.Info("No checkouts yet")
				return nil
			}
			rows := make([][]string, 0, len(history))
			for _, h := range history {
				titles := make([]string, 0, len(h.Items))
				for _, it := range h.Items {
					titles = append(titles, fmt.Sprintf("%s x%d", it.Book.Title, it.Amount))
				}
				pay := ""
				if !h.Status.Settled() {
					pay = a.paymentLink(h.Token, "")
				}
				rows = append(rows, []string{
					h.Checkout.ID.String(),
					h.Checkout.CreatedAt,
					strings.Join(titles, ", "),
					rupiah(h.TotalPrice),
					h.Status.String(),
					pay,
				})
			}
			printTable(a.out, []string{"Checkout", "Date", "Items", "Total", "Status", "Pay"}, rows)
			return nil
		},
	}
}
