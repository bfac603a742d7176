package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yogarn/filkompedia-client/bookstore"
)

func (a *App) booksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse the catalog",
	}
	cmd.AddCommand(a.booksListCmd(), a.booksShowCmd())
	return cmd
}

func (a *App) booksListCmd() *cobra.Command {
	var q bookstore.BookQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered by title or author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.client.ListBooks(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(page.Books) == 0 {
				a.notifier.Info("No books found")
				return nil
			}
			rows := make([][]string, 0, len(page.Books))
			for _, b := range page.Books {
				rows = append(rows, []string{b.ID.String(), b.Title, b.Author, rupiah(b.Price)})
			}
			printTable(a.out, []string{"ID", "Title", "Author", "Price"}, rows)
			fmt.Fprintf(a.out, "page %d, next: filkompedia books list --page %d\n", page.Page, page.Page+1)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "title or author to search for")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.Size, "size", 10, "books per page")
	return cmd
}

func (a *App) booksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show a book and whether you bought it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := bookstore.ID(args[0])
			book, err := a.client.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			purchased, err := a.client.HasPurchased(cmd.Context(), id)
			if err != nil {
				return err
			}
			printBook(a.out, book)
			if purchased {
				fmt.Fprintln(a.out, "\nYou own this book.")
			}
			return nil
		},
	}
}
