package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yogarn/filkompedia-client/bookstore"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printTable writes rows under headers with a rounded border.
func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func rupiah(v float64) string {
	return "Rp" + strconv.FormatFloat(v, 'f', 0, 64)
}

func printBook(w io.Writer, b bookstore.Book) {
	fmt.Fprintf(w, "%s (#%s)\n", b.Title, b.ID)
	fmt.Fprintf(w, "  author:   %s\n", b.Author)
	fmt.Fprintf(w, "  released: %s\n", b.ReleaseDate)
	fmt.Fprintf(w, "  price:    %s\n", rupiah(b.Price))
	if b.Image != "" {
		fmt.Fprintf(w, "  cover:    %s\n", b.Image)
	}
	if b.Introduction != "" {
		fmt.Fprintf(w, "\n%s\n", b.Introduction)
	}
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
}

func printUser(w io.Writer, u bookstore.User) {
	fmt.Fprintf(w, "%s (#%s)\n", u.Username, u.ID)
	fmt.Fprintf(w, "  email: %s\n", u.Email)
	fmt.Fprintf(w, "  role:  %s\n", u.RoleID)
	if u.ProfilePicture != "" {
		fmt.Fprintf(w, "  picture: %s\n", u.ProfilePicture)
	}
}
