package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yogarn/filkompedia-client/bookstore"
)

func (a *App) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Catalog and user management (admin accounts only)",
	}
	books := &cobra.Command{
		Use:   "books",
		Short: "Manage the catalog",
	}
	books.AddCommand(
		a.adminBookCreateCmd(),
		a.adminBookUpdateCmd(),
		a.adminBookDeleteCmd(),
		a.adminBookCoverCmd(),
	)
	users := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}
	users.AddCommand(a.adminUsersListCmd(), a.adminUsersRoleCmd())

	cmd.AddCommand(books, users)
	return cmd
}

// requireAdmin stops the command early for non-admin accounts.
func (a *App) requireAdmin(cmd *cobra.Command) error {
	_, err := a.client.RequireRole(cmd.Context(), bookstore.RoleAdmin)
	return err
}

type bookFlags struct {
	book  bookstore.Book
	cover string
}

func (f *bookFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.book.Title, "title", "", "title")
	fs.StringVar(&f.book.Author, "author", "", "author")
	fs.StringVar(&f.book.Description, "description", "", "description")
	fs.StringVar(&f.book.Introduction, "introduction", "", "introduction")
	fs.StringVar(&f.book.ReleaseDate, "release-date", "", "release date, YYYY-MM-DD")
	fs.StringVar(&f.book.Image, "image", "", "cover image URL")
	fs.Float64Var(&f.book.Price, "price", 0, "price in rupiah")
	fs.StringVar(&f.cover, "cover", "", "cover image file to upload, overrides --image")
}

// apply copies the flags that were set onto b.
func (f *bookFlags) apply(fs *pflag.FlagSet, b *bookstore.Book) {
	fields := map[string]func(){
		"title":        func() { b.Title = f.book.Title },
		"author":       func() { b.Author = f.book.Author },
		"description":  func() { b.Description = f.book.Description },
		"introduction": func() { b.Introduction = f.book.Introduction },
		"release-date": func() { b.ReleaseDate = f.book.ReleaseDate },
		"image":        func() { b.Image = f.book.Image },
		"price":        func() { b.Price = f.book.Price },
	}
	for name, set := range fields {
		if fs.Changed(name) {
			set()
		}
	}
}

func (a *App) uploadCover(cmd *cobra.Command, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return a.client.UploadBookCover(cmd.Context(), filepath.Base(path), f)
}

func (a *App) adminBookCreateCmd() *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			book := flags.book
			if flags.cover != "" {
				url, err := a.uploadCover(cmd, flags.cover)
				if err != nil {
					return err
				}
				book.Image = url
			}
			created, err := a.client.CreateBook(cmd.Context(), book)
			if err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Created book #%s", created.ID))
			return nil
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) adminBookUpdateCmd() *cobra.Command {
	var flags bookFlags
	cmd := &cobra.Command{
		Use:   "update <book-id>",
		Short: "Change the fields given as flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			book, err := a.client.GetBook(cmd.Context(), bookstore.ID(args[0]))
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), &book)
			if flags.cover != "" {
				url, err := a.uploadCover(cmd, flags.cover)
				if err != nil {
					return err
				}
				book.Image = url
			}
			if err := a.client.UpdateBook(cmd.Context(), book); err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Updated book #%s", book.ID))
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *App) adminBookDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			if err := a.client.DeleteBook(cmd.Context(), bookstore.ID(args[0])); err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Deleted book #%s", args[0]))
			return nil
		},
	}
}

func (a *App) adminBookCoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cover <image-file>",
		Short: "Upload a cover image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			url, err := a.uploadCover(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, url)
			return nil
		},
	}
}

func (a *App) adminUsersListCmd() *cobra.Command {
	var page, size int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			users, err := a.client.Users(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.ID.String(), u.Username, u.Email, u.RoleID.String()})
			}
			printTable(a.out, []string{"ID", "Username", "Email", "Role"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&size, "size", 10, "accounts per page")
	return cmd
}

func (a *App) adminUsersRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <user-id> <admin|customer>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseRole(args[1])
			if err != nil {
				return err
			}
			if err := a.requireAdmin(cmd); err != nil {
				return err
			}
			if err := a.client.SetRole(cmd.Context(), bookstore.ID(args[0]), role); err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("User #%s is now %s", args[0], role))
			return nil
		},
	}
}

func parseRole(s string) (bookstore.RoleID, error) {
	switch strings.ToLower(s) {
	case "admin":
		return bookstore.RoleAdmin, nil
	case "customer":
		return bookstore.RoleCustomer, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || (bookstore.RoleID(n) != bookstore.RoleAdmin && bookstore.RoleID(n) != bookstore.RoleCustomer) {
		return 0, fmt.Errorf("unknown role %q, use admin or customer", s)
	}
	return bookstore.RoleID(n), nil
}
