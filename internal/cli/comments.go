package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yogarn/filkompedia-client/bookstore"
	apperrors "github.com/yogarn/filkompedia-client/internal/errors"
)

var errNotYours = apperrors.Wrapf(apperrors.ErrForbidden, "the review belongs to someone else")

func (a *App) commentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write book reviews",
	}
	cmd.AddCommand(
		a.commentsListCmd(),
		a.commentsAddCmd(),
		a.commentsEditCmd(),
		a.commentsDeleteCmd(),
	)
	return cmd
}

func (a *App) commentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <book-id>",
		Short: "Show the reviews of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := a.client.Comments(cmd.Context(), bookstore.ID(args[0]))
			if err != nil {
				return err
			}
			if len(comments) == 0 {
				a.notifier.Info("No reviews yet")
				return nil
			}
			rows := make([][]string, 0, len(comments))
			for _, c := range comments {
				rows = append(rows, []string{
					c.ID.String(),
					c.Username,
					strings.Repeat("*", int(c.Rating)),
					c.Comment,
					c.CreatedAt,
				})
			}
			printTable(a.out, []string{"ID", "User", "Rating", "Comment", "Date"}, rows)
			return nil
		},
	}
}

func (a *App) commentsAddCmd() *cobra.Command {
	var rating int
	cmd := &cobra.Command{
		Use:   "add <book-id> <text>",
		Short: "Review a book you bought",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.client.PostComment(cmd.Context(), bookstore.ID(args[0]), args[1], bookstore.Rating(rating))
			if err != nil {
				return err
			}
			a.notifier.Success("Review posted")
			return nil
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 5, "stars, 1 to 5")
	return cmd
}

func (a *App) commentsEditCmd() *cobra.Command {
	var rating int
	cmd := &cobra.Command{
		Use:   "edit <book-id> <comment-id> <text>",
		Short: "Change one of your reviews",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			comment, err := a.findComment(cmd, bookstore.ID(args[0]), bookstore.ID(args[1]))
			if err != nil {
				return err
			}
			if !bookstore.CanEdit(me, comment) {
				return errNotYours
			}
			if !cmd.Flags().Changed("rating") {
				rating = int(comment.Rating)
			}
			err = a.client.EditComment(cmd.Context(), comment.BookID, comment.ID, args[2], bookstore.Rating(rating))
			if err != nil {
				return err
			}
			a.notifier.Success("Review updated")
			return nil
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 5, "stars, 1 to 5 (unchanged when omitted)")
	return cmd
}

func (a *App) commentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book-id> <comment-id>",
		Short: "Delete your review, or any review as an admin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			comment, err := a.findComment(cmd, bookstore.ID(args[0]), bookstore.ID(args[1]))
			if err != nil {
				return err
			}
			if !bookstore.CanDelete(me, comment) {
				return errNotYours
			}
			if err := a.client.DeleteComment(cmd.Context(), comment.ID); err != nil {
				return err
			}
			a.notifier.Success("Review deleted")
			return nil
		},
	}
}

func (a *App) findComment(cmd *cobra.Command, bookID, commentID bookstore.ID) (bookstore.Comment, error) {
	comments, err := a.client.Comments(cmd.Context(), bookID)
	if err != nil {
		return bookstore.Comment{}, err
	}
	for _, c := range comments {
		if c.ID == commentID {
			return c, nil
		}
	}
	return bookstore.Comment{}, apperrors.Wrapf(apperrors.ErrNotFound, "comment %s on book %s", commentID, bookID)
}
