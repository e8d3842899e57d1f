package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixelhive/pixelhive-cli/internal/validate"
)

// NewCommentCommand creates the comment command group
func NewCommentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Read and manage comments on a post",
	}

	cmd.AddCommand(newCommentListCommand())
	cmd.AddCommand(newCommentAddCommand())
	cmd.AddCommand(newCommentEditCommand())
	cmd.AddCommand(newCommentDeleteCommand())
	return cmd
}

func newCommentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <post-id>",
		Short: "List the comments on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.GetComments(cmd.Context(), args[0])
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch comments")
			}

			if len(res.Data.Comments) == 0 {
				fmt.Println("No comments yet")
				return nil
			}
			for _, c := range res.Data.Comments {
				author := "unknown"
				if c.User != nil {
					author = c.User.Name
				}
				fmt.Printf("[%s] %s (%s)\n", c.ID, author, c.CreatedAt.Format("2006-01-02 15:04"))
				fmt.Printf("    %s\n", c.Text)
			}
			return nil
		},
	}
}

func newCommentAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if err := validate.Comment(args[1]); err != nil {
				return err
			}

			res := a.posts.AddComment(cmd.Context(), args[0], args[1])
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data, "Failed to add comment")
			}
			fmt.Println("Comment added")
			return nil
		},
	}
}

func newCommentEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <post-id> <comment-id> <text>",
		Short: "Edit one of your comments",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if err := validate.Comment(args[2]); err != nil {
				return err
			}

			res := a.posts.EditComment(cmd.Context(), args[0], args[1], args[2])
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data, "Failed to update comment")
			}
			fmt.Println("Comment updated")
			return nil
		},
	}
}

func newCommentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <post-id> <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.DeleteComment(cmd.Context(), args[0], args[1])
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data, "Failed to delete comment")
			}
			fmt.Println("Comment deleted")
			return nil
		},
	}
}
