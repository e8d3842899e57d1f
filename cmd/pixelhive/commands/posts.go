package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/validate"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// resultErr converts a failed call into a printable error, preferring the
// server's message when the response carried one.
func resultErr(transportErr string, env api.Envelope, fallback string) error {
	if transportErr != "" {
		return fmt.Errorf("network error: %s", transportErr)
	}
	return fmt.Errorf("%s", env.ErrorMessage(fallback))
}

func printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Println("No posts found")
		return
	}
	for i, p := range posts {
		byline := "unknown"
		if p.CreatedBy != nil {
			byline = p.CreatedBy.Name
		}
		fmt.Printf("%d. %s\n", i+1, p.Title)
		fmt.Printf("   ID: %s\n", p.ID)
		fmt.Printf("   By: %s on %s\n", byline, p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("   Likes: %d  Comments: %d\n", len(p.Likes), len(p.Comments))
		fmt.Println()
	}
}

// NewFeedCommand creates the feed command
func NewFeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "List all posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.AllPosts(cmd.Context())
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch posts")
			}
			printPosts(res.Data.List())
			return nil
		},
	}
}

// NewMyPostsCommand creates the myposts command
func NewMyPostsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "myposts",
		Short: "List your own posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.MyPosts(cmd.Context())
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch posts")
			}
			printPosts(res.Data.List())
			return nil
		},
	}
}

// NewPostCommand creates the post command group
func NewPostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, inspect and manage posts",
	}

	cmd.AddCommand(newPostShowCommand())
	cmd.AddCommand(newPostCreateCommand())
	cmd.AddCommand(newPostEditCommand())
	cmd.AddCommand(newPostDeleteCommand())
	cmd.AddCommand(newPostLikeCommand())
	cmd.AddCommand(newPostSaveCommand())
	return cmd
}

func newPostShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.GetPost(cmd.Context(), args[0])
			if !res.Success || !res.Data.OK() || res.Data.Post == nil {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch post")
			}
			p := res.Data.Post

			byline := "unknown"
			if p.CreatedBy != nil {
				byline = p.CreatedBy.Name
			}
			fmt.Println(p.Title)
			fmt.Println(strings.Repeat("=", len(p.Title)))
			fmt.Printf("By: %s on %s\n", byline, p.CreatedAt.Format("2006-01-02 15:04"))
			if p.Description != "" {
				fmt.Printf("\n%s\n", p.Description)
			}
			fmt.Printf("\nImage: %s\n", p.ImageURL)
			fmt.Printf("Likes: %d\n", len(p.Likes))

			cres := a.posts.GetComments(cmd.Context(), p.ID)
			if !cres.Success || !cres.Data.OK() {
				return resultErr(cres.Error, cres.Data.Envelope, "Failed to fetch comments")
			}
			fmt.Printf("\nComments (%d):\n", len(cres.Data.Comments))
			for _, c := range cres.Data.Comments {
				author := "unknown"
				if c.User != nil {
					author = c.User.Name
				}
				fmt.Printf("  [%s] %s: %s\n", c.ID, author, c.Text)
			}
			return nil
		},
	}
}

func newPostCreateCommand() *cobra.Command {
	var title, description, image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if title == "" || image == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Title").
						Value(&title),
					huh.NewText().
						Title("Description").
						Value(&description),
					huh.NewInput().
						Title("Image file path").
						Value(&image),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}

			upload := models.PostUpload{Title: title, Description: description, ImagePath: image}
			if err := validate.PostUpload(upload, true); err != nil {
				return err
			}

			res := a.posts.CreatePost(cmd.Context(), upload)
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data.Envelope, "Failed to create post")
			}
			if res.Data.Post != nil {
				fmt.Printf("Post created: %s\n", res.Data.Post.ID)
			} else {
				fmt.Println("Post created")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Post title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Post description")
	cmd.Flags().StringVarP(&image, "image", "i", "", "Path to the image file")
	return cmd
}

func newPostEditCommand() *cobra.Command {
	var title, description, image string

	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Update one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			// Start from the current post so unset flags keep their value.
			res := a.posts.GetPost(cmd.Context(), args[0])
			if !res.Success || !res.Data.OK() || res.Data.Post == nil {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch post")
			}
			if title == "" {
				title = res.Data.Post.Title
			}
			if description == "" {
				description = res.Data.Post.Description
			}

			upload := models.PostUpload{Title: title, Description: description, ImagePath: image}
			if err := validate.PostUpload(upload, false); err != nil {
				return err
			}

			eres := a.posts.EditPost(cmd.Context(), args[0], upload)
			if !eres.Success || !eres.Data.OK() {
				return resultErr(eres.Error, eres.Data.Envelope, "Failed to update post")
			}
			fmt.Println("Post updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&image, "image", "i", "", "Replacement image file")
	return cmd
}

func newPostDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if !force {
				var confirmed bool
				form := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Delete post %s?", args[0])).
						Value(&confirmed),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
				if !confirmed {
					fmt.Println("Cancelled")
					return nil
				}
			}

			res := a.posts.DeletePost(cmd.Context(), args[0])
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data, "Failed to delete post")
			}
			fmt.Println("Post deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func newPostLikeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Toggle your like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.ToggleLike(cmd.Context(), args[0])
			if !res.Success {
				return resultErr(res.Error, res.Data.Envelope, "Failed to toggle like")
			}
			if res.Data.Post != nil {
				fmt.Printf("Likes: %d\n", len(res.Data.Post.Likes))
			} else {
				fmt.Println("Like toggled")
			}
			return nil
		},
	}
}

func newPostSaveCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "save <post-id>",
		Short: "Download a post's image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			res := a.posts.GetPost(cmd.Context(), args[0])
			if !res.Success || !res.Data.OK() || res.Data.Post == nil {
				return resultErr(res.Error, res.Data.Envelope, "Failed to fetch post")
			}
			post := res.Data.Post

			dest := out
			if dest == "" {
				dest = filepath.Base(post.ImageURL)
				if dest == "." || dest == "/" || dest == "" {
					dest = post.ID + ".img"
				}
			}

			if err := a.posts.DownloadImage(cmd.Context(), post.ImageURL, dest); err != nil {
				return fmt.Errorf("failed to download image: %w", err)
			}
			fmt.Printf("Saved %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Destination file (defaults to the image's name)")
	return cmd
}
