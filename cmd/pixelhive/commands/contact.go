package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pixelhive/pixelhive-cli/internal/validate"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// NewContactCommand creates the contact command
func NewContactCommand() *cobra.Command {
	var name, email, subject, message string
	var sendCopy bool

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the site team",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if name == "" || email == "" || subject == "" || message == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Name").
						Value(&name),
					huh.NewInput().
						Title("Email").
						Value(&email),
					huh.NewInput().
						Title("Subject").
						Value(&subject),
					huh.NewText().
						Title("Message").
						Value(&message),
					huh.NewConfirm().
						Title("Send me a copy").
						Value(&sendCopy),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}

			msg := models.ContactMessage{
				Name:     name,
				Email:    email,
				Subject:  subject,
				Message:  message,
				SendCopy: sendCopy,
			}
			if err := validate.Contact(msg); err != nil {
				return err
			}

			res := a.posts.Contact(cmd.Context(), msg)
			if !res.Success || !res.Data.OK() {
				return resultErr(res.Error, res.Data, "Failed to send message")
			}
			fmt.Println("Message sent. We will get back to you soon")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&email, "email", "", "Your email")
	cmd.Flags().StringVar(&subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&message, "message", "", "Message body")
	cmd.Flags().BoolVar(&sendCopy, "copy", false, "Request a copy of the message")
	return cmd
}
