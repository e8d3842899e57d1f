package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pixelhive/pixelhive-cli/internal/validate"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			if email == "" || password == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Email").
						Value(&email),
					huh.NewInput().
						Title("Password").
						EchoMode(huh.EchoModePassword).
						Value(&password),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}

			creds := models.Credentials{Email: email, Password: password}
			if err := validate.Login(creds); err != nil {
				return err
			}

			res := a.sess.Login(cmd.Context(), creds)
			a.printEvents()
			if !res.Success {
				return fmt.Errorf("%s", res.Error)
			}
			fmt.Printf("Logged in as %s <%s>\n", res.User.Name, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			a.sess.Logout(cmd.Context())
			a.printEvents()
			return nil
		},
	}
}

// NewSignupCommand creates the signup command
func NewSignupCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			confirm := password
			if name == "" || email == "" || password == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Full Name").
						Value(&name),
					huh.NewInput().
						Title("Email").
						Value(&email),
					huh.NewInput().
						Title("Password").
						EchoMode(huh.EchoModePassword).
						Value(&password),
					huh.NewInput().
						Title("Confirm Password").
						EchoMode(huh.EchoModePassword).
						Value(&confirm),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("prompt failed: %w", err)
				}
			}

			data := models.SignupData{Name: name, Email: email, Password: password}
			if err := validate.Signup(data, confirm); err != nil {
				return err
			}

			res := a.sess.Signup(cmd.Context(), data)
			a.printEvents()
			if !res.Success {
				return fmt.Errorf("%s", res.Error)
			}
			fmt.Println("Account created. Log in with: pixelhive login")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Full name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}

			snap := a.sess.Resolve(cmd.Context())
			if !snap.IsAuthenticated {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s <%s>\n", snap.User.Name, snap.User.Email)
			return nil
		},
	}
}
