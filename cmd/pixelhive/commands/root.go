package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/config"
	"github.com/pixelhive/pixelhive-cli/internal/log"
	"github.com/pixelhive/pixelhive-cli/internal/notify"
	"github.com/pixelhive/pixelhive-cli/internal/session"
	"github.com/pixelhive/pixelhive-cli/internal/tui"
)

// app bundles everything a command needs: configuration, the API clients
// and the session manager, all sharing one cookie jar.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	jar    *api.FileJar
	auth   *api.AuthAPI
	posts  *api.PostsAPI
	events *notify.Bus
	sess   *session.Manager
}

// newApp wires the client stack. interactive selects file logging so the
// alternate screen stays clean; plain commands log to stderr instead.
func newApp(interactive bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := log.ParseLevel(cfg.LogLevel)
	var logger *slog.Logger
	if interactive {
		logger = log.NewFile(cfg.LogPath, level)
	} else {
		logger = log.New(os.Stderr, level)
	}

	jar, err := api.NewFileJar(cfg.CookiePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL, jar, logger)
	auth := api.NewAuthAPI(client)
	posts := api.NewPostsAPI(client)
	events := notify.NewBus(0)

	sess := session.NewManager(auth, events, logger)
	sess.OnClear(jar.Clear)

	return &app{
		cfg:    cfg,
		logger: logger,
		jar:    jar,
		auth:   auth,
		posts:  posts,
		events: events,
		sess:   sess,
	}, nil
}

// printEvents flushes queued notifications to the terminal. The TUI renders
// these as toasts; plain commands print them instead.
func (a *app) printEvents() {
	for _, e := range a.events.Drain() {
		switch e.Kind {
		case notify.KindError:
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		default:
			fmt.Println(e.Message)
		}
	}
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pixelhive",
		Short: "Browse and share images from your terminal",
		Long: `pixelhive is a terminal client for the PixelHive image sharing platform.
Run it without arguments for the interactive browser, or use the
subcommands for scripting-friendly output.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewSignupCommand())
	rootCmd.AddCommand(NewWhoamiCommand())
	rootCmd.AddCommand(NewFeedCommand())
	rootCmd.AddCommand(NewMyPostsCommand())
	rootCmd.AddCommand(NewPostCommand())
	rootCmd.AddCommand(NewCommentCommand())
	rootCmd.AddCommand(NewContactCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}

	if err := tui.Run(cmd.Context(), a.sess, a.posts, a.events); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
