package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/nfrund/unisocial/internal/app"
	"github.com/nfrund/unisocial/internal/config"
	"github.com/nfrund/unisocial/internal/logging"
	"github.com/nfrund/unisocial/internal/notify"
	"github.com/nfrund/unisocial/internal/pubsub"
	"github.com/nfrund/unisocial/internal/terminal"
)

var (
	overrides config.Overrides
	noSpinner bool

	// retryWait replaces the startup retry sleep; tests make it instant.
	retryWait app.WaitFunc
)

var rootCmd = &cobra.Command{
	Use:   "unisocial",
	Short: "UniSocial client",
	Long: `UniSocial is a client for the university social feed.

It talks to the UniSocial API, keeps the signed-in user in a session file
and prints the feed, profiles and notifications in the terminal. The same
binary serves the web interface with "unisocial serve".

Use "unisocial [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.NewWithWriter(cmd.ErrOrStderr())
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var fatal *app.FatalError
		var shown *reportedError
		if !errors.As(err, &fatal) && !errors.As(err, &shown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&overrides.APIBaseURL, "api-url", "", "API base URL (default derived from --origin)")
	flags.StringVar(&overrides.AppOrigin, "origin", "", "public origin of the app, used for share links")
	flags.StringVar(&overrides.SessionDir, "session-dir", "", "directory holding the session file")
	flags.BoolVar(&noSpinner, "no-spinner", false, "do not draw the loading indicator")
}

// client is one CLI invocation's view of the application: the container,
// the started App and where output goes.
type client struct {
	*app.App
	injector *do.RootScope
	styles   terminal.Styles
	out      io.Writer
	shutdown func(context.Context) error
}

// openClient builds the services, routes toasts to the terminal and, when
// start is set, runs the startup sequence. A startup that exhausts its
// retries prints the fatal screen and returns the *app.FatalError.
func openClient(cmd *cobra.Command, start bool) (*client, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.New().Apply(overrides)
	out := cmd.OutOrStdout()
	styles := terminal.NewStyles()

	tracer, shutdown, err := pubsub.SetupTracing(ctx, pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	injector := app.NewContainer(cfg, app.ContainerOptions{
		Indicator: terminal.NewSpinner(cmd.ErrOrStderr(), spinnerEnabled(cmd.ErrOrStderr())),
		Bus:       pubsub.NewWatermillBridge(pubsub.WithBlockingPublish(), pubsub.WithTracer(tracer)),
		Wait:      retryWait,
	})
	c := &client{
		App:      do.MustInvoke[*app.App](injector),
		injector: injector,
		styles:   styles,
		out:      out,
		shutdown: shutdown,
	}

	bus := do.MustInvoke[*pubsub.WatermillBridge](injector)
	if err := notify.Subscribe(ctx, bus, terminal.NewPrinter(out, styles)); err != nil {
		c.Close()
		return nil, fmt.Errorf("subscribe to toasts: %w", err)
	}

	if !start {
		return c, nil
	}
	if err := c.Init(ctx); err != nil {
		var fatal *app.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintln(out, styles.Fatal(fatal.View))
		}
		c.Close()
		return nil, err
	}
	return c, nil
}

// Close stops the bus and flushes pending spans.
func (c *client) Close() {
	c.injector.Shutdown()
	if c.shutdown != nil {
		_ = c.shutdown(context.Background())
	}
}

func (c *client) println(s string) {
	fmt.Fprintln(c.out, s)
}

func spinnerEnabled(w io.Writer) bool {
	if noSpinner {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// requireSession fails commands that need a signed-in user.
func requireSession(c *client) error {
	if !c.Deps().Auth.IsAuthenticated() {
		c.println(c.styles.Session(c.Deps().Auth.View()))
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("no active session")

// reportedError marks a failure the user already saw as a toast.
type reportedError struct {
	error
}

func (e *reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err}
}
