package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/config"
	"github.com/five82/linksaver/internal/linkapi"
	"github.com/five82/linksaver/internal/opener"
	"github.com/five82/linksaver/internal/prefs"
	"github.com/five82/linksaver/internal/ui"
)

// Env carries global flags and the collaborators commands use.
type Env struct {
	ConfigPath string
	PrefsPath  string
	LogPath    string
	PrettyJSON bool

	// Build creates item clients; nil uses app.DefaultClientFactory.
	Build app.ClientFactory
	// Open hands links to the system; nil uses opener.Open.
	Open func(ctx context.Context, url string) error

	logCloser io.Closer
	logFile   string
}

// Execute runs the command line and returns the first error.
func Execute(ctx context.Context, args []string) error {
	env := &Env{}
	defer env.closeLog()

	cmd := NewRootCmd(env)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(cmd.ErrOrStderr(), "linksaver: %v\n", err)
	}
	return err
}

// reportedError marks an error whose message was already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// NewRootCmd builds the linksaver command tree around env.
func NewRootCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "linksaver",
		Short:         "Terminal client for a link and note saving server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  linksaver

  # Point at a server
  linksaver settings set --base-url https://links.example.com/api/ --username me --password secret

  # Scriptable commands
  linksaver list -s golang
  linksaver add https://go.dev/blog
  echo https://go.dev | linksaver share
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, env)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return env.setupLogging()
	}

	cmd.PersistentFlags().StringVar(&env.ConfigPath, "config", "", "Settings file (default $LINKSAVER_CONFIG or ~/.config/linksaver/settings.toml)")
	cmd.PersistentFlags().StringVar(&env.PrefsPath, "prefs", "", "Preferences file (default $LINKSAVER_PREFS or ~/.config/linksaver/prefs.toml)")
	cmd.PersistentFlags().StringVar(&env.LogPath, "log-file", "", "Request log file (default $LINKSAVER_LOG or ~/.local/state/linksaver/linksaver.log)")
	cmd.PersistentFlags().BoolVar(&env.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newSettingsCmd(env))
	cmd.AddCommand(newListCmd(env))
	cmd.AddCommand(newAddCmd(env))
	cmd.AddCommand(newNoteCmd(env))
	cmd.AddCommand(newShowCmd(env))
	cmd.AddCommand(newEditCmd(env))
	cmd.AddCommand(newDeleteCmd(env))
	cmd.AddCommand(newOpenCmd(env))
	cmd.AddCommand(newShareCmd(env))
	cmd.AddCommand(newLogsCmd(env))

	return cmd
}

func runTUI(cmd *cobra.Command, env *Env) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, err := config.Open(env.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	p := prefs.Load(env.PrefsPath)

	syncer := app.NewSynchronizer(store, env.Build)
	syncer.Start(ctx)

	log.Printf("starting TUI (settings %s)", store.Path())
	return ui.Run(ui.Options{
		Context:   ctx,
		Sync:      syncer,
		Settings:  store,
		ThemeName: p.Theme,
		PrefsPath: env.PrefsPath,
		LogPath:   env.logFile,
		LogLines:  p.LogLines,
		Open:      env.Open,
	})
}

// setupLogging points the standard logger at the request log. It runs once
// per process.
func (env *Env) setupLogging() error {
	if env.logCloser != nil {
		return nil
	}
	closer, path, err := app.SetupLogging(env.LogPath)
	if err != nil {
		return err
	}
	env.logCloser = closer
	env.logFile = path
	return nil
}

func (env *Env) closeLog() {
	if env.logCloser != nil {
		_ = env.logCloser.Close()
		env.logCloser = nil
	}
}

func (env *Env) settings() (config.Settings, error) {
	return config.Load(env.ConfigPath)
}

// client builds an item client from the stored settings.
func (env *Env) client() (linkapi.ItemService, error) {
	s, err := env.settings()
	if err != nil {
		return nil, err
	}
	build := env.Build
	if build == nil {
		build = app.DefaultClientFactory
	}
	return build(s)
}

func (env *Env) opener() func(ctx context.Context, url string) error {
	if env.Open != nil {
		return env.Open
	}
	return opener.Open
}

// writeOut writes v as a JSON envelope: {"data": v}.
func writeOut(cmd *cobra.Command, env *Env, v any) error {
	payload := map[string]any{"data": v}
	var (
		b   []byte
		err error
	)
	if env.PrettyJSON {
		b, err = json.MarshalIndent(payload, "", "  ")
	} else {
		b, err = json.Marshal(payload)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err}
}

// fail prints the notice the TUI would show for op and returns err so the
// process exits non-zero.
func fail(cmd *cobra.Command, op app.Op, err error) error {
	n := app.Describe(op, err)
	text := n.Text
	if text == "" {
		text = err.Error()
	}
	fmt.Fprintln(cmd.ErrOrStderr(), text)
	return reportedError{err}
}
