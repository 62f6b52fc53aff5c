package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/config"
)

// settingsView is the printable form of config.Settings. The password is
// never printed.
type settingsView struct {
	Path        string `json:"path"`
	BaseURL     string `json:"baseUrl"`
	Username    string `json:"username"`
	PasswordSet bool   `json:"passwordSet"`
	Configured  bool   `json:"configured"`
}

func viewSettings(path string, s config.Settings) settingsView {
	return settingsView{
		Path:        path,
		BaseURL:     s.BaseURL,
		Username:    s.Username,
		PasswordSet: s.Password != "",
		Configured:  s.Configured(),
	}
}

func newSettingsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Server connection settings",
	}
	cmd.AddCommand(newSettingsShowCmd(env))
	cmd.AddCommand(newSettingsSetCmd(env))
	return cmd
}

func newSettingsShowCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(env.ConfigPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := config.Load(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, env, viewSettings(path, s))
		},
	}
	return cmd
}

func newSettingsSetCmd(env *Env) *cobra.Command {
	var baseURL, username, password string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change stored settings",
		Long:  "Only the flags given are changed; the rest keep their stored value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Open(env.ConfigPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			next := store.Current()
			if cmd.Flags().Changed("base-url") {
				next.BaseURL = strings.TrimSpace(baseURL)
			}
			if cmd.Flags().Changed("username") {
				next.Username = username
			}
			if cmd.Flags().Changed("password") {
				next.Password = password
			}
			if err := store.Save(next); err != nil {
				return fail(cmd, app.OpSaveSettings, err)
			}
			return writeOut(cmd, env, viewSettings(store.Path(), store.Current()))
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Server base URL")
	cmd.Flags().StringVar(&username, "username", "", "Basic auth username")
	cmd.Flags().StringVar(&password, "password", "", "Basic auth password")
	return cmd
}
