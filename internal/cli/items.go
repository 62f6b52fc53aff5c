package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/linksaver/internal/app"
	"github.com/five82/linksaver/internal/linkapi"
	"github.com/five82/linksaver/internal/opener"
)

func newListCmd(env *Env) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpList, err)
			}
			items, err := client.List(cmd.Context(), strings.TrimSpace(search))
			if err != nil {
				return fail(cmd, app.OpList, err)
			}
			if items == nil {
				items = []linkapi.Item{}
			}
			return writeOut(cmd, env, items)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only items matching this term")
	return cmd
}

func newAddCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Save a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link := strings.TrimSpace(args[0])
			if link == "" {
				return writeErr(cmd, fmt.Errorf("url is required"))
			}
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpAddLink, err)
			}
			item, err := client.AddLink(cmd.Context(), link)
			if err != nil {
				return fail(cmd, app.OpAddLink, err)
			}
			return writeOut(cmd, env, item)
		},
	}
	return cmd
}

func newNoteCmd(env *Env) *cobra.Command {
	var title, text string

	cmd := &cobra.Command{
		Use:   "note",
		Short: "Save a note (text from --text or stdin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("text") {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("read stdin: %w", err))
				}
				text = string(b)
			}
			if strings.TrimSpace(title) == "" || strings.TrimSpace(text) == "" {
				return writeErr(cmd, fmt.Errorf("title and text are required"))
			}
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpAddNote, err)
			}
			item, err := client.AddNote(cmd.Context(), strings.TrimSpace(title), text)
			if err != nil {
				return fail(cmd, app.OpAddNote, err)
			}
			return writeOut(cmd, env, item)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Note title")
	cmd.Flags().StringVar(&text, "text", "", "Note text")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newShowCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpGet, err)
			}
			item, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, app.OpGet, err)
			}
			return writeOut(cmd, env, item)
		},
	}
	return cmd
}

func newEditCmd(env *Env) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an item's title or description",
		Long:  "Fields that are not given keep their current server value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			titleSet := cmd.Flags().Changed("title")
			descSet := cmd.Flags().Changed("description")
			if !titleSet && !descSet {
				return writeErr(cmd, fmt.Errorf("nothing to change: pass --title and/or --description"))
			}

			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpUpdate, err)
			}
			if !titleSet || !descSet {
				current, err := client.Get(cmd.Context(), args[0])
				if err != nil {
					return fail(cmd, app.OpGet, err)
				}
				if !titleSet {
					title = current.Title
				}
				if !descSet {
					description = current.Description
				}
			}
			item, err := client.Update(cmd.Context(), args[0], title, description)
			if err != nil {
				return fail(cmd, app.OpUpdate, err)
			}
			return writeOut(cmd, env, item)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newDeleteCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpDelete, err)
			}
			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return fail(cmd, app.OpDelete, err)
			}
			return writeOut(cmd, env, map[string]any{"id": args[0], "deleted": true})
		},
	}
	return cmd
}

func newOpenCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a saved link in the system browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := env.client()
			if err != nil {
				return fail(cmd, app.OpGet, err)
			}
			item, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, app.OpGet, err)
			}
			if item.IsNote() {
				return writeErr(cmd, opener.ErrNote)
			}
			if err := env.opener()(cmd.Context(), item.URL); err != nil {
				return writeErr(cmd, fmt.Errorf("open %s: %w", item.URL, err))
			}
			return writeOut(cmd, env, map[string]any{"id": item.ID, "url": item.URL, "opened": true})
		},
	}
	return cmd
}

func newShareCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [text]",
		Short: "Save shared text as a link (argument or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, fmt.Errorf("read stdin: %w", err))
				}
				text = string(b)
			}

			settings, err := env.settings()
			if err != nil {
				return fail(cmd, app.OpShare, err)
			}
			n := app.Share(cmd.Context(), settings, text, env.Build)
			if n.Failed() {
				fmt.Fprintln(cmd.ErrOrStderr(), n.Text)
				return reportedError{n.Err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.Text)
			return nil
		},
	}
	return cmd
}
