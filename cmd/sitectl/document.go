package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wecreatehub/site_backend/internal/configclient"
	"github.com/wecreatehub/site_backend/internal/editor"
	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/store"
)

var collectionCmds = []struct {
	use string
	c   models.Collection
}{
	{"links", models.SocialLinks},
	{"buttons", models.Buttons},
	{"sections", models.Sections},
	{"events", models.Events},
	{"gallery", models.SocialGallery},
}

func newShowCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the document public pages would render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, src := configclient.New(store.NewRemote(a.client()), a.log).Fetch(cmd.Context())
			if src == configclient.SourceFallback {
				fmt.Fprintln(cmd.ErrOrStderr(), "endpoint unavailable, showing built-in defaults")
			}
			return writeDocument(cmd.OutOrStdout(), doc, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func writeDocument(w io.Writer, doc models.Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		// JSON is YAML; decoding into a node keeps the key order.
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return err
		}
		blockStyle(&node)
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole document with a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocumentFile(args[0])
			if err != nil {
				return err
			}
			doc, report, err := models.Merge(models.Default(), raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(report.Rejected) > 0 {
				return fmt.Errorf("%s: invalid keys %s", args[0], strings.Join(report.Rejected, ", "))
			}
			remote := store.NewRemote(a.client())
			ed := editor.New(nil, remote, editor.WithLogger(a.log))
			ed.Replace(doc)
			return save(cmd.Context(), cmd, ed)
		},
	}
}

func readDocumentFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return json.Marshal(v)
	}
	return raw, nil
}

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Edit the profile header"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set one profile field and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			ok := withValue(args[1], func(v any) bool { return ed.UpdateProfile(args[0], v) })
			if !ok {
				return fmt.Errorf("cannot set profile field %q to %q", args[0], args[1])
			}
			return save(cmd.Context(), cmd, ed)
		},
	})
	return cmd
}

func newCollectionCmd(a *app, use string, c models.Collection) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Edit the %s collection", c),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the entries in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := configclient.New(store.NewRemote(a.client()), a.log).Load(cmd.Context())
			for i, id := range doc.IDs(c) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", i, id)
			}
			return nil
		},
	})

	var sets []string
	add := &cobra.Command{
		Use:   "add",
		Short: "Append a new entry and save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			id := ed.AddEntry(c, nil)
			for _, kv := range sets {
				field, value, ok := strings.Cut(kv, "=")
				if !ok || !withValue(value, func(v any) bool { return ed.UpdateField(c, id, field, v) }) {
					return fmt.Errorf("cannot apply %q", kv)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return save(cmd.Context(), cmd, ed)
		},
	}
	add.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Set one field of an entry and save",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if !withValue(args[2], func(v any) bool { return ed.UpdateField(c, args[0], args[1], v) }) {
				return fmt.Errorf("no %s entry %q with field %q accepting %q", c, args[0], args[1], args[2])
			}
			return save(cmd.Context(), cmd, ed)
		},
	})

	var yes bool
	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an entry after confirmation and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if !ed.DeleteEntry(cmd.Context(), c, args[0], a.confirmer(cmd, yes)) {
				return errors.New("nothing deleted")
			}
			return save(cmd.Context(), cmd, ed)
		},
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.AddCommand(rm)

	cmd.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move an entry to a new position and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			ed, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			if !ed.Reorder(c, from, to) {
				return fmt.Errorf("no %s entry at position %d", c, from)
			}
			return save(cmd.Context(), cmd, ed)
		},
	})
	return cmd
}

// withValue tries the argument as text first, then as a JSON literal, so
// "true" and "3" still reach boolean and numeric fields.
func withValue(arg string, apply func(any) bool) bool {
	if apply(arg) {
		return true
	}
	var v any
	if json.Unmarshal([]byte(arg), &v) != nil {
		return false
	}
	return apply(v)
}

func (a *app) confirmer(cmd *cobra.Command, yes bool) editor.Confirmer {
	return editor.ConfirmFunc(func(ctx context.Context, prompt string) bool {
		if yes {
			return true
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(a.in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	})
}
