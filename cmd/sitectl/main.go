// Command sitectl edits the site document and submits leads against a
// deployed endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wecreatehub/site_backend/internal/config"
	"github.com/wecreatehub/site_backend/internal/configclient"
	"github.com/wecreatehub/site_backend/internal/editor"
	"github.com/wecreatehub/site_backend/internal/endpoint"
	"github.com/wecreatehub/site_backend/internal/store"
)

type app struct {
	cfg      *config.Config
	endpoint string
	verbose  bool
	in       io.Reader
	log      *zap.Logger
	http     *http.Client
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitectl",
		Short:         "Edit the site document and submit leads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			zc := zap.NewProductionConfig()
			zc.OutputPaths = []string{"stderr"}
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.log, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.endpoint, "endpoint", a.cfg.EndpointURL, "site endpoint url (SITE_ENDPOINT_URL)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newShowCmd(a), newImportCmd(a), newProfileCmd(a), newLeadCmd(a))
	for _, c := range collectionCmds {
		root.AddCommand(newCollectionCmd(a, c.use, c.c))
	}
	return root
}

func (a *app) client() *endpoint.Client {
	hc := a.http
	if hc == nil {
		hc = &http.Client{Timeout: a.cfg.HTTPTimeout()}
	}
	return endpoint.New(a.endpoint, hc)
}

var errUnreadable = errors.New("site document could not be read; refusing to overwrite it")

// session loads the current document into a fresh editor that saves back to
// the same endpoint. A store that is down or answers garbage may still hold a
// real document, so editing on top of the defaults is refused.
func (a *app) session(ctx context.Context) (*editor.Editor, error) {
	remote := store.NewRemote(a.client())
	doc, src := configclient.New(remote, a.log).Fetch(ctx)
	if src == configclient.SourceFallback {
		return nil, errUnreadable
	}
	ed := editor.New(nil, remote, editor.WithLogger(a.log))
	ed.Replace(doc)
	return ed, nil
}

func save(ctx context.Context, cmd *cobra.Command, ed *editor.Editor) error {
	res := ed.Save(ctx)
	if !res.Success {
		return fmt.Errorf("%s: %w", res.Message, res.Err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

func main() {
	_ = godotenv.Load()
	a := &app{cfg: config.Load(), in: os.Stdin}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
