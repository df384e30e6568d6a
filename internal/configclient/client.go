// Package configclient resolves the site document for rendering. It never
// fails: any problem with the store yields the built-in default document.
package configclient

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wecreatehub/site_backend/internal/models"
)

// Source tells where a loaded document came from.
type Source string

const (
	SourceRemote Source = "remote"
	// SourceDefault means no store is configured, or the store holds no usable
	// document yet ("{}" or a body without a profile).
	SourceDefault Source = "default"
	// SourceFallback means the store could not be read or answered a body that
	// does not parse. The defaults stand in for a document that may exist.
	SourceFallback Source = "fallback"
)

// Reader fetches the raw document text.
type Reader interface {
	Read(ctx context.Context) ([]byte, error)
}

type Client struct {
	reader Reader
	log    *zap.Logger
	group  singleflight.Group
}

type result struct {
	doc    models.Document
	source Source
}

// New returns a client; a nil reader means no store is configured and every
// load returns the defaults without network access.
func New(reader Reader, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{reader: reader, log: log}
}

// Load returns the best available document.
func (c *Client) Load(ctx context.Context) models.Document {
	doc, _ := c.Fetch(ctx)
	return doc
}

// Fetch is Load that also reports the source. Concurrent calls share one
// request; nothing is kept once it completes.
func (c *Client) Fetch(ctx context.Context) (models.Document, Source) {
	if !c.configured() {
		return models.Default(), SourceDefault
	}
	// The flight outlives any one caller; each caller waits on its own ctx.
	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan("config", func() (any, error) {
		return c.fetch(flight), nil
	})
	select {
	case <-ctx.Done():
		return models.Default(), SourceFallback
	case r := <-ch:
		res := r.Val.(result)
		// callers sharing a flight must not share slices
		return res.doc.Clone(), res.source
	}
}

func (c *Client) configured() bool {
	if c.reader == nil {
		return false
	}
	if r, ok := c.reader.(interface{ Configured() bool }); ok {
		return r.Configured()
	}
	return true
}

func (c *Client) fetch(ctx context.Context) result {
	raw, err := c.reader.Read(ctx)
	if err != nil {
		c.log.Warn("could not load site config, using default", zap.Error(err))
		return result{doc: models.Default(), source: SourceFallback}
	}
	doc, report, err := models.Merge(models.Default(), raw)
	if err != nil {
		c.log.Warn("site config response unusable, using default", zap.Error(err), zap.Int("bytes", len(raw)))
		if errors.Is(err, models.ErrIncompatible) {
			return result{doc: models.Default(), source: SourceDefault}
		}
		return result{doc: models.Default(), source: SourceFallback}
	}
	if len(report.Rejected) > 0 {
		c.log.Warn("site config keys kept at default", zap.Strings("keys", report.Rejected))
	}
	c.log.Debug("site config loaded", zap.Strings("applied", report.Applied), zap.Strings("extra", report.Extra))
	return result{doc: doc, source: SourceRemote}
}
