// Package editor holds an operator's working copy of the site document.
// Local edits never touch the network; Save sends the whole copy in one write.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/wecreatehub/site_backend/internal/endpoint"
	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/utils"
)

const (
	MsgSaved      = "Changes saved successfully!"
	MsgSaveFailed = "Failed to save changes. Check connection."
	MsgSaveBusy   = "A save is already in progress."
)

var (
	ErrSaveInFlight = errors.New("editor: save already in progress")
	ErrClosed       = errors.New("editor: closed")
)

// Loader provides the initial working copy.
type Loader interface {
	Load(ctx context.Context) models.Document
}

// Writer replaces the stored document.
type Writer interface {
	Write(ctx context.Context, doc models.Document) error
}

// Confirmer asks the operator before destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

type Editor struct {
	mu      sync.Mutex
	doc     models.Document
	loading bool
	saving  bool
	closed  bool
	last    *SaveResult

	loader Loader
	writer Writer
	ids    utils.IDGenerator
	log    *zap.Logger
}

type Option func(*Editor)

func WithIDGenerator(g utils.IDGenerator) Option {
	return func(e *Editor) { e.ids = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// New starts with the default document until Load replaces it.
func New(loader Loader, writer Writer, opts ...Option) *Editor {
	e := &Editor{
		doc:    models.Default(),
		loader: loader,
		writer: writer,
		ids:    utils.UUIDGenerator{},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the working copy with a freshly loaded document. A load that
// finishes after Close or after ctx is done leaves the editor untouched.
func (e *Editor) Load(ctx context.Context) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.loading = true
	e.mu.Unlock()

	doc := models.Default()
	if e.loader != nil {
		doc = e.loader.Load(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if e.closed || ctx.Err() != nil {
		return
	}
	e.doc = doc
}

// Replace swaps in a whole document, as an import would.
func (e *Editor) Replace(doc models.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc.Clone()
}

func (e *Editor) Snapshot() models.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}

func (e *Editor) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

func (e *Editor) IsSaving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// LastSaveResult is nil before the first save and while a save runs.
func (e *Editor) LastSaveResult() *SaveResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return nil
	}
	r := *e.last
	return &r
}

// Close ends the editor's lifetime; in-flight loads and saves will not
// update state when they return.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
}

func (e *Editor) UpdateProfile(field string, value any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.doc.Profile.With(field, value)
	if ok {
		e.doc.Profile = p
	}
	return ok
}

// UpdateField sets one field of the entry id. It is a no-op when the id or
// field does not exist or the value does not fit.
func (e *Editor) UpdateField(c models.Collection, id, field string, value any) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(c, op{kind: opUpdate, id: id, field: field, value: value})
}

// AddEntry appends a new entry built from the collection's template and the
// given overrides and returns its id, or "" for an unknown collection.
func (e *Editor) AddEntry(c models.Collection, template map[string]any) string {
	if !c.Valid() {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.uniqueID(c)
	e.apply(c, op{kind: opAdd, id: id, template: template})
	return id
}

// DeleteEntry removes the entry id after the operator confirms. Declining,
// a nil confirmer or a missing id leave the document unchanged.
func (e *Editor) DeleteEntry(ctx context.Context, c models.Collection, id string, confirm Confirmer) bool {
	if confirm == nil || !c.Valid() {
		return false
	}
	if !confirm.Confirm(ctx, deletePrompt(c)) {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(c, op{kind: opDelete, id: id})
}

// Reorder moves the element at from to to, remove-then-insert. An out of
// range from is rejected; to is clamped.
func (e *Editor) Reorder(c models.Collection, from, to int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(c, op{kind: opMove, from: from, to: to})
}

// Save writes the whole working copy. Failures are reported in the result
// and in LastSaveResult; the working copy is never rolled back.
func (e *Editor) Save(ctx context.Context) SaveResult {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return SaveResult{Message: MsgSaveFailed, Err: ErrClosed}
	}
	if e.saving {
		e.mu.Unlock()
		return SaveResult{Message: MsgSaveBusy, Err: ErrSaveInFlight}
	}
	if !writerConfigured(e.writer) {
		res := SaveResult{Message: MsgSaveFailed, Err: endpoint.ErrEndpointNotConfigured}
		e.last = &res
		e.mu.Unlock()
		e.log.Error("save skipped", zap.Error(res.Err))
		return res
	}
	e.saving = true
	e.last = nil
	snapshot := e.doc.Clone()
	e.mu.Unlock()

	err := e.writer.Write(ctx, snapshot)

	res := SaveResult{Success: true, Message: MsgSaved}
	if err != nil {
		res = SaveResult{Message: MsgSaveFailed, Err: err}
		e.log.Error("save failed", zap.Error(err))
	} else {
		e.log.Info("site config saved",
			zap.Int("buttons", len(snapshot.Buttons)),
			zap.Int("events", len(snapshot.Events)))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if !e.closed {
		e.last = &res
	}
	return res
}

func writerConfigured(w Writer) bool {
	if w == nil {
		return false
	}
	if c, ok := w.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

// uniqueID draws ids until one is unused in c. Callers hold e.mu.
func (e *Editor) uniqueID(c models.Collection) string {
	taken := e.doc.IDs(c)
	id := e.ids.NewID()
	for i := 1; slices.Contains(taken, id); i++ {
		if i < 16 {
			id = e.ids.NewID()
		} else {
			id = fmt.Sprintf("%s-%d", id, i)
		}
	}
	return id
}

func deletePrompt(c models.Collection) string {
	switch c {
	case models.Buttons:
		return "Delete this button?"
	case models.Sections:
		return "Delete this section?"
	case models.Events:
		return "Delete this event?"
	case models.SocialGallery:
		return "Delete this video tile?"
	}
	return "Delete this link?"
}
