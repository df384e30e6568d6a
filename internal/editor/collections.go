package editor

import (
	"slices"

	"github.com/wecreatehub/site_backend/internal/models"
)

type opKind int

const (
	opUpdate opKind = iota
	opAdd
	opDelete
	opMove
)

type op struct {
	kind     opKind
	id       string
	field    string
	value    any
	template map[string]any
	from, to int
}

// apply runs o against collection c of the working copy. Callers hold e.mu.
func (e *Editor) apply(c models.Collection, o op) bool {
	switch c {
	case models.SocialLinks:
		return applyTo(&e.doc.SocialLinks, o)
	case models.Buttons:
		return applyTo(&e.doc.Buttons, o)
	case models.Sections:
		return applyTo(&e.doc.Sections, o)
	case models.Events:
		return applyTo(&e.doc.Events, o)
	case models.SocialGallery:
		return applyTo(&e.doc.SocialGallery, o)
	}
	return false
}

func applyTo[T models.Entry[T]](items *[]T, o op) bool {
	var (
		out []T
		ok  bool
	)
	switch o.kind {
	case opUpdate:
		out, ok = models.UpdateField(*items, o.id, o.field, o.value)
	case opAdd:
		out, ok = append(slices.Clone(*items), models.NewEntry[T](o.id, o.template)), true
	case opDelete:
		out, ok = models.Remove(*items, o.id)
	case opMove:
		out, ok = models.Move(*items, o.from, o.to)
	}
	if ok {
		*items = out
	}
	return ok
}
