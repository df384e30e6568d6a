package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/creasty/defaults"
)

// Entry is implemented by every element type of a document collection.
type Entry[T any] interface {
	EntryID() string
	WithID(id string) T
}

type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform" default:"other"`
	URL      string `json:"url"`
}

func (l SocialLink) EntryID() string { return l.ID }
func (l SocialLink) WithID(id string) SocialLink {
	l.ID = id
	return l
}

// LinkButton is a link card. Only active buttons are rendered.
type LinkButton struct {
	ID         string `json:"id"`
	Title      string `json:"title" default:"New Link"`
	Subtitle   string `json:"subtitle,omitempty"`
	URL        string `json:"url"`
	Icon       string `json:"icon" default:"link"`
	Image      string `json:"image,omitempty"`
	IsExternal bool   `json:"isExternal" default:"true"`
	IsActive   bool   `json:"isActive" default:"true"`
	FullWidth  *bool  `json:"fullWidth,omitempty"`
	Price      string `json:"price,omitempty"`
	CtaText    string `json:"ctaText,omitempty"`
}

func (b LinkButton) EntryID() string { return b.ID }
func (b LinkButton) WithID(id string) LinkButton {
	b.ID = id
	return b
}

// SetDefaults is called by defaults.Set after the tag defaults are applied.
func (b *LinkButton) SetDefaults() {
	if b.FullWidth == nil {
		full := true
		b.FullWidth = &full
	}
}

// IsFullWidth treats a missing fullWidth flag as full width.
func (b LinkButton) IsFullWidth() bool {
	return b.FullWidth == nil || *b.FullWidth
}

type InfoSection struct {
	ID      string `json:"id"`
	Title   string `json:"title" default:"New Section"`
	Content string `json:"content"`
	Icon    string `json:"icon" default:"info"`
}

func (s InfoSection) EntryID() string { return s.ID }
func (s InfoSection) WithID(id string) InfoSection {
	s.ID = id
	return s
}

type EventItem struct {
	ID          string `json:"id"`
	Month       string `json:"month" default:"JAN"`
	Day         string `json:"day" default:"1"`
	Type        string `json:"type" default:"EVENT"`
	Title       string `json:"title" default:"New Event"`
	Time        string `json:"time" default:"12:00 PM"`
	Location    string `json:"location" default:"Virtual"`
	Description string `json:"description" default:"Event description."`
	ButtonText  string `json:"buttonText" default:"RSVP"`
	TypeColor   string `json:"typeColor" default:"text-[#0bceff]"`
	URL         string `json:"url" default:"#"`
}

func (e EventItem) EntryID() string { return e.ID }
func (e EventItem) WithID(id string) EventItem {
	e.ID = id
	return e
}

type SocialPost struct {
	ID        string `json:"id"`
	Title     string `json:"title" default:"New Video Title"`
	VideoURL  string `json:"videoUrl"`
	Link      string `json:"link" default:"#"`
	Type      string `json:"type" default:"Studio Life"`
	Thumbnail string `json:"thumbnail"`
}

func (p SocialPost) EntryID() string { return p.ID }
func (p SocialPost) WithID(id string) SocialPost {
	p.ID = id
	return p
}

// IndexOf returns the position of the entry with id, or -1.
func IndexOf[T Entry[T]](items []T, id string) int {
	for i, item := range items {
		if item.EntryID() == id {
			return i
		}
	}
	return -1
}

// NewEntry builds an entry from the tag defaults of T overlaid with template.
// A template that does not fit T is ignored.
func NewEntry[T Entry[T]](id string, template map[string]any) T {
	var entry T
	// Set only fails for a non-struct T or a default tag that does not parse.
	if err := defaults.Set(&entry); err != nil {
		panic(fmt.Sprintf("models: defaults for %T: %v", entry, err))
	}
	if len(template) > 0 {
		overrides := make(map[string]any, len(template))
		for k, v := range template {
			if k != "id" {
				overrides[k] = v
			}
		}
		if patched, ok := patch(entry, overrides); ok {
			entry = patched
		}
	}
	return entry.WithID(id)
}

// UpdateField returns a copy of items with field of the entry id set to value.
// Missing ids, unknown fields, the id field itself and mistyped values leave
// items unchanged and report false.
func UpdateField[T Entry[T]](items []T, id, field string, value any) ([]T, bool) {
	if field == "" || field == "id" {
		return items, false
	}
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	updated, ok := patch(items[i], map[string]any{field: value})
	if !ok {
		return items, false
	}
	out := slices.Clone(items)
	out[i] = updated
	return out, true
}

// Remove returns a copy of items without the entry id.
func Remove[T Entry[T]](items []T, id string) ([]T, bool) {
	i := IndexOf(items, id)
	if i < 0 {
		return items, false
	}
	return slices.Delete(slices.Clone(items), i, i+1), true
}

// Move removes the element at from and inserts it at to in the shortened
// slice. from must be in range; to is clamped to the valid insert positions.
func Move[T any](items []T, from, to int) ([]T, bool) {
	n := len(items)
	if from < 0 || from >= n {
		return items, false
	}
	to = max(0, min(to, n-1))
	moved := items[from]
	rest := make([]T, 0, n)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	return slices.Insert(rest, to, moved), true
}

// patch applies fields on top of the JSON form of entry and decodes the
// result strictly back into T.
func patch[T any](entry T, fields map[string]any) (T, bool) {
	raw, err := json.Marshal(entry)
	if err != nil {
		return entry, false
	}
	current := map[string]any{}
	if err := json.Unmarshal(raw, &current); err != nil {
		return entry, false
	}
	for k, v := range fields {
		current[k] = v
	}
	patched, err := json.Marshal(current)
	if err != nil {
		return entry, false
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader(patched))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return entry, false
	}
	return out, true
}
