package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Collection names one of the ordered entry arrays of the document by its JSON key.
type Collection string

const (
	SocialLinks   Collection = "socialLinks"
	Buttons       Collection = "buttons"
	Sections      Collection = "sections"
	Events        Collection = "events"
	SocialGallery Collection = "socialGallery"
)

// Collections lists every editable array in document order.
var Collections = []Collection{SocialLinks, Buttons, Sections, Events, SocialGallery}

func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCollection accepts the JSON key or a few operator-friendly aliases.
func ParseCollection(s string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sociallinks", "links", "social":
		return SocialLinks, nil
	case "buttons", "cards":
		return Buttons, nil
	case "sections":
		return Sections, nil
	case "events":
		return Events, nil
	case "socialgallery", "gallery":
		return SocialGallery, nil
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

type Profile struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
	Verified  bool   `json:"verified"`
}

// Document is the single persisted site configuration. Writes always replace
// the whole document; array order is the render order.
type Document struct {
	Profile       Profile       `json:"profile"`
	SocialLinks   []SocialLink  `json:"socialLinks"`
	Buttons       []LinkButton  `json:"buttons"`
	Sections      []InfoSection `json:"sections"`
	Events        []EventItem   `json:"events"`
	SocialGallery []SocialPost  `json:"socialGallery"`

	// Extra carries top-level keys this version does not model so that a
	// load followed by a save writes them back untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

var (
	// ErrMalformed is returned when a body is not a JSON object.
	ErrMalformed = errors.New("models: document is not a JSON object")
	// ErrIncompatible is returned when a JSON object lacks the profile marker.
	ErrIncompatible = errors.New("models: document has no profile")
)

func (d Document) MarshalJSON() ([]byte, error) {
	type plain Document
	p := plain(d)
	(*Document)(&p).fill()
	base, err := json.Marshal(p)
	if err != nil || len(d.Extra) == 0 {
		return base, err
	}
	// Unknown keys follow the known ones, sorted.
	keys := make([]string, 0, len(d.Extra))
	for key := range d.Extra {
		if !knownKey(key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, key := range keys {
		name, _ := json.Marshal(key)
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		if err := json.Compact(&buf, d.Extra[key]); err != nil {
			return nil, fmt.Errorf("models: extra key %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes strictly: a known key holding the wrong shape is an error.
func (d *Document) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var out Document
	for key, raw := range fields {
		known, err := out.setField(key, raw)
		if err != nil {
			return fmt.Errorf("models: decode %q: %w", key, err)
		}
		if !known {
			out.setExtra(key, raw)
		}
	}
	out.fill()
	*d = out
	return nil
}

func knownKey(key string) bool {
	return key == "profile" || Collection(key).Valid()
}

// setField replaces one top-level key wholesale. JSON null leaves the current
// value in place. The receiver is untouched when the key has the wrong shape.
func (d *Document) setField(key string, raw json.RawMessage) (bool, error) {
	isNull := bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
	if isNull {
		return knownKey(key), nil
	}
	var err error
	switch key {
	case "profile":
		err = replaceObject(&d.Profile, raw)
	case string(SocialLinks):
		err = replaceEntries(&d.SocialLinks, raw)
	case string(Buttons):
		err = replaceEntries(&d.Buttons, raw)
	case string(Sections):
		err = replaceEntries(&d.Sections, raw)
	case string(Events):
		err = replaceEntries(&d.Events, raw)
	case string(SocialGallery):
		err = replaceEntries(&d.SocialGallery, raw)
	default:
		return false, nil
	}
	return true, err
}

func replaceObject[T any](dst *T, raw json.RawMessage) error {
	fresh, err := decodeFields[T](raw)
	if err != nil {
		return err
	}
	*dst = fresh
	return nil
}

// replaceEntries fails only when raw is not an array. Elements that are not
// objects are skipped.
func replaceEntries[T any](dst *[]T, raw json.RawMessage) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return err
	}
	fresh := make([]T, 0, len(elems))
	for _, elem := range elems {
		if entry, err := decodeFields[T](elem); err == nil {
			fresh = append(fresh, entry)
		}
	}
	*dst = fresh
	return nil
}

var errNotObject = errors.New("not a JSON object")

// decodeFields decodes a JSON object into T one field at a time. A number or
// boolean sent for a string field is kept as its literal text; any other field
// that does not fit T is dropped.
func decodeFields[T any](raw json.RawMessage) (T, error) {
	var out T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	if fields == nil {
		return out, errNotObject
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := fields[k]
		if next, ok := patch(out, map[string]any{k: v}); ok {
			out = next
			continue
		}
		if scalarLiteral(v) {
			if next, ok := patch(out, map[string]any{k: string(bytes.TrimSpace(v))}); ok {
				out = next
			}
		}
	}
	return out, nil
}

func scalarLiteral(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return false
	}
	c := v[0]
	return c == 't' || c == 'f' || c == '-' || (c >= '0' && c <= '9')
}

func (d *Document) setExtra(key string, raw json.RawMessage) {
	if d.Extra == nil {
		d.Extra = map[string]json.RawMessage{}
	}
	d.Extra[key] = append(json.RawMessage(nil), raw...)
}

// fill replaces nil slices with empty ones so every key is always present.
func (d *Document) fill() {
	if d.SocialLinks == nil {
		d.SocialLinks = []SocialLink{}
	}
	if d.Buttons == nil {
		d.Buttons = []LinkButton{}
	}
	if d.Sections == nil {
		d.Sections = []InfoSection{}
	}
	if d.Events == nil {
		d.Events = []EventItem{}
	}
	if d.SocialGallery == nil {
		d.SocialGallery = []SocialPost{}
	}
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := d
	out.SocialLinks = append([]SocialLink{}, d.SocialLinks...)
	out.Sections = append([]InfoSection{}, d.Sections...)
	out.Events = append([]EventItem{}, d.Events...)
	out.SocialGallery = append([]SocialPost{}, d.SocialGallery...)
	out.Buttons = make([]LinkButton, len(d.Buttons))
	for i, b := range d.Buttons {
		if b.FullWidth != nil {
			v := *b.FullWidth
			b.FullWidth = &v
		}
		out.Buttons[i] = b
	}
	out.Extra = nil
	for key, raw := range d.Extra {
		out.setExtra(key, raw)
	}
	return out
}

// IDs returns the entry ids of a collection in array order.
func (d Document) IDs(c Collection) []string {
	switch c {
	case SocialLinks:
		return ids(d.SocialLinks)
	case Buttons:
		return ids(d.Buttons)
	case Sections:
		return ids(d.Sections)
	case Events:
		return ids(d.Events)
	case SocialGallery:
		return ids(d.SocialGallery)
	}
	return nil
}

func ids[T Entry[T]](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.EntryID()
	}
	return out
}
