package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ActiveButtons returns the buttons a page renders, in array order.
func (d Document) ActiveButtons() []LinkButton {
	out := make([]LinkButton, 0, len(d.Buttons))
	for _, b := range d.Buttons {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out
}

// VisibleSocialLinks skips links without a url.
func (d Document) VisibleSocialLinks() []SocialLink {
	out := make([]SocialLink, 0, len(d.SocialLinks))
	for _, l := range d.SocialLinks {
		if strings.TrimSpace(l.URL) != "" {
			out = append(out, l)
		}
	}
	return out
}

func (p Profile) BioLines() []string {
	if p.Bio == "" {
		return nil
	}
	return strings.Split(p.Bio, "\n")
}

// AvatarFallback is the glyph shown when no avatar url is set.
func (p Profile) AvatarFallback() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

func (s InfoSection) Paragraphs() []string {
	return strings.Split(s.Content, "\n")
}

// With returns the profile with one JSON field replaced. Unknown fields and
// mistyped values report false.
func (p Profile) With(field string, value any) (Profile, bool) {
	if field == "" {
		return p, false
	}
	return patch(p, map[string]any{field: value})
}
