package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// MergeReport lists what a merge took from the response.
type MergeReport struct {
	Applied  []string `json:"applied,omitempty"`  // known keys replaced by the response
	Rejected []string `json:"rejected,omitempty"` // known keys of the wrong shape that kept the base value
	Extra    []string `json:"extra,omitempty"`    // unknown keys carried through
}

// Merge overlays a raw store response on base, one top-level key at a time.
// A key present in the response replaces the base value wholesale; nested
// arrays and objects are never merged. The body must be a JSON object with a
// profile object, otherwise ErrMalformed or ErrIncompatible is returned and
// base should be used as is.
func Merge(base Document, raw []byte) (Document, MergeReport, error) {
	var report MergeReport
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, report, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return base, report, ErrMalformed
	}
	marker, ok := fields["profile"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(marker), []byte("{")) {
		return base, report, ErrIncompatible
	}

	out := base.Clone()
	for key, value := range fields {
		known, err := out.setField(key, value)
		switch {
		case !known:
			out.setExtra(key, value)
			report.Extra = append(report.Extra, key)
		case err != nil:
			report.Rejected = append(report.Rejected, key)
		default:
			report.Applied = append(report.Applied, key)
		}
	}
	out.fill()
	slices.Sort(report.Applied)
	slices.Sort(report.Rejected)
	slices.Sort(report.Extra)
	return out, report, nil
}
