package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexibleString accepts any JSON scalar and keeps its text. Numbers keep
// their literal form, so a phone typed into a numeric field survives intact.
type FlexibleString string

func (fs *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*fs = FlexibleString(strings.TrimSpace(s))
	case data[0] == '{' || data[0] == '[':
		return fmt.Errorf("expected a string or number, got %s", data)
	default:
		*fs = FlexibleString(data)
	}
	return nil
}

func (fs FlexibleString) String() string {
	return string(fs)
}
