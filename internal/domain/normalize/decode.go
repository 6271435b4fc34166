package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// maxSafeInteger is the largest integer a JSON producer can send exactly.
const maxSafeInteger = 1<<53 - 1

// object is a loosely decoded JSON object. Lookups on a nil object yield
// zero values, so a non-object input simply has no fields.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage) object {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil
	}
	return o
}

// str returns the field when it is a JSON string.
func (o object) str(key string) string {
	raw, ok := o[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// number returns the field as a rounded integer. Numeric strings count.
func (o object) number(key string) int64 {
	raw, ok := o[key]
	if !ok {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		s := o.str(key)
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxSafeInteger {
		return 0
	}
	return int64(math.Round(f))
}

// link returns {"href": "..."} under key, or nil when absent or not a string href.
func (o object) link(key string) *model.Link {
	inner := decodeObject(o[key])
	if _, ok := inner["href"]; !ok {
		return nil
	}
	href := inner.str("href")
	if href == "" {
		return nil
	}
	return &model.Link{Href: href}
}

func linkValue(l *model.Link) model.Link {
	if l == nil {
		return model.Link{}
	}
	return *l
}
