// Package link extracts identifiers from hypermedia reference URLs.
package link

import (
	"strconv"
	"strings"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// Resolve returns the substring after the final "/" of href, or "" for an
// empty href. Trailing slashes and query strings are not normalized.
func Resolve(href string) string {
	if href == "" {
		return ""
	}
	return href[strings.LastIndex(href, "/")+1:]
}

// ResolveLink is Resolve for an optional link; a nil link resolves to "".
func ResolveLink(l *model.Link) string {
	if l == nil {
		return ""
	}
	return Resolve(l.Href)
}

// ID parses the trailing segment of href as a numeric id. Anything that is
// not a plain base-10 integer yields 0.
func ID(href string) int64 {
	id, err := strconv.ParseInt(Resolve(href), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
