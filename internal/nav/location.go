package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is the address of the current view.
type Location struct {
	Path     string
	Query    url.Values
	Fragment string
}

// ParseLocation accepts a full URL or just "/path?query#fragment".
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return Location{Path: path, Query: u.Query(), Fragment: u.Fragment}, nil
}

func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = "/"
	}
	var b strings.Builder
	b.WriteString(path)
	if q := l.Query.Encode(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if l.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(l.Fragment)
	}
	return b.String()
}

func (l Location) Clone() Location {
	out := l
	out.Query = make(url.Values, len(l.Query))
	for k, v := range l.Query {
		out.Query[k] = append([]string(nil), v...)
	}
	return out
}

func (l Location) WithFragment(fragment string) Location {
	out := l.Clone()
	out.Fragment = fragment
	return out
}

// WithQueryParam sets name to value, or removes it when value is empty.
func (l Location) WithQueryParam(name, value string) Location {
	out := l.Clone()
	if value == "" {
		out.Query.Del(name)
	} else {
		out.Query.Set(name, value)
	}
	return out
}

func (l Location) Equal(other Location) bool {
	return l.String() == other.String()
}
