// Package links builds the hypermedia representation of API resources: an
// entity's fields flattened next to a "_links" object holding self, an
// optional parent and any named relation links.
package links

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

const (
	relSelf   = "self"
	relParent = "parent"
	// reserved relation names are namespaced with this prefix
	reservedPrefix = "rel:"
)

type Link struct {
	Href string `json:"href"`
	// Type lists the HTTP methods valid at Href, e.g. "GET, POST".
	Type string `json:"type,omitempty"`
}

func New(href string, methods ...string) Link {
	return Link{Href: href, Type: strings.Join(methods, ", ")}
}

type Links struct {
	Self      Link
	Parent    *Link
	Relations map[string]Link
}

// Relation returns the named relation link.
func (l Links) Relation(name string) (Link, bool) {
	link, ok := l.Relations[relationKey(name)]
	return link, ok
}

// MarshalJSON writes self, then parent, then relations in name order so the
// same links always serialize to the same bytes.
func (l Links) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	if err := writeMember(&buf, relSelf, l.Self); err != nil {
		return nil, err
	}

	if l.Parent != nil {
		buf.WriteByte(',')
		if err := writeMember(&buf, relParent, *l.Parent); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(l.Relations))
	for name := range l.Relations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		buf.WriteByte(',')
		if err := writeMember(&buf, name, l.Relations[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name string, link Link) error {
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	val, err := json.Marshal(link)
	if err != nil {
		return err
	}

	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// relationKey keeps relation names from shadowing self and parent.
func relationKey(name string) string {
	if name == relSelf || name == relParent {
		return reservedPrefix + name
	}
	return name
}

// Response is the envelope every resource is returned in.
type Response[T any] struct {
	Data  T
	Links Links
}

var errNotObject = errors.New("links: resource data must encode to a JSON object")

const linksKey = "_links"

func (r Response[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.Data)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '{' || data[len(data)-1] != '}' {
		return nil, errNotObject
	}

	links, err := json.Marshal(r.Links)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(data)+len(links)+len(linksKey)+4)
	out = append(out, data[:len(data)-1]...)
	if len(bytes.TrimSpace(data[1:len(data)-1])) > 0 {
		out = append(out, ',')
	}
	out = append(out, `"`+linksKey+`":`...)
	out = append(out, links...)
	out = append(out, '}')

	return out, nil
}
