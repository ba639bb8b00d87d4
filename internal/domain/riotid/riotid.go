// Package riotid parses "Nick#Tag" player identifiers.
package riotid

import (
	"strings"
)

const separator = "#"

// ID is a validated Riot ID. Both parts are non-empty and trimmed.
type ID struct {
	Nick string
	Tag  string
}

// String renders the identifier as Nick#Tag.
func (id ID) String() string {
	return id.Nick + separator + id.Tag
}

// Parse splits raw on its first '#'. Surrounding whitespace of each part is
// dropped; a tag that itself contains '#' keeps everything after the first one.
// ok is false when raw is blank, has no separator, or either part is empty.
func Parse(raw string) (ID, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ID{}, false
	}
	nick, tag, found := strings.Cut(s, separator)
	if !found {
		return ID{}, false
	}
	nick = strings.TrimSpace(nick)
	tag = strings.TrimSpace(tag)
	if nick == "" || tag == "" {
		return ID{}, false
	}
	return ID{Nick: nick, Tag: tag}, true
}
