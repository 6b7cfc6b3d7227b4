package model

import (
	"sort"
	"strings"
)

// AllowList is the set of submitter names that take part in aggregation.
// The zero value is an empty list that admits nobody.
type AllowList struct {
	members map[string]struct{}
}

// NewAllowList builds an allow-list from names. Names are trimmed and blank
// names are dropped.
func NewAllowList(names ...string) AllowList {
	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		members[name] = struct{}{}
	}
	return AllowList{members: members}
}

// ParseAllowList parses a comma separated list such as the value of
// ODKPULSE_ALLOWED_SUBMITTERS.
func ParseAllowList(s string) AllowList {
	return NewAllowList(strings.Split(s, ",")...)
}

// Contains reports whether name is allowed
func (a AllowList) Contains(name string) bool {
	_, ok := a.members[name]
	return ok
}

// Len returns the number of allowed names
func (a AllowList) Len() int {
	return len(a.members)
}

// IsEmpty reports whether the list admits nobody
func (a AllowList) IsEmpty() bool {
	return len(a.members) == 0
}

// Names returns the allowed names in lexicographic order
func (a AllowList) Names() []string {
	names := make([]string, 0, len(a.members))
	for name := range a.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new list holding the members of both lists
func (a AllowList) Merge(other AllowList) AllowList {
	return NewAllowList(append(a.Names(), other.Names()...)...)
}
