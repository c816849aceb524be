// Package group partitions sequence IDs by a regular expression and picks
// one representative per group.
//
// The key of an ID is the first capture group of the pattern, or the whole
// match when the pattern has no groups. IDs that do not match belong to no
// group. The representative of a group is its first member in input order.
package group

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrBadPattern indicates a pattern that does not compile.
var ErrBadPattern = errors.New("group: bad pattern")

// Group is one key and its members in input order.
type Group struct {
	Key     string
	Members []string
}

// Representative returns the first member.
func (g Group) Representative() string { return g.Members[0] }

// Grouping is the result of partitioning a list of IDs.
type Grouping struct {
	// Groups are ordered by the first appearance of their key.
	Groups []Group
	// Unmatched lists IDs the pattern did not match, in input order.
	Unmatched []string
}

// By partitions ids by pattern.
func By(pattern string, ids []string) (Grouping, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Grouping{}, fmt.Errorf("group: %q: %v: %w", pattern, err, ErrBadPattern)
	}

	var (
		out   Grouping
		index = make(map[string]int)
	)
	for _, id := range ids {
		key, ok := keyOf(re, id)
		if !ok {
			out.Unmatched = append(out.Unmatched, id)
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(out.Groups)
			index[key] = i
			out.Groups = append(out.Groups, Group{Key: key})
		}
		out.Groups[i].Members = append(out.Groups[i].Members, id)
	}
	return out, nil
}

func keyOf(re *regexp.Regexp, id string) (string, bool) {
	m := re.FindStringSubmatch(id)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}

// Representatives returns the representative of every group, in group order.
func (g Grouping) Representatives() []string {
	out := make([]string, len(g.Groups))
	for i, grp := range g.Groups {
		out[i] = grp.Representative()
	}
	return out
}
