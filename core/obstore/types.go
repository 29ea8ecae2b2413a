package obstore

import (
	"fmt"
	"sort"
)

// Permission is an access level on a stored path.
type Permission string

const (
	PermissionNull  Permission = "null"
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionOwn   Permission = "own"
)

// AVU is a single attribute/value metadata pair attached to a stored path.
// A path may carry many AVUs, including several with the same attribute.
type AVU struct {
	Attr  string `json:"attribute"`
	Value string `json:"value"`
}

func (a AVU) String() string {
	return fmt.Sprintf("%s=%s", a.Attr, a.Value)
}

// AC is a single access control entry: a user or group name, the zone it
// belongs to and the permission it holds.
type AC struct {
	User string     `json:"user"`
	Zone string     `json:"zone,omitempty"`
	Perm Permission `json:"perm"`
}

func (a AC) String() string {
	if a.Zone != "" {
		return fmt.Sprintf("%s#%s:%s", a.User, a.Zone, a.Perm)
	}
	return fmt.Sprintf("%s:%s", a.User, a.Perm)
}

// Item is one entry yielded while iterating a collection's contents. Err is
// set on the final item if iteration failed part way.
type Item struct {
	Path         string
	IsCollection bool
	Err          error
}

// SortedUniqueAVUs returns a copy of avus with duplicates removed, sorted by
// attribute then value for reproducible writes.
func SortedUniqueAVUs(avus []AVU) []AVU {
	seen := make(map[AVU]struct{}, len(avus))
	out := make([]AVU, 0, len(avus))
	for _, avu := range avus {
		if _, ok := seen[avu]; ok {
			continue
		}
		seen[avu] = struct{}{}
		out = append(out, avu)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attr != out[j].Attr {
			return out[i].Attr < out[j].Attr
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// SortedUniqueACs returns a copy of acl with duplicates removed, sorted by
// user then permission for reproducible writes.
func SortedUniqueACs(acl []AC) []AC {
	seen := make(map[AC]struct{}, len(acl))
	out := make([]AC, 0, len(acl))
	for _, ac := range acl {
		if _, ok := seen[ac]; ok {
			continue
		}
		seen[ac] = struct{}{}
		out = append(out, ac)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].User != out[j].User {
			return out[i].User < out[j].User
		}
		if out[i].Zone != out[j].Zone {
			return out[i].Zone < out[j].Zone
		}
		return out[i].Perm < out[j].Perm
	})
	return out
}
