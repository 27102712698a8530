// Package permissions decides who may run admin commands.
package permissions

import "strings"

type Policy interface {
	IsAdmin(userID string) bool
}

// AllowList grants admin rights to a fixed set of user ids.
type AllowList map[string]struct{}

func NewAllowList(ids ...string) AllowList {
	l := make(AllowList, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			l[id] = struct{}{}
		}
	}
	return l
}

func (l AllowList) IsAdmin(userID string) bool {
	_, ok := l[userID]
	return ok
}
