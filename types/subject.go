package types

import (
	"fmt"
	"strings"
)

const (
	userPrefix  = "user:"
	groupPrefix = "group:"
)

// Subject is a User or a Group holding permissions
// Subject is not expecting custom implementations
type Subject interface {
	Entity
	subject() string
}

// User is a Member of some Groups, and a Subject in permissions
type User string

func (u User) String() string {
	return userPrefix + string(u)
}

// Name returns the user name
func (u User) Name() string {
	return string(u)
}

func (u User) member() string {
	return u.String()
}

func (u User) subject() string {
	return u.String()
}

// Group is a Container of Users and other Groups, and a Subject in permissions
type Group string

func (g Group) String() string {
	return groupPrefix + string(g)
}

// Name returns the group name
func (g Group) Name() string {
	return string(g)
}

func (g Group) container() string {
	return g.String()
}

func (g Group) subject() string {
	return g.String()
}

// ParseSubject parses a serialized Subject
func ParseSubject(s string) (Subject, error) {
	switch {
	case strings.HasPrefix(s, userPrefix):
		return User(strings.TrimPrefix(s, userPrefix)), nil
	case strings.HasPrefix(s, groupPrefix):
		return Group(strings.TrimPrefix(s, groupPrefix)), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidSubject, s)
}
