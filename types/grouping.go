package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Grouping defines member-container relationships,
// an entity could belong to any number of containers,
// and a container could contain any members or other containers.
type Grouping interface {
	GroupingWriter
	GroupingReader
}

// GroupingReader defines methods to query grouping relationships
type GroupingReader interface {
	// IsIn returns true if Entity is in Container or in sub containers of Container
	IsIn(Entity, Container) (bool, error)

	// AllContainers returns all containers have ever seen
	AllContainers() (map[Container]struct{}, error)

	// AllMembers returns all members have ever seen
	AllMembers() (map[Member]struct{}, error)

	// MembersIn returns all members belongs to Container or sub containers of Container
	MembersIn(Container) (map[Member]struct{}, error)

	// ContainersOf returns all containers the entity belongs to, directly or not
	ContainersOf(Entity) (map[Container]struct{}, error)

	// ImmediateContainersOf returns containers the entity directly belongs to
	ImmediateContainersOf(Entity) (map[Container]struct{}, error)

	// ImmediateEntitiesIn returns entities directly in the container
	ImmediateEntitiesIn(Container) (map[Entity]struct{}, error)

	// PathsOf returns the chains of containers leading from the entity to each of its ancestors,
	// nearest first; an ancestor reachable in several ways has several chains
	PathsOf(Entity) ([][]Container, error)
}

// GroupingWriter defines methods to create or remove grouping relationships
type GroupingWriter interface {
	// Join an Entity to a Container, the Entity will "immediately" belongs to the Container
	Join(Entity, Container) error

	// Leave removes an Entity from a Container
	Leave(Entity, Container) error

	// RemoveContainer removes a Container, and all relationships about it
	RemoveContainer(Container) error

	// RemoveMember removes a Member, and all relationships about it
	RemoveMember(Member) error
}

// Entity is anything could be grouped together, or be a container of other entities
type Entity interface {
	// String method is used to be serialized when persisting
	String() string
	// Name is the bare identifier, without the kind prefix
	Name() string
}

// Container is a collection of entities: a Group of users, or a Folder of documents
// Container is not expecting custom implementations
type Container interface {
	Entity
	container() string
}

// Member is an entity which never contains anything: a User, or a Document
// Member is not expecting custom implementations
type Member interface {
	Entity
	member() string
}

// ParseEntity parses a serialized Entity
func ParseEntity(s string) (Entity, error) {
	switch {
	case strings.HasPrefix(s, userPrefix):
		return User(strings.TrimPrefix(s, userPrefix)), nil
	case strings.HasPrefix(s, groupPrefix):
		return Group(strings.TrimPrefix(s, groupPrefix)), nil
	case strings.HasPrefix(s, docPrefix):
		id, e := parseDocumentID(strings.TrimPrefix(s, docPrefix))
		if e != nil {
			return nil, e
		}
		return Document(id), nil
	case strings.HasPrefix(s, folderPrefix):
		id, e := parseDocumentID(strings.TrimPrefix(s, folderPrefix))
		if e != nil {
			return nil, e
		}
		return Folder(id), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidEntity, s)
}

// ParseContainer parses a serialized Container
func ParseContainer(s string) (Container, error) {
	ent, e := ParseEntity(s)
	if e != nil {
		return nil, e
	}
	c, ok := ent.(Container)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContainer, s)
	}
	return c, nil
}

// ParseMember parses a serialized Member
func ParseMember(s string) (Member, error) {
	ent, e := ParseEntity(s)
	if e != nil {
		return nil, e
	}
	m, ok := ent.(Member)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMember, s)
	}
	return m, nil
}

func parseDocumentID(s string) (string, error) {
	id, e := uuid.Parse(s)
	if e != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDocumentID, s, e)
	}
	return id.String(), nil
}
