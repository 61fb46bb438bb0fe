package types

import "context"

// GroupingPersister persists entity-container relationship polices to an external storage
type GroupingPersister interface {
	// Insert inserts a policy to the persister
	Insert(Entity, Container) error

	// Remove a policy from the persister
	Remove(Entity, Container) error

	// List all policies from the persister
	List() ([]GroupingPolicy, error)

	// Watch any changes occurred about the policies in the persister,
	// the channel is closed once ctx is done
	Watch(context.Context) (<-chan GroupingPolicyChange, error)
}

// PermissionPersister persists subject-target-permission polices to an external storage
type PermissionPersister interface {
	// Insert a permission policy to the persister
	Insert(Subject, Target, Permission) error

	// Remove a permission policy from the persister
	Remove(Subject, Target, Permission) error

	// List all polices from the persister
	List() ([]PermissionPolicy, error)

	// Watch any changes occurred about the polices in the persister,
	// the channel is closed once ctx is done
	Watch(context.Context) (<-chan PermissionPolicyChange, error)
}

// GroupingPolicy is an entity-container releationship policy
type GroupingPolicy struct {
	Entity    Entity
	Container Container
}

// GroupingPolicyChange denotes a changing event about a GroupingPolicy
type GroupingPolicyChange struct {
	GroupingPolicy
	Method PersistMethod
}

// PermissionPolicy is a subject-target-permission policy
type PermissionPolicy struct {
	Subject    Subject
	Target     Target
	Permission Permission
}

// PermissionPolicyChange denotes a changing event about a PermissionPolicy
type PermissionPolicyChange struct {
	PermissionPolicy
	Method PersistMethod
}

// PersistMethod defines what happened about the policies
type PersistMethod string

// possible changes could be happened about policies
const (
	PersistInsert PersistMethod = "insert"
	PersistDelete PersistMethod = "delete"
)
