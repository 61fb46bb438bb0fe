package types

// GrantStore keeps explicit subject-target-permission grants, it knows nothing about inheritance
type GrantStore interface {
	// Grant permission to subject on target
	Grant(Subject, Target, Permission) error

	// Revoke permission from subject on target
	Revoke(Subject, Target, Permission) error

	// Has tells if permission is granted to subject on target
	Has(Subject, Target, Permission) (bool, error)

	// PermissionsOf subject on target
	PermissionsOf(Subject, Target) (PermissionSet, error)

	// PermissionsOn target for all subjects
	PermissionsOn(Target) (map[Subject]PermissionSet, error)

	// PermissionsFor subject on all targets
	PermissionsFor(Subject) (map[Target]PermissionSet, error)
}
