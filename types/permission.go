package types

import (
	"sort"
	"strings"
)

// Permission identifies something a subject may do, either application wide
// or on a single document. Create permissions are encoded as "create:<docType>".
type Permission string

// application permissions
const (
	Administrator       Permission = "ADMINISTRATOR"
	Annotations         Permission = "ANNOTATIONS"
	ChangeOwner         Permission = "CHANGE_OWNER"
	DeleteData          Permission = "DELETE_DATA"
	ExportConfiguration Permission = "EXPORT_CONFIGURATION"
	ImportConfiguration Permission = "IMPORT_CONFIGURATION"
	ManageAPIKeys       Permission = "MANAGE_API_KEYS"
	ManageCache         Permission = "MANAGE_CACHE"
	ManageDBTables      Permission = "MANAGE_DB_TABLES"
	ManageJobs          Permission = "MANAGE_JOBS"
	ManageNodes         Permission = "MANAGE_NODES"
	ManageProcessors    Permission = "MANAGE_PROCESSORS"
	ManageProperties    Permission = "MANAGE_PROPERTIES"
	ManageTasks         Permission = "MANAGE_TASKS"
	ManageUsers         Permission = "MANAGE_USERS"
	ManageVolumes       Permission = "MANAGE_VOLUMES"
	ViewData            Permission = "VIEW_DATA"
	ViewSystemInfo      Permission = "VIEW_SYSTEM_INFO"
)

// document permissions, from the weakest to the strongest
const (
	Use    Permission = "USE"
	View   Permission = "VIEW"
	Edit   Permission = "EDIT"
	Delete Permission = "DELETE"
	Owner  Permission = "OWNER"
)

const createPrefix = "create:"

// AllDocTypes is the sentinel document type meaning "every document type"
const AllDocTypes = "ALL"

// CreatePermission returns the permission to create documents of docType inside a folder
func CreatePermission(docType string) Permission {
	return Permission(createPrefix + docType)
}

// DocType returns the document type of a create permission
func (p Permission) DocType() (string, bool) {
	if !strings.HasPrefix(string(p), createPrefix) {
		return "", false
	}
	return strings.TrimPrefix(string(p), createPrefix), true
}

// IsCreate tells if p is a create permission
func (p Permission) IsCreate() bool {
	_, ok := p.DocType()
	return ok
}

// PermissionSet is an unordered set of permissions
type PermissionSet map[Permission]struct{}

// NewPermissionSet creates a set holding perms
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has tells if p is a member of s, a nil set has nothing
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Add p to s
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Remove p from s
func (s PermissionSet) Remove(p Permission) {
	delete(s, p)
}

// Clone returns a copy of s which never shares storage with s
func (s PermissionSet) Clone() PermissionSet {
	c := make(PermissionSet, len(s))
	for p := range s {
		c[p] = struct{}{}
	}
	return c
}

// Equal tells if s and o hold the same permissions
func (s PermissionSet) Equal(o PermissionSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

// Sorted returns members of s in lexical order
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Split separates create permissions from the others,
// create permissions are returned as their document types.
func (s PermissionSet) Split() (PermissionSet, []string) {
	plain := make(PermissionSet, len(s))
	var docTypes []string
	for p := range s {
		if dt, ok := p.DocType(); ok {
			docTypes = append(docTypes, dt)
		} else {
			plain[p] = struct{}{}
		}
	}
	sort.Strings(docTypes)
	return plain, docTypes
}

// PermissionDef describes a permission of a catalog
type PermissionDef struct {
	Permission  Permission
	DisplayName string
	Description string
}

// DocType is a kind of document which could be created inside folders
type DocType struct {
	Type        string
	DisplayName string
}

// Scope tells which kind of targets a catalog applies to
type Scope string

// known scopes
const (
	ScopeApplication Scope = "application"
	ScopeDocument    Scope = "document"
)

// Catalog is the closed set of permissions relevant to a scope
type Catalog struct {
	Scope       Scope
	Permissions []PermissionDef
	Rules       []ImpliedByRule
	DocTypes    []DocType
}

// Has tells if p is a permission of the catalog
func (c Catalog) Has(p Permission) bool {
	for _, def := range c.Permissions {
		if def.Permission == p {
			return true
		}
	}
	return false
}

// DisplayName returns the display name of p, or p itself if p is not in the catalog
func (c Catalog) DisplayName(p Permission) string {
	for _, def := range c.Permissions {
		if def.Permission == p && def.DisplayName != "" {
			return def.DisplayName
		}
	}
	if dt, ok := p.DocType(); ok {
		return "Create " + c.DocTypeName(dt)
	}
	return string(p)
}

// DocTypeName returns the display name of a document type
func (c Catalog) DocTypeName(docType string) string {
	for _, dt := range c.DocTypes {
		if dt.Type == docType && dt.DisplayName != "" {
			return dt.DisplayName
		}
	}
	return docType
}

// HasDocType tells if docType is a document type of the catalog
func (c Catalog) HasDocType(docType string) bool {
	for _, dt := range c.DocTypes {
		if dt.Type == docType {
			return true
		}
	}
	return false
}
