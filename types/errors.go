package types

import "errors"

// exported errors
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidEntity       = errors.New("invalid entity, it should be one of user, group, doc, and folder")
	ErrInvalidContainer    = errors.New("invalid container, it should be a group or a folder")
	ErrInvalidMember       = errors.New("invalid member, it should be a user or a doc")
	ErrInvalidSubject      = errors.New("invalid subject, it should be a user or a group")
	ErrInvalidTarget       = errors.New("invalid target, it should be app, a doc, or a folder")
	ErrInvalidDocumentID   = errors.New("invalid document id, it should be an uuid")
	ErrNotAFolder          = errors.New("create permissions only apply to folders")
	ErrUnknownPermission   = errors.New("permission is not in the catalog")
	ErrUnsupportedChange   = errors.New("unsupported change")
	ErrUnsupportedPersist  = errors.New("persister changes in a way not supported")
	ErrSubjectNotInSession = errors.New("subject is not loaded in the edit session")
	ErrInvalidCatalog      = errors.New("invalid permission catalog")
)
