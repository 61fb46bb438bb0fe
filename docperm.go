// Package docperm manages permissions of users and groups on the application and documents,
// and explains how each permission is held: explicitly, inherited, or implied.
package docperm

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/supremind/docperm/internal/grouping"
	"github.com/supremind/docperm/internal/manager"
	"github.com/supremind/docperm/internal/permission"
	"github.com/supremind/docperm/types"
)

// New creates a permission Manager, everything is kept in memory only unless persisters are given
func New(ctx context.Context, opts ...ManagerOption) (types.Manager, error) {
	cfg := &ManagerConfig{
		appCatalog: ApplicationCatalog(),
		docCatalog: DocumentCatalog(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.log == nil {
		l := stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))
		cfg.log = &l
	}

	sg, e := grouping.New(ctx, cfg.sp, cfg.log.WithName("subject"))
	if e != nil {
		return nil, fmt.Errorf("init subject grouping failed: %w", e)
	}

	dg, e := grouping.New(ctx, cfg.dp, cfg.log.WithName("document"))
	if e != nil {
		return nil, fmt.Errorf("init document grouping failed: %w", e)
	}

	p, e := permission.New(ctx, cfg.pp, cfg.log.WithName("permission"))
	if e != nil {
		return nil, fmt.Errorf("init permission failed: %w", e)
	}

	return manager.New(sg, dg, p, manager.Config{
		ApplicationCatalog: cfg.appCatalog,
		DocumentCatalog:    cfg.docCatalog,
		Namer:              cfg.namer,
	}, *cfg.log), nil
}

// WithSubjectPersister sets Persister for user-group memberships
func WithSubjectPersister(p types.GroupingPersister) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.sp = p
	}
}

// WithDocumentPersister sets Persister for the folder tree of documents
func WithDocumentPersister(p types.GroupingPersister) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.dp = p
	}
}

// WithPermissionPersister sets Persister for explicit grants
// all grants will be lost after restart if not set
func WithPermissionPersister(p types.PermissionPersister) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.pp = p
	}
}

// WithApplicationCatalog replaces the default catalog of application permissions
func WithApplicationCatalog(c types.Catalog) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.appCatalog = c
	}
}

// WithDocumentCatalog replaces the default catalog of document permissions
func WithDocumentCatalog(c types.Catalog) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.docCatalog = c
	}
}

// WithNamer sets how groups and folders are named in inheritance paths
func WithNamer(n types.Namer) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.namer = n
	}
}

// WithLogger sets logger for docperm components
func WithLogger(l logr.Logger) ManagerOption {
	return func(cfg *ManagerConfig) {
		cfg.log = &l
	}
}

// ManagerConfig works together with ManagerOption to control the initialization of manager
type ManagerConfig struct {
	sp         types.GroupingPersister
	dp         types.GroupingPersister
	pp         types.PermissionPersister
	appCatalog types.Catalog
	docCatalog types.Catalog
	namer      types.Namer
	log        *logr.Logger
}

// ManagerOption controls how to init a manager
type ManagerOption func(*ManagerConfig)
