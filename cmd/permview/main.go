// Command permview prints how a user or a group holds permissions on the application or a document,
// and what changes toggling some of them would make.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-logr/stdr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/pflag"

	"github.com/supremind/docperm"
	"github.com/supremind/docperm/catalog"
	"github.com/supremind/docperm/persist/sqlite"
	"github.com/supremind/docperm/types"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	fixture   string
	db        string
	subject   string
	target    string
	catalog   string
	toggles   []string
	commit    bool
	verbosity int
}

func run(args []string, out io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("permview", pflag.ContinueOnError)
	flagSet.StringVar(&opts.fixture, "fixture", "", "yaml file of memberships, placements, and grants to load")
	flagSet.StringVar(&opts.db, "db", "", "sqlite database to keep polices in (default: memory only)")
	flagSet.StringVar(&opts.subject, "subject", "", `subject to report, such as "user:alan" or "group:dev"`)
	flagSet.StringVar(&opts.target, "target", "app", `target to report, "app", "doc:<uuid>", or "folder:<uuid>"`)
	flagSet.StringVar(&opts.catalog, "catalog", "", "yaml catalog file replacing the default catalog of the target")
	flagSet.StringSliceVar(&opts.toggles, "toggle", nil, `permissions to toggle, such as "VIEW" or "create:Feed"`)
	flagSet.BoolVar(&opts.commit, "commit", false, "commit toggled permissions")
	flagSet.IntVarP(&opts.verbosity, "verbosity", "v", 0, "log verbosity")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.subject == "" {
		return errors.New("--subject is required")
	}

	stdr.SetVerbosity(opts.verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))

	sub, err := types.ParseSubject(opts.subject)
	if err != nil {
		return err
	}
	tgt, err := types.ParseTarget(opts.target)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mopts := []docperm.ManagerOption{docperm.WithLogger(logger)}

	var fx *fixture
	if opts.fixture != "" {
		fx, err = loadFixture(opts.fixture)
		if err != nil {
			return err
		}
		mopts = append(mopts, docperm.WithNamer(fx.namer()))
	}

	_, isApp := tgt.(types.Application)
	cat := docperm.DocumentCatalog()
	if isApp {
		cat = docperm.ApplicationCatalog()
	}
	if opts.catalog != "" {
		c, err := catalog.LoadFile(opts.catalog)
		if err != nil {
			return err
		}
		if c.Scope == types.ScopeApplication {
			mopts = append(mopts, docperm.WithApplicationCatalog(c))
		} else {
			mopts = append(mopts, docperm.WithDocumentCatalog(c))
		}
		if (c.Scope == types.ScopeApplication) == isApp {
			cat = c
		}
	}

	if opts.db != "" {
		persisters, closeDB, err := openPersisters(opts.db)
		if err != nil {
			return err
		}
		defer closeDB()
		mopts = append(mopts, persisters...)
	}

	m, err := docperm.New(ctx, mopts...)
	if err != nil {
		return err
	}
	if fx != nil {
		if err := fx.apply(m); err != nil {
			return fmt.Errorf("load fixture %s: %w", opts.fixture, err)
		}
	}

	if len(opts.toggles) == 0 {
		states, err := m.States(sub, tgt)
		if err != nil {
			return err
		}
		var summary *types.CreateSummary
		if folder, ok := tgt.(types.Folder); ok {
			s, err := m.CreateSummary(sub, folder)
			if err != nil {
				return err
			}
			summary = &s
		}
		printStates(out, fmt.Sprintf("%s on %s", sub, tgt), cat, states, summary)
		return nil
	}

	return edit(out, m, cat, sub, tgt, opts.toggles, opts.commit)
}

func openPersisters(dsn string) ([]docperm.ManagerOption, func(), error) {
	db, err := sqlite.Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	sp, err := sqlite.NewGroupingPersister(db, "subjects")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	dp, err := sqlite.NewGroupingPersister(db, "documents")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	pp, err := sqlite.NewPermissionPersister(db, "permissions")
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return []docperm.ManagerOption{
		docperm.WithSubjectPersister(sp),
		docperm.WithDocumentPersister(dp),
		docperm.WithPermissionPersister(pp),
	}, func() { db.Close() }, nil
}

func edit(out io.Writer, m types.Manager, cat types.Catalog, sub types.Subject, tgt types.Target, toggles []string, commit bool) error {
	session, err := m.Edit(tgt, sub)
	if err != nil {
		return err
	}

	for _, t := range toggles {
		if _, err := session.Toggle(sub, types.Permission(t)); err != nil {
			return err
		}
	}

	states, err := session.States(sub)
	if err != nil {
		return err
	}
	var summary *types.CreateSummary
	if _, ok := tgt.(types.Folder); ok {
		s, err := session.CreateSummary(sub)
		if err != nil {
			return err
		}
		summary = &s
	}
	printStates(out, fmt.Sprintf("%s on %s, edited", sub, tgt), cat, states, summary)

	changes := session.ChangeSet().Changes(tgt)
	printChanges(out, changes)

	if !commit {
		return nil
	}
	return m.Commit(tgt, session.ChangeSet())
}

func printStates(out io.Writer, title string, cat types.Catalog, states []types.PermissionState, summary *types.CreateSummary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle(title)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Permission", "State", "Provenance"})

	for _, s := range states {
		tw.AppendRow(table.Row{cat.DisplayName(s.Permission), s.State, strings.Join(s.Describe(), "\n")})
	}

	if summary != nil {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{"Create", "explicit", summary.Explicit})
		tw.AppendRow(table.Row{"Create", "effective", summary.Effective})
	}

	tw.Render()
}

func printChanges(out io.Writer, changes []types.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(out, "no changes")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetTitle("Pending changes")
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Change", "Subject", "Detail"})

	for _, c := range changes {
		switch c := c.(type) {
		case types.AddPermission:
			tw.AppendRow(table.Row{"add", c.Subject, c.Permission})
		case types.RemovePermission:
			tw.AppendRow(table.Row{"remove", c.Subject, c.Permission})
		case types.AddCreatePermission:
			tw.AppendRow(table.Row{"add", c.Subject, "create " + c.DocType})
		case types.RemoveCreatePermission:
			tw.AppendRow(table.Row{"remove", c.Subject, "create " + c.DocType})
		default:
			tw.AppendRow(table.Row{fmt.Sprintf("%T", c), "", ""})
		}
	}

	tw.Render()
}
