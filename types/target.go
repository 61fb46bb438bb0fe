package types

import "fmt"

const (
	appTarget    = "app"
	docPrefix    = "doc:"
	folderPrefix = "folder:"
)

// Target is the application as a whole, a Document, or a Folder, which permissions apply to
// Target is not expecting custom implementations
type Target interface {
	String() string
	target() string
}

// Application is the target of application permissions
type Application struct{}

func (Application) String() string {
	return appTarget
}

func (Application) target() string {
	return appTarget
}

// App is the only Application target
var App = Application{}

// Document is a Member of some Folders, and a Target in permissions, identified by its uuid
type Document string

func (d Document) String() string {
	return docPrefix + string(d)
}

// Name returns the document uuid
func (d Document) Name() string {
	return string(d)
}

func (d Document) member() string {
	return d.String()
}

func (d Document) target() string {
	return d.String()
}

// Folder is a Container of Documents and other Folders, and a Target in permissions
type Folder string

func (f Folder) String() string {
	return folderPrefix + string(f)
}

// Name returns the folder uuid
func (f Folder) Name() string {
	return string(f)
}

func (f Folder) container() string {
	return f.String()
}

func (f Folder) target() string {
	return f.String()
}

// ParseTarget parses a serialized Target
func ParseTarget(s string) (Target, error) {
	if s == appTarget {
		return App, nil
	}

	ent, e := ParseEntity(s)
	if e != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	t, ok := ent.(Target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	return t, nil
}
