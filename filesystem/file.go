package filesystem

import (
	"strings"

	"github.com/brettbedarf/treefs"
)

// File is a leaf node holding an opaque content blob
type File struct {
	name       string
	parentPath string
	content    []byte
	attached   bool
}

var _ treefs.Node = (*File)(nil)

// NewFile creates a detached file bound to the root path. The content is copied.
func NewFile(name string, content []byte) (*File, error) {
	if name == "" {
		return nil, treefs.NewError(treefs.InvalidArgument, name, "file name cannot be empty")
	}
	if strings.Contains(name, treefs.Separator) {
		return nil, treefs.NewError(treefs.InvalidArgument, name, "file name cannot contain %q", treefs.Separator)
	}
	return &File{
		name:       name,
		parentPath: treefs.Separator,
		content:    append([]byte(nil), content...),
	}, nil
}

func (f *File) Kind() treefs.NodeKind {
	return treefs.FileKind
}

func (f *File) Path() string {
	return JoinPath(f.parentPath, f.name)
}

func (f *File) Name() string {
	return f.name
}

// Size returns the content length in bytes
func (f *File) Size() int64 {
	return int64(len(f.content))
}

// ChildCount is always [treefs.NotContainer]
func (f *File) ChildCount() int {
	return treefs.NotContainer
}

func (f *File) Rebind(parentPath string) {
	f.parentPath = parentPath
}

// Content returns a copy of the file's content
func (f *File) Content() []byte {
	return append([]byte(nil), f.content...)
}
