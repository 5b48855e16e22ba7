package filesystem

import (
	"slices"
	"strings"

	"github.com/brettbedarf/treefs"
	"github.com/brettbedarf/treefs/internal/util"
)

// Directory is a container node owning an ordered, name-unique list of children.
//
// Children do not reference their parent; a directory pushes its path down
// to every descendant whenever it is rebound, so Path stays a local join.
type Directory struct {
	name       string
	parentPath string
	children   []treefs.Node
	attached   bool // held by a parent or owned as a Filesystem root
}

var _ treefs.Node = (*Directory)(nil)

// WalkFunc is called for every node visited by [Directory.Walk].
// depth is 1 for direct children of the walked directory.
type WalkFunc func(depth int, node treefs.Node) error

// NewDirectory creates an empty directory bound to the root path.
// A trailing separator is appended to name when missing.
func NewDirectory(name string) (*Directory, error) {
	if name == "" {
		return nil, treefs.NewError(treefs.InvalidArgument, name, "directory name cannot be empty")
	}
	name = DirName(name)
	if strings.Contains(strings.TrimSuffix(name, treefs.Separator), treefs.Separator) {
		return nil, treefs.NewError(treefs.InvalidArgument, name, "directory name cannot contain %q", treefs.Separator)
	}
	return &Directory{
		name:       name,
		parentPath: treefs.Separator,
	}, nil
}

func (d *Directory) Kind() treefs.NodeKind {
	return treefs.DirKind
}

func (d *Directory) Path() string {
	return JoinPath(d.parentPath, d.name)
}

func (d *Directory) Name() string {
	return d.name
}

// Size returns the total size of every file in the subtree. Not cached.
func (d *Directory) Size() int64 {
	var total int64
	for _, child := range d.children {
		total += child.Size()
	}
	return total
}

// ChildCount returns the number of direct children
func (d *Directory) ChildCount() int {
	return len(d.children)
}

// Rebind sets the parent path and propagates the resulting path to all descendants
func (d *Directory) Rebind(parentPath string) {
	d.parentPath = parentPath

	p := d.Path()
	for _, child := range d.children {
		child.Rebind(p)
	}
}

// Children returns the direct children in insertion order.
// The returned slice is a copy; the nodes are not.
func (d *Directory) Children() []treefs.Node {
	return slices.Clone(d.children)
}

// Insert transfers ownership of node to d. It fails without side effects if a
// direct child already has the same name or if node is already held by
// another directory; remove it from there first.
func (d *Directory) Insert(node treefs.Node) error {
	logger := util.GetLogger("Directory.Insert")

	if node == nil {
		return treefs.NewError(treefs.InvalidArgument, d.Path(), "cannot insert nil node")
	}
	if sub, ok := node.(*Directory); ok && sub.contains(d) {
		return treefs.NewError(treefs.InvalidArgument, sub.Name(), "cannot insert a directory into itself or its descendant")
	}
	attached := attachment(node)
	if attached != nil && *attached {
		err := treefs.NewError(treefs.InvalidArgument, node.Path(), "already belongs to a directory")
		logger.Debug().Err(err).Str("dir", d.Path()).Msg("Insert rejected")
		return err
	}
	if d.indexOf(node.Name()) >= 0 {
		err := treefs.NewError(treefs.DuplicateName, node.Name(), "already exists in %s", d.Path())
		logger.Debug().Err(err).Str("dir", d.Path()).Msg("Insert rejected")
		return err
	}

	node.Rebind(d.Path())
	d.children = append(d.children, node)
	if attached != nil {
		*attached = true
	}
	logger.Debug().Str("path", node.Path()).Str("kind", node.Kind().String()).Msg("Inserted node")
	return nil
}

// Find returns the first direct child named name. If none matches and
// recursive is set, each child directory is searched the same way, in
// insertion order.
func (d *Directory) Find(name string, recursive bool) (treefs.Node, bool) {
	if i := d.indexOf(name); i >= 0 {
		return d.children[i], true
	}
	if !recursive {
		return nil, false
	}
	for _, child := range d.children {
		if sub, ok := child.(*Directory); ok {
			if found, ok := sub.Find(name, true); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// Remove deletes the direct child named name together with its subtree.
// Nested directories are never searched; recursive only authorizes removing
// a matched directory.
func (d *Directory) Remove(name string, recursive bool) error {
	logger := util.GetLogger("Directory.Remove")

	i := d.indexOf(name)
	if i < 0 {
		return treefs.NewError(treefs.NotFound, name, "does not exist in %s", d.Path())
	}
	target := d.children[i]
	if target.Kind() == treefs.DirKind && !recursive {
		return treefs.NewError(treefs.ConfirmRequired, name, "is a directory")
	}

	d.children = slices.Delete(d.children, i, i+1)
	if attached := attachment(target); attached != nil {
		*attached = false
	}
	logger.Debug().Str("path", target.Path()).Int64("size", target.Size()).Msg("Removed node")
	return nil
}

// Walk visits every descendant in pre-order, children in insertion order.
// A non-nil error from fn stops the walk and is returned.
func (d *Directory) Walk(fn WalkFunc) error {
	return d.walk(1, fn)
}

func (d *Directory) walk(depth int, fn WalkFunc) error {
	for _, child := range d.children {
		if err := fn(depth, child); err != nil {
			return err
		}
		if sub, ok := child.(*Directory); ok {
			if err := sub.walk(depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Directory) indexOf(name string) int {
	return slices.IndexFunc(d.children, func(n treefs.Node) bool {
		return n.Name() == name
	})
}

// contains reports whether target is d or one of its descendants
func (d *Directory) contains(target *Directory) bool {
	if d == target {
		return true
	}
	for _, child := range d.children {
		if sub, ok := child.(*Directory); ok && sub.contains(target) {
			return true
		}
	}
	return false
}

// attachment returns the ownership flag of the package's own node types.
// Other Node implementations are not tracked.
func attachment(node treefs.Node) *bool {
	switch n := node.(type) {
	case *File:
		return &n.attached
	case *Directory:
		return &n.attached
	default:
		return nil
	}
}
