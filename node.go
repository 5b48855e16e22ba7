// Package treefs contains the core domain types shared by the in-memory
// filesystem tree and its consumers.
package treefs

// Separator divides path segments and terminates every directory name.
const Separator = "/"

// NotContainer is the ChildCount reported by nodes that cannot hold children.
const NotContainer = -1

// NodeKind valid kinds are FileKind and DirKind
type NodeKind int

const (
	FileKind NodeKind = iota + 1
	DirKind
)

func (k NodeKind) String() string {
	switch k {
	case FileKind:
		return "file"
	case DirKind:
		return "dir"
	default:
		return "unknown"
	}
}

// Node is the capability set shared by every entry in the tree.
type Node interface {
	// Kind reports whether the node is a file or a directory
	Kind() NodeKind

	// Path returns the absolute path of the node, composed from the parent
	// path it was last bound to and its own name
	Path() string

	// Name returns the node's name; directory names end with [Separator]
	Name() string

	// Size returns the byte size of a file or the total size of a subtree
	Size() int64

	// ChildCount returns the number of direct children or [NotContainer]
	ChildCount() int

	// Rebind sets the absolute path of the containing directory. Containers
	// propagate their new path to every descendant.
	Rebind(parentPath string)
}
