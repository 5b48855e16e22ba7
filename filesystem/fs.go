package filesystem

import (
	"slices"

	"github.com/brettbedarf/treefs"
	"github.com/brettbedarf/treefs/config"
	"github.com/brettbedarf/treefs/internal/util"
	"github.com/google/uuid"
)

// Filesystem owns the root of a tree and a cursor naming the current directory.
//
// The cursor is kept as the list of directory names leading from the root and
// is re-resolved on every use, so removing a directory on that path makes
// the cursor stale instead of leaving it on a detached subtree.
type Filesystem struct {
	cfg    *config.Config
	id     string
	root   *Directory
	cursor []string
	logger util.Logger
}

// Option customizes a Filesystem at construction
type Option func(*options)

type options struct {
	rootName string
}

// WithRootName overrides [config.Config.RootName] for the root directory
func WithRootName(name string) Option {
	return func(o *options) {
		o.rootName = name
	}
}

// newFilesystem creates a Filesystem holding only an empty root
func newFilesystem(cfg *config.Config, opts ...Option) (*Filesystem, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	o := options{rootName: cfg.RootName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rootName == "" {
		o.rootName = config.DefaultRootName
	}

	root, err := NewDirectory(o.rootName)
	if err != nil {
		return nil, err
	}
	// root is always anchored at the top regardless of its name
	root.Rebind(treefs.Separator)
	// owned by the Filesystem, never insertable elsewhere
	root.attached = true

	id := uuid.New().String()
	return &Filesystem{
		cfg:    cfg,
		id:     id,
		root:   root,
		logger: util.GetLogger("Filesystem").With().Str("fs_id", id).Logger(),
	}, nil
}

// ID returns the unique identifier of this Filesystem instance
func (fs *Filesystem) ID() string {
	return fs.id
}

// Root returns the root directory. Ownership stays with the Filesystem.
func (fs *Filesystem) Root() *Directory {
	return fs.root
}

// CurrentDirectory resolves the cursor. It fails with [treefs.InvalidTarget]
// if a directory on the cursor path has been removed.
func (fs *Filesystem) CurrentDirectory() (*Directory, error) {
	cur := fs.root
	for _, name := range fs.cursor {
		node, ok := cur.Find(name, false)
		sub, isDir := node.(*Directory)
		if !ok || !isDir {
			return nil, treefs.NewError(treefs.InvalidTarget, JoinPath(cur.Path(), name), "current directory no longer exists")
		}
		cur = sub
	}
	return cur, nil
}

// ChangeDirectory moves the cursor to the direct child directory name of the
// current directory. An empty name resets the cursor to the root and always
// succeeds. On failure the cursor is unchanged.
func (fs *Filesystem) ChangeDirectory(name string) error {
	if name == "" {
		fs.cursor = nil
		fs.logger.Debug().Str("path", fs.root.Path()).Msg("Changed directory to root")
		return nil
	}

	cur, err := fs.CurrentDirectory()
	if err != nil {
		return err
	}
	node, ok := cur.Find(name, false)
	if !ok {
		return treefs.NewError(treefs.InvalidTarget, name, "cannot change directory: not found in %s", cur.Path())
	}
	dir, ok := node.(*Directory)
	if !ok {
		return treefs.NewError(treefs.InvalidTarget, name, "cannot change directory: not a directory")
	}

	fs.cursor = append(slices.Clone(fs.cursor), dir.Name())
	fs.logger.Debug().Str("path", dir.Path()).Msg("Changed directory")
	return nil
}

// Insert adds node to the current directory
func (fs *Filesystem) Insert(node treefs.Node) error {
	cur, err := fs.CurrentDirectory()
	if err != nil {
		return err
	}
	return cur.Insert(node)
}

// Find looks name up from the current directory, see [Directory.Find].
// A miss is reported as [treefs.NotFound].
func (fs *Filesystem) Find(name string, recursive bool) (treefs.Node, error) {
	cur, err := fs.CurrentDirectory()
	if err != nil {
		return nil, err
	}
	node, ok := cur.Find(name, recursive)
	fs.logger.Trace().Str("name", name).Bool("recursive", recursive).Bool("found", ok).Msg("Find")
	if !ok {
		return nil, treefs.NewError(treefs.NotFound, name, "does not exist in %s", cur.Path())
	}
	return node, nil
}

// Remove deletes a direct child of the current directory, see [Directory.Remove]
func (fs *Filesystem) Remove(name string, recursive bool) error {
	cur, err := fs.CurrentDirectory()
	if err != nil {
		return err
	}
	return cur.Remove(name, recursive)
}
