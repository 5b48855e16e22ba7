// Package mount exposes a snapshot of a filesystem tree as a read-only FUSE
// mount. The snapshot is taken when the mount comes up; later changes to the
// tree are not reflected.
package mount

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/brettbedarf/treefs"
	"github.com/brettbedarf/treefs/config"
	"github.com/brettbedarf/treefs/filesystem"
	"github.com/brettbedarf/treefs/internal/util"
	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// dirNode is a directory inode whose children are added up front
type dirNode struct {
	fs.Inode
	mode uint32
}

var _ fs.NodeGetattrer = (*dirNode)(nil)

func (n *dirNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFDIR | n.mode
	out.Uid = uint32(os.Getuid())
	out.Gid = uint32(os.Getgid())
	return 0
}

// Root is the mount's root inode. It builds the whole inode tree from the
// snapshot in OnAdd.
type Root struct {
	dirNode
	tree   *filesystem.Directory
	cfg    *config.Config
	logger util.Logger
}

var _ fs.NodeOnAdder = (*Root)(nil)

func NewRoot(tree *filesystem.Directory, cfg *config.Config) *Root {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Root{
		dirNode: dirNode{mode: cfg.DirMode},
		tree:    tree,
		cfg:     cfg,
		logger:  util.GetLogger("Mount"),
	}
}

func (r *Root) OnAdd(ctx context.Context) {
	dirs, files := r.build(ctx, &r.Inode, r.tree)
	r.logger.Info().
		Str("root", r.tree.Path()).
		Int("dirs", dirs).
		Int("files", files).
		Msg("Built mount snapshot")
}

func (r *Root) build(ctx context.Context, parent *fs.Inode, dir *filesystem.Directory) (dirs, files int) {
	for _, child := range dir.Children() {
		name := EntryName(child.Name())
		if name == "." || name == ".." {
			r.logger.Warn().Str("path", child.Path()).Msg("Skipping reserved entry name")
			continue
		}

		var inode *fs.Inode
		switch c := child.(type) {
		case *filesystem.Directory:
			inode = parent.NewPersistentInode(ctx, &dirNode{mode: r.cfg.DirMode}, fs.StableAttr{Mode: fuse.S_IFDIR})
		case *filesystem.File:
			inode = parent.NewPersistentInode(ctx, &fs.MemRegularFile{
				Data: c.Content(),
				Attr: FileAttr(c, r.cfg),
			}, fs.StableAttr{Mode: fuse.S_IFREG})
		default:
			r.logger.Warn().Str("path", child.Path()).Msg("Skipping unknown node type")
			continue
		}

		// a file "a" and a directory "a/" map to the same entry; first one wins
		if !parent.AddChild(name, inode, false) {
			r.logger.Warn().Str("path", child.Path()).Str("name", name).Msg("Entry name already taken, skipping")
			continue
		}

		if sub, ok := child.(*filesystem.Directory); ok {
			d, f := r.build(ctx, inode, sub)
			dirs, files = dirs+d+1, files+f
		} else {
			files++
		}
	}
	return dirs, files
}

// EntryName maps a tree node name to its directory entry name
func EntryName(name string) string {
	return strings.TrimSuffix(name, treefs.Separator)
}

// FileAttr returns the attributes served for a mounted file
func FileAttr(f *filesystem.File, cfg *config.Config) fuse.Attr {
	return fuse.Attr{
		Mode: fuse.S_IFREG | cfg.FileMode,
		Size: uint64(f.Size()),
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
	}
}

// Options builds the go-fuse mount options from cfg
func Options(cfg *config.Config) *fs.Options {
	attrTimeout := seconds(cfg.AttrTimeout)
	entryTimeout := seconds(cfg.EntryTimeout)

	return &fs.Options{
		MountOptions: fuse.MountOptions{
			Debug:   cfg.Debug || cfg.LogLvl == util.TraceLevel,
			FsName:  cfg.FsName,
			Name:    cfg.Name,
			Options: []string{"ro"},
			Logger:  util.NewLogLogger("Fuse", util.DebugLevel),
		},
		AttrTimeout:  &attrTimeout,
		EntryTimeout: &entryTimeout,
		UID:          uint32(os.Getuid()),
		GID:          uint32(os.Getgid()),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Mount mounts a read-only snapshot of tree at dir. The returned server is
// already serving; call Unmount on it to tear the mount down.
func Mount(dir string, tree *filesystem.Directory, cfg *config.Config) (*fuse.Server, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := util.GetLogger("Mount")

	server, err := fs.Mount(dir, NewRoot(tree, cfg), Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", dir, err)
	}
	logger.Info().Str("mountpoint", dir).Str("fs_name", cfg.FsName).Msg("Mounted")
	return server, nil
}
