package filesystem

import (
	"context"
	"fmt"
	"io"

	"github.com/brettbedarf/treefs"
	"github.com/brettbedarf/treefs/config"
	"github.com/brettbedarf/treefs/descriptor"
)

// New builds a Filesystem from the descriptor at location, see [Load].
func New(cfg *config.Config, location string, opts ...Option) (*Filesystem, error) {
	return Load(context.Background(), cfg, location, opts...)
}

// Load builds a Filesystem from the descriptor at location: a local file
// path or an http(s) URL. The decoder is chosen by extension, see
// [descriptor.Decode]. It fails with [treefs.IOError] if the descriptor
// cannot be opened.
func Load(ctx context.Context, cfg *config.Config, location string, opts ...Option) (*Filesystem, error) {
	src, err := descriptor.NewSource(location)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return NewFromReader(cfg, src.Name(), rc, opts...)
}

// NewFromReader builds a Filesystem from a descriptor stream; name selects
// the decoder and labels errors.
func NewFromReader(cfg *config.Config, name string, r io.Reader, opts ...Option) (*Filesystem, error) {
	fs, err := newFilesystem(cfg, opts...)
	if err != nil {
		return nil, err
	}

	entries, err := descriptor.Decode(name, r)
	if err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", name, err)
	}

	dirCnt, fileCnt := 0, 0
	for _, entry := range entries {
		newDirs, err := fs.materialize(entry)
		if err != nil {
			fs.logger.Debug().Err(err).Int("pos", entry.Pos).Str("path", entry.Path).Msg("Failed to apply descriptor entry")
			return nil, fmt.Errorf("descriptor %s:%d: %w", name, entry.Pos, err)
		}
		dirCnt += newDirs
		if entry.IsFile {
			fileCnt++
		}
	}

	fs.logger.Info().
		Str("descriptor", name).
		Int("entries", len(entries)).
		Int("directories", dirCnt).
		Int("files", fileCnt).
		Int64("size", fs.root.Size()).
		Msg("Filesystem built")
	return fs, nil
}

// materialize applies one descriptor entry to the tree. Like `mkdir -p`,
// missing directories along the path are created and existing ones reused.
// It returns the number of directories created.
func (fs *Filesystem) materialize(entry descriptor.Entry) (int, error) {
	segments := SplitSegments(entry.Path)
	if len(segments) == 0 {
		return 0, treefs.NewError(treefs.InvalidArgument, entry.Path, "descriptor path has no name")
	}

	dirSegments := segments
	if entry.IsFile {
		dirSegments = segments[:len(segments)-1]
	}

	cur := fs.root
	newCnt := 0
	for _, seg := range dirSegments {
		next, created, err := ensureDir(cur, DirName(seg))
		if err != nil {
			return newCnt, err
		}
		if created {
			newCnt++
		}
		cur = next
	}

	if entry.IsFile {
		file, err := NewFile(segments[len(segments)-1], entry.Content)
		if err != nil {
			return newCnt, err
		}
		if err := cur.Insert(file); err != nil {
			return newCnt, err
		}
	}
	return newCnt, nil
}

// ensureDir returns the direct child directory name of parent, creating it if absent
func ensureDir(parent *Directory, name string) (dir *Directory, created bool, err error) {
	if node, ok := parent.Find(name, false); ok {
		if dir, ok := node.(*Directory); ok {
			return dir, false, nil
		}
		return nil, false, treefs.NewError(treefs.DuplicateName, name, "exists in %s and is not a directory", parent.Path())
	}

	dir, err = NewDirectory(name)
	if err != nil {
		return nil, false, err
	}
	if err := parent.Insert(dir); err != nil {
		return nil, false, err
	}
	return dir, true, nil
}
