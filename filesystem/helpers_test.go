package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brettbedarf/treefs/config"
	"github.com/stretchr/testify/require"
)

// sampleDescriptor is the canonical three line descriptor used across tests
var sampleDescriptor = strings.Join([]string{
	"images/",
	"images/cat.png | binarydata123",
	"docs/readme.txt | hello world",
}, "\n")

func mustDir(t *testing.T, name string) *Directory {
	t.Helper()
	d, err := NewDirectory(name)
	require.NoError(t, err)
	return d
}

func mustFile(t *testing.T, name, content string) *File {
	t.Helper()
	f, err := NewFile(name, []byte(content))
	require.NoError(t, err)
	return f
}

// buildFS builds a Filesystem from descriptor text using the line format
func buildFS(t *testing.T, src string, opts ...Option) *Filesystem {
	t.Helper()
	fs, err := NewFromReader(config.NewDefaultConfig(), "test.txt", strings.NewReader(src), opts...)
	require.NoError(t, err)
	require.NotNil(t, fs)
	return fs
}

// writeDescriptor writes data to a file named name in a fresh temp dir
func writeDescriptor(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}
