package shell

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/brettbedarf/treefs/config"
	"github.com/brettbedarf/treefs/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "images/\nimages/cat.png | binarydata123\ndocs/readme.txt | hello world\n"

// runShell feeds input lines to a fresh shell and returns stdout, stderr
func runShell(t *testing.T, input ...string) (*filesystem.Filesystem, string, string) {
	t.Helper()
	fs, err := filesystem.NewFromReader(config.NewDefaultConfig(), "test.txt", strings.NewReader(sample))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	sh := New(fs, strings.NewReader(strings.Join(input, "\n")+"\n"), &out, &errOut)
	require.NoError(t, sh.Run())
	return fs, out.String(), errOut.String()
}

func TestShellExit(t *testing.T) {
	_, out, errOut := runShell(t, "5")
	assert.Contains(t, out, " 5. Exit\n")
	assert.NotContains(t, out, "Enter name to find")
	assert.Contains(t, out, "Current directory: /\n")
	assert.Contains(t, out, "Enter your choice: ")
	assert.True(t, strings.HasSuffix(out, "Exiting program.\n"))
	assert.Empty(t, errOut)
}

func TestShellEndOfInput(t *testing.T) {
	fs, err := filesystem.NewFromReader(config.NewDefaultConfig(), "test.txt", strings.NewReader(sample))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	require.NoError(t, New(fs, strings.NewReader(""), &out, &errOut).Run())
	assert.Contains(t, out.String(), "Exiting program.")
}

func TestShellReadError(t *testing.T) {
	fs, err := filesystem.NewFromReader(config.NewDefaultConfig(), "test.txt", strings.NewReader(sample))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	boom := errors.New("boom")
	err = New(fs, iotest.ErrReader(boom), &out, &errOut).Run()
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, out.String(), "Exiting program.")
}

func TestShellListing(t *testing.T) {
	_, out, _ := runShell(t, "1", "2", "5")
	assert.Contains(t, out, "Total size: 24 bytes\n")
	assert.Contains(t, out, "D | images/         | \n")
	assert.Contains(t, out, "D | docs/           | \n")
	assert.Contains(t, out, "D | images/         |  1 |         13 bytes |\n")
	assert.Contains(t, out, "D | docs/           |  1 |         11 bytes |\n")
}

func TestShellChangeDirectory(t *testing.T) {
	t.Run("appends separator", func(t *testing.T) {
		fs, out, errOut := runShell(t, "3", "images", "1")
		assert.Contains(t, out, "Enter directory name (e.g., images/): ")
		assert.Contains(t, out, "Current directory: /images/\n")
		assert.Contains(t, out, "F | cat.png         | \n")
		assert.Empty(t, errOut)

		cur, err := fs.CurrentDirectory()
		require.NoError(t, err)
		assert.Equal(t, "/images/", cur.Path())
	})

	t.Run("back to root", func(t *testing.T) {
		fs, out, _ := runShell(t, "3", "docs/", "4", "5")
		assert.Contains(t, out, "You are now at the root directory.")
		cur, err := fs.CurrentDirectory()
		require.NoError(t, err)
		assert.Equal(t, "/", cur.Path())
	})

	t.Run("missing target", func(t *testing.T) {
		_, _, errOut := runShell(t, "3", "videos", "5")
		assert.Contains(t, errOut, "Error: invalid target: videos/")
	})

	t.Run("empty name", func(t *testing.T) {
		_, _, errOut := runShell(t, "3", "", "5")
		assert.Contains(t, errOut, "No directory name provided.")
	})
}

func TestShellInvalidChoice(t *testing.T) {
	_, out, errOut := runShell(t, "abc", "42", "5")
	assert.Contains(t, errOut, "Invalid input, please try again.\n")
	assert.Contains(t, errOut, "Unknown option. Please try again.\n")
	assert.Contains(t, out, "Exiting program.")
}

func TestShellFind(t *testing.T) {
	_, out, errOut := runShell(t, "6", "readme.txt", "6", "missing", "5")
	assert.Contains(t, out, "Found file /docs/readme.txt (11 bytes)\n")
	assert.Contains(t, errOut, "Error: not found: missing")
}

func TestShellRemove(t *testing.T) {
	t.Run("file without confirmation", func(t *testing.T) {
		fs, out, errOut := runShell(t, "3", "docs", "7", "readme.txt", "5")
		assert.Empty(t, errOut)
		assert.NotContains(t, out, "Remove recursively?")
		assert.Contains(t, out, "Removed /docs/readme.txt\n")
		assert.EqualValues(t, 13, fs.Root().Size())
	})

	t.Run("directory confirmed", func(t *testing.T) {
		fs, out, _ := runShell(t, "7", "images/", "y", "5")
		assert.Contains(t, out, "images/ is a directory. Remove recursively? [y/N]: ")
		assert.Contains(t, out, "Removed /images/\n")
		assert.Equal(t, 1, fs.Root().ChildCount())
	})

	t.Run("directory declined", func(t *testing.T) {
		fs, out, _ := runShell(t, "7", "images/", "n", "5")
		assert.Contains(t, out, "Removal cancelled.")
		assert.Equal(t, 2, fs.Root().ChildCount())
	})

	t.Run("not a direct child", func(t *testing.T) {
		fs, _, errOut := runShell(t, "7", "cat.png", "5")
		assert.Contains(t, errOut, "Error: not found: cat.png")
		assert.EqualValues(t, 24, fs.Root().Size())
	})
}

func TestShellStaleCursor(t *testing.T) {
	fs, err := filesystem.NewFromReader(config.NewDefaultConfig(), "test.txt", strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, fs.ChangeDirectory("images/"))
	require.NoError(t, fs.Root().Remove("images/", true))

	var out, errOut bytes.Buffer
	require.NoError(t, New(fs, strings.NewReader("1\n4\n1\n5\n"), &out, &errOut).Run())
	assert.Contains(t, out.String(), "Current directory: (removed, go to root to continue)")
	assert.Contains(t, errOut.String(), "Error: invalid target")
	assert.Contains(t, out.String(), "D | docs/           | \n")
}
