package treefs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: NotFound}, "not found"},
		{"with path", &Error{Kind: DuplicateName, Path: "a.txt"}, "duplicate name: a.txt"},
		{"with message", NewError(ConfirmRequired, "images/", "is a directory"), "confirmation required: images/: is a directory"},
		{"with cause", &Error{Kind: IOError, Path: "x.txt", Msg: "invalid file name", Err: fs.ErrNotExist}, "io error: x.txt: invalid file name: file does not exist"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("descriptor fs.txt:3: %w", NewError(DuplicateName, "a", "exists"))

	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, errors.New("duplicate name"))

	var treeErr *Error
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, "a", treeErr.Path)
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: IOError, Err: fs.ErrPermission}

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.ErrorIs(t, err, ErrIO)
}

func TestKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file", FileKind.String())
	assert.Equal(t, "dir", DirKind.String())
	assert.Equal(t, "unknown", NodeKind(0).String())
	assert.Equal(t, "invalid target", InvalidTarget.String())
	assert.Equal(t, "unknown error", ErrorKind(99).String())
}
