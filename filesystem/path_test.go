package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		parent, name, want string
	}{
		{"/", "/", "/"},
		{"/", "x", "/x"},
		{"/", "images/", "/images/"},
		{"/a/", "x", "/a/x"},
		{"/a", "x", "/a/x"},
		{"/a/", "b/", "/a/b/"},
		{"//", "x", "/x"},
		{"", "x", "/x"},
		{"/a/", "/x", "/a/x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.parent+"+"+tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, JoinPath(tt.parent, tt.name))
		})
	}
}

func TestSplitSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, SplitSegments("a/b/c"))
	assert.Equal(t, []string{"a", "b"}, SplitSegments("/a//b/"))
	assert.Equal(t, []string{"my dir", "f"}, SplitSegments(" my dir / f "))
	assert.Empty(t, SplitSegments(""))
	assert.Empty(t, SplitSegments("/ / /"))
}

func TestDirName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/", DirName("a"))
	assert.Equal(t, "a/", DirName("a/"))
	assert.Equal(t, "/", DirName("/"))
}
