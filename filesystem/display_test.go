package filesystem

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_Display_Brief(t *testing.T) {
	t.Parallel()

	fs := buildFS(t, sampleDescriptor)
	var buf bytes.Buffer

	require.NoError(t, fs.Root().Display(&buf, BriefFormat))

	assert.Equal(t,
		"Total size: 24 bytes\n"+
			"D | images/         | \n"+
			"D | docs/           | \n",
		buf.String())
}

func TestDirectory_Display_Long(t *testing.T) {
	t.Parallel()

	fs := buildFS(t, sampleDescriptor+"\nnotes.txt | 12345\na-very-long-file-name.txt | abc")
	var buf bytes.Buffer

	require.NoError(t, fs.Root().Display(&buf, LongFormat))

	assert.Equal(t,
		"Total size: 32 bytes\n"+
			"D | images/         |  1 |         13 bytes |\n"+
			"D | docs/           |  1 |         11 bytes |\n"+
			"F | notes.txt       |    |          5 bytes |\n"+
			"F | a-very-long-file-name.txt |    |          3 bytes |\n",
		buf.String())
}

func TestDirectory_Display_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, mustDir(t, "empty").Display(&buf, LongFormat))

	assert.Equal(t, "Total size: 0 bytes\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestDirectory_Display_WriteError(t *testing.T) {
	t.Parallel()

	fs := buildFS(t, sampleDescriptor)

	err := fs.Root().Display(failingWriter{}, BriefFormat)

	assert.EqualError(t, err, "closed pipe")
	assert.Equal(t, 2, fs.Root().ChildCount())
}
