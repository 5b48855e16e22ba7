// Package descriptor decodes the flat declarations a filesystem tree is
// built from. The line based text format is the default; structured JSON and
// YAML variants are selected by file extension.
package descriptor

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
)

// Entry is a single declaration: a directory chain or a file with content
type Entry struct {
	Pos     int    // 1-based position of the declaration; the line number for text descriptors
	Path    string // slash separated path relative to the root
	IsFile  bool
	Content []byte
}

// Decoder turns a descriptor stream into its entries, in declaration order
type Decoder func(r io.Reader) ([]Entry, error)

// Extensions of the built-in formats
const (
	TextExt = ".txt"
	JSONExt = ".json"
	YAMLExt = ".yaml"
	YMLExt  = ".yml"
)

var decoders = xsync.NewMapOf[string, Decoder]()

func init() {
	Register(TextExt, DecodeText)
	Register(JSONExt, DecodeJSON)
	Register(YAMLExt, DecodeYAML)
	Register(YMLExt, DecodeYAML)
}

// Register ties a decoder to a file extension such as ".txt", replacing any
// previous registration. Extensions are matched case-insensitively.
func Register(ext string, dec Decoder) {
	decoders.Store(normalizeExt(ext), dec)
}

// Lookup returns the decoder registered for ext
func Lookup(ext string) (Decoder, bool) {
	return decoders.Load(normalizeExt(ext))
}

// Decode picks a decoder by the extension of name and decodes r with it.
// Unregistered extensions fall back to the text format.
func Decode(name string, r io.Reader) ([]Entry, error) {
	dec, ok := Lookup(filepath.Ext(name))
	if !ok {
		dec = DecodeText
	}
	return dec(r)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
