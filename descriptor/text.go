package descriptor

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/brettbedarf/treefs"
)

// FileSep divides a file declaration's path from its content
const FileSep = "|"

// DecodeText decodes the line format:
//
//	images/
//	images/cat.png | binarydata123
//
// Lines have no length limit. Blank lines are skipped and each line is
// trimmed. The first [FileSep] on a line marks a file; its content is the
// trimmed text after the separator.
func DecodeText(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)

	var entries []Entry
	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, &treefs.Error{Kind: treefs.IOError, Msg: "failed to read descriptor", Err: err}
		}

		if line := strings.TrimSpace(raw); line != "" {
			entry := Entry{Pos: lineNo, Path: line}
			if p, content, ok := strings.Cut(line, FileSep); ok {
				entry.Path = strings.TrimSpace(p)
				entry.IsFile = true
				if content = strings.TrimSpace(content); content != "" {
					entry.Content = []byte(content)
				}
			}
			entries = append(entries, entry)
		}

		if err != nil {
			return entries, nil
		}
	}
}
