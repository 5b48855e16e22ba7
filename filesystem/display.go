package filesystem

import (
	"fmt"
	"io"
	"strings"

	"github.com/brettbedarf/treefs"
)

// ListFormat selects the columns written by [Directory.Display]
type ListFormat int

const (
	BriefFormat ListFormat = iota
	LongFormat             // adds child count and size columns
)

const (
	nameWidth  = 15
	countWidth = 2
	sizeWidth  = 10
)

// Display writes the directory's total size followed by one line per direct
// child. The listing is assembled first and written with a single call.
func (d *Directory) Display(w io.Writer, format ListFormat) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Total size: %d bytes\n", d.Size())

	for _, child := range d.children {
		if child.Kind() == treefs.DirKind {
			b.WriteString("D | ")
		} else {
			b.WriteString("F | ")
		}
		fmt.Fprintf(&b, "%-*s | ", nameWidth, child.Name())

		if format == LongFormat {
			if child.Kind() == treefs.DirKind {
				fmt.Fprintf(&b, "%*d | ", countWidth, child.ChildCount())
			} else {
				b.WriteString(strings.Repeat(" ", countWidth+1) + "| ")
			}
			fmt.Fprintf(&b, "%*d bytes |", sizeWidth, child.Size())
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
