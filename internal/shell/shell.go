// Package shell implements the interactive menu used to browse a filesystem
// tree. It holds no tree state of its own; every action goes through the
// public Filesystem operations and failures are reported, not fatal.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brettbedarf/treefs"
	"github.com/brettbedarf/treefs/filesystem"
	"github.com/brettbedarf/treefs/internal/util"
	"github.com/google/uuid"
)

// Menu options
const (
	OptListBrief = iota + 1
	OptListLong
	OptChangeDir
	OptRoot
	OptExit
	OptFind
	OptRemove
)

const menu = `
Choose an option:
 1. List current directory contents (brief)
 2. List current directory contents (long format)
 3. Change directory
 4. Go to root directory
 5. Exit
 6. Find (searches subdirectories)
 7. Remove
Enter your choice: `

// Shell reads menu choices from an input stream and writes results to out
// and failures to errOut.
type Shell struct {
	fs      *filesystem.Filesystem
	scanner *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	logger  util.Logger
}

func New(fs *filesystem.Filesystem, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		fs:      fs,
		scanner: bufio.NewScanner(in),
		out:     out,
		errOut:  errOut,
		logger: util.GetLogger("Shell").With().
			Str("session", uuid.New().String()).
			Str("fs_id", fs.ID()).
			Logger(),
	}
}

// Run loops until the exit option is chosen or the input ends.
// Only a failure to read the input is returned.
func (s *Shell) Run() error {
	s.logger.Debug().Msg("Shell session started")

	for done := false; !done; {
		s.printf("\nCurrent directory: %s\n", s.currentPath())
		s.printf("%s", menu)

		line, ok := s.readLine()
		if !ok {
			break
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			s.errorf("Invalid input, please try again.\n")
			continue
		}

		switch choice {
		case OptListBrief:
			s.list(filesystem.BriefFormat)
		case OptListLong:
			s.list(filesystem.LongFormat)
		case OptChangeDir:
			done = !s.changeDirectory()
		case OptRoot:
			// reset to root cannot fail
			_ = s.fs.ChangeDirectory("")
			s.printf("You are now at the root directory.\n")
		case OptFind:
			done = !s.find()
		case OptRemove:
			done = !s.remove()
		case OptExit:
			done = true
		default:
			s.errorf("Unknown option. Please try again.\n")
		}
	}

	if err := s.scanner.Err(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to read input")
		return fmt.Errorf("read input: %w", err)
	}
	s.printf("Exiting program.\n")
	s.logger.Debug().Msg("Shell session ended")
	return nil
}

func (s *Shell) currentPath() string {
	cur, err := s.fs.CurrentDirectory()
	if err != nil {
		return "(removed, go to root to continue)"
	}
	return cur.Path()
}

func (s *Shell) list(format filesystem.ListFormat) {
	cur, err := s.fs.CurrentDirectory()
	if err != nil {
		s.report(err)
		return
	}
	if err := cur.Display(s.out, format); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write listing")
	}
}

// changeDirectory returns false when the input ended
func (s *Shell) changeDirectory() bool {
	name, ok := s.prompt("Enter directory name (e.g., images/): ")
	if !ok {
		return false
	}
	if name == "" {
		s.errorf("No directory name provided.\n")
		return true
	}
	s.report(s.fs.ChangeDirectory(filesystem.DirName(name)))
	return true
}

// find returns false when the input ended
func (s *Shell) find() bool {
	name, ok := s.prompt("Enter name to find: ")
	if !ok {
		return false
	}
	if name == "" {
		s.errorf("No name provided.\n")
		return true
	}
	node, err := s.fs.Find(name, true)
	if err != nil {
		s.report(err)
		return true
	}
	s.printf("Found %s %s (%d bytes)\n", node.Kind(), node.Path(), node.Size())
	return true
}

// remove returns false when the input ended
func (s *Shell) remove() bool {
	name, ok := s.prompt("Enter name to remove (current directory only): ")
	if !ok {
		return false
	}
	if name == "" {
		s.errorf("No name provided.\n")
		return true
	}
	node, err := s.fs.Find(name, false)
	if err != nil {
		s.report(err)
		return true
	}

	recursive := false
	if node.Kind() == treefs.DirKind {
		answer, ok := s.prompt(fmt.Sprintf("%s is a directory. Remove recursively? [y/N]: ", node.Name()))
		if !ok {
			return false
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			s.printf("Removal cancelled.\n")
			return true
		}
		recursive = true
	}

	path := node.Path()
	if err := s.fs.Remove(name, recursive); err != nil {
		s.report(err)
		return true
	}
	s.printf("Removed %s\n", path)
	return true
}

func (s *Shell) prompt(msg string) (string, bool) {
	s.printf("%s", msg)
	return s.readLine()
}

// readLine returns the next trimmed input line; false once the input ends
func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	s.logger.Debug().Err(err).Msg("Operation failed")
	s.errorf("Error: %v\n", err)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(s.errOut, format, args...)
}
