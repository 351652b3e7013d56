package records

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/alhinc/calcsales/internal/id"
)

// ErrNotSequential marks a gap or repeat in the record file sequence.
var ErrNotSequential = errors.New("record files are not sequential")

// maxLineSize bounds a single record line.
const maxLineSize = 1 << 20

// File describes a record file in the input directory.
type File struct {
	Name string
	Seq  int
}

// Discover returns the record files at the root of fsys in ascending order.
// Entries that are not regular files named like "00000001.<ext>" are ignored.
// The sequence must step by exactly one.
func Discover(fsys fs.FS, ext string) ([]File, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []File
	for _, e := range entries {
		seq, err := id.ParseRecordName(e.Name(), ext)
		if err != nil {
			continue
		}
		regular, err := isRegular(fsys, e)
		if err != nil {
			return nil, err
		}
		if !regular {
			continue
		}
		files = append(files, File{Name: e.Name(), Seq: seq})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	if err := CheckSequence(files); err != nil {
		return nil, err
	}
	return files, nil
}

// CheckSequence verifies that each file's sequence number is one more than
// the previous file's.
func CheckSequence(files []File) error {
	for i := 1; i < len(files); i++ {
		if files[i].Seq-files[i-1].Seq != 1 {
			return fmt.Errorf("%s follows %s: %w", files[i].Name, files[i-1].Name, ErrNotSequential)
		}
	}
	return nil
}

// ReadLines returns the lines of a record file. LF and CRLF endings are
// accepted and a final newline is optional.
func ReadLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return lines, nil
}

// isRegular follows symlinks so a link to a regular file counts as one.
func isRegular(fsys fs.FS, e fs.DirEntry) (bool, error) {
	if e.Type().IsRegular() {
		return true, nil
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := fs.Stat(fsys, e.Name())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", e.Name(), err)
	}
	return info.Mode().IsRegular(), nil
}
