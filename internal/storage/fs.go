// Package storage reads and writes the puzzle corpus: a flat directory of
// numbered web_N.json files, the layout the authoring tools produce. YAML
// puzzles are accepted on load for hand-written fixtures.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spydir/spydirwebz/pkg/puzzle"
)

var puzzleFile = regexp.MustCompile(`^web_(\d+)\.json$`)

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// NextNumber returns the number the next saved puzzle will get: one past
// the highest existing web_N.json, or 1 for an empty or missing directory.
func (s *FS) NextNumber(ctx context.Context) (int, error) {
	ents, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	next := 1
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		m := puzzleFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return next, nil
}

// Save writes p under the next free number and returns the file path. The
// puzzle is checked before anything touches the disk.
func (s *FS) Save(ctx context.Context, p *puzzle.Puzzle) (string, error) {
	if err := p.Check(); err != nil {
		return "", err
	}
	n, err := s.NextNumber(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, fmt.Sprintf("web_%d.json", n))
	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := puzzle.EncodeJSON(f, p); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}

// Load reads one puzzle file, JSON or YAML by extension.
func (s *FS) Load(ctx context.Context, path string) (*puzzle.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return puzzle.DecodeYAML(f)
	default:
		return puzzle.DecodeJSON(f)
	}
}

// List returns the paths of every numbered puzzle file in ascending
// numeric order.
func (s *FS) List(ctx context.Context) ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	type numbered struct {
		n    int
		path string
	}
	var files []numbered
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		m := puzzleFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		files = append(files, numbered{n: n, path: filepath.Join(s.dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].n < files[j].n })
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
