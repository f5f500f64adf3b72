package logging

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

const (
	mb = 1000000

	DefaultMaxLogSize = 2.5 * mb
	DefaultMaxLogs    = 2
)

// RollingFileWriter appends to <name>.log until it passes MaxSize, then shifts the archived
// logs up one index (<name>-1.log becomes <name>-2.log) and starts a new file. At most
// MaxLogs files are kept, counting the live one.
type RollingFileWriter struct {
	Directory string
	Name      string
	MaxSize   int64
	MaxLogs   int

	mu sync.Mutex
}

func NewRollingFileWriter(dir string, name string) (*RollingFileWriter, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	return &RollingFileWriter{
		Directory: absDir,
		Name:      name,
		MaxSize:   DefaultMaxLogSize,
		MaxLogs:   DefaultMaxLogs,
	}, nil
}

func (w *RollingFileWriter) Path() string {
	return filepath.Join(w.Directory, w.Name+".log")
}

func (w *RollingFileWriter) indexedPath(name string, index int64) string {
	return filepath.Join(w.Directory, fmt.Sprintf("%s-%d.log", name, index))
}

// archived returns the full paths of name-N.log files, ordered by index.
func (w *RollingFileWriter) archived(name string) ([]string, error) {
	matches, err := fs.Glob(os.DirFS(w.Directory), name+"-*.log")
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b string) int {
		ai, _ := logIndex(name, a)
		bi, _ := logIndex(name, b)
		return int(ai - bi)
	})

	return lo.Map(matches, func(match string, _ int) string {
		return filepath.Join(w.Directory, match)
	}), nil
}

func (w *RollingFileWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if stats, err := os.Stat(w.Path()); err == nil && stats.Size() >= w.MaxSize {
		if err := w.roll(); err != nil {
			return 0, err
		}
	}

	file, err := os.OpenFile(w.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.Write(b)
}

func (w *RollingFileWriter) roll() error {
	logs, err := w.archived(w.Name)
	if err != nil {
		return err
	}

	// rename through a temporary prefix so name-1 -> name-2 never overwrites the old name-2
	for _, log := range logs {
		index, err := logIndex(w.Name, log)
		if err != nil {
			// not one of ours
			if err := os.Remove(log); err != nil {
				return err
			}
			continue
		}

		if err := os.Rename(log, w.indexedPath("mod-"+w.Name, index+1)); err != nil {
			return err
		}
	}

	shifted, err := w.archived("mod-" + w.Name)
	if err != nil {
		return err
	}
	for _, log := range shifted {
		renamed, _ := strings.CutPrefix(filepath.Base(log), "mod-")
		if err := os.Rename(log, filepath.Join(w.Directory, renamed)); err != nil {
			return err
		}
	}

	if err := os.Rename(w.Path(), w.indexedPath(w.Name, 1)); err != nil {
		return err
	}

	return w.prune()
}

// prune removes the oldest archives until MaxLogs files remain, the live log included.
func (w *RollingFileWriter) prune() error {
	logs, err := w.archived(w.Name)
	if err != nil {
		return err
	}

	keep := max(w.MaxLogs-1, 0)
	for len(logs) > keep {
		oldest := logs[len(logs)-1]
		if err := os.Remove(oldest); err != nil {
			return err
		}
		logs = logs[:len(logs)-1]
	}

	return nil
}

func logIndex(baseName string, path string) (int64, error) {
	fileName, _ := strings.CutSuffix(filepath.Base(path), ".log")
	indexStr, ok := strings.CutPrefix(fileName, baseName+"-")
	if !ok {
		return -1, fmt.Errorf("%s is not an archive of %s", path, baseName)
	}

	index, err := strconv.ParseInt(indexStr, 10, 32)
	if err != nil || index < 1 {
		return -1, fmt.Errorf("bad log index in %s", path)
	}
	return index, nil
}
