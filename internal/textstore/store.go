// File store for the text-file backend: durable load/save of one entity
// collection per file inside a data directory, with atomic rewrites.

package textstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/bookshelf/pkg/types"
)

// Per-entity-kind file names inside the data directory.
const (
	UsersFile = "users.txt"
	BooksFile = "books.txt"
	LoansFile = "loans.txt"
)

// fileNames lists every file the store maintains.
var fileNames = []string{UsersFile, BooksFile, LoansFile}

// LineError records one line that failed to decode during a load.
type LineError struct {
	File string // File name, e.g. "users.txt".
	Line int    // 1-based line number.
	Text string // The offending line as read.
	Err  error  // Why it failed to decode.
}

func (e LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Store reads and writes the three entity files inside a data directory.
// It is stateless apart from the directory path; the repository owns the
// in-memory collections.
type Store struct {
	dir string
	log *logrus.Logger
}

// NewStore returns a Store rooted at dir. A nil logger falls back to the
// logrus standard logger.
func NewStore(dir string, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{dir: dir, log: log}
}

// Dir returns the data directory the store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// LoadUsers reads users.txt. A missing file is normal startup state and
// yields an empty collection.
func (s *Store) LoadUsers() ([]types.User, []LineError, error) {
	return loadFile(s, UsersFile, DecodeUser)
}

// SaveUsers rewrites users.txt with the full collection.
func (s *Store) SaveUsers(users []types.User) error {
	return saveFile(s, UsersFile, users, EncodeUser)
}

// LoadBooks reads books.txt, upgrading legacy 5-field lines on the way in.
func (s *Store) LoadBooks() ([]types.Book, []LineError, error) {
	return loadFile(s, BooksFile, DecodeBook)
}

// SaveBooks rewrites books.txt with the full collection.
func (s *Store) SaveBooks(books []types.Book) error {
	return saveFile(s, BooksFile, books, EncodeBook)
}

// LoadLoans reads loans.txt.
func (s *Store) LoadLoans() ([]types.Loan, []LineError, error) {
	return loadFile(s, LoansFile, DecodeLoan)
}

// SaveLoans rewrites loans.txt with the full collection.
func (s *Store) SaveLoans(loans []types.Loan) error {
	return saveFile(s, LoansFile, loans, EncodeLoan)
}

// CheckFiles reports whether all three entity files exist, logging the
// status of any that are missing. Diagnostics only.
func (s *Store) CheckFiles() bool {
	allExist := true
	for _, name := range fileNames {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			s.log.WithField("file", name).Info("data file not found")
			allExist = false
		}
	}
	return allExist
}

// InitializeFiles creates any missing entity files as zero-byte files.
// Idempotent; existing files are left untouched.
func (s *Store) InitializeFiles() error {
	for _, name := range fileNames {
		path := filepath.Join(s.dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", name, err)
		}
	}
	return nil
}

// loadFile reads one entity file line by line, decoding each line and
// accumulating successes. Completely empty lines are skipped silently;
// lines that fail to decode are dropped, logged as warnings, and recorded
// in the returned report. A missing file yields an empty collection.
func loadFile[T any](s *Store, name string, decode func(string) (T, error)) ([]T, []LineError, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.WithField("file", name).Debug("data file not found, starting empty")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	var (
		entities []T
		report   []LineError
		lineNum  int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entity, err := decode(line)
		if err != nil {
			lineErr := LineError{File: name, Line: lineNum, Text: line, Err: err}
			report = append(report, lineErr)
			s.log.WithFields(logrus.Fields{
				"file": name,
				"line": lineNum,
			}).Warnf("skipping malformed record: %v", err)
			continue
		}
		entities = append(entities, entity)
	}
	if err := scanner.Err(); err != nil {
		// Return what was parsed before the failure.
		return entities, report, fmt.Errorf("reading %s: %w", name, err)
	}

	return entities, report, nil
}

// saveFile serializes the whole collection and replaces the file using the
// temp-file, fsync, rename pattern so a crash mid-write leaves the
// previous contents intact.
func saveFile[T any](s *Store, name string, entities []T, encode func(T) string) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, entity := range entities {
		if _, err := w.WriteString(encode(entity)); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
