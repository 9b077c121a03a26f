package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/activitycal/internal/log"
	"github.com/idilsaglam/activitycal/internal/model"
)

// JSON-backed storage. One activities file plus a journal file, both
// human-readable. Every call re-reads the file, mutates, and rewrites it.
// Writes go through a temp file and a rename. Nothing guards against a
// second process.

const (
	DefaultActivitiesFile = "activity_tracker_data.json"
	DefaultJournalFile    = "journal_data.json"

	tmpSuffix = ".tmp"
	filePerm  = 0o644
)

// Store owns the activities and journal documents.
type Store struct {
	path        string
	journalPath string

	mu  sync.Mutex
	log *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l.WithComponent("jsonstore")
		}
	}
}

// Filter narrows Activities. Zero values mean "no bound". CategoryID is a
// pointer so that nil (no filter) is distinct from any id.
type Filter struct {
	StartDate  string
	EndDate    string
	CategoryID *int
}

// Day returns a filter matching exactly one date.
func Day(date string) Filter { return Filter{StartDate: date, EndDate: date} }

// InCategory returns a copy of f restricted to one category.
func (f Filter) InCategory(id int) Filter {
	f.CategoryID = &id
	return f
}

// Match reports whether a passes every bound of f. Dates compare as strings.
func (f Filter) Match(a model.Activity) bool {
	if f.StartDate != "" && a.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && a.Date > f.EndDate {
		return false
	}
	if f.CategoryID != nil && a.CategoryID != *f.CategoryID {
		return false
	}
	return true
}

// Update carries the mutable fields of an activity. The date is not one of
// them.
type Update struct {
	Title      string
	CategoryID int
	Duration   int
	Notes      string
}

// Open prepares a store at path, seeding the activities and journal
// documents if they do not exist yet. An empty journalPath puts the journal
// next to the activities file.
func Open(path, journalPath string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonstore: empty path")
	}
	if journalPath == "" {
		journalPath = filepath.Join(filepath.Dir(path), DefaultJournalFile)
	}
	s := &Store{path: path, journalPath: journalPath, log: log.Discard()}
	for _, o := range opts {
		o(s)
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the activities document location.
func (s *Store) Path() string { return s.path }

// JournalPath returns the journal document location.
func (s *Store) JournalPath() string { return s.journalPath }

func (s *Store) initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		doc := model.Document{Categories: model.SeedCategories(), Activities: []model.Activity{}}
		if err := writeJSON(s.path, doc); err != nil {
			return err
		}
		s.log.Info("seeded activities document", "path", s.path)
	} else if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.journalPath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if _, err := os.Stat(s.journalPath); errors.Is(err, os.ErrNotExist) {
		if err := writeJSON(s.journalPath, model.Journal{JournalEntries: []any{}}); err != nil {
			return err
		}
		s.log.Info("seeded journal document", "path", s.journalPath)
	} else if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	return nil
}

// -------------- categories ----------------

func (s *Store) Categories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

// AddCategory appends a category and returns its id (max existing + 1, or 1).
// Name and colour are stored as given.
func (s *Store) AddCategory(name, color string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	id := 1
	for _, c := range doc.Categories {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	doc.Categories = append(doc.Categories, model.Category{ID: id, Name: name, Color: color})
	if err := s.save(doc); err != nil {
		return 0, err
	}
	s.log.Debug("category added", "id", id)
	return id, nil
}

// DeleteCategory removes the category with the given id, if any. Activities
// that reference it are left alone.
func (s *Store) DeleteCategory(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	kept := doc.Categories[:0]
	for _, c := range doc.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	doc.Categories = kept
	if err := s.save(doc); err != nil {
		return err
	}
	s.log.Debug("category deleted", "id", id)
	return nil
}

// -------------- activities ----------------

// Activities returns the activities matching f in insertion order.
func (s *Store) Activities(f Filter) ([]model.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.Activity, 0, len(doc.Activities))
	for _, a := range doc.Activities {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// AddActivity appends a and returns its assigned id. a.ID is ignored.
func (s *Store) AddActivity(a model.Activity) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0, err
	}
	id := 1
	for _, x := range doc.Activities {
		if x.ID >= id {
			id = x.ID + 1
		}
	}
	a.ID = id
	doc.Activities = append(doc.Activities, a)
	if err := s.save(doc); err != nil {
		return 0, err
	}
	s.log.Debug("activity added", "id", id, "date", a.Date)
	return id, nil
}

// UpdateActivity overwrites title, category, duration and notes of the
// activity with the given id. A missing id is not an error. The file is
// rewritten either way.
func (s *Store) UpdateActivity(id int, u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Activities {
		if doc.Activities[i].ID == id {
			doc.Activities[i].Title = u.Title
			doc.Activities[i].CategoryID = u.CategoryID
			doc.Activities[i].Duration = u.Duration
			doc.Activities[i].Notes = u.Notes
			break
		}
	}
	if err := s.save(doc); err != nil {
		return err
	}
	s.log.Debug("activity updated", "id", id)
	return nil
}

// DeleteActivity removes the activity with the given id, if any.
func (s *Store) DeleteActivity(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	kept := doc.Activities[:0]
	for _, a := range doc.Activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	doc.Activities = kept
	if err := s.save(doc); err != nil {
		return err
	}
	s.log.Debug("activity deleted", "id", id)
	return nil
}

// -------------- file helpers ----------------

func (s *Store) load() (model.Document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return model.Document{}, fmt.Errorf("read file: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return model.Document{}, fmt.Errorf("json unmarshal %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Store) save(doc model.Document) error {
	if doc.Categories == nil {
		doc.Categories = []model.Category{}
	}
	if doc.Activities == nil {
		doc.Activities = []model.Activity{}
	}
	return writeJSON(s.path, doc)
}

// writeJSON encodes v with four-space indentation and without HTML escaping,
// then swaps it into place.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
