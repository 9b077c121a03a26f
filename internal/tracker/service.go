// Package tracker puts validation in front of the JSON store. The store
// accepts anything; every front end goes through a Service instead.
package tracker

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/activitycal/internal/log"
	"github.com/idilsaglam/activitycal/internal/model"
	"github.com/idilsaglam/activitycal/internal/store/jsonstore"
)

var (
	// ErrCategoryInUse blocks deleting a category that activities still
	// reference.
	ErrCategoryInUse = errors.New("category is used by activities")
	// ErrNotFound is returned by the single-record lookups. Updates and
	// deletes of missing records stay silent.
	ErrNotFound = errors.New("not found")
)

// Store is the persistence the service needs. *jsonstore.Store satisfies it.
type Store interface {
	Categories() ([]model.Category, error)
	AddCategory(name, color string) (int, error)
	DeleteCategory(id int) error
	Activities(f jsonstore.Filter) ([]model.Activity, error)
	AddActivity(a model.Activity) (int, error)
	UpdateActivity(id int, u jsonstore.Update) error
	DeleteActivity(id int) error
}

// Service validates input and forwards to the store.
type Service struct {
	store Store
	log   *log.Logger
}

func New(store Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Discard()
	}
	return &Service{store: store, log: logger.WithComponent("tracker")}
}

func (s *Service) Categories() ([]model.Category, error) {
	return s.store.Categories()
}

// Category looks one category up by id.
func (s *Service) Category(id int) (model.Category, error) {
	cats, err := s.store.Categories()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range cats {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
}

// CategoryByName matches the sanitised name exactly.
func (s *Service) CategoryByName(name string) (model.Category, error) {
	cats, err := s.store.Categories()
	if err != nil {
		return model.Category{}, err
	}
	name = model.Sanitize(name)
	for _, c := range cats {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("category %q: %w", name, ErrNotFound)
}

// ColorIndex maps category ids to colours.
func (s *Service) ColorIndex() (map[int]string, error) {
	cats, err := s.store.Categories()
	if err != nil {
		return nil, err
	}
	out := make(map[int]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Color
	}
	return out, nil
}

func (s *Service) AddCategory(name, color string) (int, error) {
	c, err := model.NewCategory(name, color)
	if err != nil {
		return 0, err
	}
	id, err := s.store.AddCategory(c.Name, c.Color)
	if err != nil {
		return 0, err
	}
	s.log.Info("category added", "id", id, "name", c.Name)
	return id, nil
}

// DeleteCategory refuses while any activity references id. Deleting an
// unknown id succeeds.
func (s *Service) DeleteCategory(id int) error {
	used, err := s.store.Activities(jsonstore.Filter{}.InCategory(id))
	if err != nil {
		return err
	}
	if len(used) > 0 {
		return fmt.Errorf("category %d (%d activities): %w", id, len(used), ErrCategoryInUse)
	}
	if err := s.store.DeleteCategory(id); err != nil {
		return err
	}
	s.log.Info("category deleted", "id", id)
	return nil
}

func (s *Service) Activities(f jsonstore.Filter) ([]model.Activity, error) {
	if f.StartDate != "" && !model.ValidateDate(f.StartDate) {
		return nil, model.Invalid("start date", model.ErrInvalidDate)
	}
	if f.EndDate != "" && !model.ValidateDate(f.EndDate) {
		return nil, model.Invalid("end date", model.ErrInvalidDate)
	}
	return s.store.Activities(f)
}

func (s *Service) ActivitiesOn(date string) ([]model.Activity, error) {
	return s.Activities(jsonstore.Day(date))
}

// Activity looks one activity up by id.
func (s *Service) Activity(id int) (model.Activity, error) {
	acts, err := s.store.Activities(jsonstore.Filter{})
	if err != nil {
		return model.Activity{}, err
	}
	for _, a := range acts {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Activity{}, fmt.Errorf("activity %d: %w", id, ErrNotFound)
}

func (s *Service) AddActivity(title string, categoryID int, date string, duration int, notes string) (int, error) {
	a, err := model.NewActivity(title, categoryID, date, duration, notes)
	if err != nil {
		return 0, err
	}
	if err := s.requireCategory(a.CategoryID); err != nil {
		return 0, err
	}
	id, err := s.store.AddActivity(a)
	if err != nil {
		return 0, err
	}
	s.log.Info("activity added", "id", id, "date", a.Date)
	return id, nil
}

// UpdateActivity validates like AddActivity. The date cannot change; an
// unknown id is a silent no-op.
func (s *Service) UpdateActivity(id int, title string, categoryID int, duration int, notes string) error {
	// any valid date will do; only the other fields are kept
	a, err := model.NewActivity(title, categoryID, "2000-01-01", duration, notes)
	if err != nil {
		return err
	}
	if err := s.requireCategory(a.CategoryID); err != nil {
		return err
	}
	if err := s.store.UpdateActivity(id, jsonstore.Update{
		Title:      a.Title,
		CategoryID: a.CategoryID,
		Duration:   a.Duration,
		Notes:      a.Notes,
	}); err != nil {
		return err
	}
	s.log.Info("activity updated", "id", id)
	return nil
}

func (s *Service) DeleteActivity(id int) error {
	if err := s.store.DeleteActivity(id); err != nil {
		return err
	}
	s.log.Info("activity deleted", "id", id)
	return nil
}

func (s *Service) requireCategory(id int) error {
	if _, err := s.Category(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Invalid("category", model.ErrUnknownCategory)
		}
		return err
	}
	return nil
}
