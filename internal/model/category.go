package model

import "strings"

// Category is a named, coloured tag applied to activities.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewCategory sanitises name and checks the colour. The ID is left at zero;
// the store assigns it.
func NewCategory(name, color string) (Category, error) {
	name = Sanitize(name)
	if name == "" {
		return Category{}, invalid("name", ErrEmptyName)
	}
	color = strings.TrimSpace(color)
	if !ValidateColor(color) {
		return Category{}, invalid("color", ErrInvalidColor)
	}
	return Category{Name: name, Color: color}, nil
}

// SeedCategories are written to a fresh activities document.
func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Sport", Color: "#FF5733"},
		{ID: 2, Name: "Lecture", Color: "#33A8FF"},
		{ID: 3, Name: "Méditation", Color: "#B033FF"},
		{ID: 4, Name: "Travail", Color: "#33FF57"},
	}
}
