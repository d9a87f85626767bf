package roster

import (
	"encoding/json"
	"fmt"
	"os"
)

// Worker is one member of the fixed duty roster.
type Worker struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Roster is the ordered set of workers eligible for assignment.
// It is static configuration, not runtime data.
type Roster []Worker

// DefaultRoster is the built-in team with its display colors.
var DefaultRoster = Roster{
	{Name: "박성빈", Color: "#FFD700"},
	{Name: "오승현", Color: "#FFB6C1"},
	{Name: "우유리", Color: "#98FB98"},
	{Name: "이지영", Color: "#ADD8E6"},
	{Name: "이혁", Color: "#E6E6FA"},
	{Name: "홍시현", Color: "#FFCC99"},
}

// Contains reports whether name belongs to the roster.
func (r Roster) Contains(name string) bool {
	for _, w := range r {
		if w.Name == name {
			return true
		}
	}
	return false
}

// Names returns the worker names in roster order.
func (r Roster) Names() []string {
	names := make([]string, len(r))
	for i, w := range r {
		names[i] = w.Name
	}
	return names
}

// Colors returns the name → display color mapping.
func (r Roster) Colors() map[string]string {
	colors := make(map[string]string, len(r))
	for _, w := range r {
		colors[w.Name] = w.Color
	}
	return colors
}

// LoadRoster reads a roster override from a JSON file
// (an array of {"name", "color"} objects).
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var r Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid roster file format: %w", err)
	}
	if len(r) == 0 {
		return nil, fmt.Errorf("roster file contains no workers")
	}
	for _, w := range r {
		if w.Name == "" {
			return nil, fmt.Errorf("roster file contains a worker without a name")
		}
	}
	return r, nil
}
