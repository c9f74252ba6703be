package tag

import "strings"

type Alias struct {
	ID    *int64 `json:"id,omitempty"`
	Alias string `json:"alias" validate:"required"`
}

type Tag struct {
	ID      int64   `json:"id,omitempty"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Aliases []Alias `json:"aliases,omitempty"`
}

// AliasNames returns the alias strings in order.
func (t Tag) AliasNames() []string {
	out := make([]string, 0, len(t.Aliases))
	for _, a := range t.Aliases {
		out = append(out, a.Alias)
	}
	return out
}

// Matches reports whether q (case-insensitive) appears in the name, type or any alias.
func (t Tag) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Type), q) {
		return true
	}
	for _, a := range t.Aliases {
		if strings.Contains(strings.ToLower(a.Alias), q) {
			return true
		}
	}
	return false
}

// Form is the add/edit tag input.
type Form struct {
	ID      int64   `json:"id,omitempty"`
	Name    string  `json:"name" validate:"required"`
	Type    string  `json:"type" validate:"required"`
	Aliases []Alias `json:"aliases" validate:"omitempty,dive"`
}

func (f Form) Tag() Tag {
	return Tag{ID: f.ID, Name: f.Name, Type: f.Type, Aliases: f.Aliases}
}
