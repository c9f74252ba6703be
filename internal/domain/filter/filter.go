// Package filter holds the listings filter selections and the panel that edits them.
package filter

import (
	"net/url"
	"slices"
	"strings"
)

// State is one filter selection. Selections keep the order the user picked them in.
type State struct {
	OnlyRemote bool     `json:"onlyRemote"`
	Providers  []string `json:"providers"`
	Tags       []string `json:"tags"`
	Locations  []string `json:"locations"`
}

// Query parameter names shared by the console URL and the backend request.
const (
	ParamOnlyRemote = "onlyRemote"
	ParamProviders  = "providersIn"
	ParamTags       = "tagsIn"
	ParamLocations  = "locationsIn"
)

var providers = []string{
	"LinkedIn",
	"Indeed",
	"Larajobs",
	"Glassdoor",
	"RemoteCo",
	"RemoteOk",
	"Remotive",
	"WeWorkRemotely",
	"ZipRecruiter",
	"SimplyHired",
	"CareerBuilder",
	"ThemUse",
	"Lensa",
}

var locations = []string{"United States"}

func Providers() []string {
	return slices.Clone(providers)
}

func Locations() []string {
	return slices.Clone(locations)
}

func IsKnownProvider(p string) bool {
	return slices.Contains(providers, p)
}

// Default is the empty selection: remote off, nothing selected.
func Default() State {
	return State{}
}

func (s State) Clone() State {
	return State{
		OnlyRemote: s.OnlyRemote,
		Providers:  slices.Clone(s.Providers),
		Tags:       slices.Clone(s.Tags),
		Locations:  slices.Clone(s.Locations),
	}
}

// IsEmpty reports whether the selection filters nothing.
func (s State) IsEmpty() bool {
	return !s.OnlyRemote && len(s.Providers) == 0 && len(s.Tags) == 0 && len(s.Locations) == 0
}

func (s State) Equal(o State) bool {
	return s.OnlyRemote == o.OnlyRemote &&
		slices.Equal(s.Providers, o.Providers) &&
		slices.Equal(s.Tags, o.Tags) &&
		slices.Equal(s.Locations, o.Locations)
}

func (s State) WithOnlyRemote(v bool) State {
	out := s.Clone()
	out.OnlyRemote = v
	return out
}

func (s State) ToggleOnlyRemote() State {
	return s.WithOnlyRemote(!s.OnlyRemote)
}

func (s State) WithProviders(vals ...string) State {
	out := s.Clone()
	out.Providers = clean(vals, IsKnownProvider)
	return out
}

func (s State) WithTags(vals ...string) State {
	out := s.Clone()
	out.Tags = clean(vals, nil)
	return out
}

func (s State) WithLocations(vals ...string) State {
	out := s.Clone()
	out.Locations = clean(vals, nil)
	return out
}

// ToggleProvider adds p when absent and removes it when present.
func (s State) ToggleProvider(p string) State {
	return s.WithProviders(toggle(s.Providers, p)...)
}

func (s State) ToggleTag(t string) State {
	return s.WithTags(toggle(s.Tags, t)...)
}

func (s State) ToggleLocation(l string) State {
	return s.WithLocations(toggle(s.Locations, l)...)
}

// FromQuery seeds a selection from console URL parameters, e.g.
// onlyRemote=1&providersIn=LinkedIn&tagsIn=reactjs,typescript&locationsIn=United%20States.
// Unknown providers and empty items are dropped.
func FromQuery(q url.Values) State {
	return State{
		OnlyRemote: q.Get(ParamOnlyRemote) == "1",
		Providers:  clean(splitList(q.Get(ParamProviders)), IsKnownProvider),
		Tags:       clean(splitList(q.Get(ParamTags)), nil),
		Locations:  clean(splitList(q.Get(ParamLocations)), nil),
	}
}

// ParseQuery is FromQuery over a raw query string.
func ParseQuery(raw string) (State, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return State{}, err
	}
	return FromQuery(q), nil
}

// Values renders the selection back into console URL form (comma lists, no brackets).
func (s State) Values() url.Values {
	q := url.Values{}
	if s.OnlyRemote {
		q.Set(ParamOnlyRemote, "1")
	}
	if len(s.Providers) > 0 {
		q.Set(ParamProviders, strings.Join(s.Providers, ","))
	}
	if len(s.Tags) > 0 {
		q.Set(ParamTags, strings.Join(s.Tags, ","))
	}
	if len(s.Locations) > 0 {
		q.Set(ParamLocations, strings.Join(s.Locations, ","))
	}
	return q
}

func splitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func clean(vals []string, keep func(string) bool) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		if keep != nil && !keep(v) {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toggle(vals []string, v string) []string {
	v = strings.TrimSpace(v)
	if i := slices.Index(vals, v); i >= 0 {
		return slices.Delete(slices.Clone(vals), i, i+1)
	}
	return append(slices.Clone(vals), v)
}
