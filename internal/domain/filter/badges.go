package filter

import "strings"

const (
	NoFiltersLabel     = "No filters applied"
	ActiveFiltersLabel = "Active filters:"
	OnlyRemoteBadge    = "Only Remotes"
)

// Badges summarizes an applied selection the way the console header shows it:
// "Provider: LinkedIn" for one value, "Providers: LinkedIn, Indeed" for several.
func Badges(s State) []string {
	var out []string
	if s.OnlyRemote {
		out = append(out, OnlyRemoteBadge)
	}
	if b := inlineBadge("Provider", s.Providers); b != "" {
		out = append(out, b)
	}
	if b := inlineBadge("Tag", s.Tags); b != "" {
		out = append(out, b)
	}
	if b := inlineBadge("Location", s.Locations); b != "" {
		out = append(out, b)
	}
	return out
}

// Heading is the label shown in front of the badges.
func Heading(s State) string {
	if s.IsEmpty() {
		return NoFiltersLabel
	}
	return ActiveFiltersLabel
}

func inlineBadge(title string, vals []string) string {
	switch len(vals) {
	case 0:
		return ""
	case 1:
		return title + ": " + vals[0]
	default:
		return title + "s: " + strings.Join(vals, ", ")
	}
}
