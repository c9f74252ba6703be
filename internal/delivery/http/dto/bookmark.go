package dto

import "listings-console/internal/domain/bookmark"

type BookmarkGroup struct {
	Group string              `json:"group"`
	Items []bookmark.Bookmark `json:"items"`
}

type BookmarksResponse struct {
	ReadOnly bool            `json:"read_only"`
	Groups   []BookmarkGroup `json:"groups"`
}

// GroupBookmarks keeps groups in order of first appearance.
func GroupBookmarks(items []bookmark.Bookmark) []BookmarkGroup {
	out := []BookmarkGroup{}
	index := map[string]int{}
	for _, b := range items {
		i, ok := index[b.Group]
		if !ok {
			i = len(out)
			index[b.Group] = i
			out = append(out, BookmarkGroup{Group: b.Group})
		}
		out[i].Items = append(out[i].Items, b)
	}
	return out
}
