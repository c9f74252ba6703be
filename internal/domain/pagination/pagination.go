// Package pagination is the first/previous/next/last control shared by the listings
// and tags tables.
package pagination

import (
	"slices"
	"strconv"
)

const DefaultPerPage = 10

var pageSizes = []int{10, 20, 30, 40, 50}

// PageSizes lists the page-size selector options.
func PageSizes() []int {
	return slices.Clone(pageSizes)
}

func IsPageSize(n int) bool {
	return slices.Contains(pageSizes, n)
}

// Control is a value type; every move returns a new Control.
// CurrentPage always stays within [1, LastPage].
type Control struct {
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
}

func New(perPage int) Control {
	if !IsPageSize(perPage) {
		perPage = DefaultPerPage
	}
	return Control{CurrentPage: 1, LastPage: 1, PerPage: perPage}
}

func (c Control) CanPrevious() bool {
	return c.normalized().CurrentPage > 1
}

func (c Control) CanNext() bool {
	n := c.normalized()
	return n.CurrentPage < n.LastPage
}

func (c Control) First() Control {
	n := c.normalized()
	n.CurrentPage = 1
	return n
}

func (c Control) Previous() Control {
	n := c.normalized()
	if n.CurrentPage > 1 {
		n.CurrentPage--
	}
	return n
}

func (c Control) Next() Control {
	n := c.normalized()
	if n.CurrentPage < n.LastPage {
		n.CurrentPage++
	}
	return n
}

func (c Control) Last() Control {
	n := c.normalized()
	n.CurrentPage = n.LastPage
	return n
}

// Goto moves to page, clamped to the known range.
func (c Control) Goto(page int) Control {
	n := c.normalized()
	n.CurrentPage = clamp(page, 1, n.LastPage)
	return n
}

// SetPerPage switches the page size and returns to page 1. Sizes outside PageSizes are ignored.
func (c Control) SetPerPage(perPage int) (Control, bool) {
	n := c.normalized()
	if !IsPageSize(perPage) || perPage == n.PerPage {
		return n, false
	}
	n.PerPage = perPage
	n.CurrentPage = 1
	return n, true
}

// Sync adopts the metadata of a fetched page, clamping the current page.
func (c Control) Sync(currentPage, lastPage, total int) Control {
	n := c
	n.LastPage = lastPage
	n.Total = total
	n.CurrentPage = currentPage
	return n.normalized()
}

// Label renders "Page N of M".
func (c Control) Label() string {
	n := c.normalized()
	return "Page " + strconv.Itoa(n.CurrentPage) + " of " + strconv.Itoa(n.LastPage)
}

func (c Control) normalized() Control {
	n := c
	if n.PerPage <= 0 {
		n.PerPage = DefaultPerPage
	}
	if n.LastPage < 1 {
		n.LastPage = 1
	}
	n.CurrentPage = clamp(n.CurrentPage, 1, n.LastPage)
	if n.Total < 0 {
		n.Total = 0
	}
	return n
}

// LastPageFor returns the number of pages needed for total items, at least 1.
func LastPageFor(total, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Paginate slices items client side for the control's current page and returns the
// control synced to len(items).
func Paginate[T any](items []T, c Control) ([]T, Control) {
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	n := c.Sync(c.CurrentPage, LastPageFor(len(items), c.PerPage), len(items))

	start := (n.CurrentPage - 1) * n.PerPage
	if start >= len(items) {
		return []T{}, n
	}
	end := min(start+n.PerPage, len(items))
	return items[start:end], n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
