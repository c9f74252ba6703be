package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControl_BoundariesDisableMoves(t *testing.T) {
	c := New(10).Sync(1, 3, 25)

	assert.False(t, c.CanPrevious())
	assert.True(t, c.CanNext())
	assert.Equal(t, 1, c.Previous().CurrentPage)
	assert.Equal(t, 1, c.First().CurrentPage)

	last := c.Last()
	assert.Equal(t, 3, last.CurrentPage)
	assert.False(t, last.CanNext())
	assert.Equal(t, 3, last.Next().CurrentPage)
	assert.Equal(t, 2, last.Previous().CurrentPage)
}

func TestControl_NeverLeavesRange(t *testing.T) {
	c := New(20).Sync(1, 4, 80)
	moves := []func(Control) Control{
		Control.Next, Control.Next, Control.Next, Control.Next, Control.Next,
		Control.Last, Control.Next, Control.Previous, Control.First, Control.Previous,
		func(c Control) Control { return c.Goto(99) },
		func(c Control) Control { return c.Goto(-3) },
	}
	for _, m := range moves {
		c = m(c)
		assert.GreaterOrEqual(t, c.CurrentPage, 1)
		assert.LessOrEqual(t, c.CurrentPage, c.LastPage)
	}
}

func TestControl_SyncClamps(t *testing.T) {
	c := New(10)

	assert.Equal(t, 2, c.Sync(5, 2, 15).CurrentPage)
	assert.Equal(t, 1, c.Sync(0, 0, 0).CurrentPage)
	assert.Equal(t, 1, c.Sync(0, 0, 0).LastPage)
	assert.Equal(t, "Page 1 of 1", c.Sync(0, 0, 0).Label())
	assert.Equal(t, "Page 2 of 7", c.Sync(2, 7, 70).Label())
}

func TestControl_SetPerPage(t *testing.T) {
	c := New(10).Sync(3, 5, 50)

	next, changed := c.SetPerPage(30)
	assert.True(t, changed)
	assert.Equal(t, 30, next.PerPage)
	assert.Equal(t, 1, next.CurrentPage)

	same, changed := next.SetPerPage(30)
	assert.False(t, changed)
	assert.Equal(t, next, same)

	_, changed = next.SetPerPage(7)
	assert.False(t, changed)
}

func TestNew_DefaultsUnknownPageSize(t *testing.T) {
	assert.Equal(t, DefaultPerPage, New(13).PerPage)
	assert.Equal(t, 50, New(50).PerPage)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, PageSizes())
}

func TestLastPageFor(t *testing.T) {
	assert.Equal(t, 1, LastPageFor(0, 10))
	assert.Equal(t, 1, LastPageFor(10, 10))
	assert.Equal(t, 2, LastPageFor(11, 10))
	assert.Equal(t, 3, LastPageFor(25, 0))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	page, c := Paginate(items, New(10))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, page)
	assert.Equal(t, 2, c.LastPage)
	assert.Equal(t, 12, c.Total)

	page, c = Paginate(items, c.Next())
	assert.Equal(t, []int{11, 12}, page)
	assert.False(t, c.CanNext())

	// a page beyond the end is clamped to the last one
	page, _ = Paginate(items, Control{CurrentPage: 9, LastPage: 9, PerPage: 10})
	assert.Equal(t, []int{11, 12}, page)

	// the requested page is honoured before the range is known
	page, _ = Paginate(items, Control{CurrentPage: 2, PerPage: 10})
	assert.Equal(t, []int{11, 12}, page)

	page, c = Paginate([]int{}, New(10))
	assert.Empty(t, page)
	assert.Equal(t, 1, c.CurrentPage)
}
