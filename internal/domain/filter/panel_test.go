package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanel_ToggleFlipsVisibility(t *testing.T) {
	p := NewPanel(Default())
	assert.Equal(t, Collapsed, p.Visibility)

	p = p.Toggle()
	assert.Equal(t, Expanded, p.Visibility)

	p = p.Toggle()
	assert.Equal(t, Collapsed, p.Visibility)
}

func TestPanel_EditDoesNotTouchApplied(t *testing.T) {
	p := NewPanel(Default()).Toggle()

	edited := p.Edit(func(s State) State {
		return s.WithOnlyRemote(true).WithTags("reactjs", "typescript")
	})

	assert.True(t, edited.Pending.OnlyRemote)
	assert.Equal(t, []string{"reactjs", "typescript"}, edited.Pending.Tags)
	assert.True(t, edited.Applied.Equal(Default()))
	assert.True(t, edited.Dirty())

	// the original value is untouched
	assert.True(t, p.Pending.Equal(Default()))

	// repeated edits without apply never leak
	again := edited.Edit(func(s State) State { return s.ToggleProvider("Indeed") })
	assert.True(t, again.Applied.Equal(Default()))
}

func TestPanel_ApplyCommitsAndCollapses(t *testing.T) {
	p := NewPanel(Default()).Toggle().Edit(func(s State) State {
		return s.WithProviders("Indeed", "LinkedIn")
	})

	next, changed := p.Apply()
	assert.True(t, changed)
	assert.Equal(t, Collapsed, next.Visibility)
	assert.Equal(t, []string{"Indeed", "LinkedIn"}, next.Applied.Providers)
	assert.False(t, next.Dirty())

	// applying the same selection again is not a change
	_, changed = next.Toggle().Apply()
	assert.False(t, changed)
}

func TestPanel_ApplySnapshotIsIndependent(t *testing.T) {
	p := NewPanel(Default()).Edit(func(s State) State { return s.WithTags("go") })
	next, _ := p.Apply()

	next.Pending.Tags[0] = "rust"
	assert.Equal(t, "go", next.Applied.Tags[0])
}

func TestPanel_Reset(t *testing.T) {
	seed := Default().WithOnlyRemote(true).WithTags("nextjs")
	p := NewPanel(seed).Toggle().Edit(func(s State) State { return s.ToggleTag("go") })

	next, changed := p.Reset()
	assert.True(t, changed)
	assert.Equal(t, Collapsed, next.Visibility)
	assert.True(t, next.Pending.Equal(Default()))
	assert.True(t, next.Applied.Equal(Default()))

	_, changed = next.Reset()
	assert.False(t, changed)
}
