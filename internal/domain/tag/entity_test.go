package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tg := Tag{Name: "reactjs", Type: "framework", Aliases: []Alias{{Alias: "React.js"}, {Alias: "react"}}}

	assert.True(t, tg.Matches(""))
	assert.True(t, tg.Matches("  REACT "))
	assert.True(t, tg.Matches("frame"))
	assert.True(t, tg.Matches(".js"))
	assert.False(t, tg.Matches("vue"))
}

func TestAliasNamesAndForm(t *testing.T) {
	id := int64(3)
	f := Form{ID: 9, Name: "golang", Type: "language", Aliases: []Alias{{ID: &id, Alias: "go"}, {Alias: "go-lang"}}}

	tg := f.Tag()
	assert.Equal(t, int64(9), tg.ID)
	assert.Equal(t, []string{"go", "go-lang"}, tg.AliasNames())
	assert.Empty(t, Tag{}.AliasNames())
}
