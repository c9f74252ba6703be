package usecase

import (
	"testing"

	"listings-console/internal/domain/filter"

	"github.com/stretchr/testify/assert"
)

func TestBuildListingsQuery(t *testing.T) {
	tests := []struct {
		name    string
		f       filter.State
		perPage int
		page    int
		want    string
	}{
		{
			name:    "empty filters",
			f:       filter.Default(),
			perPage: 10,
			page:    1,
			want:    "onlyRemote=0&perPage=10&page=1",
		},
		{
			name: "providers and tags",
			f: filter.State{
				OnlyRemote: true,
				Providers:  []string{"Indeed", "LinkedIn"},
				Tags:       []string{"reactjs", "typescript"},
			},
			perPage: 20,
			page:    2,
			want:    "onlyRemote=1&providersIn=[Indeed,LinkedIn]&tagsIn=[reactjs,typescript]&perPage=20&page=2",
		},
		{
			name:    "locations are not encoded",
			f:       filter.State{Locations: []string{"United States"}},
			perPage: 50,
			page:    3,
			want:    "onlyRemote=0&locationsIn=[United States]&perPage=50&page=3",
		},
		{
			name:    "selection order is kept",
			f:       filter.State{Tags: []string{"typescript", "nodejs"}},
			perPage: 10,
			page:    1,
			want:    "onlyRemote=0&tagsIn=[typescript,nodejs]&perPage=10&page=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildListingsQuery(tt.f, tt.perPage, tt.page))
		})
	}
}

func TestListingsURL(t *testing.T) {
	got := ListingsURL("https://api.example.com/", filter.Default(), 10, 1)
	assert.Equal(t, "https://api.example.com/listings?onlyRemote=0&perPage=10&page=1", got)
}

func TestListingsCacheKey(t *testing.T) {
	a := ListingsCacheKey(filter.State{Tags: []string{"reactjs", "typescript"}}, 10, 1)
	b := ListingsCacheKey(filter.State{Tags: []string{"typescript", " reactjs ", "reactjs"}}, 10, 1)
	assert.Equal(t, a, b)
	assert.True(t, IsListingsCacheKey(a))

	assert.NotEqual(t, a, ListingsCacheKey(filter.State{Tags: []string{"reactjs", "typescript"}}, 10, 2))
	assert.NotEqual(t, a, ListingsCacheKey(filter.State{OnlyRemote: true, Tags: []string{"reactjs", "typescript"}}, 10, 1))
	assert.NotEqual(t, a, ListingsCacheKey(filter.State{Tags: []string{"reactjs", "typescript"}}, 20, 1))

	assert.False(t, IsListingsCacheKey("tags:names"))
	assert.False(t, IsListingsCacheKey(ListingsKeyPrefix+"abc"))
}
