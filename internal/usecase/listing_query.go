package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"listings-console/internal/domain/filter"
)

const ListingsKeyPrefix = "listings:page:"

// BuildListingsQuery renders the backend listings query:
//
//	onlyRemote=0|1[&providersIn=[a,b]][&tagsIn=[a,b]][&locationsIn=[a,b]]&perPage=N&page=N
//
// Values keep selection order and are not percent-encoded.
func BuildListingsQuery(f filter.State, perPage, page int) string {
	var b strings.Builder
	b.WriteString(filter.ParamOnlyRemote)
	if f.OnlyRemote {
		b.WriteString("=1")
	} else {
		b.WriteString("=0")
	}
	writeList(&b, filter.ParamProviders, f.Providers)
	writeList(&b, filter.ParamTags, f.Tags)
	writeList(&b, filter.ParamLocations, f.Locations)
	b.WriteString("&perPage=")
	b.WriteString(strconv.Itoa(perPage))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(page))
	return b.String()
}

func writeList(b *strings.Builder, param string, vals []string) {
	if len(vals) == 0 {
		return
	}
	b.WriteString("&")
	b.WriteString(param)
	b.WriteString("=[")
	b.WriteString(strings.Join(vals, ","))
	b.WriteString("]")
}

func ListingsURL(base string, f filter.State, perPage, page int) string {
	return strings.TrimRight(base, "/") + "/listings?" + BuildListingsQuery(f, perPage, page)
}

type listingsCacheKeyInput struct {
	OnlyRemote bool     `json:"only_remote"`
	Providers  []string `json:"providers"`
	Tags       []string `json:"tags"`
	Locations  []string `json:"locations"`
	PerPage    int      `json:"per_page"`
	Page       int      `json:"page"`
}

func normalizeKeyValues(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ListingsCacheKey identifies a listings page independent of selection order.
func ListingsCacheKey(f filter.State, perPage, page int) string {
	in := listingsCacheKeyInput{
		OnlyRemote: f.OnlyRemote,
		Providers:  normalizeKeyValues(f.Providers),
		Tags:       normalizeKeyValues(f.Tags),
		Locations:  normalizeKeyValues(f.Locations),
		PerPage:    perPage,
		Page:       page,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return ListingsKeyPrefix + hex.EncodeToString(sum[:])
}

func IsListingsCacheKey(key string) bool {
	return strings.HasPrefix(key, ListingsKeyPrefix) && len(key) == len(ListingsKeyPrefix)+sha256.Size*2
}
