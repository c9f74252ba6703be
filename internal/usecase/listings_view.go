package usecase

import (
	"context"
	"strings"
	"sync"

	"listings-console/internal/domain/filter"
	"listings-console/internal/domain/listing"
	"listings-console/internal/domain/pagination"
)

const FetchErrorMessage = "Error fetching data"

// ListingsRequest is one keyed listings request issued by a view.
type ListingsRequest struct {
	Generation uint64       `json:"generation"`
	Filters    filter.State `json:"filters"`
	PerPage    int          `json:"perPage"`
	Page       int          `json:"page"`
	Key        string       `json:"key"`
	Query      string       `json:"query"`
}

type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

var listingColumns = []Column{
	{Key: "title", Header: "Title"},
	{Key: "salary_range", Header: "Salary Range"},
	{Key: "provider", Header: "Provider"},
	{Key: "created_at", Header: "Created At"},
	{Key: "tags", Header: "Tags"},
	{Key: "location", Header: "Location"},
	{Key: "status", Header: "Status"},
}

func ListingColumns() []Column {
	return append([]Column(nil), listingColumns...)
}

type ListingRow struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	SalaryRange string `json:"salary_range"`
	Provider    string `json:"provider"`
	CreatedAt   string `json:"created_at"`
	Tags        string `json:"tags"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

func rowFor(l listing.Listing) ListingRow {
	return ListingRow{
		ID:          l.ID,
		Title:       l.Title,
		Link:        l.ExternalLink,
		SalaryRange: l.SalaryRange,
		Provider:    l.Provider,
		CreatedAt:   l.CreatedAt,
		Tags:        strings.Join(l.Tags, ", "),
		Location:    l.Location,
		Status:      l.Status.String(),
	}
}

type PaginationModel struct {
	pagination.Control
	Label       string `json:"label"`
	CanPrevious bool   `json:"canPrevious"`
	CanNext     bool   `json:"canNext"`
	PageSizes   []int  `json:"pageSizes"`
}

type PanelModel struct {
	filter.Panel
	Dirty bool `json:"dirty"`
}

type ListingsViewModel struct {
	Panel         PanelModel      `json:"panel"`
	Heading       string          `json:"heading"`
	Badges        []string        `json:"badges"`
	Columns       []Column        `json:"columns"`
	Rows          []ListingRow    `json:"rows"`
	Pagination    PaginationModel `json:"pagination"`
	TablePageSize int             `json:"tablePageSize"`
	Query         string          `json:"query"`
	Key           string          `json:"key"`
	IsLoading     bool            `json:"isLoading"`
	FromCache     bool            `json:"fromCache"`
	Error         string          `json:"error,omitempty"`
}

// ListingsView is one console's listings screen: the filter panel, the pagination
// control, the table model and the request currently in flight. Every transition that
// changes the request bumps the generation; results for older generations are dropped.
type ListingsView struct {
	mu            sync.Mutex
	panel         filter.Panel
	control       pagination.Control
	tablePageSize int
	generation    uint64
	result        ListingsResult
}

// NewListingsView seeds the view from the URL selection and paging. page is taken as
// requested and clamped once the backend reports the real range.
func NewListingsView(seed filter.State, perPage, page int) *ListingsView {
	c := pagination.New(perPage)
	if page > 1 {
		c = c.Sync(page, page, 0)
	}
	v := &ListingsView{
		panel:         filter.NewPanel(seed),
		control:       c,
		tablePageSize: c.PerPage,
		generation:    1,
	}
	v.result = LoadingResult(v.requestLocked().Key)
	return v
}

// Request returns the request for the current state without changing the generation.
func (v *ListingsView) Request() ListingsRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.requestLocked()
}

func (v *ListingsView) requestLocked() ListingsRequest {
	f := v.panel.Applied.Clone()
	return ListingsRequest{
		Generation: v.generation,
		Filters:    f,
		PerPage:    v.control.PerPage,
		Page:       v.control.CurrentPage,
		Key:        ListingsCacheKey(f, v.control.PerPage, v.control.CurrentPage),
		Query:      BuildListingsQuery(f, v.control.PerPage, v.control.CurrentPage),
	}
}

// issueLocked starts a new generation and marks the view loading.
func (v *ListingsView) issueLocked() ListingsRequest {
	v.generation++
	req := v.requestLocked()
	v.result = LoadingResult(req.Key)
	return req
}

func (v *ListingsView) TogglePanel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = v.panel.Toggle()
}

// Edit changes the pending selection only. No request is issued.
func (v *ListingsView) Edit(fn func(filter.State) filter.State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = v.panel.Edit(fn)
}

// Apply commits pending filters. A new request starting at page 1 is issued only when the
// applied selection changed.
func (v *ListingsView) Apply() (ListingsRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, changed := v.panel.Apply()
	v.panel = next
	if !changed {
		return v.requestLocked(), false
	}
	v.control = v.control.First()
	return v.issueLocked(), true
}

func (v *ListingsView) Reset() (ListingsRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, changed := v.panel.Reset()
	v.panel = next
	if !changed {
		return v.requestLocked(), false
	}
	v.control = v.control.First()
	return v.issueLocked(), true
}

func (v *ListingsView) First() (ListingsRequest, bool) {
	return v.move(pagination.Control.First)
}

func (v *ListingsView) Previous() (ListingsRequest, bool) {
	return v.move(pagination.Control.Previous)
}

func (v *ListingsView) Next() (ListingsRequest, bool) {
	return v.move(pagination.Control.Next)
}

func (v *ListingsView) Last() (ListingsRequest, bool) {
	return v.move(pagination.Control.Last)
}

func (v *ListingsView) Goto(page int) (ListingsRequest, bool) {
	return v.move(func(c pagination.Control) pagination.Control { return c.Goto(page) })
}

func (v *ListingsView) move(fn func(pagination.Control) pagination.Control) (ListingsRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := fn(v.control)
	if next.CurrentPage == v.control.CurrentPage {
		return v.requestLocked(), false
	}
	v.control = next
	return v.issueLocked(), true
}

// SetPerPage changes the page size of both the pagination control and the table model
// and returns to page 1.
func (v *ListingsView) SetPerPage(n int) (ListingsRequest, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, changed := v.control.SetPerPage(n)
	if !changed {
		return v.requestLocked(), false
	}
	v.control = next
	v.tablePageSize = next.PerPage
	return v.issueLocked(), true
}

// Resolve installs res when gen is the current generation. When the backend reports
// that the requested page is past the last page, the view moves to the last page and
// returns the follow-up request.
func (v *ListingsView) Resolve(gen uint64, res ListingsResult) (accepted bool, followUp *ListingsRequest) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return false, nil
	}
	res.IsLoading = false
	v.result = res
	if res.Err != nil || res.Data == nil {
		return true, nil
	}

	requested := v.control.CurrentPage
	v.control = v.control.Sync(res.Data.CurrentPage, res.Data.LastPage, res.Data.Total)
	if requested > v.control.CurrentPage && len(res.Data.Rows) == 0 && res.Data.Total > 0 {
		req := v.issueLocked()
		return true, &req
	}
	return true, nil
}

// Load runs the current request through uc and resolves it, following at most one
// out-of-range correction.
func (v *ListingsView) Load(ctx context.Context, uc ListingsUsecase) ListingsResult {
	req := v.Request()
	for range 2 {
		res := uc.Fetch(ctx, req.Filters, req.PerPage, req.Page)
		accepted, follow := v.Resolve(req.Generation, res)
		if !accepted || follow == nil {
			return res
		}
		req = *follow
	}
	return v.Result()
}

func (v *ListingsView) Result() ListingsResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// PatchRow replaces the status of a displayed row after a mark.
func (v *ListingsView) PatchRow(id int64, st listing.Status) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.result.Data == nil {
		return false
	}
	patched, found := v.result.Data.WithStatus(id, st)
	if found {
		v.result.Data = &patched
	}
	return found
}

func (v *ListingsView) Model() ListingsViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()

	applied := v.panel.Applied
	m := ListingsViewModel{
		Panel:   PanelModel{Panel: v.panel, Dirty: v.panel.Dirty()},
		Heading: filter.Heading(applied),
		Badges:  filter.Badges(applied),
		Columns: ListingColumns(),
		Rows:    []ListingRow{},
		Pagination: PaginationModel{
			Control:     v.control,
			Label:       v.control.Label(),
			CanPrevious: v.control.CanPrevious(),
			CanNext:     v.control.CanNext(),
			PageSizes:   pagination.PageSizes(),
		},
		TablePageSize: v.tablePageSize,
		Query:         applied.Values().Encode(),
		Key:           v.result.Key,
		IsLoading:     v.result.IsLoading,
		FromCache:     v.result.FromCache,
	}
	if m.Badges == nil {
		m.Badges = []string{}
	}
	if v.result.Err != nil {
		m.Error = FetchErrorMessage
		return m
	}
	if v.result.Data != nil {
		for _, l := range v.result.Data.Rows {
			m.Rows = append(m.Rows, rowFor(l))
		}
	}
	return m
}
