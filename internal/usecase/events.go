package usecase

const (
	EventListingStatusChanged = "listing_status_changed"
	EventTagsChanged          = "tags_changed"
)

// Event is pushed to every connected console.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Publisher interface {
	Publish(e Event)
}

func publish(p Publisher, typ string, data any) {
	if p == nil {
		return
	}
	p.Publish(Event{Type: typ, Data: data})
}
