package domain

import "math"

const (
	DefaultPage = 1
	DefaultTake = 10
	MaxTake     = 100
	// MaxPage keeps Number*Take within an int.
	MaxPage = math.MaxInt / MaxTake
)

// Page is a 1-based page request converted to skip/take for the store.
type Page struct {
	Number int
	Take   int
}

// NewPage applies defaults to missing or non-positive values and caps both
// take and the page number.
func NewPage(number, take *int) Page {
	p := Page{Number: DefaultPage, Take: DefaultTake}
	if number != nil && *number > 0 {
		p.Number = min(*number, MaxPage)
	}
	if take != nil && *take > 0 {
		p.Take = min(*take, MaxTake)
	}
	return p
}

// Skip is the zero-based offset: max(0, page*take - take).
func (p Page) Skip() int {
	return max(0, p.Number*p.Take-p.Take)
}
