// Package pagination converts page/limit requests into skip/limit windows and
// computes result metadata.
package pagination

const (
	// DefaultLimit applies when the limit parameter is absent.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// New validates page and limit and returns the resulting Params. Non-positive
// values are rejected rather than silently defaulted; callers apply defaults
// only when a parameter was absent. Limits above MaxLimit are clamped.
func New(page, limit int) (Params, error) {
	if page < 1 {
		return Params{}, ErrInvalidPage
	}
	if limit < 1 {
		return Params{}, ErrInvalidLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}, nil
}

// Offset returns the number of items to skip for this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes one page of a larger result set.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewMeta computes page metadata for total items under the given params.
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     int64(p.Page)*int64(p.Limit) < total,
		HasPrev:     p.Page > 1,
	}
}
