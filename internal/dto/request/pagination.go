package request

import (
	"math"
	"net/http"

	"answerq/pkg/utils"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	// MaxPage keeps the row offset within a 32-bit integer.
	MaxPage = math.MaxInt32 / MaxPerPage
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// PaginationFromQuery reads page and per_page, falling back to defaults.
func PaginationFromQuery(r *http.Request) PaginatedRequest {
	q := r.URL.Query()
	return PaginatedRequest{
		Page:    utils.ParseInt(q.Get("page"), 1),
		PerPage: utils.ParseInt(q.Get("per_page"), DefaultPerPage),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.CurrentPage(), p.Limit())
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		return MaxPerPage
	}
	return p.PerPage
}

// CurrentPage is Page clamped to [1, MaxPage].
func (p PaginatedRequest) CurrentPage() int {
	return min(max(p.Page, 1), MaxPage)
}
