package model

// Paging bounds shared by every paginated listing.
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PageRequest selects one page of a listing.
type PageRequest struct {
	PageSize   int
	PageNumber int
}

// Normalize clamps the request into the supported bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	return p
}

// Skip is the number of documents to skip for this page.
func (p PageRequest) Skip() int64 {
	return int64(p.PageNumber-1) * int64(p.PageSize)
}

// Paging is the pagination envelope returned with every listing.
type Paging struct {
	Count      int   `json:"count"`
	PageSize   int   `json:"page_size"`
	PageNumber int   `json:"page_number"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	FirstPage  bool  `json:"first_page"`
	LastPage   bool  `json:"last_page"`
}

// NewPaging builds the envelope for a page holding count results out of
// totalCount matches.
func NewPaging(count int, req PageRequest, totalCount int64) Paging {
	totalPages := int((totalCount + int64(req.PageSize) - 1) / int64(req.PageSize))
	return Paging{
		Count:      count,
		PageSize:   req.PageSize,
		PageNumber: req.PageNumber,
		TotalCount: totalCount,
		TotalPages: totalPages,
		FirstPage:  req.PageNumber == 1,
		LastPage:   req.PageNumber == totalPages,
	}
}
