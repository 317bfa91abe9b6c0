package query

// PageWindow selects a contiguous page of a sequence.
type PageWindow struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Page is the visible slice of a sequence plus the paging metadata.
type Page struct {
	Items     []Record `json:"items"`
	PageCount int      `json:"page_count"`
	PageIndex int      `json:"page_index"`
	PageSize  int      `json:"page_size"`
	Total     int      `json:"total"`
}

// DisplayPageCount is PageCount with an empty sequence shown as one page.
func (p Page) DisplayPageCount() int {
	if p.PageCount < 1 {
		return 1
	}
	return p.PageCount
}

// Paginate returns the window's slice of records. An index past the end
// yields an empty page rather than an error. Negative indexes read as 0 and
// non-positive sizes as defaultPageSize.
func Paginate(records []Record, w PageWindow) Page {
	if w.PageIndex < 0 {
		w.PageIndex = 0
	}
	if w.PageSize <= 0 {
		w.PageSize = defaultPageSize
	}

	total := len(records)
	pageCount := total / w.PageSize
	if total%w.PageSize != 0 {
		pageCount++
	}
	page := Page{
		Items:     []Record{},
		PageCount: pageCount,
		PageIndex: w.PageIndex,
		PageSize:  w.PageSize,
		Total:     total,
	}

	// Guard against overflow on huge indexes before multiplying
	if w.PageIndex >= page.PageCount {
		return page
	}

	start := w.PageIndex * w.PageSize
	end := start + min(w.PageSize, total-start)
	page.Items = records[start:end:end]
	return page
}
