// Package gallery keeps the state of the gallery page: the pager, the
// category and search filters, the model modal and the hover preview of a
// card. Rendering is left to the caller.
package gallery

import (
	"strconv"
	"strings"
)

// PageSizeOptions are the page sizes the gallery offers.
var PageSizeOptions = []int{16, 32, 64}

// DefaultPageSize is the initial page size.
const DefaultPageSize = 16

// windowSize is the number of page buttons shown at once.
const windowSize = 5

// Pager tracks the current page, the page size and the page-jump input.
type Pager struct {
	page       int
	size       int
	totalPages int
	total      int64
	jump       string
}

// NewPager returns a pager on page 1 with the default page size.
func NewPager() *Pager {
	p := &Pager{size: DefaultPageSize, totalPages: 1}
	p.setPage(1)
	return p
}

// Page returns the current page.
func (p *Pager) Page() int { return p.page }

// PageSize returns the page size.
func (p *Pager) PageSize() int { return p.size }

// TotalPages returns the number of pages of the last result.
func (p *Pager) TotalPages() int { return p.totalPages }

// Total returns the number of items of the last result.
func (p *Pager) Total() int64 { return p.total }

// JumpInput returns the text of the page-jump input.
func (p *Pager) JumpInput() string { return p.jump }

func (p *Pager) setPage(n int) {
	p.page = n
	p.jump = strconv.Itoa(n)
}

// SetTotals records the totals of a freshly loaded page.
func (p *Pager) SetTotals(total int64, totalPages int) {
	if totalPages < 0 {
		totalPages = 0
	}
	p.total = total
	p.totalPages = totalPages
}

func (p *Pager) valid(n int) bool {
	return n >= 1 && n <= p.totalPages
}

// Go moves to page n. It returns false, leaving the pager untouched, when
// n is outside [1, TotalPages].
func (p *Pager) Go(n int) bool {
	if !p.valid(n) {
		return false
	}
	p.setPage(n)
	return true
}

// Prev moves one page back.
func (p *Pager) Prev() bool { return p.Go(p.page - 1) }

// Next moves one page forward.
func (p *Pager) Next() bool { return p.Go(p.page + 1) }

// SetJumpInput records a keystroke in the page-jump input.
func (p *Pager) SetJumpInput(s string) {
	p.jump = s
}

func (p *Pager) parseJump() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(p.jump))
	if err != nil || !p.valid(n) {
		return 0, false
	}
	return n, true
}

// BlurJump handles the jump input losing focus: a valid page is navigated
// to, anything else reverts the input to the current page.
func (p *Pager) BlurJump() bool {
	n, ok := p.parseJump()
	if !ok {
		p.jump = strconv.Itoa(p.page)
		return false
	}
	return p.Go(n)
}

// SubmitJump handles Enter in the jump input. Only a valid page is
// navigated to; the input is left as typed otherwise.
func (p *Pager) SubmitJump() bool {
	n, ok := p.parseJump()
	if !ok {
		return false
	}
	return p.Go(n)
}

// SetPageSize changes the page size and returns to page 1. Sizes outside
// PageSizeOptions are rejected.
func (p *Pager) SetPageSize(n int) bool {
	for _, o := range PageSizeOptions {
		if o == n {
			p.size = n
			p.setPage(1)
			return true
		}
	}
	return false
}

// Reset returns to page 1.
func (p *Pager) Reset() {
	p.setPage(1)
}

// Window returns the page numbers to show as buttons: at most five,
// starting at 1 or, once the current page is past 3 and there are more
// than five pages, at current-2. Pages past TotalPages are dropped.
func (p *Pager) Window() []int {
	n := windowSize
	if p.totalPages < n {
		n = p.totalPages
	}
	start := 1
	if p.page > 3 && p.totalPages > windowSize {
		start = p.page - 2
	}
	pages := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if start+i > p.totalPages {
			break
		}
		pages = append(pages, start+i)
	}
	return pages
}
