package gallery

import (
	"context"
	"strings"

	"github.com/gazebo-web/model-gallery/client"
)

// Lister runs a paged catalog query. *client.Client implements it.
type Lister interface {
	List(ctx context.Context, q client.Query) client.Result
}

// Browser holds the filters of the gallery page and the models currently
// shown. Every change of page, page size, category or keyword issues one
// query and replaces the result set.
type Browser struct {
	lister   Lister
	pager    *Pager
	category string
	keyword  string
	input    string
	models   []client.Model
	err      error
}

// NewBrowser returns a browser on page 1 with no filters. Call Load for
// the first page.
func NewBrowser(l Lister) *Browser {
	return &Browser{lister: l, pager: NewPager(), models: []client.Model{}}
}

// Pager returns the browser's pager.
func (b *Browser) Pager() *Pager { return b.pager }

// Models returns the models of the last loaded page.
func (b *Browser) Models() []client.Model { return b.models }

// Category returns the active category code, empty for all.
func (b *Browser) Category() string { return b.category }

// Keyword returns the active search keyword.
func (b *Browser) Keyword() string { return b.keyword }

// SearchInput returns the text of the search box.
func (b *Browser) SearchInput() string { return b.input }

// Err returns the error of the last load, if the load fell back to the
// empty result.
func (b *Browser) Err() error { return b.err }

// Query returns the query for the current state.
func (b *Browser) Query() client.Query {
	return client.Query{
		Page:     b.pager.Page(),
		PageSize: b.pager.PageSize(),
		Category: b.category,
		Keyword:  b.keyword,
	}
}

// Load runs the current query and replaces the result set.
func (b *Browser) Load(ctx context.Context) client.Result {
	res := b.lister.List(ctx, b.Query())
	b.models = res.Models
	if b.models == nil {
		b.models = []client.Model{}
	}
	b.err = res.Err
	b.pager.SetTotals(res.Total, int(res.TotalPages))
	return res
}

// apply runs change and reloads if the query changed.
func (b *Browser) apply(ctx context.Context, change func()) bool {
	before := b.Query()
	change()
	if b.Query() == before {
		return false
	}
	b.Load(ctx)
	return true
}

// SelectCategory toggles a category: selecting the active one clears the
// filter. The search is cleared and the pager returns to page 1.
func (b *Browser) SelectCategory(ctx context.Context, code string) bool {
	return b.apply(ctx, func() {
		if code == b.category {
			b.category = ""
		} else {
			b.category = code
		}
		b.keyword = ""
		b.input = ""
		b.pager.Reset()
	})
}

// SetSearchInput records the search box text. Emptying the box while a
// keyword is active clears the keyword.
func (b *Browser) SetSearchInput(ctx context.Context, s string) bool {
	b.input = s
	if s != "" || b.keyword == "" {
		return false
	}
	return b.apply(ctx, func() {
		b.keyword = ""
		b.pager.Reset()
	})
}

// Search makes the trimmed search box text the active keyword.
func (b *Browser) Search(ctx context.Context) bool {
	return b.apply(ctx, func() {
		b.keyword = strings.TrimSpace(b.input)
		b.pager.Reset()
	})
}

// ClearSearch empties the search box and the keyword.
func (b *Browser) ClearSearch(ctx context.Context) bool {
	b.input = ""
	return b.apply(ctx, func() {
		b.keyword = ""
		b.pager.Reset()
	})
}

// GoTo navigates to page n if it is in range.
func (b *Browser) GoTo(ctx context.Context, n int) bool {
	return b.apply(ctx, func() { b.pager.Go(n) })
}

// BlurJump applies Pager.BlurJump.
func (b *Browser) BlurJump(ctx context.Context) bool {
	return b.apply(ctx, func() { b.pager.BlurJump() })
}

// SubmitJump applies Pager.SubmitJump.
func (b *Browser) SubmitJump(ctx context.Context) bool {
	return b.apply(ctx, func() { b.pager.SubmitJump() })
}

// SetPageSize applies Pager.SetPageSize.
func (b *Browser) SetPageSize(ctx context.Context, n int) bool {
	return b.apply(ctx, func() { b.pager.SetPageSize(n) })
}

// ReplaceModel swaps the shown copy of m, matched by ID.
func (b *Browser) ReplaceModel(m client.Model) {
	for i := range b.models {
		if b.models[i].ID == m.ID {
			b.models[i] = m
		}
	}
}
