// Package pager derives a single page window over an ordered sequence.
//
// A Pager never stores the page slice or page count; both are computed from the
// backing Source on every read. The only stored state is the page size and the
// current (1-indexed) page, which is kept inside [1, TotalPages] after every
// mutation settles.
package pager

import "sync"

// DefaultPageSize is used when a Pager is created with a non-positive size.
const DefaultPageSize = 10

// Source is the backing sequence a Pager windows over. It is owned and mutated
// by the caller.
type Source[T any] interface {
	Len() int
	Slice(start, end int) []T
}

// Pager windows over a Source one page at a time.
type Pager[T any] struct {
	mu       sync.Mutex
	src      Source[T]
	pageSize int
	page     int
	lastLen  int
	unwatch  func()
}

// New creates a Pager positioned on page 1. If src is a *Slice, the Pager
// subscribes to it and reacts to length changes immediately; call Close to
// unsubscribe.
func New[T any](src Source[T], pageSize int) *Pager[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	p := &Pager[T]{
		src:      src,
		pageSize: pageSize,
		page:     1,
		lastLen:  sourceLen(src),
	}
	if s, ok := src.(*Slice[T]); ok {
		p.unwatch = s.Watch(p.onLenChange)
	}
	return p
}

// Close detaches the Pager from a watched Slice. It is safe to call more than once.
func (p *Pager[T]) Close() {
	p.mu.Lock()
	unwatch := p.unwatch
	p.unwatch = nil
	p.mu.Unlock()
	if unwatch != nil {
		unwatch()
	}
}

func (p *Pager[T]) onLenChange(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLen(n)
}

// settleLocked applies the shrink rule for sources that do not notify.
func (p *Pager[T]) settleLocked() int {
	n := sourceLen(p.src)
	p.settleLen(n)
	return n
}

// settleLen resets to page 1 when the current page no longer exists.
func (p *Pager[T]) settleLen(n int) {
	if n != p.lastLen {
		p.lastLen = n
		if p.page > TotalPages(n, p.pageSize) {
			p.page = 1
		}
	}
}

// Page returns the current 1-indexed page.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLocked()
	return p.page
}

// PageSize returns the configured page size.
func (p *Pager[T]) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

// Len returns the length of the backing sequence.
func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settleLocked()
}

// TotalPages returns the page count, never less than 1.
func (p *Pager[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return TotalPages(p.settleLocked(), p.pageSize)
}

// Items returns the current page slice. It is empty, not nil, for an empty source.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.settleLocked()
	start, end := Bounds(n, p.pageSize, p.page)
	if start >= end {
		return []T{}
	}
	return p.src.Slice(start, end)
}

// StartIndex returns the 1-indexed position of the first item on the page,
// or 0 when the source is empty.
func (p *Pager[T]) StartIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.settleLocked()
	start, end := Bounds(n, p.pageSize, p.page)
	if start >= end {
		return 0
	}
	return start + 1
}

// EndIndex returns the 1-indexed position of the last item on the page,
// or 0 when the source is empty.
func (p *Pager[T]) EndIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.settleLocked()
	_, end := Bounds(n, p.pageSize, p.page)
	return end
}

// HasNext reports whether NextPage would move.
func (p *Pager[T]) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page < TotalPages(p.settleLocked(), p.pageSize)
}

// HasPrev reports whether PrevPage would move.
func (p *Pager[T]) HasPrev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLocked()
	return p.page > 1
}

// GoToPage moves to page n clamped into [1, TotalPages].
func (p *Pager[T]) GoToPage(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = Clamp(n, p.settleLocked(), p.pageSize)
}

// NextPage advances one page; no-op on the last page.
func (p *Pager[T]) NextPage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page < TotalPages(p.settleLocked(), p.pageSize) {
		p.page++
	}
}

// PrevPage goes back one page; no-op on the first page.
func (p *Pager[T]) PrevPage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLocked()
	if p.page > 1 {
		p.page--
	}
}

// ResetPage returns to page 1. Callers use it after a filter or sort change.
func (p *Pager[T]) ResetPage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLocked()
	p.page = 1
}

// SetPageSize changes the page size and returns to page 1. Sizes below 1 are ignored.
func (p *Pager[T]) SetPageSize(size int) {
	if size < 1 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settleLocked()
	p.pageSize = size
	p.page = 1
}

func sourceLen[T any](src Source[T]) int {
	if src == nil {
		return 0
	}
	return src.Len()
}
