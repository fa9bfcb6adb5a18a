package pkg

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/pagination"
	"gorm.io/gorm"

	"github.com/simp-lee/portal/internal/domain"
	"github.com/simp-lee/portal/internal/pager"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
	defaultSort     = "id:desc"

	pageOptionsContextKey = "page_options"
)

// PageOptions bounds the page size accepted from query parameters.
type PageOptions struct {
	DefaultSize int
	MaxSize     int
}

// DefaultPageOptions returns the built-in page size bounds.
func DefaultPageOptions() PageOptions {
	return PageOptions{DefaultSize: defaultPageSize, MaxSize: maxPageSize}
}

// WithPageOptions returns a middleware that makes opts visible to
// ParsePageRequest for the rest of the handler chain.
func WithPageOptions(opts PageOptions) gin.HandlerFunc {
	if opts.DefaultSize < 1 {
		opts.DefaultSize = defaultPageSize
	}
	if opts.MaxSize < opts.DefaultSize {
		opts.MaxSize = opts.DefaultSize
	}
	return func(c *gin.Context) {
		c.Set(pageOptionsContextKey, opts)
		c.Next()
	}
}

func pageOptions(c *gin.Context) PageOptions {
	if v, ok := c.Get(pageOptionsContextKey); ok {
		if opts, ok := v.(PageOptions); ok {
			return opts
		}
	}
	return DefaultPageOptions()
}

// reservedParams lists query parameter names used for pagination/sorting, not for filtering.
var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"sort":      true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination, sorting, and filtering parameters from query params.
// Invalid values fall back to defaults instead of failing the request.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	opts := pageOptions(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(opts.DefaultSize)))
	if pageSize < 1 {
		pageSize = opts.DefaultSize
	}
	if pageSize > opts.MaxSize {
		pageSize = opts.MaxSize
	}

	sort := c.DefaultQuery("sort", defaultSort)

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
		Filter:   filter,
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the page request.
// Only field names present in the allowed list are accepted; others are silently ignored.
// Field names are validated against a strict pattern to prevent SQL injection.
func Sort(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		parts := strings.SplitN(req.Sort, ":", 2)
		if len(parts) != 2 {
			return db
		}

		field := strings.TrimSpace(parts[0])
		direction := strings.TrimSpace(strings.ToLower(parts[1]))

		if direction != "asc" && direction != "desc" {
			return db
		}

		if !validFieldName.MatchString(field) {
			return db
		}

		if !isAllowed(field, allowed) {
			return db
		}

		return db.Order(field + " " + direction)
	}
}

// Filter returns a GORM scope that applies WHERE conditions based on the page request filters.
// Only filter keys present in the allowed list are applied; others are silently ignored.
// Keys ending with "__like" produce a LIKE '%value%' condition; others use exact match.
func Filter(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			if strings.HasSuffix(key, "__like") {
				field := strings.TrimSuffix(key, "__like")
				if !validFieldName.MatchString(field) {
					continue
				}
				if !isAllowed(field, allowed) {
					continue
				}
				db = db.Where(field+" LIKE ?", "%"+value+"%")
			} else {
				if !validFieldName.MatchString(key) {
					continue
				}
				if !isAllowed(key, allowed) {
					continue
				}
				db = db.Where(key+" = ?", value)
			}
		}
		return db
	}
}

// BuildPage assembles a PageResult for items already fetched for req out of
// total matching rows. The reported page is clamped into [1, TotalPages].
func BuildPage[T any](items []T, total int64, req domain.PageRequest) (*domain.PageResult[T], error) {
	p := pagination.NewPaginator(
		pagination.WithItemsPerPage[T](pageSizeOf(req)),
		pagination.WithKnownTotal[T](total),
		pagination.WithSliceCallback(func(context.Context, int, int) ([]T, error) {
			return items, nil
		}),
	)
	return paginate(context.Background(), p, req.Page)
}

// PageSlice pages through an in-memory slice the same way FindPage pages
// through a table.
func PageSlice[T any](items []T, req domain.PageRequest) (*domain.PageResult[T], error) {
	p := pagination.NewPaginator(
		pagination.WithItemsPerPage[T](pageSizeOf(req)),
		pagination.WithKnownTotal[T](int64(len(items))),
		pagination.WithSliceCallback(func(_ context.Context, offset, limit int) ([]T, error) {
			end := min(offset+limit, len(items))
			return items[min(offset, end):end], nil
		}),
	)
	return paginate(context.Background(), p, req.Page)
}

// PageOf moves p to page (clamped) and snapshots it as a PageResult.
func PageOf[T any](p *pager.Pager[T], page int) *domain.PageResult[T] {
	p.GoToPage(page)
	return &domain.PageResult[T]{
		Items:      p.Items(),
		Total:      int64(p.Len()),
		Page:       p.Page(),
		PageSize:   p.PageSize(),
		TotalPages: p.TotalPages(),
		StartIndex: p.StartIndex(),
		EndIndex:   p.EndIndex(),
	}
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}

// MapPage converts the items of p with fn, keeping the page metadata.
func MapPage[T, U any](p *domain.PageResult[T], fn func(*T) U) *domain.PageResult[U] {
	items := make([]U, len(p.Items))
	for i := range p.Items {
		items[i] = fn(&p.Items[i])
	}
	return &domain.PageResult[U]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		StartIndex: p.StartIndex,
		EndIndex:   p.EndIndex,
	}
}

// FindPage counts the rows of T matching db and req's filters and fetches the
// requested page through a pagination.Paginator. A page past the end yields
// the last page. db may carry extra conditions and its context is used for
// both queries.
func FindPage[T any](db *gorm.DB, req domain.PageRequest, filters, sorts []string) (*domain.PageResult[T], error) {
	base := db.Model(new(T)).Scopes(Filter(req, filters)).Session(&gorm.Session{})

	p := pagination.NewPaginator(
		pagination.WithItemsPerPage[T](pageSizeOf(req)),
		pagination.WithItemTotalCallback[T](func(ctx context.Context) (int64, error) {
			var total int64
			err := base.WithContext(ctx).Count(&total).Error
			return total, err
		}),
		pagination.WithSliceCallback(func(ctx context.Context, offset, limit int) ([]T, error) {
			var items []T
			err := base.WithContext(ctx).Scopes(Sort(req, sorts)).
				Offset(offset).Limit(limit).Find(&items).Error
			return items, err
		}),
	)

	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	page, err := paginate(ctx, p, req.Page)
	if err != nil {
		return nil, MapDBError(err)
	}
	return page, nil
}

func pageSizeOf(req domain.PageRequest) int {
	if req.PageSize < 1 {
		return defaultPageSize
	}
	return req.PageSize
}

// paginate runs p for page (pages below 1 count as the first page) and
// converts the result.
func paginate[T any](ctx context.Context, p *pagination.Paginator[T], page int) (*domain.PageResult[T], error) {
	res, err := p.Paginate(ctx, max(page, 1))
	if err != nil {
		return nil, err
	}
	return FromPagination(res), nil
}

// FromPagination converts a paginator result into the API page shape.
// StartIndex and EndIndex are 1-based and both zero for an empty page.
func FromPagination[T any](p *pagination.Pagination[T]) *domain.PageResult[T] {
	start, end := 0, 0
	if n := len(p.Items); n > 0 {
		start = (p.CurrentPage-1)*p.ItemsPerPage + 1
		end = start + n - 1
	}
	return &domain.PageResult[T]{
		Items:      p.Items,
		Total:      p.TotalItems,
		Page:       p.CurrentPage,
		PageSize:   p.ItemsPerPage,
		TotalPages: p.TotalPages,
		StartIndex: start,
		EndIndex:   end,
	}
}
