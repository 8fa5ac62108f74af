// Package pagination normalizes offset/limit paging inputs for list RPCs.
package pagination

// LimitConfig configures limit normalization.
type LimitConfig struct {
	Default int
	Max     int
}

// ClampLimit applies defaults and limits for page sizes.
func ClampLimit(value int32, cfg LimitConfig) int {
	limit := int(value)
	if limit <= 0 {
		limit = cfg.Default
	}
	if cfg.Max > 0 && limit > cfg.Max {
		limit = cfg.Max
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}

// ClampOffset turns negative offsets into zero.
func ClampOffset(value int32) int {
	if value < 0 {
		return 0
	}
	return int(value)
}

// CurrentPage returns the 1-based page number an offset falls on.
func CurrentPage(offset, limit int) int {
	if limit <= 0 {
		return 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset/limit + 1
}

// OffsetForPage returns the offset of a 1-based page number.
func OffsetForPage(page, limit int) int {
	if page < 1 || limit <= 0 {
		return 0
	}
	return (page - 1) * limit
}

// TotalPages returns how many pages of limit items are needed for count items.
func TotalPages(count, limit int) int {
	if count <= 0 || limit <= 0 {
		return 0
	}
	return (count + limit - 1) / limit
}
