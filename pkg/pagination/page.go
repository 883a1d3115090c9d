package pagination

// Info 分页元信息；页码模式带总数，游标模式带下一页游标
type Info struct {
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit"`
	TotalItems *int64 `json:"totalItems,omitempty"`
	TotalPages *int64 `json:"totalPages,omitempty"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Page 所有列表视图共用的分页结果
type Page[T any] struct {
	Items []T `json:"items"`
	Info
}

func OffsetInfo(r Request, total int64) Info {
	pages := TotalPages(total, r.Size)
	return Info{
		Page:       r.Page,
		Limit:      r.Size,
		TotalItems: &total,
		TotalPages: &pages,
		HasMore:    int64(r.Page) < pages,
	}
}

func CursorInfo(r Request, next string, hasMore bool) Info {
	return Info{Limit: r.Size, NextCursor: next, HasMore: hasMore}
}

func TotalPages(total int64, size int) int64 {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + int64(size) - 1) / int64(size)
}

func NewOffsetPage[T any](items []T, r Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Info: OffsetInfo(r, total)}
}

func NewCursorPage[T any](items []T, r Request, next string, hasMore bool) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Info: CursorInfo(r, next, hasMore)}
}

// Trim 截掉游标模式下多取的一条记录，并生成下一页游标
func Trim[T Keyed](fetched []T, r Request) (window []T, next string, hasMore bool) {
	if r.Mode != ModeCursor {
		return fetched, "", false
	}
	if len(fetched) > r.Size {
		fetched = fetched[:r.Size]
		hasMore = true
	}
	if hasMore && len(fetched) > 0 {
		next = CursorFor(fetched[len(fetched)-1], r.Sort).Encode()
	}
	return fetched, next, hasMore
}

// Map 将基础记录转换成视图结构，保持顺序
func Map[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
