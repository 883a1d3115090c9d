package pagination

import "sort"

// Window 在内存中对记录排序并截取分页窗口，语义与 Scope 生成的 SQL 一致：
// 游标模式返回严格位于游标之后的 Fetch() 条记录
func Window[T Keyed](items []T, r Request) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(r.Sort, sorted[i], sorted[j]) < 0
	})

	start := 0
	if r.Mode == ModeCursor {
		if v, ok := r.CursorValue(); ok {
			key := cursorKey{field: r.Sort.Field.Name, value: v, id: r.After.ID}
			start = sort.Search(len(sorted), func(i int) bool {
				return Compare(r.Sort, sorted[i], key) > 0
			})
		}
	} else {
		start = r.Skip()
	}
	if start >= len(sorted) {
		return []T{}
	}
	end := start + r.Fetch()
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}
