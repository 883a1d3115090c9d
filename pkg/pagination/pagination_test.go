package pagination

import (
	"math"
	"testing"
	"time"

	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type record struct {
	id        int64
	createdAt time.Time
	views     int64
}

func (r record) CursorID() int64 { return r.id }

func (r record) SortValue(field string) any {
	switch field {
	case "createdAt":
		return r.createdAt
	case "views":
		return r.views
	}
	return nil
}

var testFields = NewFields(CreatedAt, Views)

// 每三条记录共享同一个创建时间，用来覆盖并列排序值的情况
func snapshot(n int) []record {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, record{
			id:        int64(1000 + (i*7)%n + i*n),
			createdAt: base.Add(time.Duration(i/3) * time.Second),
			views:     int64(i % 4),
		})
	}
	return out
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("", "", testFields)
	require.NoError(t, err)
	require.Equal(t, CreatedAt, s.Field)
	require.True(t, s.Desc)

	s, err = ParseSort("views", "ASC", testFields)
	require.NoError(t, err)
	require.Equal(t, Views, s.Field)
	require.False(t, s.Desc)

	_, err = ParseSort("password", "asc", testFields)
	require.True(t, errors.Is(err, errno.ValidationErr))

	_, err = ParseSort("views", "sideways", testFields)
	require.True(t, errors.Is(err, errno.ValidationErr))
}

func TestOffsetRequest(t *testing.T) {
	sort, _ := ParseSort("", "", testFields)

	r, err := Offset(3, 10, sort, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, 20, r.Skip())
	require.Equal(t, 10, r.Fetch())

	r, err = Offset(0, 0, sort, DefaultLimits)
	require.NoError(t, err)
	require.Equal(t, 1, r.Page)
	require.Equal(t, DefaultLimits.Default, r.Size)

	r, err = Offset(1, 5000, sort, Limits{Default: 10, Max: 50})
	require.NoError(t, err)
	require.Equal(t, 50, r.Size)

	_, err = Offset(-1, 10, sort, DefaultLimits)
	require.True(t, errors.Is(err, errno.ValidationErr))
	_, err = Offset(1, -4, sort, DefaultLimits)
	require.True(t, errors.Is(err, errno.ValidationErr))
}

func TestOffsetPageTooLarge(t *testing.T) {
	sort, _ := ParseSort("", "", testFields)

	for _, page := range []int{math.MaxInt / 5, math.MaxInt, MaxOffset/10 + 2} {
		_, err := Offset(page, 10, sort, DefaultLimits)
		require.True(t, errors.Is(err, errno.ValidationErr), "page %d", page)
	}

	r, err := Offset(MaxOffset/10+1, 10, sort, DefaultLimits)
	require.NoError(t, err)
	require.GreaterOrEqual(t, r.Skip(), 0)
	require.Empty(t, Window(snapshot(5), r))
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, int64(0), TotalPages(0, 10))
	require.Equal(t, int64(1), TotalPages(10, 10))
	require.Equal(t, int64(2), TotalPages(11, 10))
	require.Equal(t, int64(4), TotalPages(31, 10))
}

func TestOffsetWindow(t *testing.T) {
	items := snapshot(25)
	sort, _ := ParseSort("createdAt", "asc", testFields)

	var all []record
	for page := 1; ; page++ {
		r, err := Offset(page, 10, sort, DefaultLimits)
		require.NoError(t, err)
		got := Window(items, r)
		p := NewOffsetPage(got, r, int64(len(items)))
		require.Equal(t, int64(3), *p.TotalPages)
		all = append(all, got...)
		if !p.HasMore {
			break
		}
	}
	require.Len(t, all, 25)
	for i := 1; i < len(all); i++ {
		require.Negative(t, Compare(sort, all[i-1], all[i]))
	}
}

func TestCursorMalformed(t *testing.T) {
	sort, _ := ParseSort("", "", testFields)

	for _, token := range []string{"%%%", "bm90LWpzb24", Cursor{Field: "createdAt", Desc: true, Value: "yesterday", ID: 3}.Encode()} {
		_, err := After(token, 10, sort, DefaultLimits)
		require.True(t, errors.Is(err, errno.ValidationErr), token)
	}

	// 由另一种排序生成的游标不能复用
	asc, _ := ParseSort("", "asc", testFields)
	token := CursorFor(snapshot(1)[0], asc).Encode()
	_, err := After(token, 10, sort, DefaultLimits)
	require.True(t, errors.Is(err, errno.ValidationErr))

	r, err := After("", 10, sort, DefaultLimits)
	require.NoError(t, err)
	require.Nil(t, r.After)
}

// 任意 N、K 下，拼接所有游标分页结果应当恰好还原完整有序集合，无重复无遗漏
func TestCursorExhaustive(t *testing.T) {
	for _, dir := range []string{"desc", "asc"} {
		sort, err := ParseSort("createdAt", dir, testFields)
		require.NoError(t, err)
		for n := 0; n <= 23; n++ {
			items := snapshot(n)
			expected := Window(items, Request{Mode: ModeOffset, Page: 1, Size: n + 1, Sort: sort})
			for k := 1; k <= 7; k++ {
				got := []record{}
				token := ""
				for guard := 0; guard <= n+1; guard++ {
					r, err := After(token, k, sort, DefaultLimits)
					require.NoError(t, err)
					window, next, more := Trim(Window(items, r), r)
					require.LessOrEqual(t, len(window), k)
					got = append(got, window...)
					if !more {
						break
					}
					token = next
				}
				require.Equal(t, len(expected), len(got), "n=%d k=%d dir=%s", n, k, dir)
				require.Equal(t, expected, got, "n=%d k=%d dir=%s", n, k, dir)
			}
		}
	}
}

func TestCursorOnNumericField(t *testing.T) {
	items := snapshot(17)
	sort, _ := ParseSort("views", "desc", testFields)

	seen := map[int64]bool{}
	token := ""
	for {
		r, err := After(token, 4, sort, DefaultLimits)
		require.NoError(t, err)
		window, next, more := Trim(Window(items, r), r)
		for _, it := range window {
			require.False(t, seen[it.id])
			seen[it.id] = true
		}
		if !more {
			break
		}
		token = next
	}
	require.Len(t, seen, 17)
}
