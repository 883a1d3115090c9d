package pagination

import (
	"math"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
)

type Mode int

// MaxOffset 页码模式允许跳过的最大记录数
const MaxOffset = math.MaxInt32

const (
	ModeOffset Mode = iota
	ModeCursor
)

// Limits 每页条数的默认值与上限
type Limits struct {
	Default int
	Max     int
}

var DefaultLimits = Limits{Default: constants.DefaultLimit, Max: constants.MaxLimit}

func (l Limits) size(size int) (int, error) {
	switch {
	case size < 0:
		return 0, errno.ValidationErr.WithMessage("limit must be a positive number")
	case size == 0:
		size = l.Default
	}
	if l.Max > 0 && size > l.Max {
		size = l.Max
	}
	if size <= 0 {
		size = constants.DefaultLimit
	}
	return size, nil
}

// Request 描述一次分页查询要取回的结果窗口
type Request struct {
	Mode  Mode
	Page  int
	Size  int
	Sort  Sort
	After *Cursor
}

// Offset 页码分页，page 从 1 开始，未传(0)时取第一页
func Offset(page, size int, sort Sort, l Limits) (Request, error) {
	if page < 0 {
		return Request{}, errno.ValidationErr.WithMessage("page must be greater than or equal to 1")
	}
	if page == 0 {
		page = 1
	}
	size, err := l.size(size)
	if err != nil {
		return Request{}, err
	}
	if page-1 > MaxOffset/size {
		return Request{}, errno.ValidationErr.WithMessage("page is too large")
	}
	return Request{Mode: ModeOffset, Page: page, Size: size, Sort: sort}, nil
}

// After 游标分页，token 为空表示第一页
func After(token string, size int, sort Sort, l Limits) (Request, error) {
	size, err := l.size(size)
	if err != nil {
		return Request{}, err
	}
	req := Request{Mode: ModeCursor, Size: size, Sort: sort}
	if token == "" {
		return req, nil
	}
	c, err := DecodeCursor(token, sort)
	if err != nil {
		return Request{}, err
	}
	req.After = c
	return req, nil
}

// Skip 需要跳过的记录数，游标模式下恒为 0
func (r Request) Skip() int {
	if r.Mode == ModeCursor || r.Page <= 1 {
		return 0
	}
	return (r.Page - 1) * r.Size
}

// Fetch 需要从存储取回的条数；游标模式多取一条用于判断是否还有下一页
func (r Request) Fetch() int {
	if r.Mode == ModeCursor {
		return r.Size + 1
	}
	return r.Size
}

// CursorValue 游标中按字段类型解析后的排序值
func (r Request) CursorValue() (any, bool) {
	if r.After == nil {
		return nil, false
	}
	v, err := r.After.value(r.Sort.Field.Kind)
	if err != nil {
		return nil, false
	}
	return v, true
}
