package pagination

import (
	"strings"
	"time"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
)

// Kind 排序字段的值类型，决定游标中值的编码方式
type Kind int

const (
	KindTime Kind = iota
	KindInt
	KindFloat
	KindString
)

// Field 可排序字段：Name 为对外参数名，Column 为数据库列名
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

var (
	CreatedAt = Field{Name: "createdAt", Column: "created_at", Kind: KindTime}
	UpdatedAt = Field{Name: "updatedAt", Column: "updated_at", Kind: KindTime}
	WatchedAt = Field{Name: "watchedAt", Column: "watched_at", Kind: KindTime}
	Views     = Field{Name: "views", Column: "views", Kind: KindInt}
	Duration  = Field{Name: "duration", Column: "duration", Kind: KindFloat}
	Title     = Field{Name: "title", Column: "title", Kind: KindString}
	Name      = Field{Name: "name", Column: "name", Kind: KindString}
)

// Fields 某个视图允许的排序字段白名单，第一个字段为默认排序字段
type Fields struct {
	def    Field
	byName map[string]Field
}

func NewFields(def Field, others ...Field) Fields {
	fs := Fields{def: def, byName: map[string]Field{def.Name: def}}
	for _, f := range others {
		fs.byName[f.Name] = f
	}
	return fs
}

func (fs Fields) Default() Field {
	return fs.def
}

func (fs Fields) Lookup(name string) (Field, bool) {
	f, ok := fs.byName[name]
	return f, ok
}

type Sort struct {
	Field Field
	Desc  bool
}

// ParseSort 校验调用方给出的排序字段和方向；字段不在白名单内时直接拒绝，不回退到默认值
func ParseSort(sortBy, sortType string, allowed Fields) (Sort, error) {
	field := allowed.Default()
	if sortBy != "" {
		f, ok := allowed.Lookup(sortBy)
		if !ok {
			return Sort{}, errno.ValidationErr.WithMessage("sortBy \"" + sortBy + "\" is not a permitted sort field")
		}
		field = f
	}
	if sortType == "" {
		sortType = constants.DefaultSortType
	}
	switch strings.ToLower(sortType) {
	case "desc":
		return Sort{Field: field, Desc: true}, nil
	case "asc":
		return Sort{Field: field, Desc: false}, nil
	default:
		return Sort{}, errno.ValidationErr.WithMessage("sortType must be asc or desc")
	}
}

// Keyed 可参与分页的记录：排序值加上唯一、不可变的ID作为并列时的次序
type Keyed interface {
	CursorID() int64
	SortValue(field string) any
}

func compareValues(a, b any) int {
	switch x := a.(type) {
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case int64:
		y, _ := b.(int64)
		return compareOrdered(x, y)
	case int:
		y, _ := b.(int)
		return compareOrdered(x, y)
	case float64:
		y, _ := b.(float64)
		return compareOrdered(x, y)
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case bool:
		y, _ := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	return 0
}

func compareOrdered[T int | int64 | float64](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// Compare 按 (排序字段, ID) 比较两条记录在结果中的先后，返回值小于0表示 a 排在 b 前
func Compare(s Sort, a, b Keyed) int {
	c := compareValues(a.SortValue(s.Field.Name), b.SortValue(s.Field.Name))
	if c == 0 {
		c = compareOrdered(a.CursorID(), b.CursorID())
	}
	if s.Desc {
		return -c
	}
	return c
}
