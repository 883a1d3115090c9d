package pagination

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"

	"VidTube.com/pkg/errno"
)

// Cursor 上一页最后一条记录在排序中的位置，对调用方不透明
type Cursor struct {
	Field string `json:"f"`
	Desc  bool   `json:"d"`
	Value string `json:"v"`
	ID    int64  `json:"i"`
}

func CursorFor(item Keyed, s Sort) Cursor {
	return Cursor{
		Field: s.Field.Name,
		Desc:  s.Desc,
		Value: formatValue(item.SortValue(s.Field.Name)),
		ID:    item.CursorID(),
	}
}

func (c Cursor) Encode() string {
	data, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(data)
}

var errMalformedCursor = errno.ValidationErr.WithMessage("cursor is malformed")

// DecodeCursor 解析游标；游标必须由同一排序字段和方向生成
func DecodeCursor(token string, s Sort) (*Cursor, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errMalformedCursor
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errMalformedCursor
	}
	if c.ID <= 0 {
		return nil, errMalformedCursor
	}
	if c.Field != s.Field.Name || c.Desc != s.Desc {
		return nil, errno.ValidationErr.WithMessage("cursor does not match the requested sort order")
	}
	if _, err := c.value(s.Field.Kind); err != nil {
		return nil, errMalformedCursor
	}
	return &c, nil
}

func (c Cursor) value(kind Kind) (any, error) {
	switch kind {
	case KindTime:
		return time.Parse(time.RFC3339Nano, c.Value)
	case KindInt:
		return strconv.ParseInt(c.Value, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(c.Value, 64)
	default:
		return c.Value, nil
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return ""
}

// cursorKey 游标对应的虚拟记录，用于和真实记录比较先后
type cursorKey struct {
	field string
	value any
	id    int64
}

func (k cursorKey) CursorID() int64 { return k.id }

func (k cursorKey) SortValue(field string) any {
	if field == k.field {
		return k.value
	}
	return nil
}
