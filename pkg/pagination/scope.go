package pagination

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope 将分页请求转换为 gorm 查询条件：排序总是追加 id 作为并列时的次序，
// 游标模式使用 (field, id) 的键集比较，页码模式使用 OFFSET/LIMIT
func (r Request) Scope(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, idCol := r.Sort.Field.Column, "id"
		if table != "" {
			col, idCol = table+"."+col, table+".id"
		}
		if v, ok := r.CursorValue(); ok {
			op := ">"
			if r.Sort.Desc {
				op = "<"
			}
			db = db.Where(fmt.Sprintf("((%s %s ?) OR (%s = ? AND %s %s ?))", col, op, col, idCol, op), v, v, r.After.ID)
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: r.Sort.Field.Column}, Desc: r.Sort.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}, Desc: r.Sort.Desc})
		return db.Offset(r.Skip()).Limit(r.Fetch())
	}
}
