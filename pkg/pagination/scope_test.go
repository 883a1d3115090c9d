package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type clip struct {
	ID    int64
	Views int64
}

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "vidtube:vidtube@tcp(127.0.0.1:3306)/vidtube?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func scoped(t *testing.T, r Request, table string) *gorm.Statement {
	t.Helper()
	var out []clip
	tx := dryRun(t).Scopes(r.Scope(table)).Find(&out)
	require.NoError(t, tx.Error)
	return tx.Statement
}

func TestScopeOffset(t *testing.T) {
	r, err := Offset(3, 10, Sort{Field: CreatedAt}, DefaultLimits)
	require.NoError(t, err)

	stmt := scoped(t, r, "")
	sql := stmt.SQL.String()
	require.Contains(t, sql, "ORDER BY `created_at`,`id`")
	require.NotContains(t, sql, "DESC")
	require.NotContains(t, sql, "WHERE")
	require.Contains(t, sql, "LIMIT")
	require.Contains(t, sql, "OFFSET")
}

func TestScopeCursorDesc(t *testing.T) {
	sort := Sort{Field: Views, Desc: true}
	c := Cursor{Field: "views", Desc: true, Value: "42", ID: 7}
	r, err := After(c.Encode(), 10, sort, DefaultLimits)
	require.NoError(t, err)

	stmt := scoped(t, r, "clips")
	sql := stmt.SQL.String()
	require.Contains(t, sql, "WHERE ((clips.views < ?) OR (clips.views = ? AND clips.id < ?))")
	require.Contains(t, sql, "ORDER BY `clips`.`views` DESC,`clips`.`id` DESC")
	require.NotContains(t, sql, "OFFSET")
	require.GreaterOrEqual(t, len(stmt.Vars), 3)
	require.Equal(t, []interface{}{int64(42), int64(42), int64(7)}, stmt.Vars[:3])
}

func TestScopeCursorAsc(t *testing.T) {
	sort := Sort{Field: Views}
	c := Cursor{Field: "views", Value: "0", ID: 3}
	r, err := After(c.Encode(), 5, sort, DefaultLimits)
	require.NoError(t, err)

	stmt := scoped(t, r, "clips")
	sql := stmt.SQL.String()
	require.Contains(t, sql, "((clips.views > ?) OR (clips.views = ? AND clips.id > ?))")
	require.Contains(t, sql, "ORDER BY `clips`.`views`,`clips`.`id`")
	require.NotContains(t, sql, "DESC")
	require.Equal(t, []interface{}{int64(0), int64(0), int64(3)}, stmt.Vars[:3])
}

func TestScopeFirstCursorPage(t *testing.T) {
	r, err := After("", 5, Sort{Field: CreatedAt, Desc: true}, DefaultLimits)
	require.NoError(t, err)

	stmt := scoped(t, r, "clips")
	sql := stmt.SQL.String()
	require.NotContains(t, sql, "WHERE")
	require.Contains(t, sql, "ORDER BY `clips`.`created_at` DESC,`clips`.`id` DESC")
	require.Equal(t, 6, r.Fetch())
}
