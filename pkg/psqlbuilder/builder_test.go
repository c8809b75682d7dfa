package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "start_time").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": int64(7)}).
		Where(squirrel.NotEq{"status": "cancelled"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, start_time FROM bookings WHERE tenant_id = $1 AND status <> $2", query)
	assert.Equal(t, []interface{}{int64(7), "cancelled"}, args)
}

func TestInsert_Returning(t *testing.T) {
	query, args, err := Insert("blocked_times").
		Columns("tenant_id", "date").
		Values(int64(1), "2025-01-15").
		Suffix("RETURNING id").
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO blocked_times (tenant_id,date) VALUES ($1,$2) RETURNING id", query)
	assert.Len(t, args, 2)
}

func TestUpdateAndDelete(t *testing.T) {
	query, _, err := Update("services").Set("active", false).Where(squirrel.Eq{"id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE services SET active = $1 WHERE id = $2", query)

	query, _, err = Delete("blocked_times").Where(squirrel.Eq{"id": 3}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM blocked_times WHERE id = $1", query)
}
