package database

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSearchTerm(t *testing.T) {
	term, ok := NormalizeSearchTerm("  aurora  ")
	assert.True(t, ok)
	assert.Equal(t, "aurora", term)

	_, ok = NormalizeSearchTerm("   ")
	assert.False(t, ok)

	_, ok = NormalizeSearchTerm("")
	assert.False(t, ok)
}

func TestSubstringMatchAny(t *testing.T) {
	t.Run("empty term matches everything", func(t *testing.T) {
		assert.Nil(t, SubstringMatchAny("", []string{"name"}))
	})

	t.Run("no columns matches everything", func(t *testing.T) {
		assert.Nil(t, SubstringMatchAny("aurora", nil))
	})

	t.Run("single column collapses to one LIKE", func(t *testing.T) {
		pred := SubstringMatchAny("Aurora", []string{"name"})
		require.NotNil(t, pred)

		sqlStr, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "LOWER(name) LIKE ?", sqlStr)
		assert.Equal(t, []interface{}{"%aurora%"}, args)
	})

	t.Run("multiple columns OR together", func(t *testing.T) {
		pred := SubstringMatchAny("Aurora", []string{"name", "description", "slug"})
		require.NotNil(t, pred)

		sqlStr, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(slug) LIKE ?)", sqlStr)
		assert.Len(t, args, 3)
		for _, arg := range args {
			assert.Equal(t, "%aurora%", arg)
		}
	})
}

func TestRangePredicate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("no bounds means no predicate", func(t *testing.T) {
		assert.Nil(t, RangePredicate("created_at", nil, nil))
	})

	t.Run("lower bound only", func(t *testing.T) {
		pred := RangePredicate("created_at", &from, nil)
		require.NotNil(t, pred)

		sqlStr, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "created_at >= ?", sqlStr)
		assert.Equal(t, []interface{}{from}, args)
	})

	t.Run("upper bound only", func(t *testing.T) {
		pred := RangePredicate("created_at", nil, &to)
		require.NotNil(t, pred)

		sqlStr, _, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "created_at <= ?", sqlStr)
	})

	t.Run("both bounds AND together", func(t *testing.T) {
		pred := RangePredicate("created_at", &from, &to)
		require.NotNil(t, pred)

		sqlStr, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(created_at >= ? AND created_at <= ?)", sqlStr)
		assert.Equal(t, []interface{}{from, to}, args)
	})
}

func TestConjunctionOfAll(t *testing.T) {
	like := sq.Like{"LOWER(name)": "%a%"}
	eq := sq.Eq{"author_id": 3}

	t.Run("all absent collapses to nil", func(t *testing.T) {
		assert.Nil(t, ConjunctionOfAll(nil, nil))
		assert.Nil(t, ConjunctionOfAll())
	})

	t.Run("single predicate collapses to itself", func(t *testing.T) {
		pred := ConjunctionOfAll(nil, like, nil)
		require.NotNil(t, pred)

		sqlStr, _, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "LOWER(name) LIKE ?", sqlStr)
	})

	t.Run("multiple predicates AND together", func(t *testing.T) {
		pred := ConjunctionOfAll(like, nil, eq)
		require.NotNil(t, pred)

		sqlStr, args, err := pred.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(LOWER(name) LIKE ? AND author_id = ?)", sqlStr)
		assert.Len(t, args, 2)
	})
}

func TestResolveSort(t *testing.T) {
	columns := map[string]string{
		"id":        "id",
		"createdAt": "created_at",
	}

	tests := []struct {
		name        string
		spec        string
		want        string
		wantApplied string
	}{
		{"valid ascending", "id.asc", "id ASC", "id.asc"},
		{"valid descending", "createdAt.desc", "created_at DESC", "createdAt.desc"},
		{"unknown field falls back", "title.asc", "id DESC", "id.desc"},
		{"unknown direction falls back", "id.upward", "id DESC", "id.desc"},
		{"empty spec falls back", "", "id DESC", "id.desc"},
		{"garbage falls back", "; DROP TABLE authors; --", "id DESC", "id.desc"},
		{"missing direction falls back", "id", "id DESC", "id.desc"},
		{"extra dots keep first two parts", "createdAt.asc.extra", "id DESC", "id.desc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied := ResolveSort(tt.spec, columns, "id", "desc")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}

func TestIsValidSortOrder(t *testing.T) {
	assert.True(t, IsValidSortOrder(SortIDAsc))
	assert.True(t, IsValidSortOrder(SortCreatedAtDesc))
	assert.False(t, IsValidSortOrder("title.asc"))
	assert.False(t, IsValidSortOrder(""))
}
