package repository

import (
	"strings"
	"testing"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestInsertBuilders(t *testing.T) {
	t.Parallel()
	d, err := model.ParseDate("2023-09-01")
	require.NoError(t, err)
	books := []model.Book{
		{ID: 1, Title: "Emma", Author: "Jane Austen", Genre: "Classics", LastCheckoutDate: d},
		{ID: 2, Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", LastCheckoutDate: d, CheckedOut: true},
	}
	users := []model.User{
		{ID: 5, Name: "Jane Doe", CheckedOut: []int{2, 1}},
		{ID: 6, Name: "John Smith"},
	}

	q, args, err := insertBooks(books).ToSql()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(q, "INSERT INTO books"))
	require.Contains(t, q, "$12")
	require.Len(t, args, 12)
	require.Equal(t, true, args[11])

	q, args, err = insertUsers(users).ToSql()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(q, "INSERT INTO users"))
	require.Equal(t, []interface{}{5, "Jane Doe", 6, "John Smith"}, args)

	q, args, err = insertUserBooks(users).ToSql()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(q, "INSERT INTO user_books"))
	require.Equal(t, []interface{}{5, 2, 0, 5, 1, 1}, args)
	require.Equal(t, 2, borrowedCount(users))
}

func TestMapPgError(t *testing.T) {
	t.Parallel()
	err := mapPgError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: "Key (id)=(1) already exists."})
	require.ErrorIs(t, err, errs.ErrDuplicateID)

	err = mapPgError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	require.ErrorIs(t, err, errs.ErrUnknownBook)

	other := errors.New("conn reset")
	require.Equal(t, other, mapPgError(other))
}
