package repository_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const booksCSV = `id,title,author,genre,lastCheckoutDate,checkedOut
1,Treasure Island,Robert Louis Stevenson,Adventure,2023-08-01,true
2,Pride and Prejudice,Jane Austen,Classics,2023-09-10,false
9,The Hound of the Baskervilles,Arthur Conan Doyle,Mystery,2023-07-30,True
`

const usersCSV = `id,fullName,checkedOutBooks
5,Jane Doe,{2 9}
6, John Smith
7,Ann Lee,{}
`

func TestParseBooks(t *testing.T) {
	t.Parallel()
	books, err := repository.ParseBooks(strings.NewReader(booksCSV))
	require.NoError(t, err)
	require.Len(t, books, 3)
	require.Equal(t, model.Book{
		ID:               1,
		Title:            "Treasure Island",
		Author:           "Robert Louis Stevenson",
		Genre:            "Adventure",
		LastCheckoutDate: mustDate(t, "2023-08-01"),
		CheckedOut:       true,
	}, books[0])
	require.False(t, books[1].CheckedOut)
	require.True(t, books[2].CheckedOut)
}

func TestParseBooks_Errors(t *testing.T) {
	t.Parallel()
	const header = "id,title,author,genre,lastCheckoutDate,checkedOut\n"
	tests := []struct {
		name string
		body string
	}{
		{name: "bad id", body: "x,Dune,Frank Herbert,Science Fiction,2023-01-01,false"},
		{name: "bad date", body: "1,Dune,Frank Herbert,Science Fiction,01/01/2023,false"},
		{name: "bad boolean", body: "1,Dune,Frank Herbert,Science Fiction,2023-01-01,yes"},
		{name: "unescaped delimiter", body: "1,Dune, Part One,Frank Herbert,Science Fiction,2023-01-01,false"},
		{name: "missing fields", body: "1,Dune"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := repository.ParseBooks(strings.NewReader(header + tt.body + "\n"))
			require.ErrorIs(t, err, errs.ErrParse)
			require.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestParseBooks_HeaderOnly(t *testing.T) {
	t.Parallel()
	books, err := repository.ParseBooks(strings.NewReader("id,title,author,genre,lastCheckoutDate,checkedOut\n"))
	require.NoError(t, err)
	require.Empty(t, books)

	books, err = repository.ParseBooks(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, books)
}

func TestParseBooks_QuotedFields(t *testing.T) {
	t.Parallel()
	body := "id,title,author,genre,lastCheckoutDate,checkedOut\n" +
		`3,"Dune, Part One",Frank Herbert,Science Fiction,2023-01-01,false` + "\n"
	books, err := repository.ParseBooks(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, "Dune, Part One", books[0].Title)
}

func TestParseBooks_BareFields(t *testing.T) {
	t.Parallel()
	body := "id,title,author,genre,lastCheckoutDate,checkedOut\n" +
		`1,"Hamlet" Annotated,Shakespeare,Classics,2023-01-01,false` + "\n" +
		`2,The "Real" Inspector Hound,Tom Stoppard,Mystery,2023-02-01,true` + "\r\n" +
		"\n" +
		"3,Emma,Jane Austen,Classics,2023-03-01,false\n"
	books, err := repository.ParseBooks(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, books, 3)
	require.Equal(t, `"Hamlet" Annotated`, books[0].Title)
	require.Equal(t, "Shakespeare", books[0].Author)
	require.Equal(t, `The "Real" Inspector Hound`, books[1].Title)
	require.True(t, books[1].CheckedOut)
	require.Equal(t, 3, books[2].ID)
}

func TestParseBooks_ErrorLine(t *testing.T) {
	t.Parallel()
	body := "id,title,author,genre,lastCheckoutDate,checkedOut\n" +
		"1,Emma,Jane Austen,Classics,2023-03-01,false\n" +
		"\n" +
		"x,Dune,Frank Herbert,Science Fiction,2023-01-01,false\n"
	_, err := repository.ParseBooks(strings.NewReader(body))
	require.ErrorIs(t, err, errs.ErrParse)
	require.Contains(t, err.Error(), "line 4")
}

func TestParseUsers_BareName(t *testing.T) {
	t.Parallel()
	body := "id,fullName,checkedOutBooks\n" + `5,"Jim" Beam,{1 2}` + "\n"
	users, err := repository.ParseUsers(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, []model.User{{ID: 5, Name: `"Jim" Beam`, CheckedOut: []int{1, 2}}}, users)
}

func TestParseUsers(t *testing.T) {
	t.Parallel()
	users, err := repository.ParseUsers(strings.NewReader(usersCSV))
	require.NoError(t, err)
	require.Equal(t, []model.User{
		{ID: 5, Name: "Jane Doe", CheckedOut: []int{2, 9}},
		{ID: 6, Name: "John Smith"},
		{ID: 7, Name: "Ann Lee"},
	}, users)
}

func TestParseUsers_Errors(t *testing.T) {
	t.Parallel()
	const header = "id,fullName,checkedOutBooks\n"
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "bad id", body: "five,Jane Doe", wantErr: errs.ErrParse},
		{name: "bad book id", body: "5,Jane Doe,{2 x}", wantErr: errs.ErrParse},
		{name: "too many fields", body: "5,Jane,Doe,{2}", wantErr: errs.ErrParse},
		{name: "duplicate book", body: "5,Jane Doe,{2 2}", wantErr: errs.ErrDuplicateID},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := repository.ParseUsers(strings.NewReader(header + tt.body + "\n"))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Parallel()
	books := []model.Book{
		{ID: 1, Title: "Dune, Part One", Author: "Frank Herbert", Genre: "Science Fiction", LastCheckoutDate: mustDate(t, "2023-01-01"), CheckedOut: true},
		{ID: 2, Title: "Emma", Author: "Jane Austen", Genre: "Classics", LastCheckoutDate: mustDate(t, "2023-02-02")},
	}
	users := []model.User{
		{ID: 5, Name: "Jane Doe", CheckedOut: []int{2, 1}},
		{ID: 6, Name: "John Smith"},
	}

	var bb, ub bytes.Buffer
	require.NoError(t, repository.WriteBooks(&bb, books))
	require.NoError(t, repository.WriteUsers(&ub, users))
	require.Contains(t, ub.String(), "5,Jane Doe,{2 1}\n")
	require.Contains(t, ub.String(), "6,John Smith\n")

	gotBooks, err := repository.ParseBooks(&bb)
	require.NoError(t, err)
	require.Equal(t, books, gotBooks)

	gotUsers, err := repository.ParseUsers(&ub)
	require.NoError(t, err)
	require.Equal(t, users, gotUsers)
}

func TestCSVRepository(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	booksPath := filepath.Join(dir, "catalog.csv")
	usersPath := filepath.Join(dir, "user.csv")
	require.NoError(t, os.WriteFile(booksPath, []byte(booksCSV), 0o644))
	require.NoError(t, os.WriteFile(usersPath, []byte(usersCSV), 0o644))

	ctx := context.Background()
	repo := repository.NewCSVRepository(booksPath, usersPath, zap.NewNop())

	books, err := repo.LoadBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	users, err := repo.LoadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	books = books[:2]
	require.NoError(t, repo.Save(ctx, books, users[1:]))

	reloaded, err := repo.LoadBooks(ctx)
	require.NoError(t, err)
	require.Equal(t, books, reloaded)
	reloadedUsers, err := repo.LoadUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, users[1:], reloadedUsers)
}

func TestCSVRepository_MissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	repo := repository.NewCSVRepository(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope2.csv"), zap.NewNop())
	_, err := repo.LoadBooks(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = repo.LoadUsers(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}
