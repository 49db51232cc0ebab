package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
)

const (
	booksTableName     = `books`
	usersTableName     = `users`
	userBooksTableName = `user_books`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresRepository(db *sqlx.DB, log *zap.Logger) *postgresRepository {
	return &postgresRepository{
		db:  db,
		log: log.Named("repo"),
	}
}

func (r *postgresRepository) LoadBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "genre", "last_checkout_date", "checked_out").
		From(booksTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0)
	if err = r.db.SelectContext(ctx, &books, query, args...); err != nil {
		r.log.Error("LoadBooks", zap.String("q", query), zap.Error(err))
		return nil, err
	}
	return books, nil
}

func (r *postgresRepository) LoadUsers(ctx context.Context) ([]model.User, error) {
	query, args, err := qb.Select("id", "name").
		From(usersTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID   int    `db:"id"`
		Name string `db:"name"`
	}
	if err = r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	query, args, err = qb.Select("user_id", "book_id").
		From(userBooksTableName).
		OrderBy("user_id", "position").
		ToSql()
	if err != nil {
		return nil, err
	}
	var refs []struct {
		UserID int `db:"user_id"`
		BookID int `db:"book_id"`
	}
	if err = r.db.SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(rows))
	index := make(map[int]int, len(rows))
	for i, row := range rows {
		users = append(users, model.User{ID: row.ID, Name: row.Name})
		index[row.ID] = i
	}
	for _, ref := range refs {
		if i, ok := index[ref.UserID]; ok {
			users[i].AddBook(ref.BookID)
		}
	}
	return users, nil
}

// Save replaces every stored record inside one transaction.
func (r *postgresRepository) Save(ctx context.Context, books []model.Book, users []model.User) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Error("rollback", zap.Error(rbErr))
			}
		}
	}()

	for _, table := range []string{userBooksTableName, usersTableName, booksTableName} {
		if _, err = tx.ExecContext(ctx, "delete from "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	exec := func(ins sq.InsertBuilder) error {
		query, args, err := ins.ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return mapPgError(err)
		}
		return nil
	}
	if len(books) > 0 {
		if err = exec(insertBooks(books)); err != nil {
			return errors.WithMessage(err, "insert books")
		}
	}
	if len(users) > 0 {
		if err = exec(insertUsers(users)); err != nil {
			return errors.WithMessage(err, "insert users")
		}
	}
	if borrowedCount(users) > 0 {
		if err = exec(insertUserBooks(users)); err != nil {
			return errors.WithMessage(err, "insert user books")
		}
	}
	return tx.Commit()
}

func borrowedCount(users []model.User) int {
	n := 0
	for _, u := range users {
		n += len(u.CheckedOut)
	}
	return n
}

func insertBooks(books []model.Book) sq.InsertBuilder {
	ins := qb.Insert(booksTableName).
		Columns("id", "title", "author", "genre", "last_checkout_date", "checked_out")
	for _, b := range books {
		ins = ins.Values(b.ID, b.Title, b.Author, b.Genre, b.LastCheckoutDate, b.CheckedOut)
	}
	return ins
}

func insertUsers(users []model.User) sq.InsertBuilder {
	ins := qb.Insert(usersTableName).Columns("id", "name")
	for _, u := range users {
		ins = ins.Values(u.ID, u.Name)
	}
	return ins
}

func insertUserBooks(users []model.User) sq.InsertBuilder {
	ins := qb.Insert(userBooksTableName).Columns("user_id", "book_id", "position")
	for _, u := range users {
		for pos, bookID := range u.CheckedOut {
			ins = ins.Values(u.ID, bookID, pos)
		}
	}
	return ins
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(errs.ErrDuplicateID, pgErr.Detail)
		case pgerrcode.ForeignKeyViolation:
			return errors.Wrap(errs.ErrUnknownBook, pgErr.Detail)
		}
	}
	return err
}
