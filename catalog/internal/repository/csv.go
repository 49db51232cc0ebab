package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	booksHeader = []string{"id", "title", "author", "genre", "lastCheckoutDate", "checkedOut"}
	usersHeader = []string{"id", "fullName", "checkedOutBooks"}
)

type csvRepository struct {
	booksPath string
	usersPath string
	log       *zap.Logger
}

func NewCSVRepository(booksPath, usersPath string, log *zap.Logger) *csvRepository {
	return &csvRepository{
		booksPath: booksPath,
		usersPath: usersPath,
		log:       log.Named("csv"),
	}
}

func (r *csvRepository) LoadBooks(_ context.Context) ([]model.Book, error) {
	f, err := os.Open(r.booksPath)
	if err != nil {
		return nil, errors.Wrap(err, "open books")
	}
	defer f.Close()

	books, err := ParseBooks(f)
	if err != nil {
		return nil, errors.WithMessage(err, r.booksPath)
	}
	r.log.Debug("books loaded", zap.String("path", r.booksPath), zap.Int("count", len(books)))
	return books, nil
}

func (r *csvRepository) LoadUsers(_ context.Context) ([]model.User, error) {
	f, err := os.Open(r.usersPath)
	if err != nil {
		return nil, errors.Wrap(err, "open users")
	}
	defer f.Close()

	users, err := ParseUsers(f)
	if err != nil {
		return nil, errors.WithMessage(err, r.usersPath)
	}
	r.log.Debug("users loaded", zap.String("path", r.usersPath), zap.Int("count", len(users)))
	return users, nil
}

func (r *csvRepository) Save(_ context.Context, books []model.Book, users []model.User) error {
	if err := writeFile(r.booksPath, func(w io.Writer) error { return WriteBooks(w, books) }); err != nil {
		return errors.Wrap(err, "save books")
	}
	if err := writeFile(r.usersPath, func(w io.Writer) error { return WriteUsers(w, users) }); err != nil {
		return errors.Wrap(err, "save users")
	}
	r.log.Info("catalog saved", zap.Int("books", len(books)), zap.Int("users", len(users)))
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// splitRecord reads line as RFC 4180 and falls back to a bare comma split
// when the line is not valid quoted CSV or has a field count fits rejects.
func splitRecord(line string, fits func(n int) bool) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	if rec, err := cr.Read(); err == nil && fits(len(rec)) {
		return rec
	}
	return strings.Split(line, ",")
}

// readRecords skips the header and blank lines and annotates errors with
// the line number.
func readRecords(r io.Reader, fits func(n int) bool, fn func(rec []string) error) error {
	sc := bufio.NewScanner(r)
	line, header := 0, true
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		if err := fn(splitRecord(text, fits)); err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
	}
	return errors.Wrap(sc.Err(), "read records")
}

func bookFields(n int) bool { return n == len(booksHeader) }

func userFields(n int) bool { return n == 2 || n == 3 }

// ParseBooks reads id,title,author,genre,lastCheckoutDate,checkedOut rows.
func ParseBooks(r io.Reader) ([]model.Book, error) {
	books := make([]model.Book, 0)
	err := readRecords(r, bookFields, func(rec []string) error {
		b, err := parseBook(rec)
		if err != nil {
			return err
		}
		books = append(books, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

func parseBook(rec []string) (model.Book, error) {
	if len(rec) != len(booksHeader) {
		return model.Book{}, errors.Wrapf(errs.ErrParse, "want %d fields, got %d", len(booksHeader), len(rec))
	}
	id, err := parseID(rec[0])
	if err != nil {
		return model.Book{}, err
	}
	date, err := model.ParseDate(rec[4])
	if err != nil {
		return model.Book{}, errors.Wrapf(errs.ErrParse, "date %q", rec[4])
	}
	checkedOut, err := parseBool(rec[5])
	if err != nil {
		return model.Book{}, err
	}
	return model.Book{
		ID:               id,
		Title:            rec[1],
		Author:           rec[2],
		Genre:            rec[3],
		LastCheckoutDate: date,
		CheckedOut:       checkedOut,
	}, nil
}

// ParseUsers reads id,fullName[,{id id ...}] rows.
func ParseUsers(r io.Reader) ([]model.User, error) {
	users := make([]model.User, 0)
	err := readRecords(r, userFields, func(rec []string) error {
		u, err := parseUser(rec)
		if err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func parseUser(rec []string) (model.User, error) {
	if len(rec) < 2 || len(rec) > 3 {
		return model.User{}, errors.Wrapf(errs.ErrParse, "want 2 or 3 fields, got %d", len(rec))
	}
	id, err := parseID(rec[0])
	if err != nil {
		return model.User{}, err
	}
	u := model.User{ID: id, Name: strings.TrimSpace(rec[1])}
	if len(rec) == 2 {
		return u, nil
	}

	for _, raw := range strings.Fields(strings.Trim(strings.TrimSpace(rec[2]), "{}")) {
		bookID, err := parseID(raw)
		if err != nil {
			return model.User{}, err
		}
		if u.Borrows(bookID) {
			return model.User{}, errors.Wrapf(errs.ErrDuplicateID, "book %d listed twice", bookID)
		}
		u.AddBook(bookID)
	}
	return u, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(errs.ErrParse, "id %q", s)
	}
	return id, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.Wrapf(errs.ErrParse, "boolean %q", s)
}

func WriteBooks(w io.Writer, books []model.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(booksHeader); err != nil {
		return err
	}
	for _, b := range books {
		rec := []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			b.Genre,
			b.LastCheckoutDate.String(),
			strconv.FormatBool(b.CheckedOut),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteUsers(w io.Writer, users []model.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(usersHeader); err != nil {
		return err
	}
	for _, u := range users {
		rec := []string{strconv.Itoa(u.ID), u.Name}
		if u.HasBooks() {
			ids := make([]string, 0, len(u.CheckedOut))
			for _, id := range u.CheckedOut {
				ids = append(ids, strconv.Itoa(id))
			}
			rec = append(rec, "{"+strings.Join(ids, " ")+"}")
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
