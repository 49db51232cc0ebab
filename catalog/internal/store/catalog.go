// Package store holds the in-memory library catalog.
//
// Catalog is not safe for concurrent use; callers serialize access.
package store

import (
	"strings"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/pkg/errors"
)

type BookPredicate func(model.Book) bool

type UserPredicate func(model.User) bool

type Catalog struct {
	books []model.Book
	users []model.User
	// now is the reference date for new books and checkouts.
	now func() time.Time
}

// New builds a catalog from loaded records. Book and user ids must be
// unique and every borrowed id must resolve to a loaded book.
func New(books []model.Book, users []model.User, now func() time.Time) (*Catalog, error) {
	if now == nil {
		now = time.Now
	}
	c := &Catalog{
		books: make([]model.Book, 0, len(books)),
		users: make([]model.User, 0, len(users)),
		now:   now,
	}

	seen := make(map[int]struct{}, len(books))
	for _, b := range books {
		if _, ok := seen[b.ID]; ok {
			return nil, errors.Wrapf(errs.ErrDuplicateID, "book %d", b.ID)
		}
		seen[b.ID] = struct{}{}
		c.books = append(c.books, b)
	}

	seenUsers := make(map[int]struct{}, len(users))
	for _, u := range users {
		if _, ok := seenUsers[u.ID]; ok {
			return nil, errors.Wrapf(errs.ErrDuplicateID, "user %d", u.ID)
		}
		seenUsers[u.ID] = struct{}{}
		for _, id := range u.CheckedOut {
			if _, ok := seen[id]; !ok {
				return nil, errors.Wrapf(errs.ErrUnknownBook, "user %d references book %d", u.ID, id)
			}
		}
		c.users = append(c.users, cloneUser(u))
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.books)
}

func (c *Catalog) Books() []model.Book {
	return c.SearchBooks(func(model.Book) bool { return true })
}

func (c *Catalog) Users() []model.User {
	return c.SearchUsers(func(model.User) bool { return true })
}

func (c *Catalog) Book(id int) (model.Book, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.books[i], true
	}
	return model.Book{}, false
}

// BorrowedBooks resolves the user's references in borrow order.
func (c *Catalog) BorrowedBooks(u model.User) []model.Book {
	books := make([]model.Book, 0, len(u.CheckedOut))
	for _, id := range u.CheckedOut {
		if b, ok := c.Book(id); ok {
			books = append(books, b)
		}
	}
	return books
}

func (c *Catalog) AddBook(title, author, genre string) model.Book {
	b := model.Book{
		ID:               c.maxBookID() + 1,
		Title:            title,
		Author:           author,
		Genre:            genre,
		LastCheckoutDate: model.NewDate(c.now()),
		CheckedOut:       false,
	}
	c.books = append(c.books, b)
	return b
}

// RemoveBook drops the book and every user reference to it. Unknown ids
// are ignored.
func (c *Catalog) RemoveBook(id int) {
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.books = append(c.books[:i], c.books[i+1:]...)

	for ui := range c.users {
		list := c.users[ui].CheckedOut[:0]
		for _, bookID := range c.users[ui].CheckedOut {
			if bookID != id {
				list = append(list, bookID)
			}
		}
		c.users[ui].CheckedOut = list
	}
}

func (c *Catalog) CheckOutBook(id int) bool {
	i := c.indexOf(id)
	if i < 0 || c.books[i].CheckedOut {
		return false
	}
	c.books[i].CheckedOut = true
	c.books[i].LastCheckoutDate = model.NewDate(c.now())
	return true
}

func (c *Catalog) ReturnBook(id int) bool {
	i := c.indexOf(id)
	if i < 0 || !c.books[i].CheckedOut {
		return false
	}
	c.books[i].CheckedOut = false
	return true
}

func (c *Catalog) BookAvailability(id int) bool {
	b, ok := c.Book(id)
	return ok && b.Available()
}

func (c *Catalog) BookCount(title string) int {
	return len(c.SearchBooks(func(b model.Book) bool {
		return strings.EqualFold(b.Title, title)
	}))
}

func (c *Catalog) GenreCount(genre string) int {
	return len(c.SearchBooks(func(b model.Book) bool {
		return strings.EqualFold(b.Genre, genre)
	}))
}

func (c *Catalog) CheckedOutCount() int {
	return len(c.SearchBooks(func(b model.Book) bool { return b.CheckedOut }))
}

func (c *Catalog) SearchBooks(pred BookPredicate) []model.Book {
	result := make([]model.Book, 0)
	for _, b := range c.books {
		if pred(b) {
			result = append(result, b)
		}
	}
	return result
}

func (c *Catalog) SearchUsers(pred UserPredicate) []model.User {
	result := make([]model.User, 0)
	for _, u := range c.users {
		u := cloneUser(u)
		if pred(u) {
			result = append(result, u)
		}
	}
	return result
}

func (c *Catalog) indexOf(id int) int {
	for i := range c.books {
		if c.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) maxBookID() int {
	maxID := 0
	for _, b := range c.books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID
}

func cloneUser(u model.User) model.User {
	u.CheckedOut = append([]int(nil), u.CheckedOut...)
	return u
}

// Matching builds a predicate from a filter; empty fields match anything.
func Matching(f model.BookFilter) BookPredicate {
	return func(b model.Book) bool {
		if f.Title != "" && !strings.EqualFold(b.Title, f.Title) {
			return false
		}
		if f.Author != "" && !strings.EqualFold(b.Author, f.Author) {
			return false
		}
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			return false
		}
		if f.CheckedOut != nil && b.CheckedOut != *f.CheckedOut {
			return false
		}
		return true
	}
}
