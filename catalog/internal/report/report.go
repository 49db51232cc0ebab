package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/store"
	"github.com/pkg/errors"
)

// Genres is the fixed breakdown of the summary; other genres only count
// toward the total.
var Genres = []string{"Adventure", "Fiction", "Classics", "Mystery", "Science Fiction"}

const separator = "====================================================\n"

type Source interface {
	Len() int
	GenreCount(genre string) int
	SearchBooks(pred store.BookPredicate) []model.Book
	SearchUsers(pred store.UserPredicate) []model.User
	BorrowedBooks(u model.User) []model.Book
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type UserFees struct {
	Name string  `json:"name"`
	Fees float64 `json:"fees"`
}

type Report struct {
	Genres     []GenreCount `json:"genres"`
	Total      int          `json:"total"`
	CheckedOut []model.Book `json:"checkedOut"`
	Users      []UserFees   `json:"users"`
	TotalDue   float64      `json:"totalDue"`
}

// Build computes fees as of ref.
func Build(src Source, ref time.Time) Report {
	r := Report{
		Genres:     make([]GenreCount, 0, len(Genres)),
		Total:      src.Len(),
		CheckedOut: src.SearchBooks(func(b model.Book) bool { return b.CheckedOut }),
		Users:      make([]UserFees, 0),
	}
	for _, g := range Genres {
		r.Genres = append(r.Genres, GenreCount{Genre: g, Count: src.GenreCount(g)})
	}

	for _, u := range src.SearchUsers(func(u model.User) bool { return u.HasBooks() }) {
		var fees float64
		for _, b := range src.BorrowedBooks(u) {
			fees += b.CalculateFees(ref)
		}
		r.Users = append(r.Users, UserFees{Name: u.Name, Fees: fees})
		r.TotalDue += fees
	}
	return r
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("\t\t\t\tREPORT\n\n")
	sb.WriteString("\t\tSUMMARY OF BOOKS\n")
	sb.WriteString("GENRE\t\t\t\t\t\tAMOUNT\n")
	for _, g := range r.Genres {
		fmt.Fprintf(&sb, "%s%s%d\n", g.Genre, genrePad(g.Genre), g.Count)
	}
	sb.WriteString(separator)
	fmt.Fprintf(&sb, "\t\t\tTOTAL AMOUNT OF BOOKS\t%d\n\n", r.Total)

	sb.WriteString("\t\t\tBOOKS CURRENTLY CHECKED OUT\n\n")
	for _, b := range r.CheckedOut {
		sb.WriteString(b.Title + " BY " + b.Author + "\n")
	}
	sb.WriteString(separator)
	fmt.Fprintf(&sb, "\t\t\tTOTAL AMOUNT OF BOOKS\t%d\n\n", len(r.CheckedOut))

	sb.WriteString("\n\n\t\tUSERS THAT OWE BOOK FEES\n\n")
	for _, u := range r.Users {
		fmt.Fprintf(&sb, "%s\t\t\t\t\t$%.2f\n", u.Name, u.Fees)
	}
	sb.WriteString(separator)
	fmt.Fprintf(&sb, "\t\t\t\tTOTAL DUE\t$%.2f\n\n\n", r.TotalDue)
	return sb.String()
}

// genrePad aligns the amount column for 8-wide tab stops.
func genrePad(genre string) string {
	if len(genre) < 8 {
		return "\t\t\t\t\t\t"
	}
	return "\t\t\t\t\t"
}

// Save overwrites path with the report text.
func Save(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}
