package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	baseFee     = 10.0
	feePerDay   = 1.5
	gracePeriod = 31
)

type Book struct {
	ID               int    `json:"id" db:"id"`
	Title            string `json:"title" db:"title"`
	Author           string `json:"author" db:"author"`
	Genre            string `json:"genre" db:"genre"`
	LastCheckoutDate Date   `json:"lastCheckoutDate" db:"last_checkout_date"`
	CheckedOut       bool   `json:"checkedOut" db:"checked_out"`
}

// String is the display form used in listings: "TITLE BY AUTHOR".
func (b Book) String() string {
	return strings.ToUpper(b.Title) + " BY " + strings.ToUpper(b.Author)
}

func (b Book) Available() bool {
	return !b.CheckedOut
}

// CalculateFees charges nothing for the first 31 days since the last
// checkout, then a base fee plus a daily rate for every day past the 31st.
func (b Book) CalculateFees(ref time.Time) float64 {
	daysOverdue := DaysBetween(b.LastCheckoutDate.Time, ref)
	if daysOverdue < gracePeriod {
		return 0
	}
	return baseFee + feePerDay*float64(max(0, daysOverdue-gracePeriod))
}

// DaysBetween counts whole calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type User struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// CheckedOut holds ids of borrowed books; the catalog owns the books.
	CheckedOut []int `json:"checkedOut"`
}

func (u *User) AddBook(bookID int) {
	u.CheckedOut = append(u.CheckedOut, bookID)
}

func (u User) HasBooks() bool {
	return len(u.CheckedOut) > 0
}

func (u User) Borrows(bookID int) bool {
	for _, id := range u.CheckedOut {
		if id == bookID {
			return true
		}
	}
	return false
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time `json:",inline"`
}

func NewDate(t time.Time) Date {
	return Date{Time: Day(t)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	date, err := ParseDate(strings.Trim(string(b), "\""))
	if err != nil {
		return err
	}
	*d = date
	return
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		date, err := ParseDate(v)
		*d = date
		return err
	case []byte:
		date, err := ParseDate(string(v))
		*d = date
		return err
	}
	return fmt.Errorf("model.Date: unsupported type %T", src)
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
