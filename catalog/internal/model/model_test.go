package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/stretchr/testify/require"
)

var refDate = time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC)

func TestBook_CalculateFees(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		daysAgo int
		want    float64
	}{
		{name: "same day", daysAgo: 0, want: 0},
		{name: "10 days", daysAgo: 10, want: 0},
		{name: "30 days", daysAgo: 30, want: 0},
		{name: "31 days base fee", daysAgo: 31, want: 10},
		{name: "32 days", daysAgo: 32, want: 11.5},
		{name: "45 days", daysAgo: 45, want: 31},
		{name: "future checkout", daysAgo: -5, want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := model.Book{LastCheckoutDate: model.NewDate(refDate.AddDate(0, 0, -tt.daysAgo))}
			require.InDelta(t, tt.want, b.CalculateFees(refDate), 1e-9)
		})
	}
}

func TestBook_CalculateFees_Linear(t *testing.T) {
	t.Parallel()
	prev := model.Book{LastCheckoutDate: model.NewDate(refDate.AddDate(0, 0, -31))}.CalculateFees(refDate)
	for d := 32; d < 120; d++ {
		fee := model.Book{LastCheckoutDate: model.NewDate(refDate.AddDate(0, 0, -d))}.CalculateFees(refDate)
		require.InDelta(t, 1.5, fee-prev, 1e-9, "day %d", d)
		prev = fee
	}
}

func TestBook_CalculateFees_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()
	b := model.Book{LastCheckoutDate: model.NewDate(time.Date(2023, 8, 15, 23, 59, 0, 0, time.UTC))}
	require.InDelta(t, 10.0, b.CalculateFees(time.Date(2023, 9, 15, 0, 1, 0, 0, time.UTC)), 1e-9)
}

func TestBook_String(t *testing.T) {
	t.Parallel()
	b := model.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien"}
	require.Equal(t, "THE HOBBIT BY J.R.R. TOLKIEN", b.String())
	require.Equal(t, "The Hobbit", b.Title)
}

func TestUser_AddBook(t *testing.T) {
	t.Parallel()
	var u model.User
	require.False(t, u.HasBooks())
	u.AddBook(2)
	u.AddBook(9)
	require.True(t, u.HasBooks())
	require.Equal(t, []int{2, 9}, u.CheckedOut)
	require.True(t, u.Borrows(9))
	require.False(t, u.Borrows(3))
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()
	d, err := model.ParseDate("2023-09-01")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2023-09-01"`, string(data))

	var got model.Date
	require.NoError(t, json.Unmarshal(data, &got))
	require.True(t, d.Equal(got.Time))

	require.Error(t, json.Unmarshal([]byte(`"09/01/2023"`), &got))
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()
	var d model.Date
	require.NoError(t, d.Scan(time.Date(2023, 9, 1, 15, 4, 0, 0, time.UTC)))
	require.Equal(t, "2023-09-01", d.String())
	require.NoError(t, d.Scan("2023-01-02"))
	require.Equal(t, "2023-01-02", d.String())
	require.Error(t, d.Scan(42))
}
