// internal/catalog/domain_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestBook() *Item {
	return NewBook("Python Programming", "B001", "Floor 2, Shelf A", "John Doe", "978-1234567890", "Tech Press", 350)
}

func TestKindLoanPeriodsAndFineRates(t *testing.T) {
	testCases := []struct {
		kind     Kind
		loanDays int
		fineRate float64
	}{
		{KindBook, 21, 0.5},
		{KindMagazine, 7, 1.0},
		{KindDVD, 3, 2.0},
	}

	for _, tt := range testCases {
		assert.Equal(t, time.Duration(tt.loanDays)*24*time.Hour, tt.kind.LoanPeriod())
		assert.Equal(t, tt.fineRate, tt.kind.DailyFineRate())
	}
}

func TestCheckOutStampsDueDate(t *testing.T) {
	book := newTestBook()
	require.True(t, book.Available())
	require.Nil(t, book.DueDate)

	book.CheckOut(testNow)

	assert.False(t, book.Available())
	require.NotNil(t, book.DueDate)
	assert.Equal(t, testNow.Add(21*24*time.Hour), *book.DueDate)
}

func TestCheckOutIsIdempotent(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)
	firstDue := *book.DueDate

	// A second checkout must not move the due date.
	book.CheckOut(testNow.Add(48 * time.Hour))

	assert.Equal(t, firstDue, *book.DueDate)
}

func TestReturnToLibraryClearsState(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)

	book.ReturnToLibrary()

	assert.True(t, book.Available())
	assert.Nil(t, book.DueDate)
}

func TestFineIsZeroImmediatelyAfterCheckout(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)

	assert.Equal(t, 0.0, book.Fine(testNow))
}

func TestFineZeroWhenNotCheckedOut(t *testing.T) {
	book := newTestBook()
	assert.Equal(t, 0.0, book.Fine(testNow.Add(100*24*time.Hour)))
}

func TestFinePerVariantAt22DaysOverdue(t *testing.T) {
	testCases := []struct {
		name string
		item *Item
		want float64
	}{
		{"book", newTestBook(), 22 * 0.5},
		{"dvd", NewDVD("Introduction to Algorithms", "D001", "Floor 3, Shelf B", "Prof. X", 120, "Educational", 2023), 22 * 2.0},
		{"magazine", NewMagazine("Science Today", "M001", "Floor 1, Shelf D", "Science Press", "Issue 42", time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)), 22 * 1.0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.CheckOut(testNow)
			overdueBy22 := tt.item.DueDate.Add(22 * 24 * time.Hour)
			assert.Equal(t, tt.want, tt.item.Fine(overdueBy22))
		})
	}
}

func TestFineChargesOnlyWholeDays(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)
	due := *book.DueDate

	// Partial days are free until a full day has elapsed.
	assert.Equal(t, 0.0, book.Fine(due.Add(23*time.Hour)))
	assert.Equal(t, 0.5, book.Fine(due.Add(25*time.Hour)))
	assert.Equal(t, 1.0, book.Fine(due.Add(49*time.Hour)))
}

func TestFineIsPureQuery(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)
	late := book.DueDate.Add(5 * 24 * time.Hour)

	first := book.Fine(late)
	second := book.Fine(late)

	assert.Equal(t, first, second)
	assert.True(t, book.CheckedOut)
}

func TestDaysOverdue(t *testing.T) {
	dvd := NewDVD("Heat", "D002", "Floor 3, Shelf C", "Michael Mann", 170, "Crime", 1995)
	dvd.CheckOut(testNow)
	due := *dvd.DueDate

	assert.Equal(t, 0, dvd.DaysOverdue(due))
	assert.Equal(t, 0, dvd.DaysOverdue(due.Add(12*time.Hour)))
	assert.Equal(t, 3, dvd.DaysOverdue(due.Add(3*24*time.Hour)))
}

func TestItemString(t *testing.T) {
	book := newTestBook()
	assert.Equal(t, "Python Programming (B001) - Available", book.String())

	book.CheckOut(testNow)
	assert.Equal(t, "Python Programming (B001) - Checked Out", book.String())
}

func TestDetailsExport(t *testing.T) {
	book := newTestBook()
	book.CheckOut(testNow)

	d := book.Details()
	assert.Equal(t, "Book", d.Type)
	assert.Equal(t, "B001", d.ItemID)
	assert.Equal(t, "John Doe", d.Author)
	assert.Equal(t, 350, d.Pages)
	assert.True(t, d.CheckedOut)
	assert.Equal(t, testNow.Add(21*24*time.Hour).Format("2006-01-02"), d.DueDate)

	mag := NewMagazine("Science Today", "M001", "Floor 1, Shelf D", "Science Press", "Issue 42", time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC))
	md := mag.Details()
	assert.Equal(t, "Magazine", md.Type)
	assert.Equal(t, "2023-05-15", md.PublicationDate)
	assert.Empty(t, md.DueDate)
	assert.Empty(t, md.Author)
}
