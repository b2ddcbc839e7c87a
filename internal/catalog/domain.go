// internal/catalog/domain.go
package catalog

import (
	"fmt"
	"time"
)

// Kind is the closed set of item variants carried by the catalog.
type Kind string

const (
	KindBook     Kind = "Book"
	KindMagazine Kind = "Magazine"
	KindDVD      Kind = "DVD"
)

// LoanPeriod returns how long an item of this kind may be borrowed.
func (k Kind) LoanPeriod() time.Duration {
	switch k {
	case KindBook:
		return 21 * 24 * time.Hour
	case KindMagazine:
		return 7 * 24 * time.Hour
	case KindDVD:
		return 3 * 24 * time.Hour
	}
	return 0
}

// DailyFineRate returns the currency charged per full overdue day.
func (k Kind) DailyFineRate() float64 {
	switch k {
	case KindBook:
		return 0.5
	case KindMagazine:
		return 1.0
	case KindDVD:
		return 2.0
	}
	return 0
}

// Item is a catalog entry. Exactly one of Book, Magazine or DVD is set,
// matching Kind. DueDate is non-nil iff CheckedOut is true.
type Item struct {
	ID         string     `json:"item_id"`
	Kind       Kind       `json:"type"`
	Title      string     `json:"title"`
	Location   string     `json:"location"`
	CheckedOut bool       `json:"checked_out"`
	DueDate    *time.Time `json:"due_date,omitempty"`

	Book     *BookDetails     `json:"book,omitempty"`
	Magazine *MagazineDetails `json:"magazine,omitempty"`
	DVD      *DVDDetails      `json:"dvd,omitempty"`
}

// BookDetails holds the descriptive fields specific to books.
type BookDetails struct {
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Publisher string `json:"publisher"`
	Pages     int    `json:"pages"`
}

// MagazineDetails holds the descriptive fields specific to magazines.
type MagazineDetails struct {
	Publisher       string    `json:"publisher"`
	IssueNumber     string    `json:"issue_number"`
	PublicationDate time.Time `json:"publication_date"`
}

// DVDDetails holds the descriptive fields specific to DVDs.
type DVDDetails struct {
	Director    string `json:"director"`
	Runtime     int    `json:"runtime"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"release_year"`
}

// NewBook creates a book catalog entry.
func NewBook(title, id, location, author, isbn, publisher string, pages int) *Item {
	return &Item{
		ID:       id,
		Kind:     KindBook,
		Title:    title,
		Location: location,
		Book: &BookDetails{
			Author:    author,
			ISBN:      isbn,
			Publisher: publisher,
			Pages:     pages,
		},
	}
}

// NewMagazine creates a magazine catalog entry.
func NewMagazine(title, id, location, publisher, issueNumber string, publicationDate time.Time) *Item {
	return &Item{
		ID:       id,
		Kind:     KindMagazine,
		Title:    title,
		Location: location,
		Magazine: &MagazineDetails{
			Publisher:       publisher,
			IssueNumber:     issueNumber,
			PublicationDate: publicationDate,
		},
	}
}

// NewDVD creates a DVD catalog entry.
func NewDVD(title, id, location, director string, runtime int, genre string, releaseYear int) *Item {
	return &Item{
		ID:       id,
		Kind:     KindDVD,
		Title:    title,
		Location: location,
		DVD: &DVDDetails{
			Director:    director,
			Runtime:     runtime,
			Genre:       genre,
			ReleaseYear: releaseYear,
		},
	}
}

// Available reports whether the item can be issued.
func (i *Item) Available() bool {
	return !i.CheckedOut
}

// CheckOut marks the item checked out and stamps its due date from the
// kind's loan period. No-op if already checked out; the caller owns
// authorization and borrower bookkeeping.
func (i *Item) CheckOut(now time.Time) {
	if i.CheckedOut {
		return
	}
	due := now.Add(i.Kind.LoanPeriod())
	i.CheckedOut = true
	i.DueDate = &due
}

// ReturnToLibrary clears the checkout state unconditionally. Fine accrual
// belongs to the borrowing relationship, so callers that charge fines must
// compute them before calling this.
func (i *Item) ReturnToLibrary() {
	i.CheckedOut = false
	i.DueDate = nil
}

// Fine returns the fine accrued at the given instant. Only full overdue days
// are charged. Pure query; never mutates the item.
func (i *Item) Fine(now time.Time) float64 {
	if !i.CheckedOut || i.DueDate == nil {
		return 0
	}
	days := wholeDays(now.Sub(*i.DueDate))
	if days > 0 {
		return float64(days) * i.Kind.DailyFineRate()
	}
	return 0
}

// DaysOverdue returns the number of full days past the due date, zero if the
// item is not overdue or not checked out.
func (i *Item) DaysOverdue(now time.Time) int {
	if i.DueDate == nil {
		return 0
	}
	days := wholeDays(now.Sub(*i.DueDate))
	if days < 0 {
		return 0
	}
	return days
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func (i *Item) String() string {
	status := "Available"
	if i.CheckedOut {
		status = "Checked Out"
	}
	return fmt.Sprintf("%s (%s) - %s", i.Title, i.ID, status)
}

// Details is a flat display snapshot of an item. Variant fields are populated
// only for the matching kind.
type Details struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	ItemID     string `json:"item_id"`
	Location   string `json:"location"`
	CheckedOut bool   `json:"checked_out"`
	DueDate    string `json:"due_date,omitempty"`

	Author          string `json:"author,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	Pages           int    `json:"pages,omitempty"`
	IssueNumber     string `json:"issue_number,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	Director        string `json:"director,omitempty"`
	Runtime         int    `json:"runtime,omitempty"`
	Genre           string `json:"genre,omitempty"`
	ReleaseYear     int    `json:"release_year,omitempty"`
}

// Details exports the item as a display snapshot. Dates are formatted
// YYYY-MM-DD.
func (i *Item) Details() Details {
	d := Details{
		Type:       string(i.Kind),
		Title:      i.Title,
		ItemID:     i.ID,
		Location:   i.Location,
		CheckedOut: i.CheckedOut,
	}
	if i.DueDate != nil {
		d.DueDate = i.DueDate.Format("2006-01-02")
	}
	switch i.Kind {
	case KindBook:
		d.Author = i.Book.Author
		d.ISBN = i.Book.ISBN
		d.Publisher = i.Book.Publisher
		d.Pages = i.Book.Pages
	case KindMagazine:
		d.Publisher = i.Magazine.Publisher
		d.IssueNumber = i.Magazine.IssueNumber
		d.PublicationDate = i.Magazine.PublicationDate.Format("2006-01-02")
	case KindDVD:
		d.Director = i.DVD.Director
		d.Runtime = i.DVD.Runtime
		d.Genre = i.DVD.Genre
		d.ReleaseYear = i.DVD.ReleaseYear
	}
	return d
}
