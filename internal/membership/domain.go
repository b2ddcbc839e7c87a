// internal/membership/domain.go
package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"libracore/internal/catalog"
)

// ErrInvalidEmail is returned when an email address fails validation.
var ErrInvalidEmail = errors.New("invalid email format")

// Person is the identity core shared by students and librarians.
type Person struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}

func newPerson(name, email, phone string, registeredAt time.Time) Person {
	return Person{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		RegisteredAt: registeredAt,
	}
}

// SetEmail replaces the email address, rejecting values without an "@".
func (p *Person) SetEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	p.Email = email
	return nil
}

// ContactInfo returns a one-line contact summary.
func (p *Person) ContactInfo() string {
	return fmt.Sprintf("Name: %s, Email: %s, Phone: %s", p.Name, p.Email, p.Phone)
}

// UpdateContactInfo updates email and/or phone. Empty strings leave the
// current value untouched; the email path validates.
func (p *Person) UpdateContactInfo(email, phone string) error {
	if email != "" {
		if err := p.SetEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		p.Phone = phone
	}
	return nil
}

const (
	// MaxBorrowedItems is the fixed concurrent-loan quota per student.
	MaxBorrowedItems = 5
	// MaxFineBalance is the credit-hold threshold; borrowing is blocked once
	// the fine balance exceeds it.
	MaxFineBalance = 10.0
)

// Student is a borrower. Borrowed items are tracked by catalog id in borrow
// order and resolved through the catalog on demand, never held as pointers.
type Student struct {
	Person
	StudentNumber string  `json:"student_id"`
	Major         string  `json:"major"`
	FineBalance   float64 `json:"fine_balance"`

	borrowed []string
}

// NewStudent creates a student with a fresh id and no loans.
func NewStudent(name, email, phone, studentNumber, major string, registeredAt time.Time) *Student {
	return &Student{
		Person:        newPerson(name, email, phone, registeredAt),
		StudentNumber: studentNumber,
		Major:         major,
	}
}

// BorrowedItemIDs returns the ids of currently borrowed items in borrow order.
func (s *Student) BorrowedItemIDs() []string {
	ids := make([]string, len(s.borrowed))
	copy(ids, s.borrowed)
	return ids
}

// CanBorrow reports whether both the quota gate and the credit-hold gate pass.
func (s *Student) CanBorrow() bool {
	return len(s.borrowed) < MaxBorrowedItems && s.FineBalance <= MaxFineBalance
}

// BorrowItem records the item on the student's loan list. It does not check
// the item out; callers pair it with Item.CheckOut (see Librarian.IssueItem)
// to keep the item and borrower state consistent. Returns false without
// mutation when the student cannot borrow or the item is unavailable.
func (s *Student) BorrowItem(item *catalog.Item) bool {
	if !s.CanBorrow() {
		return false
	}
	if !item.Available() {
		return false
	}
	s.borrowed = append(s.borrowed, item.ID)
	return true
}

// ReturnItem removes the item from the loan list and charges any accrued
// fine to the balance, returning the fine. The fine is computed while the
// item's due date is still populated; callers clear the item afterwards.
// Returning an item the student does not hold is a no-op yielding 0.
func (s *Student) ReturnItem(item *catalog.Item, now time.Time) float64 {
	idx := -1
	for n, id := range s.borrowed {
		if id == item.ID {
			idx = n
			break
		}
	}
	if idx < 0 {
		return 0
	}
	s.borrowed = append(s.borrowed[:idx], s.borrowed[idx+1:]...)
	fine := item.Fine(now)
	s.FineBalance += fine
	return fine
}

// PayFine applies a payment, clamped to the outstanding balance, and returns
// the amount actually applied. The balance never goes negative.
func (s *Student) PayFine(amount float64) float64 {
	if amount > s.FineBalance {
		payment := s.FineBalance
		s.FineBalance = 0
		return payment
	}
	s.FineBalance -= amount
	return amount
}

// StudentDetails is a display snapshot of a student.
type StudentDetails struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	StudentNumber string  `json:"student_id"`
	Major         string  `json:"major"`
	BorrowedItems int     `json:"borrowed_items"`
	FineBalance   float64 `json:"fine_balance"`
}

// Details exports the student as a display snapshot.
func (s *Student) Details() StudentDetails {
	return StudentDetails{
		ID:            s.ID.String(),
		Name:          s.Name,
		Email:         s.Email,
		Phone:         s.Phone,
		StudentNumber: s.StudentNumber,
		Major:         s.Major,
		BorrowedItems: len(s.borrowed),
		FineBalance:   s.FineBalance,
	}
}

// Department is the fixed set of librarian departments.
type Department string

const (
	DepartmentBooks   Department = "Books"
	DepartmentMedia   Department = "Media"
	DepartmentGeneral Department = "General"
)

// MaxAdminLevel caps librarian promotions.
const MaxAdminLevel = 3

// Librarian is staff with department-scoped authority over item kinds.
type Librarian struct {
	Person
	EmployeeID string     `json:"employee_id"`
	Department Department `json:"department"`
	AdminLevel int        `json:"admin_level"`
}

// NewLibrarian creates a librarian at admin level 1.
func NewLibrarian(name, email, phone, employeeID string, department Department, registeredAt time.Time) *Librarian {
	return &Librarian{
		Person:     newPerson(name, email, phone, registeredAt),
		EmployeeID: employeeID,
		Department: department,
		AdminLevel: 1,
	}
}

// Promote raises the admin level by one, reporting false at the cap.
func (l *Librarian) Promote() bool {
	if l.AdminLevel >= MaxAdminLevel {
		return false
	}
	l.AdminLevel++
	return true
}

// CanManageItem reports department authority over the item's kind. The
// issue/return paths do not consult it; it is available for callers that
// want to enforce department scoping.
func (l *Librarian) CanManageItem(item *catalog.Item) bool {
	switch l.Department {
	case DepartmentBooks:
		return item.Kind == catalog.KindBook
	case DepartmentMedia:
		return item.Kind == catalog.KindMagazine || item.Kind == catalog.KindDVD
	case DepartmentGeneral:
		return true
	}
	return false
}

// IssueItem hands the item to the student: the student accepts the loan and
// the item records the checkout, together preserving the cross-invariant that
// a checked-out item sits on exactly one loan list. Returns false without
// side effects when the student cannot borrow or the item is unavailable.
func (l *Librarian) IssueItem(student *Student, item *catalog.Item, now time.Time) bool {
	if !student.CanBorrow() || !item.Available() {
		return false
	}
	if student.BorrowItem(item) {
		item.CheckOut(now)
		return true
	}
	return false
}

// ProcessReturn takes the item back: the student's fine is computed and
// charged while the due date is still set, then the item's checkout state is
// cleared. Returns the fine charged.
func (l *Librarian) ProcessReturn(student *Student, item *catalog.Item, now time.Time) float64 {
	fine := student.ReturnItem(item, now)
	item.ReturnToLibrary()
	return fine
}
