// internal/circulation/domain.go
package circulation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"libracore/internal/catalog"
)

// ReservationStatus is the reservation lifecycle state.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationFulfilled ReservationStatus = "Fulfilled"
)

// reservationHoldDays is how many full days a reservation is held before it
// counts as expired.
const reservationHoldDays = 3

// Reservation is a hold placed by a student on an item. Both sides are
// referenced by id and resolved through the library on demand. Cancelled and
// Fulfilled are terminal.
type Reservation struct {
	ID        uuid.UUID         `json:"id"`
	StudentID uuid.UUID         `json:"student_id"`
	ItemID    string            `json:"item_id"`
	CreatedAt time.Time         `json:"created_at"`
	Status    ReservationStatus `json:"status"`
}

// NewReservation creates an active reservation.
func NewReservation(studentID uuid.UUID, itemID string, createdAt time.Time) *Reservation {
	return &Reservation{
		ID:        uuid.New(),
		StudentID: studentID,
		ItemID:    itemID,
		CreatedAt: createdAt,
		Status:    ReservationActive,
	}
}

// Cancel moves the reservation to Cancelled. Only an active reservation can
// be cancelled.
func (r *Reservation) Cancel() bool {
	if r.Status != ReservationActive {
		return false
	}
	r.Status = ReservationCancelled
	return true
}

// Fulfill moves the reservation to Fulfilled, which requires the reservation
// to be active and the target item to be available right now.
func (r *Reservation) Fulfill(item *catalog.Item) bool {
	if r.Status != ReservationActive || !item.Available() {
		return false
	}
	r.Status = ReservationFulfilled
	return true
}

// Expired reports whether more than the hold period has elapsed since
// creation. Derived lazily; nothing sweeps expired reservations.
func (r *Reservation) Expired(now time.Time) bool {
	return int(now.Sub(r.CreatedAt).Hours()/24) > reservationHoldDays
}

// ReservationDetails is a display snapshot of a reservation with the student
// and item references resolved.
type ReservationDetails struct {
	ID              string `json:"id"`
	StudentID       string `json:"student_id"`
	StudentName     string `json:"student_name"`
	ItemID          string `json:"item_id"`
	ItemTitle       string `json:"item_title"`
	ReservationDate string `json:"reservation_date"`
	Status          string `json:"status"`
	IsExpired       bool   `json:"is_expired"`
}

// Notification is a message record addressed to a person, unread by default.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	Read        bool      `json:"read"`
}

// NewNotification creates an unread notification.
func NewNotification(recipientID uuid.UUID, message string, createdAt time.Time) *Notification {
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Message:     message,
		CreatedAt:   createdAt,
	}
}

// MarkRead flags the notification as read.
func (n *Notification) MarkRead() {
	n.Read = true
}

// MarkUnread flags the notification as unread.
func (n *Notification) MarkUnread() {
	n.Read = false
}

// Format renders the notification for display:
// [Read|Unread] [YYYY-MM-DD HH:MM] message.
func (n *Notification) Format() string {
	status := "Unread"
	if n.Read {
		status = "Read"
	}
	return fmt.Sprintf("[%s] [%s] %s", status, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
}
