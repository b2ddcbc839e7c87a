// internal/circulation/library.go
package circulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libracore/internal/catalog"
	"libracore/internal/membership"
)

// Library is the aggregate root: it owns the catalog, the student and
// librarian registries, the reservation collection and the notification
// trail, and composes entity operations into checkout/return/reservation
// workflows. All entities are created through its registration methods and
// share its clock.
//
// The model is single-threaded by design; embedders with concurrent callers
// must serialize access themselves.
type Library struct {
	Name    string
	Address string

	clock  clockwork.Clock
	logger *slog.Logger
	tracer trace.Tracer

	catalog       *catalog.Catalog
	students      map[uuid.UUID]*membership.Student
	librarians    map[uuid.UUID]*membership.Librarian
	reservations  []*Reservation
	notifications []*Notification
}

// NewLibrary creates an empty library. A nil clock falls back to the wall
// clock and a nil logger to slog's default.
func NewLibrary(name, address string, clk clockwork.Clock, logger *slog.Logger) *Library {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		Name:       name,
		Address:    address,
		clock:      clk,
		logger:     logger,
		tracer:     otel.Tracer("libracore/circulation"),
		catalog:    catalog.NewCatalog(),
		students:   make(map[uuid.UUID]*membership.Student),
		librarians: make(map[uuid.UUID]*membership.Librarian),
	}
}

// Catalog exposes the item store.
func (l *Library) Catalog() *catalog.Catalog {
	return l.catalog
}

// RegisterStudent creates a student stamped with the library clock and adds
// it to the registry.
func (l *Library) RegisterStudent(name, email, phone, studentNumber, major string) *membership.Student {
	s := membership.NewStudent(name, email, phone, studentNumber, major, l.clock.Now())
	l.students[s.ID] = s
	return s
}

// RegisterLibrarian creates a librarian stamped with the library clock and
// adds it to the registry.
func (l *Library) RegisterLibrarian(name, email, phone, employeeID string, department membership.Department) *membership.Librarian {
	lb := membership.NewLibrarian(name, email, phone, employeeID, department, l.clock.Now())
	l.librarians[lb.ID] = lb
	return lb
}

// AddItemToCatalog stores the item in the catalog.
func (l *Library) AddItemToCatalog(item *catalog.Item) {
	l.catalog.AddItem(item)
}

// RemoveItemFromCatalog deletes an item by id, reporting whether it existed.
func (l *Library) RemoveItemFromCatalog(id string) bool {
	return l.catalog.RemoveItem(id)
}

// GetStudent resolves a student id, nil when unknown.
func (l *Library) GetStudent(id uuid.UUID) *membership.Student {
	return l.students[id]
}

// GetLibrarian resolves a librarian id, nil when unknown.
func (l *Library) GetLibrarian(id uuid.UUID) *membership.Librarian {
	return l.librarians[id]
}

// GetItem resolves an item id against the catalog, nil when unknown.
func (l *Library) GetItem(id string) *catalog.Item {
	return l.catalog.GetItem(id)
}

// MakeReservation places a hold for the student on the item and notifies the
// student. Item availability is not checked; a reservation may target an
// available item. Returns nil when either id does not resolve.
func (l *Library) MakeReservation(ctx context.Context, studentID uuid.UUID, itemID string) *Reservation {
	_, span := l.tracer.Start(ctx, "library.make_reservation",
		trace.WithAttributes(
			attribute.String("student.id", studentID.String()),
			attribute.String("item.id", itemID),
		),
	)
	defer span.End()

	student := l.GetStudent(studentID)
	item := l.GetItem(itemID)
	if student == nil || item == nil {
		span.SetAttributes(attribute.Bool("resolved", false))
		return nil
	}

	r := NewReservation(studentID, itemID, l.clock.Now())
	l.reservations = append(l.reservations, r)
	l.notify(studentID, fmt.Sprintf("Reservation created for %s. It will be held for 3 days.", item.Title))

	l.logger.Debug("reservation created",
		slog.String("reservation_id", r.ID.String()),
		slog.String("student_id", studentID.String()),
		slog.String("item_id", itemID),
	)
	return r
}

// ProcessCheckout resolves all three ids and delegates to the librarian,
// notifying the student of the due date on success. Fails closed when any id
// is unknown.
func (l *Library) ProcessCheckout(ctx context.Context, librarianID, studentID uuid.UUID, itemID string) bool {
	_, span := l.tracer.Start(ctx, "library.process_checkout",
		trace.WithAttributes(
			attribute.String("librarian.id", librarianID.String()),
			attribute.String("student.id", studentID.String()),
			attribute.String("item.id", itemID),
		),
	)
	defer span.End()

	librarian := l.GetLibrarian(librarianID)
	student := l.GetStudent(studentID)
	item := l.GetItem(itemID)
	if librarian == nil || student == nil || item == nil {
		span.SetAttributes(attribute.Bool("resolved", false))
		return false
	}

	if !librarian.IssueItem(student, item, l.clock.Now()) {
		span.SetAttributes(attribute.Bool("issued", false))
		return false
	}

	l.notify(studentID, fmt.Sprintf("You have checked out %s. Due date: %s",
		item.Title, item.DueDate.Format("2006-01-02")))

	l.logger.Info("item checked out",
		slog.String("student_id", studentID.String()),
		slog.String("item_id", itemID),
		slog.Time("due_date", *item.DueDate),
	)
	return true
}

// ProcessReturn resolves all three ids and delegates to the librarian,
// returning the fine charged (0 on any resolution failure). A positive fine
// is recorded on the student's notification trail.
func (l *Library) ProcessReturn(ctx context.Context, librarianID, studentID uuid.UUID, itemID string) float64 {
	_, span := l.tracer.Start(ctx, "library.process_return",
		trace.WithAttributes(
			attribute.String("librarian.id", librarianID.String()),
			attribute.String("student.id", studentID.String()),
			attribute.String("item.id", itemID),
		),
	)
	defer span.End()

	librarian := l.GetLibrarian(librarianID)
	student := l.GetStudent(studentID)
	item := l.GetItem(itemID)
	if librarian == nil || student == nil || item == nil {
		span.SetAttributes(attribute.Bool("resolved", false))
		return 0
	}

	fine := librarian.ProcessReturn(student, item, l.clock.Now())
	if fine > 0 {
		l.notify(studentID, fmt.Sprintf("Fine of $%.2f charged for late return of %s", fine, item.Title))
		l.logger.Info("late return fined",
			slog.String("student_id", studentID.String()),
			slog.String("item_id", itemID),
			slog.Float64("fine", fine),
		)
	}
	span.SetAttributes(attribute.Float64("fine", fine))
	return fine
}

// SendOverdueNotifications walks every student's loans and appends one
// notification per overdue item, returning how many were generated. There is
// no de-duplication: polling repeatedly stacks duplicate notices.
func (l *Library) SendOverdueNotifications(ctx context.Context) int {
	_, span := l.tracer.Start(ctx, "library.send_overdue_notifications")
	defer span.End()

	now := l.clock.Now()
	count := 0
	for _, student := range l.students {
		for _, itemID := range student.BorrowedItemIDs() {
			item := l.catalog.GetItem(itemID)
			if item == nil || item.DueDate == nil || !now.After(*item.DueDate) {
				continue
			}
			l.notify(student.ID, fmt.Sprintf("OVERDUE: %s was due %d days ago. Current fine: $%.2f",
				item.Title, item.DaysOverdue(now), item.Fine(now)))
			count++
		}
	}
	if count > 0 {
		l.logger.Info("overdue notifications sent", slog.Int("count", count))
	}
	span.SetAttributes(attribute.Int("notification.count", count))
	return count
}

// Notifications returns the notification trail in emission order.
func (l *Library) Notifications() []*Notification {
	out := make([]*Notification, len(l.notifications))
	copy(out, l.notifications)
	return out
}

// NotificationsFor filters the trail by recipient.
func (l *Library) NotificationsFor(recipientID uuid.UUID) []*Notification {
	var out []*Notification
	for _, n := range l.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

// Reservations returns the reservations in creation order.
func (l *Library) Reservations() []*Reservation {
	out := make([]*Reservation, len(l.reservations))
	copy(out, l.reservations)
	return out
}

// ReservationDetails exports a reservation snapshot with the student and item
// resolved through the registries. Unresolvable references leave the name and
// title fields empty.
func (l *Library) ReservationDetails(r *Reservation) ReservationDetails {
	d := ReservationDetails{
		ID:              r.ID.String(),
		StudentID:       r.StudentID.String(),
		ItemID:          r.ItemID,
		ReservationDate: r.CreatedAt.Format("2006-01-02 15:04"),
		Status:          string(r.Status),
		IsExpired:       r.Expired(l.clock.Now()),
	}
	if student := l.GetStudent(r.StudentID); student != nil {
		d.StudentName = student.Name
	}
	if item := l.GetItem(r.ItemID); item != nil {
		d.ItemTitle = item.Title
	}
	return d
}

// Statistics is a point-in-time aggregate snapshot of the library.
type Statistics struct {
	TotalStudents      int                  `json:"total_students"`
	TotalLibrarians    int                  `json:"total_librarians"`
	ItemsByType        map[catalog.Kind]int `json:"items_by_type"`
	AvailableItems     int                  `json:"available_items"`
	CheckedOutItems    int                  `json:"checked_out_items"`
	ActiveReservations int                  `json:"active_reservations"`
	TotalNotifications int                  `json:"total_notifications"`
}

// GetStatistics aggregates current counts. Pure query.
func (l *Library) GetStatistics() Statistics {
	active := 0
	for _, r := range l.reservations {
		if r.Status == ReservationActive {
			active++
		}
	}
	return Statistics{
		TotalStudents:      len(l.students),
		TotalLibrarians:    len(l.librarians),
		ItemsByType:        l.catalog.CountByKind(),
		AvailableItems:     len(l.catalog.AvailableItems()),
		CheckedOutItems:    len(l.catalog.CheckedOutItems()),
		ActiveReservations: active,
		TotalNotifications: len(l.notifications),
	}
}

func (l *Library) notify(recipientID uuid.UUID, message string) {
	l.notifications = append(l.notifications, NewNotification(recipientID, message, l.clock.Now()))
}
