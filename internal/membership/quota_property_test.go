// internal/membership/quota_property_test.go
package membership

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"libracore/internal/catalog"
)

// The borrow quota must hold after any sequence of borrow, return and
// fine-balance changes.
func TestBorrowQuotaInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		student := NewStudent("Prop Tester", "prop@university.edu", "555-0000", "STU999", "Mathematics", testNow)

		items := make([]*catalog.Item, 8)
		for i := range items {
			items[i] = newTestBook(fmt.Sprintf("B%03d", i))
		}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for n := 0; n < steps; n++ {
			item := items[rapid.IntRange(0, len(items)-1).Draw(t, "item")]

			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				if student.BorrowItem(item) {
					item.CheckOut(testNow)
				}
			case 1:
				student.ReturnItem(item, testNow)
				item.ReturnToLibrary()
			case 2:
				student.FineBalance = rapid.Float64Range(0, 20).Draw(t, "fine")
			}

			if got := len(student.BorrowedItemIDs()); got > MaxBorrowedItems {
				t.Fatalf("quota violated: %d items borrowed", got)
			}
		}
	})
}
