// cmd/librarydemo/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"libracore/config"
	"libracore/internal/catalog"
	"libracore/internal/circulation"
	"libracore/internal/membership"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "librarydemo",
		Short: "Walk a library circulation scenario and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a yaml config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))

	lib := circulation.NewLibrary(cfg.Library.Name, cfg.Library.Address, nil, logger)

	john := lib.RegisterLibrarian("John Smith", "john@library.com", "555-1234", "EMP001", membership.DepartmentBooks)
	lib.RegisterLibrarian("Mary Johnson", "mary@library.com", "555-5678", "EMP002", membership.DepartmentMedia)

	alice := lib.RegisterStudent("Alice Brown", "alice@university.edu", "555-9012", "STU001", "Computer Science")
	bob := lib.RegisterStudent("Bob Wilson", "bob@university.edu", "555-3456", "STU002", "Literature")

	lib.AddItemToCatalog(catalog.NewBook("Python Programming", "B001", "Floor 2, Shelf A", "John Doe", "978-1234567890", "Tech Press", 350))
	lib.AddItemToCatalog(catalog.NewBook("Database Systems", "B002", "Floor 1, Shelf C", "Jane Smith", "978-0987654321", "CS Publications", 420))
	lib.AddItemToCatalog(catalog.NewMagazine("Science Today", "M001", "Floor 1, Shelf D", "Science Press", "Issue 42", time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)))
	lib.AddItemToCatalog(catalog.NewDVD("Introduction to Algorithms", "D001", "Floor 3, Shelf B", "Prof. X", 120, "Educational", 2023))

	fmt.Printf("Welcome to %s (%s)\n\n", lib.Name, lib.Address)

	ok := lib.ProcessCheckout(ctx, john.ID, alice.ID, "B001")
	fmt.Printf("Checkout successful: %t\n", ok)
	book := lib.GetItem("B001")
	fmt.Println(book)
	fmt.Printf("Due date: %s\n\n", book.DueDate.Format("2006-01-02"))

	// The same copy cannot go out twice; the second student places a hold.
	ok = lib.ProcessCheckout(ctx, john.ID, bob.ID, "B001")
	fmt.Printf("Second checkout of the same copy: %t\n", ok)

	reservation := lib.MakeReservation(ctx, bob.ID, "B001")
	if err := printJSON("Reservation", lib.ReservationDetails(reservation)); err != nil {
		return err
	}

	if err := printJSON("Item details", book.Details()); err != nil {
		return err
	}
	if err := printJSON("Student details", alice.Details()); err != nil {
		return err
	}

	fmt.Printf("Overdue notifications sent: %d\n", lib.SendOverdueNotifications(ctx))

	fmt.Println("\nNotifications:")
	for _, n := range lib.Notifications() {
		fmt.Println("  " + n.Format())
	}

	return printJSON("Library statistics", lib.GetStatistics())
}

func printJSON(header string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("\n%s:\n%s\n", header, data)
	return nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
