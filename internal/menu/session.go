// Package menu runs the interactive text session on top of the ledger
// service.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"smartspend/internal/core"
	applog "smartspend/internal/log"
	"smartspend/internal/services"
)

const banner = "======================================"

// Session is one interactive run. It reads lines from in and writes to out.
type Session struct {
	svc    *services.LedgerService
	in     *bufio.Scanner
	out    io.Writer
	now    func() time.Time
	logger *applog.Logger
}

type Option func(*Session)

// WithClock overrides the clock used for blank date entries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the session logger.
func WithLogger(logger *applog.Logger) Option {
	return func(s *Session) { s.logger = logger.WithComponent(applog.ComponentMenu) }
}

func NewSession(svc *services.LedgerService, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		now:    time.Now,
		logger: applog.FromContext(context.Background()).WithComponent(applog.ComponentMenu),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user saves and exits. Running out of input
// is treated as save-and-exit. The only error returned is a failed save.
func (s *Session) Run(ctx context.Context) error {
	s.println("Welcome to Smart Spend U!")
	s.println("Track your student money in one place.")
	s.println()

	for {
		s.showMenu()
		choice, ok := s.prompt("Choose an option (1-7): ")
		if !ok {
			s.println()
			return s.saveAndExit(ctx)
		}

		switch choice {
		case "1":
			s.showSummary()
		case "2":
			s.listTransactions()
		case "3":
			s.addTransaction(ctx, core.Income)
		case "4":
			s.addTransaction(ctx, core.Expense)
		case "5":
			s.listByCategory()
		case "6":
			s.deleteTransaction(ctx)
		case "7":
			return s.saveAndExit(ctx)
		default:
			s.println("Invalid option. Please choose 1-7.")
			s.println()
		}
	}
}

func (s *Session) showMenu() {
	s.println(banner)
	s.println("        Smart Spend U Tracker")
	s.println(banner)
	s.println("1. View budget summary")
	s.println("2. View all transactions")
	s.println("3. Add income")
	s.println("4. Add expense")
	s.println("5. View transactions by category")
	s.println("6. Delete a transaction")
	s.println("7. Save and exit")
	s.println(banner)
}

func (s *Session) showSummary() {
	sum := s.svc.Summary()
	s.println()
	s.println("=== Budget Summary ===")
	s.printf("Total Income:   $%s\n", sum.Income)
	s.printf("Total Expenses: $%s\n", sum.Expenses)
	s.println(strings.Repeat("-", 30))
	s.printf("Balance:        $%s\n", sum.Balance)
	s.println()
}

func (s *Session) listTransactions() {
	txs := s.svc.List()
	if len(txs) == 0 {
		s.println()
		s.println("No transactions recorded yet.")
		s.println()
		return
	}
	s.println()
	s.println("=== All Transactions ===")
	writeTable(s.out, txs)
	s.println()
}

func (s *Session) listByCategory() {
	if s.svc.Len() == 0 {
		s.println()
		s.println("No transactions recorded yet.")
		s.println()
		return
	}
	s.println()
	category, _ := s.prompt("Enter category to filter by: ")
	txs := s.svc.ListByCategory(category)
	if len(txs) == 0 {
		s.println()
		s.printf("No transactions found for category '%s'.\n", category)
		s.println()
		return
	}
	s.println()
	s.printf("=== Transactions in Category: %s ===\n", category)
	writeTable(s.out, txs)
	s.println()
}

func (s *Session) addTransaction(ctx context.Context, kind core.Kind) {
	s.println()
	s.printf("=== Add %s ===\n", kind.Title())

	date, ok := s.readDate()
	if !ok {
		return
	}
	description, _ := s.prompt("Enter description: ")
	category, _ := s.prompt("Enter category (Rent, Food, School, etc.): ")
	amount, ok := s.readAmount()
	if !ok {
		return
	}

	t, err := s.svc.Add(ctx, date, kind, category, description, amount)
	if err != nil {
		s.logger.WarnContext(ctx, "Add rejected",
			applog.FieldErrorType, applog.ErrorTypeValidation,
			applog.FieldError, err)
		s.printf("Could not add transaction: %v\n\n", err)
		return
	}
	s.printf("Transaction #%d added.\n\n", t.ID)
}

func (s *Session) deleteTransaction(ctx context.Context) {
	if s.svc.Len() == 0 {
		s.println()
		s.println("No transactions to delete.")
		s.println()
		return
	}

	s.listTransactions()
	raw, _ := s.prompt("Enter the ID of the transaction to delete: ")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.println("Invalid ID.")
		s.println()
		return
	}

	if _, found := s.svc.Get(id); !found {
		s.printf("No transaction found with ID %d.\n\n", id)
		return
	}

	confirm, _ := s.prompt(fmt.Sprintf("Are you sure you want to delete transaction #%d? (y/n): ", id))
	if strings.ToLower(confirm) != "y" {
		s.println("Delete cancelled.")
		s.println()
		return
	}
	s.svc.Delete(ctx, id)
	s.printf("Transaction #%d deleted.\n\n", id)
}

func (s *Session) saveAndExit(ctx context.Context) error {
	if err := s.svc.Save(ctx); err != nil {
		s.printf("\nCould not save data: %v\n", err)
		return err
	}
	s.println()
	s.println("Data saved. Goodbye from Smart Spend U!")
	s.println()
	return nil
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
