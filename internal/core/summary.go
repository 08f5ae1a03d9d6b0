package core

// Summary is the budget overview across every recorded transaction.
type Summary struct {
	Income   Money
	Expenses Money
	Balance  Money
}

// Summarize aggregates income and expenses; no filtering is applied.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}
