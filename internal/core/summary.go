// Package core holds the aggregation logic computed over a user's
// transaction set.
package core

import "finance-tracker/internal/domain/models"

// Summary is the computed overview of a user's transactions.
type Summary struct {
	Income             models.Money            `json:"income"`
	Expenses           models.Money            `json:"expenses"`
	Balance            models.Money            `json:"balance"`
	TotalTransactions  int                     `json:"totalTransactions"`
	ExpensesByCategory map[string]models.Money `json:"expensesByCategory"`
}

// Summarize computes totals and the expense-by-category breakdown in a
// single pass. Amounts are integer cents, so the result is exact and
// independent of input order.
func Summarize(transactions []models.Transaction) Summary {
	s := Summary{ExpensesByCategory: make(map[string]models.Money)}

	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			s.Income += t.Amount
		case models.TypeExpense:
			s.Expenses += t.Amount
			s.ExpensesByCategory[t.Category] += t.Amount
		}
	}

	s.Balance = s.Income - s.Expenses
	s.TotalTransactions = len(transactions)
	return s
}
