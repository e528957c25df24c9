package core

import (
	"testing"

	"finance-tracker/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func tx(cents int64, typ models.TransactionType, category string) models.Transaction {
	return models.Transaction{Amount: models.Money(cents), Type: typ, Category: category}
}

func TestSummarizeWorkedExample(t *testing.T) {
	transactions := []models.Transaction{
		tx(10000, models.TypeIncome, "salary"),
		tx(4000, models.TypeExpense, "food"),
		tx(1000, models.TypeExpense, "food"),
		tx(500, models.TypeExpense, "transport"),
	}

	s := Summarize(transactions)

	assert.Equal(t, models.Money(10000), s.Income)
	assert.Equal(t, models.Money(5500), s.Expenses)
	assert.Equal(t, models.Money(4500), s.Balance)
	assert.Equal(t, 4, s.TotalTransactions)
	assert.Equal(t, map[string]models.Money{
		"food":      5000,
		"transport": 500,
	}, s.ExpensesByCategory)
}

func TestSummarizeOrderIndependent(t *testing.T) {
	transactions := []models.Transaction{
		tx(10000, models.TypeIncome, "salary"),
		tx(4000, models.TypeExpense, "food"),
		tx(1000, models.TypeExpense, "food"),
		tx(500, models.TypeExpense, "transport"),
		tx(2550, models.TypeIncome, "gift"),
	}

	want := Summarize(transactions)

	reversed := make([]models.Transaction, 0, len(transactions))
	for i := len(transactions) - 1; i >= 0; i-- {
		reversed = append(reversed, transactions[i])
	}
	assert.Equal(t, want, Summarize(reversed))

	rotated := append(transactions[2:], transactions[:2]...)
	assert.Equal(t, want, Summarize(rotated))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, models.Money(0), s.Income)
	assert.Equal(t, models.Money(0), s.Expenses)
	assert.Equal(t, models.Money(0), s.Balance)
	assert.Equal(t, 0, s.TotalTransactions)
	assert.Empty(t, s.ExpensesByCategory)
	assert.NotNil(t, s.ExpensesByCategory)
}
