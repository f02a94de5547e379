// Package analytics reduces a single owner's transactions, budgets, and goals
// into the summary served by GET /analytics/summary.
//
// Every function is pure and total over well-formed input: no I/O, no
// sanitising. All five reductions are insensitive to the order of their input
// collections, except for the documented first-occurrence tie-break in
// TopCategories.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

const topCategoriesLimit = 5

var hundred = decimal.NewFromInt(100)

// IncomeVsExpenses holds signed-amount totals. Income and Expenses are both
// non-negative; Net = Income - Expenses.
type IncomeVsExpenses struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// BudgetStatus reports spend against one budget.
type BudgetStatus struct {
	BudgetID    string          `json:"budgetId"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
}

// GoalStatus reports progress toward one goal.
type GoalStatus struct {
	GoalID        string          `json:"goalId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Progress      decimal.Decimal `json:"progress"`
}

// CategoryTotal is the absolute-value turnover of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlySummary buckets income and expenses by calendar month.
type MonthlySummary struct {
	Month    string          `json:"month"` // "YYYY-MM"
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Summary is the full analytics payload.
type Summary struct {
	IncomeVsExpenses IncomeVsExpenses `json:"incomeVsExpenses"`
	BudgetProgress   []BudgetStatus   `json:"budgetProgress"`
	GoalProgress     []GoalStatus     `json:"goalProgress"`
	TopCategories    []CategoryTotal  `json:"topCategories"`
	MonthlyTrend     []MonthlySummary `json:"monthlyTrend"`
}

// Summarize runs all five reductions over pre-filtered, single-owner
// collections.
func Summarize(transactions []domain.Transaction, budgets []domain.Budget, goals []domain.Goal) Summary {
	return Summary{
		IncomeVsExpenses: SummarizeIncomeVsExpenses(transactions),
		BudgetProgress:   BudgetProgress(transactions, budgets),
		GoalProgress:     GoalProgress(goals),
		TopCategories:    TopCategories(transactions),
		MonthlyTrend:     MonthlyTrend(transactions),
	}
}

// SummarizeIncomeVsExpenses totals positive amounts as income and the
// absolute value of negative amounts as expenses. Zero amounts contribute to
// neither side.
func SummarizeIncomeVsExpenses(transactions []domain.Transaction) IncomeVsExpenses {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		switch t.Amount.Sign() {
		case 1:
			income = income.Add(t.Amount)
		case -1:
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return IncomeVsExpenses{Income: income, Expenses: expenses, Net: income.Sub(expenses)}
}

// BudgetProgress computes spend per budget. Spent sums the absolute value of
// negative-amount transactions whose category exactly matches the budget's.
// Remaining may go negative; it is not clamped. Output order matches the
// input budget order.
func BudgetProgress(transactions []domain.Transaction, budgets []domain.Budget) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := decimal.Zero
		for _, t := range transactions {
			if t.Category == b.Category && t.Amount.Sign() < 0 {
				spent = spent.Add(t.Amount.Abs())
			}
		}
		statuses = append(statuses, BudgetStatus{
			BudgetID:    b.ID,
			Category:    b.Category,
			Amount:      b.Amount,
			Spent:       spent,
			Remaining:   b.Amount.Sub(spent),
			PercentUsed: percentOf(spent, b.Amount),
		})
	}
	return statuses
}

// GoalProgress computes remaining amount and percent progress per goal.
// Output order matches the input order.
func GoalProgress(goals []domain.Goal) []GoalStatus {
	statuses := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		statuses = append(statuses, GoalStatus{
			GoalID:        g.ID,
			Name:          g.Name,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Remaining:     g.TargetAmount.Sub(g.CurrentAmount),
			Progress:      percentOf(g.CurrentAmount, g.TargetAmount),
		})
	}
	return statuses
}

// TopCategories groups transactions by category, sums absolute amounts
// regardless of sign, and returns at most five categories in descending
// order of total. Ties keep the insertion order of each category's first
// occurrence, so the result is deterministic for any permutation of equal
// totals.
func TopCategories(transactions []domain.Transaction) []CategoryTotal {
	totals := make(map[string]int)
	ordered := make([]CategoryTotal, 0)
	for _, t := range transactions {
		i, seen := totals[t.Category]
		if !seen {
			totals[t.Category] = len(ordered)
			ordered = append(ordered, CategoryTotal{Category: t.Category, Total: t.Amount.Abs()})
			continue
		}
		ordered[i].Total = ordered[i].Total.Add(t.Amount.Abs())
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Total.GreaterThan(ordered[j].Total)
	})

	if len(ordered) > topCategoriesLimit {
		ordered = ordered[:topCategoriesLimit]
	}
	return ordered
}

// MonthlyTrend buckets transactions by "YYYY-MM" and totals income and
// expenses per bucket. Buckets are returned in ascending lexicographic order
// of the month key, which is chronological for valid ISO dates.
func MonthlyTrend(transactions []domain.Transaction) []MonthlySummary {
	buckets := make(map[string]*MonthlySummary)
	for _, t := range transactions {
		key := t.Month()
		b, ok := buckets[key]
		if !ok {
			b = &MonthlySummary{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			buckets[key] = b
		}
		switch t.Amount.Sign() {
		case 1:
			b.Income = b.Income.Add(t.Amount)
		case -1:
			b.Expenses = b.Expenses.Add(t.Amount.Abs())
		}
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	trend := make([]MonthlySummary, 0, len(months))
	for _, m := range months {
		trend = append(trend, *buckets[m])
	}
	return trend
}

// percentOf returns part/whole as a percentage rounded to two decimals.
// A zero whole yields 0: creation-time validation keeps budget amounts and
// goal targets positive, so the guard only protects against records written
// outside the API.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
