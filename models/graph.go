package models

import "github.com/shopspring/decimal"

type DailyTotal struct {
	Date  string  `json:"date" example:"2024-01-31"`
	Total float64 `json:"total" example:"57.25"`
}

// AggregateByDate sums amounts per exact date string. Output order follows
// the first time each date is seen, so a date-sorted input gives a
// date-sorted output.
func AggregateByDate(expenses []ExpenseInDB) []DailyTotal {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, e := range expenses {
		sum, seen := totals[e.Date]
		if !seen {
			order = append(order, e.Date)
			sum = decimal.Zero
		}
		totals[e.Date] = sum.Add(decimal.NewFromFloat(e.Amount))
	}

	result := make([]DailyTotal, 0, len(order))
	for _, date := range order {
		result = append(result, DailyTotal{Date: date, Total: totals[date].InexactFloat64()})
	}
	return result
}
