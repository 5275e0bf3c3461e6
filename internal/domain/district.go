package domain

import "time"

// MonthlyStat is one month of a district's employment breakdown.
type MonthlyStat struct {
	Month          string  `json:"month"`
	Year           int     `json:"year"`
	Workers        int64   `json:"workers"`
	Wages          float64 `json:"wages"`
	Households     int64   `json:"households"`
	EmploymentDays int     `json:"employmentDays"`
}

// District is one catalog record of per-district employment statistics.
// Code is unique across the catalog; Name is only unique within a state.
type District struct {
	Name              string        `json:"name"`
	State             string        `json:"state"`
	Code              string        `json:"code"`
	TotalWorkers      int64         `json:"totalWorkers"`
	TotalWages        float64       `json:"totalWages"`
	Households        int64         `json:"households"`
	EmploymentDays    int           `json:"employmentDays"`
	WorkCompleted     int64         `json:"workCompleted"`
	BudgetUtilization float64       `json:"budgetUtilization"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	MonthlyData       []MonthlyStat `json:"monthlyData"`
}
