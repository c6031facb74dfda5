package report

// Yearly is the revenue dashboard for one calendar year.
//
// TotalRevenue sums invoice totals, which already include expenses, so
// NetIncome = TotalRevenue - TotalExpenses yields pure labor revenue.
type Yearly struct {
	Year          int     `json:"year"`
	Invoices      int     `json:"invoices"`
	TotalHours    float64 `json:"totalHours"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetIncome     float64 `json:"netIncome"`
}
