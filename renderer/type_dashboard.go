package renderer

import (
	fundwatch "github.com/yannyanna/fund-tracker"
)

// Dashboard is the renderable view of one user's portfolio for one
// refresh cycle. Numbers are kept as the exact value types (Money,
// Quantity, Percent) so the templates can use their own renderers
// (SignedString etc.) directly.
type Dashboard struct {

	// User owning the positions.
	User string `json:"user"`
	// Date of the refresh cycle.
	Date fundwatch.Date `json:"date"`
	// TotalMarketValue is the sum of all valued positions.
	TotalMarketValue fundwatch.Money `json:"totalMarketValue"`
	// TotalDayPNL is the day's aggregate move.
	TotalDayPNL fundwatch.Money `json:"totalDayPNL"`
	// TotalPNL is the aggregate profit since inception.
	TotalPNL fundwatch.Money `json:"totalPNL"`
	// DayReturn is the day's move relative to the day's opening value.
	DayReturn fundwatch.Percent `json:"dayReturn"`
	// Positions is one row per valued position.
	Positions []DashboardPosition `json:"positions"`
	// Unavailable lists instruments with no resolvable quote this cycle.
	Unavailable []string `json:"unavailable,omitempty"`
}

// DashboardPosition is a single valued position row.
type DashboardPosition struct {
	Name        string             `json:"name"`
	ID          string             `json:"id"`
	Channel     string             `json:"channel,omitempty"`
	Price       string             `json:"price"`
	Change      fundwatch.Percent  `json:"change"`
	Estimate    bool               `json:"estimate"`
	Shares      fundwatch.Quantity `json:"shares"`
	MarketValue fundwatch.Money    `json:"marketValue"`
	DayPNL      fundwatch.Money    `json:"dayPNL"`
	TotalPNL    fundwatch.Money    `json:"totalPNL"`
	TotalReturn fundwatch.Percent  `json:"totalReturn"`
}

// Tag marks rows whose price is still a running estimate, so a reader
// can tell them apart from settled values at a glance.
func (p DashboardPosition) Tag() string {
	if p.Estimate {
		return " *(est.)*"
	}
	return ""
}

// NewDashboard creates a Dashboard from an aggregated report.
func NewDashboard(r *fundwatch.Report) *Dashboard {
	d := &Dashboard{
		User:             r.User,
		Date:             r.Date,
		TotalMarketValue: r.TotalMarketValue,
		TotalDayPNL:      r.TotalDayPNL,
		TotalPNL:         r.TotalPNL,
		DayReturn:        r.DayReturn,
		Positions:        make([]DashboardPosition, 0, len(r.Items)),
		Unavailable:      r.Unavailable,
	}

	for _, v := range r.Items {
		d.Positions = append(d.Positions, DashboardPosition{
			Name:        v.Quote.Name,
			ID:          v.Position.ID,
			Channel:     v.Position.Channel,
			Price:       v.Quote.Price.String(),
			Change:      v.Quote.Change,
			Estimate:    !v.Quote.Final,
			Shares:      v.Position.Shares,
			MarketValue: v.MarketValue,
			DayPNL:      v.DayPNL,
			TotalPNL:    v.TotalPNL,
			TotalReturn: v.TotalReturn,
		})
	}
	return d
}

// UserList is the renderable view of the store's users.
type UserList struct {
	Users []UserSummary `json:"users"`
}

// UserSummary is one user row with its position count.
type UserSummary struct {
	Name      string `json:"name"`
	Positions int    `json:"positions"`
}

// NewUserList creates a UserList from a decoded store.
func NewUserList(db *fundwatch.DB) *UserList {
	u := &UserList{}
	for _, name := range db.Users() {
		ledger := db.Ledger(name)
		if ledger == nil {
			continue
		}
		u.Users = append(u.Users, UserSummary{
			Name:      name,
			Positions: len(ledger.Positions()),
		})
	}
	return u
}
