package domain

// Contributions is the authenticated user's contribution calendar.
type Contributions struct {
	Total int                 `json:"total"`
	Weeks []WeekContributions `json:"weeks"`
}

// WeekContributions is one calendar column; Week is its zero-based index.
type WeekContributions struct {
	Week int                `json:"week"`
	Days []DayContributions `json:"days"`
}

// DayContributions holds the contribution count of one day (YYYY-MM-DD).
type DayContributions struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
