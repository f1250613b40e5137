package models

// KPIReport holds the headline metrics shown above the fold. Averages
// are nil when the matching column is absent or entirely missing.
type KPIReport struct {
	TotalListings int      `json:"total_listings"`
	AveragePrice  *float64 `json:"average_price,omitempty"`
	AverageKm     *float64 `json:"average_km,omitempty"`
	SourceCount   int      `json:"source_count"`
}

// ColumnStats holds the detailed statistics for one numeric column,
// computed over its non-missing values only.
type ColumnStats struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// ValueCount is one entry of a category breakdown.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimelinePoint is the number of listings scraped on one calendar day.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
