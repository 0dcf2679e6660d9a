package models

// WeekOption describes one selectable week for retroactive submissions
type WeekOption struct {
	WeeksAgo   int    `json:"weeks_ago"`
	WeekNumber int    `json:"week_number"` // position in the repeating six-week cycle, 1-6
	WeekStart  string `json:"week_start"`
	WeekEnd    string `json:"week_end"`
}

// ActivityTypeResponse describes one catalog entry and when it is available
type ActivityTypeResponse struct {
	Value          string `json:"value"`
	Label          string `json:"label"`
	Points         int    `json:"points"`
	AvailableWeeks []int  `json:"available_weeks"`
}
