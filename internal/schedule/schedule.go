// Package schedule holds the schedule contract shape exchanged with the
// plan-generation and storage layers, plus display statistics derived from
// it.
package schedule

// Activity is one scheduled block within a day.
type Activity struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Category string `json:"category,omitempty"`
	Title    string `json:"title,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Day is the ordered per-day slice of a generated schedule. Day numbers are
// 1=Monday..7=Sunday.
type Day struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}
