package model

// Entry is one logged calendar day.
type Entry struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Comments string  `json:"comments"`
	Expenses float64 `json:"expenses"`
}

// NewEntry is an entry that has not been assigned an ID by a store yet.
type NewEntry struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Comments string  `json:"comments"`
	Expenses float64 `json:"expenses"`
}

// Draft holds the raw, still editable fields of the entry being composed.
type Draft struct {
	Date     string
	Hours    string
	Comments string
	Expenses string
}

// DayFile is the top-level structure stored in each daily JSON file of the
// file backend.
type DayFile struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}
