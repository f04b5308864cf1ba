package models

// Statistic is a generic name/value pair used for counts and grouped
// summary figures.
type Statistic struct {
	StatType  string `db:"-" json:"stat_type"`
	StatValue int    `db:"stat_value" json:"stat_value"`
}

// StatByType is the raw grouping row returned by summary queries, before
// the numeric code is resolved to a display name.
type StatByType struct {
	StatType  int `db:"stat_type" json:"stat_type"`
	StatValue int `db:"stat_value" json:"stat_value"`
}
