package models

// Lup is a generic lookup code/name pair, used to resolve numeric foreign
// keys to display names.
type Lup struct {
	ID   int     `db:"id" json:"id"`
	Name *string `db:"name" json:"name"`
}

// LupFull is the complete lookup record, including ordering and
// description fields where the lookup table carries them.
type LupFull struct {
	ID          int     `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	ListOrder   *int    `db:"list_order" json:"list_order"`
}
