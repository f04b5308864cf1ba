package models

// Org is a simple id/name pair for an organisation.
type Org struct {
	ID          int     `db:"id" json:"id"`
	DefaultName *string `db:"default_name" json:"default_name"`
}

// OrgName is a searchable organisation name, which may be a non-default
// alias pointing back at the owning organisation.
type OrgName struct {
	ID          int     `db:"id" json:"id"`
	OrgID       int     `db:"org_id" json:"org_id"`
	Name        *string `db:"name" json:"name"`
	DefaultName *string `db:"default_name" json:"default_name"`
}

// LangCode is a language code/name pair, with the name rendered in the
// requested interface language.
type LangCode struct {
	Code string  `db:"code" json:"code"`
	Name *string `db:"name" json:"name"`
}

// LangDetails is the full language record.
type LangDetails struct {
	ID         int     `db:"id" json:"id"`
	Code       string  `db:"code" json:"code"`
	MarcCode   *string `db:"marc_code" json:"marc_code"`
	LangNameEn *string `db:"lang_name_en" json:"lang_name_en"`
	LangNameDe *string `db:"lang_name_de" json:"lang_name_de"`
	LangNameFr *string `db:"lang_name_fr" json:"lang_name_fr"`
	IsMajor    *bool   `db:"is_major" json:"is_major"`
}

// TableName returns the database table name
func (LangDetails) TableName() string {
	return "lup.language_codes"
}

// Person is a people-table record, referenced by process people, notes and
// agreement signatories.
type Person struct {
	ID         int     `db:"id" json:"id"`
	GivenName  *string `db:"given_name" json:"given_name"`
	FamilyName *string `db:"family_name" json:"family_name"`
	FullName   *string `db:"full_name" json:"full_name"`
	OrcidID    *string `db:"orcid_id" json:"orcid_id"`
	Email      *string `db:"email" json:"email"`
	OrgID      *int    `db:"org_id" json:"org_id"`
	RoleID     *int    `db:"role_id" json:"role_id"`
}

// TableName returns the database table name
func (Person) TableName() string {
	return "rms.people"
}
