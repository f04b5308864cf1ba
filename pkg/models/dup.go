package models

import "time"

// Dup is the core data use process record.
type Dup struct {
	ID                    int        `db:"id" json:"id"`
	OrgID                 *int       `db:"org_id" json:"org_id" validate:"omitempty,gte=1"`
	DisplayName           *string    `db:"display_name" json:"display_name" validate:"omitempty,min=1"`
	StatusID              *int       `db:"status_id" json:"status_id" validate:"omitempty,gte=1"`
	InitialContactDate    *time.Time `db:"initial_contact_date" json:"initial_contact_date"`
	SetUpCompleted        *time.Time `db:"set_up_completed" json:"set_up_completed"`
	PrereqsMet            *time.Time `db:"prereqs_met" json:"prereqs_met"`
	DuaAgreedDate         *time.Time `db:"dua_agreed_date" json:"dua_agreed_date"`
	AvailabilityRequested *time.Time `db:"availability_requested" json:"availability_requested"`
	AvailabilityConfirmed *time.Time `db:"availability_confirmed" json:"availability_confirmed"`
	AccessConfirmed       *time.Time `db:"access_confirmed" json:"access_confirmed"`
	CreatedOn             *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy          *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (Dup) TableName() string {
	return "rms.dups"
}

// DupOut is the display variant of Dup, joined with org and status names.
type DupOut struct {
	ID                    int        `db:"id" json:"id"`
	OrgID                 *int       `db:"org_id" json:"org_id"`
	OrgName               *string    `db:"org_name" json:"org_name"`
	DisplayName           *string    `db:"display_name" json:"display_name"`
	StatusID              *int       `db:"status_id" json:"status_id"`
	StatusName            *string    `db:"status_name" json:"status_name"`
	InitialContactDate    *time.Time `db:"initial_contact_date" json:"initial_contact_date"`
	SetUpCompleted        *time.Time `db:"set_up_completed" json:"set_up_completed"`
	PrereqsMet            *time.Time `db:"prereqs_met" json:"prereqs_met"`
	DuaAgreedDate         *time.Time `db:"dua_agreed_date" json:"dua_agreed_date"`
	AvailabilityRequested *time.Time `db:"availability_requested" json:"availability_requested"`
	AvailabilityConfirmed *time.Time `db:"availability_confirmed" json:"availability_confirmed"`
	AccessConfirmed       *time.Time `db:"access_confirmed" json:"access_confirmed"`
}

// DupEntry is the compact listing row for use processes.
type DupEntry struct {
	ID          int     `db:"id" json:"id"`
	OrgName     *string `db:"org_name" json:"org_name"`
	DisplayName *string `db:"display_name" json:"display_name"`
	StatusName  *string `db:"status_name" json:"status_name"`
}

// Dua is the data use agreement attached to a DUP; at most one per
// process, fetched by the parent id.
type Dua struct {
	ID                  int        `db:"id" json:"id"`
	DupID               *int       `db:"dup_id" json:"dup_id"`
	ConformsToDefault   *bool      `db:"conforms_to_default" json:"conforms_to_default"`
	Variations          *string    `db:"variations" json:"variations"`
	RepoAsProxy         *bool      `db:"repo_as_proxy" json:"repo_as_proxy"`
	DuaFilePath         *string    `db:"dua_file_path" json:"dua_file_path"`
	RepoSignatory1      *int       `db:"repo_signatory_1" json:"repo_signatory_1"`
	RepoSignatory2      *int       `db:"repo_signatory_2" json:"repo_signatory_2"`
	ProviderSignatory1  *int       `db:"provider_signatory_1" json:"provider_signatory_1"`
	ProviderSignatory2  *int       `db:"provider_signatory_2" json:"provider_signatory_2"`
	RequesterSignatory1 *int       `db:"requester_signatory_1" json:"requester_signatory_1"`
	RequesterSignatory2 *int       `db:"requester_signatory_2" json:"requester_signatory_2"`
	Notes               *string    `db:"notes" json:"notes"`
	CreatedOn           *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy        *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (Dua) TableName() string {
	return "rms.duas"
}

// DuaOut is the display variant of Dua, with signatory names resolved.
type DuaOut struct {
	ID                      int     `db:"id" json:"id"`
	DupID                   *int    `db:"dup_id" json:"dup_id"`
	ConformsToDefault       *bool   `db:"conforms_to_default" json:"conforms_to_default"`
	Variations              *string `db:"variations" json:"variations"`
	RepoAsProxy             *bool   `db:"repo_as_proxy" json:"repo_as_proxy"`
	DuaFilePath             *string `db:"dua_file_path" json:"dua_file_path"`
	RepoSignatory1          *int    `db:"repo_signatory_1" json:"repo_signatory_1"`
	RepoSignatory1Name      *string `db:"repo_signatory_1_name" json:"repo_signatory_1_name"`
	RepoSignatory2          *int    `db:"repo_signatory_2" json:"repo_signatory_2"`
	RepoSignatory2Name      *string `db:"repo_signatory_2_name" json:"repo_signatory_2_name"`
	ProviderSignatory1      *int    `db:"provider_signatory_1" json:"provider_signatory_1"`
	ProviderSignatory1Name  *string `db:"provider_signatory_1_name" json:"provider_signatory_1_name"`
	ProviderSignatory2      *int    `db:"provider_signatory_2" json:"provider_signatory_2"`
	ProviderSignatory2Name  *string `db:"provider_signatory_2_name" json:"provider_signatory_2_name"`
	RequesterSignatory1     *int    `db:"requester_signatory_1" json:"requester_signatory_1"`
	RequesterSignatory1Name *string `db:"requester_signatory_1_name" json:"requester_signatory_1_name"`
	RequesterSignatory2     *int    `db:"requester_signatory_2" json:"requester_signatory_2"`
	RequesterSignatory2Name *string `db:"requester_signatory_2_name" json:"requester_signatory_2_name"`
	Notes                   *string `db:"notes" json:"notes"`
}

// DupStudy links a study to a use process.
type DupStudy struct {
	ID           int        `db:"id" json:"id"`
	DupID        int        `db:"dup_id" json:"dup_id"`
	SdSid        *string    `db:"sd_sid" json:"sd_sid"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupStudy) TableName() string {
	return "rms.dup_studies"
}

// DupStudyOut is the display variant of DupStudy.
type DupStudyOut struct {
	ID        int     `db:"id" json:"id"`
	DupID     int     `db:"dup_id" json:"dup_id"`
	SdSid     *string `db:"sd_sid" json:"sd_sid"`
	StudyName *string `db:"study_name" json:"study_name"`
}

// DupObject links a data object to a use process.
type DupObject struct {
	ID            int        `db:"id" json:"id"`
	DupID         int        `db:"dup_id" json:"dup_id"`
	SdOid         *string    `db:"sd_oid" json:"sd_oid"`
	AccessTypeID  *int       `db:"access_type_id" json:"access_type_id"`
	AccessDetails *string    `db:"access_details" json:"access_details"`
	Notes         *string    `db:"notes" json:"notes"`
	CreatedOn     *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy  *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupObject) TableName() string {
	return "rms.dup_objects"
}

// DupObjectOut is the display variant of DupObject.
type DupObjectOut struct {
	ID             int     `db:"id" json:"id"`
	DupID          int     `db:"dup_id" json:"dup_id"`
	SdOid          *string `db:"sd_oid" json:"sd_oid"`
	ObjectName     *string `db:"object_name" json:"object_name"`
	AccessTypeID   *int    `db:"access_type_id" json:"access_type_id"`
	AccessTypeName *string `db:"access_type_name" json:"access_type_name"`
	AccessDetails  *string `db:"access_details" json:"access_details"`
	Notes          *string `db:"notes" json:"notes"`
}

// DupPrereq is an access prerequisite recorded against an object within a
// use process.
type DupPrereq struct {
	ID                 int        `db:"id" json:"id"`
	DupID              *int       `db:"dup_id" json:"dup_id"`
	SdOid              *string    `db:"sd_oid" json:"sd_oid"`
	PreRequisiteTypeID *int       `db:"pre_requisite_type_id" json:"pre_requisite_type_id"`
	PreRequisiteMet    *time.Time `db:"prerequisite_met" json:"prerequisite_met"`
	MetNotes           *string    `db:"met_notes" json:"met_notes"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupPrereq) TableName() string {
	return "rms.dup_prereqs"
}

// DupPrereqOut is the display variant of DupPrereq.
type DupPrereqOut struct {
	ID                   int        `db:"id" json:"id"`
	DupID                *int       `db:"dup_id" json:"dup_id"`
	SdOid                *string    `db:"sd_oid" json:"sd_oid"`
	ObjectName           *string    `db:"object_name" json:"object_name"`
	PreRequisiteTypeID   *int       `db:"pre_requisite_type_id" json:"pre_requisite_type_id"`
	PreRequisiteTypeName *string    `db:"pre_requisite_type_name" json:"pre_requisite_type_name"`
	PreRequisiteMet      *time.Time `db:"prerequisite_met" json:"prerequisite_met"`
	MetNotes             *string    `db:"met_notes" json:"met_notes"`
}

// DupNote is a free-text annotation on a use process.
type DupNote struct {
	ID           int        `db:"id" json:"id"`
	DupID        *int       `db:"dup_id" json:"dup_id"`
	Text         *string    `db:"text" json:"text"`
	Author       *int       `db:"author" json:"author"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupNote) TableName() string {
	return "rms.dup_notes"
}

// DupNoteOut is the display variant of DupNote.
type DupNoteOut struct {
	ID         int        `db:"id" json:"id"`
	DupID      *int       `db:"dup_id" json:"dup_id"`
	Text       *string    `db:"text" json:"text"`
	Author     *int       `db:"author" json:"author"`
	AuthorName *string    `db:"author_name" json:"author_name"`
	CreatedOn  *time.Time `db:"created_on" json:"created_on"`
}

// DupPerson associates a person with a use process.
type DupPerson struct {
	ID           int        `db:"id" json:"id"`
	DupID        *int       `db:"dup_id" json:"dup_id"`
	PersonID     *int       `db:"person_id" json:"person_id"`
	Notes        *string    `db:"notes" json:"notes"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupPerson) TableName() string {
	return "rms.dup_people"
}

// DupPersonOut is the display variant of DupPerson.
type DupPersonOut struct {
	ID         int     `db:"id" json:"id"`
	DupID      *int    `db:"dup_id" json:"dup_id"`
	PersonID   *int    `db:"person_id" json:"person_id"`
	PersonName *string `db:"person_name" json:"person_name"`
	Notes      *string `db:"notes" json:"notes"`
}

// DupSecondaryUse records an approved secondary use of the data covered by
// a use process.
type DupSecondaryUse struct {
	ID                 int        `db:"id" json:"id"`
	DupID              *int       `db:"dup_id" json:"dup_id"`
	SecondaryUseType   *string    `db:"secondary_use_type" json:"secondary_use_type"`
	Publication        *string    `db:"publication" json:"publication"`
	DOI                *string    `db:"doi" json:"doi"`
	AttributionPresent *bool      `db:"attribution_present" json:"attribution_present"`
	Notes              *string    `db:"notes" json:"notes"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DupSecondaryUse) TableName() string {
	return "rms.dup_sec_use"
}

// FullDup is the complete use process aggregate: the core record plus
// every child collection. Child slices are always non-nil.
type FullDup struct {
	CoreDup    Dup               `json:"core_dup"`
	Duas       []Dua             `json:"duas"`
	DupStudies []DupStudy        `json:"dup_studies"`
	DupObjects []DupObject       `json:"dup_objects"`
	DupPrereqs []DupPrereq       `json:"dup_prereqs"`
	DupNotes   []DupNote         `json:"dup_notes"`
	DupPeople  []DupPerson       `json:"dup_people"`
	DupSecUses []DupSecondaryUse `json:"dup_sec_uses"`
}
