package models

import "time"

// Dtp is the core data transfer process record.
type Dtp struct {
	ID                    int        `db:"id" json:"id"`
	OrgID                 *int       `db:"org_id" json:"org_id" validate:"omitempty,gte=1"`
	DisplayName           *string    `db:"display_name" json:"display_name" validate:"omitempty,min=1"`
	StatusID              *int       `db:"status_id" json:"status_id" validate:"omitempty,gte=1"`
	InitialContactDate    *time.Time `db:"initial_contact_date" json:"initial_contact_date"`
	SetUpCompleted        *time.Time `db:"set_up_completed" json:"set_up_completed"`
	MdAccessGranted       *time.Time `db:"md_access_granted" json:"md_access_granted"`
	MdCompleteDate        *time.Time `db:"md_complete_date" json:"md_complete_date"`
	DtaAgreedDate         *time.Time `db:"dta_agreed_date" json:"dta_agreed_date"`
	UploadAccessRequested *time.Time `db:"upload_access_requested" json:"upload_access_requested"`
	UploadAccessConfirmed *time.Time `db:"upload_access_confirmed" json:"upload_access_confirmed"`
	UploadsComplete       *time.Time `db:"uploads_complete" json:"uploads_complete"`
	QcChecksCompleted     *time.Time `db:"qc_checks_completed" json:"qc_checks_completed"`
	MdIntegratedWithMdr   *time.Time `db:"md_integrated_with_mdr" json:"md_integrated_with_mdr"`
	AvailabilityRequested *time.Time `db:"availability_requested" json:"availability_requested"`
	AvailabilityConfirmed *time.Time `db:"availability_confirmed" json:"availability_confirmed"`
	CreatedOn             *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy          *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (Dtp) TableName() string {
	return "rms.dtps"
}

// DtpOut is the display variant of Dtp, joined with org and status names.
type DtpOut struct {
	ID                    int        `db:"id" json:"id"`
	OrgID                 *int       `db:"org_id" json:"org_id"`
	OrgName               *string    `db:"org_name" json:"org_name"`
	DisplayName           *string    `db:"display_name" json:"display_name"`
	StatusID              *int       `db:"status_id" json:"status_id"`
	StatusName            *string    `db:"status_name" json:"status_name"`
	InitialContactDate    *time.Time `db:"initial_contact_date" json:"initial_contact_date"`
	SetUpCompleted        *time.Time `db:"set_up_completed" json:"set_up_completed"`
	MdAccessGranted       *time.Time `db:"md_access_granted" json:"md_access_granted"`
	MdCompleteDate        *time.Time `db:"md_complete_date" json:"md_complete_date"`
	DtaAgreedDate         *time.Time `db:"dta_agreed_date" json:"dta_agreed_date"`
	UploadAccessRequested *time.Time `db:"upload_access_requested" json:"upload_access_requested"`
	UploadAccessConfirmed *time.Time `db:"upload_access_confirmed" json:"upload_access_confirmed"`
	UploadsComplete       *time.Time `db:"uploads_complete" json:"uploads_complete"`
	QcChecksCompleted     *time.Time `db:"qc_checks_completed" json:"qc_checks_completed"`
	MdIntegratedWithMdr   *time.Time `db:"md_integrated_with_mdr" json:"md_integrated_with_mdr"`
	AvailabilityRequested *time.Time `db:"availability_requested" json:"availability_requested"`
	AvailabilityConfirmed *time.Time `db:"availability_confirmed" json:"availability_confirmed"`
}

// DtpEntry is the compact listing row for transfer processes.
type DtpEntry struct {
	ID          int     `db:"id" json:"id"`
	OrgName     *string `db:"org_name" json:"org_name"`
	DisplayName *string `db:"display_name" json:"display_name"`
	StatusName  *string `db:"status_name" json:"status_name"`
}

// Dta is the data transfer agreement attached to a DTP; at most one per
// process, fetched by the parent id.
type Dta struct {
	ID                 int        `db:"id" json:"id"`
	DtpID              *int       `db:"dtp_id" json:"dtp_id"`
	ConformsToDefault  *bool      `db:"conforms_to_default" json:"conforms_to_default"`
	Variations         *string    `db:"variations" json:"variations"`
	DtaFilePath        *string    `db:"dta_file_path" json:"dta_file_path"`
	RepoSignatory1     *int       `db:"repo_signatory_1" json:"repo_signatory_1"`
	RepoSignatory2     *int       `db:"repo_signatory_2" json:"repo_signatory_2"`
	ProviderSignatory1 *int       `db:"provider_signatory_1" json:"provider_signatory_1"`
	ProviderSignatory2 *int       `db:"provider_signatory_2" json:"provider_signatory_2"`
	Notes              *string    `db:"notes" json:"notes"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (Dta) TableName() string {
	return "rms.dtas"
}

// DtaOut is the display variant of Dta, with signatory names resolved.
type DtaOut struct {
	ID                     int     `db:"id" json:"id"`
	DtpID                  *int    `db:"dtp_id" json:"dtp_id"`
	ConformsToDefault      *bool   `db:"conforms_to_default" json:"conforms_to_default"`
	Variations             *string `db:"variations" json:"variations"`
	DtaFilePath            *string `db:"dta_file_path" json:"dta_file_path"`
	RepoSignatory1         *int    `db:"repo_signatory_1" json:"repo_signatory_1"`
	RepoSignatory1Name     *string `db:"repo_signatory_1_name" json:"repo_signatory_1_name"`
	RepoSignatory2         *int    `db:"repo_signatory_2" json:"repo_signatory_2"`
	RepoSignatory2Name     *string `db:"repo_signatory_2_name" json:"repo_signatory_2_name"`
	ProviderSignatory1     *int    `db:"provider_signatory_1" json:"provider_signatory_1"`
	ProviderSignatory1Name *string `db:"provider_signatory_1_name" json:"provider_signatory_1_name"`
	ProviderSignatory2     *int    `db:"provider_signatory_2" json:"provider_signatory_2"`
	ProviderSignatory2Name *string `db:"provider_signatory_2_name" json:"provider_signatory_2_name"`
	Notes                  *string `db:"notes" json:"notes"`
}

// DtpStudy links a study to a transfer process with metadata check details.
type DtpStudy struct {
	ID              int        `db:"id" json:"id"`
	DtpID           int        `db:"dtp_id" json:"dtp_id"`
	SdSid           *string    `db:"sd_sid" json:"sd_sid"`
	MdCheckStatusID *int       `db:"md_check_status_id" json:"md_check_status_id"`
	MdCheckDate     *time.Time `db:"md_check_date" json:"md_check_date"`
	MdCheckBy       *int       `db:"md_check_by" json:"md_check_by"`
	CreatedOn       *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy    *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpStudy) TableName() string {
	return "rms.dtp_studies"
}

// DtpStudyOut is the display variant of DtpStudy.
type DtpStudyOut struct {
	ID                int        `db:"id" json:"id"`
	DtpID             int        `db:"dtp_id" json:"dtp_id"`
	SdSid             *string    `db:"sd_sid" json:"sd_sid"`
	StudyName         *string    `db:"study_name" json:"study_name"`
	MdCheckStatusID   *int       `db:"md_check_status_id" json:"md_check_status_id"`
	MdCheckStatusName *string    `db:"md_check_status_name" json:"md_check_status_name"`
	MdCheckDate       *time.Time `db:"md_check_date" json:"md_check_date"`
	MdCheckBy         *int       `db:"md_check_by" json:"md_check_by"`
}

// DtpObject links a data object to a transfer process, carrying the
// per-process access and check attributes.
type DtpObject struct {
	ID                  int        `db:"id" json:"id"`
	DtpID               int        `db:"dtp_id" json:"dtp_id"`
	SdOid               *string    `db:"sd_oid" json:"sd_oid"`
	IsDataset           *bool      `db:"is_dataset" json:"is_dataset"`
	AccessTypeID        *int       `db:"access_type_id" json:"access_type_id"`
	DownloadAllowed     *bool      `db:"download_allowed" json:"download_allowed"`
	AccessDetails       *string    `db:"access_details" json:"access_details"`
	EmbargoRequested    *bool      `db:"embargo_requested" json:"embargo_requested"`
	EmbargoRegime       *string    `db:"embargo_regime" json:"embargo_regime"`
	EmbargoStillApplies *bool      `db:"embargo_still_applies" json:"embargo_still_applies"`
	AccessCheckStatusID *int       `db:"access_check_status_id" json:"access_check_status_id"`
	AccessCheckDate     *time.Time `db:"access_check_date" json:"access_check_date"`
	AccessCheckBy       *int       `db:"access_check_by" json:"access_check_by"`
	MdCheckStatusID     *int       `db:"md_check_status_id" json:"md_check_status_id"`
	MdCheckDate         *time.Time `db:"md_check_date" json:"md_check_date"`
	MdCheckBy           *int       `db:"md_check_by" json:"md_check_by"`
	Notes               *string    `db:"notes" json:"notes"`
	CreatedOn           *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy        *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpObject) TableName() string {
	return "rms.dtp_objects"
}

// DtpObjectOut is the display variant of DtpObject.
type DtpObjectOut struct {
	ID                    int        `db:"id" json:"id"`
	DtpID                 int        `db:"dtp_id" json:"dtp_id"`
	SdOid                 *string    `db:"sd_oid" json:"sd_oid"`
	ObjectName            *string    `db:"object_name" json:"object_name"`
	IsDataset             *bool      `db:"is_dataset" json:"is_dataset"`
	AccessTypeID          *int       `db:"access_type_id" json:"access_type_id"`
	AccessTypeName        *string    `db:"access_type_name" json:"access_type_name"`
	DownloadAllowed       *bool      `db:"download_allowed" json:"download_allowed"`
	AccessDetails         *string    `db:"access_details" json:"access_details"`
	EmbargoRequested      *bool      `db:"embargo_requested" json:"embargo_requested"`
	EmbargoRegime         *string    `db:"embargo_regime" json:"embargo_regime"`
	EmbargoStillApplies   *bool      `db:"embargo_still_applies" json:"embargo_still_applies"`
	AccessCheckStatusID   *int       `db:"access_check_status_id" json:"access_check_status_id"`
	AccessCheckStatusName *string    `db:"access_check_status_name" json:"access_check_status_name"`
	AccessCheckDate       *time.Time `db:"access_check_date" json:"access_check_date"`
	AccessCheckBy         *int       `db:"access_check_by" json:"access_check_by"`
	MdCheckStatusID       *int       `db:"md_check_status_id" json:"md_check_status_id"`
	MdCheckStatusName     *string    `db:"md_check_status_name" json:"md_check_status_name"`
	MdCheckDate           *time.Time `db:"md_check_date" json:"md_check_date"`
	MdCheckBy             *int       `db:"md_check_by" json:"md_check_by"`
	Notes                 *string    `db:"notes" json:"notes"`
}

// DtpDataset records dataset-specific legal and de-identification checks
// for an object within a transfer process, keyed by process and object.
type DtpDataset struct {
	ID                   int        `db:"id" json:"id"`
	DtpID                *int       `db:"dtp_id" json:"dtp_id"`
	SdOid                *string    `db:"sd_oid" json:"sd_oid"`
	LegalStatusID        *int       `db:"legal_status_id" json:"legal_status_id"`
	LegalStatusText      *string    `db:"legal_status_text" json:"legal_status_text"`
	LegalStatusPath      *string    `db:"legal_status_path" json:"legal_status_path"`
	DescMdCheckStatusID  *int       `db:"desc_md_check_status_id" json:"desc_md_check_status_id"`
	DescMdCheckDate      *time.Time `db:"desc_md_check_date" json:"desc_md_check_date"`
	DescMdCheckBy        *int       `db:"desc_md_check_by" json:"desc_md_check_by"`
	DeidentCheckStatusID *int       `db:"deident_check_status_id" json:"deident_check_status_id"`
	DeidentCheckDate     *time.Time `db:"deident_check_date" json:"deident_check_date"`
	DeidentCheckBy       *int       `db:"deident_check_by" json:"deident_check_by"`
	Notes                *string    `db:"notes" json:"notes"`
	CreatedOn            *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy         *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpDataset) TableName() string {
	return "rms.dtp_datasets"
}

// DtpDatasetOut is the display variant of DtpDataset.
type DtpDatasetOut struct {
	ID                     int        `db:"id" json:"id"`
	DtpID                  *int       `db:"dtp_id" json:"dtp_id"`
	SdOid                  *string    `db:"sd_oid" json:"sd_oid"`
	ObjectName             *string    `db:"object_name" json:"object_name"`
	LegalStatusID          *int       `db:"legal_status_id" json:"legal_status_id"`
	LegalStatusName        *string    `db:"legal_status_name" json:"legal_status_name"`
	LegalStatusText        *string    `db:"legal_status_text" json:"legal_status_text"`
	LegalStatusPath        *string    `db:"legal_status_path" json:"legal_status_path"`
	DescMdCheckStatusID    *int       `db:"desc_md_check_status_id" json:"desc_md_check_status_id"`
	DescMdCheckStatusName  *string    `db:"desc_md_check_status_name" json:"desc_md_check_status_name"`
	DescMdCheckDate        *time.Time `db:"desc_md_check_date" json:"desc_md_check_date"`
	DescMdCheckBy          *int       `db:"desc_md_check_by" json:"desc_md_check_by"`
	DeidentCheckStatusID   *int       `db:"deident_check_status_id" json:"deident_check_status_id"`
	DeidentCheckStatusName *string    `db:"deident_check_status_name" json:"deident_check_status_name"`
	DeidentCheckDate       *time.Time `db:"deident_check_date" json:"deident_check_date"`
	DeidentCheckBy         *int       `db:"deident_check_by" json:"deident_check_by"`
	Notes                  *string    `db:"notes" json:"notes"`
}

// DtpPrereq is an access prerequisite recorded against an object within a
// transfer process.
type DtpPrereq struct {
	ID                 int        `db:"id" json:"id"`
	DtpID              *int       `db:"dtp_id" json:"dtp_id"`
	SdOid              *string    `db:"sd_oid" json:"sd_oid"`
	PreRequisiteTypeID *int       `db:"pre_requisite_type_id" json:"pre_requisite_type_id"`
	PreRequisiteNotes  *string    `db:"pre_requisite_notes" json:"pre_requisite_notes"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpPrereq) TableName() string {
	return "rms.dtp_prereqs"
}

// DtpPrereqOut is the display variant of DtpPrereq.
type DtpPrereqOut struct {
	ID                   int     `db:"id" json:"id"`
	DtpID                *int    `db:"dtp_id" json:"dtp_id"`
	SdOid                *string `db:"sd_oid" json:"sd_oid"`
	ObjectName           *string `db:"object_name" json:"object_name"`
	PreRequisiteTypeID   *int    `db:"pre_requisite_type_id" json:"pre_requisite_type_id"`
	PreRequisiteTypeName *string `db:"pre_requisite_type_name" json:"pre_requisite_type_name"`
	PreRequisiteNotes    *string `db:"pre_requisite_notes" json:"pre_requisite_notes"`
}

// DtpNote is a free-text annotation on a transfer process.
type DtpNote struct {
	ID           int        `db:"id" json:"id"`
	DtpID        *int       `db:"dtp_id" json:"dtp_id"`
	Text         *string    `db:"text" json:"text"`
	Author       *int       `db:"author" json:"author"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpNote) TableName() string {
	return "rms.dtp_notes"
}

// DtpNoteOut is the display variant of DtpNote.
type DtpNoteOut struct {
	ID         int        `db:"id" json:"id"`
	DtpID      *int       `db:"dtp_id" json:"dtp_id"`
	Text       *string    `db:"text" json:"text"`
	Author     *int       `db:"author" json:"author"`
	AuthorName *string    `db:"author_name" json:"author_name"`
	CreatedOn  *time.Time `db:"created_on" json:"created_on"`
}

// DtpPerson associates a person with a transfer process.
type DtpPerson struct {
	ID           int        `db:"id" json:"id"`
	DtpID        *int       `db:"dtp_id" json:"dtp_id"`
	PersonID     *int       `db:"person_id" json:"person_id"`
	Notes        *string    `db:"notes" json:"notes"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DtpPerson) TableName() string {
	return "rms.dtp_people"
}

// DtpPersonOut is the display variant of DtpPerson.
type DtpPersonOut struct {
	ID         int     `db:"id" json:"id"`
	DtpID      *int    `db:"dtp_id" json:"dtp_id"`
	PersonID   *int    `db:"person_id" json:"person_id"`
	PersonName *string `db:"person_name" json:"person_name"`
	Notes      *string `db:"notes" json:"notes"`
}

// FullDtp is the complete transfer process aggregate: the core record plus
// every child collection. Child slices are always non-nil.
type FullDtp struct {
	CoreDtp     Dtp          `json:"core_dtp"`
	Dtas        []Dta        `json:"dtas"`
	DtpStudies  []DtpStudy   `json:"dtp_studies"`
	DtpObjects  []DtpObject  `json:"dtp_objects"`
	DtpPrereqs  []DtpPrereq  `json:"dtp_prereqs"`
	DtpDatasets []DtpDataset `json:"dtp_datasets"`
	DtpNotes    []DtpNote    `json:"dtp_notes"`
	DtpPeople   []DtpPerson  `json:"dtp_people"`
}
