package models

import "time"

// Journal articles (type 12) derive their identifier from the DOI rather
// than the title.
const ObjectTypeJournalArticle = 12

// Default title seeding for newly created objects.
const (
	TitleTypeDefault     = 20
	LangUsageTitleOnly   = 11
	TitlePlaceholderText = "<title place holder> "
)

// DataObject is the core catalog record for an externally identified
// research object, keyed by its sd_oid string.
type DataObject struct {
	ID               int        `db:"id" json:"id"`
	SdOid            *string    `db:"sd_oid" json:"sd_oid"`
	SdSid            *string    `db:"sd_sid" json:"sd_sid" validate:"omitempty,min=1"`
	DisplayTitle     *string    `db:"display_title" json:"display_title" validate:"omitempty,min=1"`
	Version          *string    `db:"version" json:"version"`
	DOI              *string    `db:"doi" json:"doi"`
	DOIStatusID      *int       `db:"doi_status_id" json:"doi_status_id"`
	PublicationYear  *int       `db:"publication_year" json:"publication_year"`
	ObjectClassID    *int       `db:"object_class_id" json:"object_class_id"`
	ObjectTypeID     *int       `db:"object_type_id" json:"object_type_id" validate:"omitempty,gte=1"`
	ManagingOrgID    *int       `db:"managing_org_id" json:"managing_org_id"`
	ManagingOrg      *string    `db:"managing_org" json:"managing_org"`
	ManagingOrgRorID *string    `db:"managing_org_ror_id" json:"managing_org_ror_id"`
	LangCode         *string    `db:"lang_code" json:"lang_code"`
	AccessTypeID     *int       `db:"access_type_id" json:"access_type_id"`
	AccessDetails    *string    `db:"access_details" json:"access_details"`
	AccessDetailsURL *string    `db:"access_details_url" json:"access_details_url"`
	URLLastChecked   *time.Time `db:"url_last_checked" json:"url_last_checked"`
	EoscCategory     *int       `db:"eosc_category" json:"eosc_category"`
	AddStudyContribs *bool      `db:"add_study_contribs" json:"add_study_contribs"`
	AddStudyTopics   *bool      `db:"add_study_topics" json:"add_study_topics"`
	CreatedOn        *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy     *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (DataObject) TableName() string {
	return "mdr.data_objects"
}

// DataObjectEntry is the compact listing row for data objects, joined with
// the parent study title and the object type name.
type DataObjectEntry struct {
	ID           int     `db:"id" json:"id"`
	SdOid        *string `db:"sd_oid" json:"sd_oid"`
	SdSid        *string `db:"sd_sid" json:"sd_sid"`
	DisplayTitle *string `db:"display_title" json:"display_title"`
	StudyName    *string `db:"study_name" json:"study_name"`
	TypeName     *string `db:"type_name" json:"type_name"`
}

// ObjectTitle is a title record for a data object. Every object carries at
// least one default title, seeded at creation.
type ObjectTitle struct {
	ID           int        `db:"id" json:"id"`
	SdOid        *string    `db:"sd_oid" json:"sd_oid"`
	TitleTypeID  *int       `db:"title_type_id" json:"title_type_id"`
	TitleText    *string    `db:"title_text" json:"title_text"`
	LangCode     *string    `db:"lang_code" json:"lang_code"`
	LangUsageID  *int       `db:"lang_usage_id" json:"lang_usage_id"`
	IsDefault    *bool      `db:"is_default" json:"is_default"`
	Comments     *string    `db:"comments" json:"comments"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectTitle) TableName() string {
	return "mdr.object_titles"
}

// ObjectContributor records a person or organisation contributing to a
// data object.
type ObjectContributor struct {
	ID                int        `db:"id" json:"id"`
	SdOid             *string    `db:"sd_oid" json:"sd_oid"`
	ContribTypeID     *int       `db:"contrib_type_id" json:"contrib_type_id"`
	IsIndividual      *bool      `db:"is_individual" json:"is_individual"`
	PersonGivenName   *string    `db:"person_given_name" json:"person_given_name"`
	PersonFamilyName  *string    `db:"person_family_name" json:"person_family_name"`
	PersonFullName    *string    `db:"person_full_name" json:"person_full_name"`
	OrcidID           *string    `db:"orcid_id" json:"orcid_id"`
	PersonAffiliation *string    `db:"person_affiliation" json:"person_affiliation"`
	OrganisationID    *int       `db:"organisation_id" json:"organisation_id"`
	OrganisationName  *string    `db:"organisation_name" json:"organisation_name"`
	OrganisationRorID *string    `db:"organisation_ror_id" json:"organisation_ror_id"`
	CreatedOn         *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy      *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectContributor) TableName() string {
	return "mdr.object_contributors"
}

// ObjectDataset carries the dataset-specific consent and de-identification
// profile of a data object.
type ObjectDataset struct {
	ID                   int        `db:"id" json:"id"`
	SdOid                *string    `db:"sd_oid" json:"sd_oid"`
	RecordKeysTypeID     *int       `db:"record_keys_type_id" json:"record_keys_type_id"`
	RecordKeysDetails    *string    `db:"record_keys_details" json:"record_keys_details"`
	DeidentTypeID        *int       `db:"deident_type_id" json:"deident_type_id"`
	DeidentDirect        *bool      `db:"deident_direct" json:"deident_direct"`
	DeidentHipaa         *bool      `db:"deident_hipaa" json:"deident_hipaa"`
	DeidentDates         *bool      `db:"deident_dates" json:"deident_dates"`
	DeidentNonarr        *bool      `db:"deident_nonarr" json:"deident_nonarr"`
	DeidentKanon         *bool      `db:"deident_kanon" json:"deident_kanon"`
	DeidentDetails       *string    `db:"deident_details" json:"deident_details"`
	ConsentTypeID        *int       `db:"consent_type_id" json:"consent_type_id"`
	ConsentNoncommercial *bool      `db:"consent_noncommercial" json:"consent_noncommercial"`
	ConsentGeogRestrict  *bool      `db:"consent_geog_restrict" json:"consent_geog_restrict"`
	ConsentResearchType  *bool      `db:"consent_research_type" json:"consent_research_type"`
	ConsentGeneticOnly   *bool      `db:"consent_genetic_only" json:"consent_genetic_only"`
	ConsentNoMethods     *bool      `db:"consent_no_methods" json:"consent_no_methods"`
	ConsentDetails       *string    `db:"consent_details" json:"consent_details"`
	CreatedOn            *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy         *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectDataset) TableName() string {
	return "mdr.object_datasets"
}

// ObjectDate is a dated event associated with a data object.
type ObjectDate struct {
	ID           int        `db:"id" json:"id"`
	SdOid        *string    `db:"sd_oid" json:"sd_oid"`
	DateTypeID   *int       `db:"date_type_id" json:"date_type_id"`
	DateIsRange  *bool      `db:"date_is_range" json:"date_is_range"`
	DateAsString *string    `db:"date_as_string" json:"date_as_string"`
	StartYear    *int       `db:"start_year" json:"start_year"`
	StartMonth   *int       `db:"start_month" json:"start_month"`
	StartDay     *int       `db:"start_day" json:"start_day"`
	EndYear      *int       `db:"end_year" json:"end_year"`
	EndMonth     *int       `db:"end_month" json:"end_month"`
	EndDay       *int       `db:"end_day" json:"end_day"`
	Details      *string    `db:"details" json:"details"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectDate) TableName() string {
	return "mdr.object_dates"
}

// ObjectDescription is a textual description of a data object.
type ObjectDescription struct {
	ID                int        `db:"id" json:"id"`
	SdOid             *string    `db:"sd_oid" json:"sd_oid"`
	DescriptionTypeID *int       `db:"description_type_id" json:"description_type_id"`
	Label             *string    `db:"label" json:"label"`
	DescriptionText   *string    `db:"description_text" json:"description_text"`
	LangCode          *string    `db:"lang_code" json:"lang_code"`
	CreatedOn         *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy      *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectDescription) TableName() string {
	return "mdr.object_descriptions"
}

// ObjectIdentifier is an external identifier attached to a data object.
type ObjectIdentifier struct {
	ID                 int        `db:"id" json:"id"`
	SdOid              *string    `db:"sd_oid" json:"sd_oid"`
	IdentifierValue    *string    `db:"identifier_value" json:"identifier_value"`
	IdentifierTypeID   *int       `db:"identifier_type_id" json:"identifier_type_id"`
	IdentifierOrgID    *int       `db:"identifier_org_id" json:"identifier_org_id"`
	IdentifierOrg      *string    `db:"identifier_org" json:"identifier_org"`
	IdentifierOrgRorID *string    `db:"identifier_org_ror_id" json:"identifier_org_ror_id"`
	IdentifierDate     *string    `db:"identifier_date" json:"identifier_date"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectIdentifier) TableName() string {
	return "mdr.object_identifiers"
}

// ObjectInstance records a hosted copy of a data object.
type ObjectInstance struct {
	ID                int        `db:"id" json:"id"`
	SdOid             *string    `db:"sd_oid" json:"sd_oid"`
	InstanceTypeID    *int       `db:"instance_type_id" json:"instance_type_id"`
	RepositoryOrgID   *int       `db:"repository_org_id" json:"repository_org_id"`
	RepositoryOrg     *string    `db:"repository_org" json:"repository_org"`
	URL               *string    `db:"url" json:"url"`
	URLAccessible     *bool      `db:"url_accessible" json:"url_accessible"`
	URLLastChecked    *time.Time `db:"url_last_checked" json:"url_last_checked"`
	ResourceTypeID    *int       `db:"resource_type_id" json:"resource_type_id"`
	ResourceSize      *string    `db:"resource_size" json:"resource_size"`
	ResourceSizeUnits *string    `db:"resource_size_units" json:"resource_size_units"`
	ResourceComments  *string    `db:"resource_comments" json:"resource_comments"`
	CreatedOn         *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy      *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectInstance) TableName() string {
	return "mdr.object_instances"
}

// ObjectRelationship is a directed edge between two data objects. Edges
// are maintained in converse pairs, see repositories.ConverseOf.
type ObjectRelationship struct {
	ID                 int        `db:"id" json:"id"`
	SdOid              *string    `db:"sd_oid" json:"sd_oid"`
	RelationshipTypeID *int       `db:"relationship_type_id" json:"relationship_type_id"`
	TargetSdOid        *string    `db:"target_sd_oid" json:"target_sd_oid"`
	CreatedOn          *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy       *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectRelationship) TableName() string {
	return "mdr.object_relationships"
}

// ObjectRight is a rights statement attached to a data object.
type ObjectRight struct {
	ID           int        `db:"id" json:"id"`
	SdOid        *string    `db:"sd_oid" json:"sd_oid"`
	RightsName   *string    `db:"rights_name" json:"rights_name"`
	RightsURI    *string    `db:"rights_uri" json:"rights_uri"`
	Comments     *string    `db:"comments" json:"comments"`
	CreatedOn    *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectRight) TableName() string {
	return "mdr.object_rights"
}

// ObjectTopic is a subject classification of a data object.
type ObjectTopic struct {
	ID             int        `db:"id" json:"id"`
	SdOid          *string    `db:"sd_oid" json:"sd_oid"`
	TopicTypeID    *int       `db:"topic_type_id" json:"topic_type_id"`
	MeshCoded      *bool      `db:"mesh_coded" json:"mesh_coded"`
	MeshCode       *string    `db:"mesh_code" json:"mesh_code"`
	MeshValue      *string    `db:"mesh_value" json:"mesh_value"`
	OriginalCtID   *int       `db:"original_ct_id" json:"original_ct_id"`
	OriginalCtCode *string    `db:"original_ct_code" json:"original_ct_code"`
	OriginalValue  *string    `db:"original_value" json:"original_value"`
	CreatedOn      *time.Time `db:"created_on" json:"created_on,omitempty"`
	LastEditedBy   *string    `db:"last_edited_by" json:"-"`
}

// TableName returns the database table name
func (ObjectTopic) TableName() string {
	return "mdr.object_topics"
}

// FullObject is the complete data object aggregate: the core record plus
// every attribute collection. Child slices are always non-nil.
type FullObject struct {
	CoreObject          DataObject           `json:"core_object"`
	ObjectContributors  []ObjectContributor  `json:"object_contributors"`
	ObjectDatasets      []ObjectDataset      `json:"object_datasets"`
	ObjectDates         []ObjectDate         `json:"object_dates"`
	ObjectDescriptions  []ObjectDescription  `json:"object_descriptions"`
	ObjectIdentifiers   []ObjectIdentifier   `json:"object_identifiers"`
	ObjectInstances     []ObjectInstance     `json:"object_instances"`
	ObjectRelationships []ObjectRelationship `json:"object_relationships"`
	ObjectRights        []ObjectRight        `json:"object_rights"`
	ObjectTitles        []ObjectTitle        `json:"object_titles"`
	ObjectTopics        []ObjectTopic        `json:"object_topics"`
}

// ObjectInvolvement summarizes how many transfer and use processes
// reference an object.
type ObjectInvolvement struct {
	SdOid    string `json:"sd_oid"`
	DtpTotal int    `json:"dtp_total"`
	DupTotal int    `json:"dup_total"`
}
