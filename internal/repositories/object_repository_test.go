package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecrin-rms/rmsbe/pkg/models"
)

func TestObjectRepository_CreateDerivesIdentifier(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newObjectRepo(t)
	ctx := getTestContext()

	sdSid := "TEST-STUDY-" + uuid.NewString()

	// A journal article with a DOI derives its identifier from the DOI
	article, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Primary results paper"),
		ObjectTypeID: intPtr(models.ObjectTypeJournalArticle),
		DOI:          strPtr("10.1234/test.1"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, sdSid+"::12::10.1234/test.1", *article.SdOid)

	// Other object types derive from the display title
	dataset, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("IPD dataset"),
		ObjectTypeID: intPtr(80),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, sdSid+"::80::IPD dataset", *dataset.SdOid)

	// A second object with the same derivation inputs gets a suffix
	duplicate, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("IPD dataset"),
		ObjectTypeID: intPtr(80),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, sdSid+"::80::IPD dataset_1", *duplicate.SdOid)

	// A supplied identifier is used verbatim
	supplied := "SUPPLIED-" + uuid.NewString()
	withID, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdOid:        strPtr(supplied),
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Protocol"),
		ObjectTypeID: intPtr(11),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, supplied, *withID.SdOid)

	for _, sdOid := range []string{*article.SdOid, *dataset.SdOid, *duplicate.SdOid, supplied} {
		_, err = repo.DeleteFullObject(ctx, sdOid)
		require.NoError(t, err)
	}
}

func TestObjectRepository_DefaultTitleSeeding(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newObjectRepo(t)
	ctx := getTestContext()

	sdSid := "TEST-STUDY-" + uuid.NewString()

	object, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Seeded object"),
		ObjectTypeID: intPtr(80),
	}, true)
	require.NoError(t, err)

	titles, err := repo.GetObjectTitles(ctx, *object.SdOid)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Seeded object", *titles[0].TitleText)
	assert.Equal(t, models.TitleTypeDefault, *titles[0].TitleTypeID)
	assert.Equal(t, models.LangUsageTitleOnly, *titles[0].LangUsageID)
	assert.True(t, *titles[0].IsDefault)

	// Updating the display title rewrites the matching title record
	object.DisplayTitle = strPtr("Renamed object")
	_, err = repo.UpdateDataObject(ctx, object)
	require.NoError(t, err)

	titles, err = repo.GetObjectTitles(ctx, *object.SdOid)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.Equal(t, "Renamed object", *titles[0].TitleText)

	// Creation without seeding leaves the titles table alone
	bare, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Bare object"),
		ObjectTypeID: intPtr(80),
	}, false)
	require.NoError(t, err)

	bareTitles, err := repo.GetObjectTitles(ctx, *bare.SdOid)
	require.NoError(t, err)
	assert.Empty(t, bareTitles)

	_, err = repo.DeleteFullObject(ctx, *object.SdOid)
	require.NoError(t, err)
	_, err = repo.DeleteFullObject(ctx, *bare.SdOid)
	require.NoError(t, err)
}

func TestObjectRepository_RelationshipConversePair(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newObjectRepo(t)
	ctx := getTestContext()

	sdSid := "TEST-STUDY-" + uuid.NewString()

	source, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Source object"),
		ObjectTypeID: intPtr(80),
	}, true)
	require.NoError(t, err)

	target, err := repo.CreateDataObject(ctx, &models.DataObject{
		SdSid:        strPtr(sdSid),
		DisplayTitle: strPtr("Target object"),
		ObjectTypeID: intPtr(80),
	}, true)
	require.NoError(t, err)

	// Creating an edge also creates its converse
	edge, err := repo.CreateObjectRelationship(ctx, &models.ObjectRelationship{
		SdOid:              source.SdOid,
		RelationshipTypeID: intPtr(22),
		TargetSdOid:        target.SdOid,
	})
	require.NoError(t, err)

	back, err := repo.GetObjectRelationships(ctx, *target.SdOid)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, 21, *back[0].RelationshipTypeID)
	assert.Equal(t, *source.SdOid, *back[0].TargetSdOid)

	// Retyping the edge retypes the converse
	edge.RelationshipTypeID = intPtr(24)
	_, err = repo.UpdateObjectRelationship(ctx, edge)
	require.NoError(t, err)

	back, err = repo.GetObjectRelationships(ctx, *target.SdOid)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, 23, *back[0].RelationshipTypeID)

	// Deleting the edge removes the converse too
	_, err = repo.DeleteObjectRelationship(ctx, edge.ID)
	require.NoError(t, err)

	back, err = repo.GetObjectRelationships(ctx, *target.SdOid)
	require.NoError(t, err)
	assert.Empty(t, back)

	_, err = repo.DeleteFullObject(ctx, *source.SdOid)
	require.NoError(t, err)
	_, err = repo.DeleteFullObject(ctx, *target.SdOid)
	require.NoError(t, err)
}
