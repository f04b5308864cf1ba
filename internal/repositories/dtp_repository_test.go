package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

func TestDtpRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newDtpRepo(t)
	ctx := getTestContext()

	name := "Test transfer " + uuid.NewString()

	// Create
	created, err := repo.CreateDtp(ctx, &models.Dtp{
		OrgID:       intPtr(100001),
		DisplayName: strPtr(name),
		StatusID:    intPtr(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, name, *created.DisplayName)
	assert.NotNil(t, created.CreatedOn)

	// Exists
	exists, err := repo.DtpExists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// Get
	fetched, err := repo.GetDtp(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, name, *fetched.DisplayName)

	// Update
	fetched.DisplayName = strPtr(name + " updated")
	updated, err := repo.UpdateDtp(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, name+" updated", *updated.DisplayName)

	// Filtered listing picks it up
	filtered, err := repo.GetFilteredDtps(ctx, name)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(filtered), 1)

	// Delete
	count, err := repo.DeleteDtp(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err = repo.DtpExists(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Fetching the deleted record is a 404
	_, err = repo.GetDtp(ctx, created.ID)
	assertNotFound(t, err)
}

func TestDtpRepository_NotFoundPaths(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newDtpRepo(t)
	ctx := getTestContext()

	_, err := repo.GetDtp(ctx, 999999999)
	assertNotFound(t, err)

	_, err = repo.UpdateDtp(ctx, &models.Dtp{ID: 999999999, DisplayName: strPtr("nope")})
	assertNotFound(t, err)

	_, err = repo.GetOutDta(ctx, 999999999)
	assertNotFound(t, err)
}

func TestDtpRepository_Children(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newDtpRepo(t)
	ctx := getTestContext()

	dtp, err := repo.CreateDtp(ctx, &models.Dtp{
		DisplayName: strPtr("Transfer with children " + uuid.NewString()),
	})
	require.NoError(t, err)

	// Note
	note, err := repo.CreateDtpNote(ctx, &models.DtpNote{
		DtpID: &dtp.ID,
		Text:  strPtr("first annotation"),
	})
	require.NoError(t, err)
	assert.NotZero(t, note.ID)

	ok, err := repo.DtpAttributeExists(ctx, dtp.ID, repositories.DtpAttributeNote, note.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	notes, err := repo.GetAllDtpNotes(ctx, dtp.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	// Object link plus a prerequisite against it
	sdOid := "TEST-OBJ-" + uuid.NewString()
	obj, err := repo.CreateDtpObject(ctx, &models.DtpObject{
		DtpID: dtp.ID,
		SdOid: strPtr(sdOid),
	})
	require.NoError(t, err)
	assert.NotZero(t, obj.ID)

	hasObject, err := repo.DtpObjectExists(ctx, dtp.ID, sdOid)
	require.NoError(t, err)
	assert.True(t, hasObject)

	prereq, err := repo.CreateDtpPrereq(ctx, &models.DtpPrereq{
		DtpID:              &dtp.ID,
		SdOid:              strPtr(sdOid),
		PreRequisiteTypeID: intPtr(1),
	})
	require.NoError(t, err)

	hasPrereq, err := repo.DtpObjectAttributeExists(ctx, dtp.ID, sdOid, repositories.DtpAttributePrereq, prereq.ID)
	require.NoError(t, err)
	assert.True(t, hasPrereq)

	// Agreement: one per process
	_, err = repo.CreateDta(ctx, &models.Dta{
		DtpID:             &dtp.ID,
		ConformsToDefault: boolPtr(true),
	})
	require.NoError(t, err)

	hasDta, err := repo.DtpDtaExists(ctx, dtp.ID)
	require.NoError(t, err)
	assert.True(t, hasDta)

	// Full aggregate carries every child collection, never nil
	full, err := repo.GetFullDtp(ctx, dtp.ID)
	require.NoError(t, err)
	assert.Equal(t, dtp.ID, full.CoreDtp.ID)
	assert.Len(t, full.Dtas, 1)
	assert.Len(t, full.DtpNotes, 1)
	assert.Len(t, full.DtpObjects, 1)
	assert.Len(t, full.DtpPrereqs, 1)
	assert.NotNil(t, full.DtpStudies)
	assert.NotNil(t, full.DtpDatasets)
	assert.NotNil(t, full.DtpPeople)

	// Full delete removes the process and all children
	count, err := repo.DeleteFullDtp(ctx, dtp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err := repo.DtpExists(ctx, dtp.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
