package repositories_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecrin-rms/rmsbe/internal/repositories"
	"github.com/ecrin-rms/rmsbe/pkg/models"
)

func TestDupRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newDupRepo(t)
	ctx := getTestContext()

	name := "Test use process " + uuid.NewString()

	created, err := repo.CreateDup(ctx, &models.Dup{
		OrgID:       intPtr(100001),
		DisplayName: strPtr(name),
		StatusID:    intPtr(1),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotNil(t, created.CreatedOn)

	exists, err := repo.DupExists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	created.DisplayName = strPtr(name + " updated")
	updated, err := repo.UpdateDup(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, name+" updated", *updated.DisplayName)

	count, err := repo.DeleteDup(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.GetDup(ctx, created.ID)
	assertNotFound(t, err)
}

func TestDupRepository_Children(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newDupRepo(t)
	ctx := getTestContext()

	dup, err := repo.CreateDup(ctx, &models.Dup{
		DisplayName: strPtr("Use process with children " + uuid.NewString()),
	})
	require.NoError(t, err)

	// Agreement: one per process, keyed by the parent
	_, err = repo.CreateDua(ctx, &models.Dua{
		DupID:       &dup.ID,
		RepoAsProxy: boolPtr(false),
	})
	require.NoError(t, err)

	hasDua, err := repo.DupDuaExists(ctx, dup.ID)
	require.NoError(t, err)
	assert.True(t, hasDua)

	// Secondary use records
	secUse, err := repo.CreateSecUse(ctx, &models.DupSecondaryUse{
		DupID:              &dup.ID,
		SecondaryUseType:   strPtr("meta analysis"),
		AttributionPresent: boolPtr(true),
	})
	require.NoError(t, err)
	assert.NotZero(t, secUse.ID)

	ok, err := repo.DupAttributeExists(ctx, dup.ID, repositories.DupAttributeSecUse, secUse.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	uses, err := repo.GetAllSecUses(ctx, dup.ID)
	require.NoError(t, err)
	assert.Len(t, uses, 1)

	// Object link and its prerequisite
	sdOid := "TEST-OBJ-" + uuid.NewString()
	_, err = repo.CreateDupObject(ctx, &models.DupObject{
		DupID: dup.ID,
		SdOid: strPtr(sdOid),
	})
	require.NoError(t, err)

	prereq, err := repo.CreateDupPrereq(ctx, &models.DupPrereq{
		DupID:              &dup.ID,
		SdOid:              strPtr(sdOid),
		PreRequisiteTypeID: intPtr(1),
	})
	require.NoError(t, err)

	hasPrereq, err := repo.DupObjectAttributeExists(ctx, dup.ID, sdOid, repositories.DupAttributePrereq, prereq.ID)
	require.NoError(t, err)
	assert.True(t, hasPrereq)

	full, err := repo.GetFullDup(ctx, dup.ID)
	require.NoError(t, err)
	assert.Equal(t, dup.ID, full.CoreDup.ID)
	assert.Len(t, full.Duas, 1)
	assert.Len(t, full.DupObjects, 1)
	assert.Len(t, full.DupPrereqs, 1)
	assert.Len(t, full.DupSecUses, 1)
	assert.NotNil(t, full.DupStudies)
	assert.NotNil(t, full.DupNotes)
	assert.NotNil(t, full.DupPeople)

	count, err := repo.DeleteFullDup(ctx, dup.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	exists, err := repo.DupExists(ctx, dup.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
