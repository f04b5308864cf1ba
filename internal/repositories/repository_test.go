package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	appctx "github.com/ecrin-rms/rmsbe/pkg/context"
)

func TestEditorName(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", EditorName(ctx))

	ctx = appctx.SetUserName(ctx, "j.smith")
	assert.Equal(t, "j.smith", EditorName(ctx))
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(0, 10))
	assert.Equal(t, 0, pageOffset(1, 10))
	assert.Equal(t, 10, pageOffset(2, 10))
	assert.Equal(t, 40, pageOffset(5, 10))
}

func TestLookupTypeKnown(t *testing.T) {
	assert.True(t, LookupTypeKnown("dtp-status-types"))
	assert.True(t, LookupTypeKnown("object-types"))
	assert.True(t, LookupTypeKnown("relationship-types"))
	assert.False(t, LookupTypeKnown("dtp_status_types"))
	assert.False(t, LookupTypeKnown("users; drop table lup.dtp_status_types"))
	assert.False(t, LookupTypeKnown(""))
}
