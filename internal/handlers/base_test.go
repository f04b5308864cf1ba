package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecrin-rms/rmsbe/pkg/models"
)

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "valid id", value: "42", want: 42},
		{name: "missing", value: "", wantErr: true},
		{name: "not a number", value: "abc", wantErr: true},
		{name: "zero", value: "0", wantErr: true},
		{name: "negative", value: "-7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			c.SetParamNames("dtp_id")
			c.SetParamValues(tt.value)

			id, err := ParseID(c, "dtp_id")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, httperror.IsHTTPError(err))
				assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseSdOid(t *testing.T) {
	c := newTestContext(t)
	c.SetParamNames("sd_oid")
	c.SetParamValues("ABC-123::12::10.1234/x")

	sdOid, err := ParseSdOid(c)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123::12::10.1234/x", sdOid)

	c = newTestContext(t)
	_, err = ParseSdOid(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
}

func TestNameLang(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?name_lang=de", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "de", nameLang(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "en", nameLang(c))
}

func TestValidatePayloads(t *testing.T) {
	neg := -1
	assert.Error(t, validate.Struct(models.Dtp{OrgID: &neg}))
	assert.Error(t, validate.Struct(models.Dup{StatusID: &neg}))

	name := "Transfer process"
	org := 100001
	assert.NoError(t, validate.Struct(models.Dtp{DisplayName: &name, OrgID: &org}))
	assert.NoError(t, validate.Struct(models.Dtp{}))
}

func TestNotFound(t *testing.T) {
	err := NotFound("dtp with id %d not found", 12)
	require.Error(t, err)
	assert.True(t, httperror.IsHTTPError(err))
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
	assert.Contains(t, err.Error(), "dtp with id 12 not found")
}
