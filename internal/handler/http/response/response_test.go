package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreated_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Punched in successfully", map[string]string{"id": "a1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Punched in successfully", body.Message)
	assert.Nil(t, body.Error)
}

func TestBadRequest_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "Invalid request format", map[string]string{"year": "must be a number"})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "must be a number", body.Error.Details["year"])
}

func TestFile_Headers(t *testing.T) {
	rec := httptest.NewRecorder()
	File(rec, "application/pdf", "slip-2025-02.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="slip-2025-02.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
