package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProblem_MergesExtensions(t *testing.T) {
	rec := httptest.NewRecorder()
	p := Problem{Title: "Bad", Detail: "nope"}
	p.With("trace", "abc").With("status", 999).With("", "ignored")
	WriteProblem(rec, http.StatusBadRequest, p)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad", body["title"])
	assert.Equal(t, "nope", body["detail"])
	assert.EqualValues(t, 400, body["status"])
	assert.Equal(t, "abc", body["trace"])
}

func TestWriteProblem_DefaultsToInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteProblem(rec, 0, Problem{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteValidationProblem(t *testing.T) {
	type fieldError struct {
		Field  string `json:"field"`
		Reason string `json:"reason"`
	}
	rec := httptest.NewRecorder()
	WriteValidationProblem(rec, "request has invalid fields", []fieldError{{Field: "cpf", Reason: "checksum_mismatch"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Status int          `json:"status"`
		Title  string       `json:"title"`
		Errors []fieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 422, body.Status)
	assert.Equal(t, "Unprocessable Entity", body.Title)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "cpf", body.Errors[0].Field)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"a": "b"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":"b"}`, rec.Body.String())
}
