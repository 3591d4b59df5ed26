package httpresponse

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]int{"board_size": 9})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status": 201, "Body": {"board_size": 9}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, "game has already ended")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"Status": 409, "Body": {"ErrorDescription": "game has already ended"}}`, rec.Body.String())
}

func TestWriteResponseUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, INTERNALERRORJSON, rec.Body.String())
}
