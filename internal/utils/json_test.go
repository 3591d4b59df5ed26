package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Size *int   `json:"size"`
	Name string `json:"name"`
}

func TestDecodeJSONRequest(t *testing.T) {
	var p payload
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"size": 9, "name": "x"}`))
	require.NoError(t, DecodeJSONRequest(r, &p))
	require.NotNil(t, p.Size)
	assert.Equal(t, 9, *p.Size)
	assert.Equal(t, "x", p.Name)
}

func TestDecodeJSONRequestEmptyBody(t *testing.T) {
	var p payload
	r := httptest.NewRequest("POST", "/", strings.NewReader("  \n"))
	require.NoError(t, DecodeJSONRequest(r, &p))
	assert.Nil(t, p.Size)
}

func TestDecodeJSONRequestRejects(t *testing.T) {
	for name, body := range map[string]string{
		"unknown field": `{"colour": "b"}`,
		"trailing":      `{"name": "a"} {"name": "b"}`,
		"broken":        `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			var p payload
			r := httptest.NewRequest("POST", "/", strings.NewReader(body))
			assert.Error(t, DecodeJSONRequest(r, &p))
		})
	}
}
