package config_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtworks/jis-api/config"
	"github.com/courtworks/jis-api/models"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("DB_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "jis")
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "super-secret")

	conf := config.New()

	assert.Equal(t, "mongodb://localhost:27017", conf.URL)
	assert.Equal(t, "jis", conf.DatabaseName)
	assert.Equal(t, "http://localhost:8080", conf.BaseURL)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, []byte("super-secret"), conf.JWTSecret)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	config.ErrorStatus("failed to get case", 500, rr, errors.New("boom"))

	assert.Equal(t, 500, rr.Code)

	expected, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{
		Message: "failed to get case",
		Error:   "boom",
	}})
	assert.Equal(t, string(expected), rr.Body.String())
}

func TestErrorStatusNilError(t *testing.T) {
	rr := httptest.NewRecorder()
	config.ErrorStatus("case not found", 404, rr, nil)

	assert.Equal(t, 404, rr.Code)

	var resp models.ErrorMessageResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "case not found", resp.Response.Message)
	assert.Empty(t, resp.Response.Error)
}
