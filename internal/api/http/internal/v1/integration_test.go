package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/esp-integration/backend/internal/config"
	"github.com/esp-integration/backend/internal/domain"
	"github.com/esp-integration/backend/internal/esp"
	"github.com/esp-integration/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntegrationsService struct {
	createResult *service.ValidationResult
	createErr    error
	listsResult  *esp.ListPage
	listsErr     error

	gotProvider      domain.Provider
	gotIntegrationID *uuid.UUID
}

func (f *fakeIntegrationsService) CreateAndValidate(_ context.Context, provider domain.Provider, _ string) (*service.ValidationResult, error) {
	f.gotProvider = provider
	return f.createResult, f.createErr
}

func (f *fakeIntegrationsService) GetLists(_ context.Context, provider domain.Provider, integrationID *uuid.UUID) (*esp.ListPage, error) {
	f.gotProvider = provider
	f.gotIntegrationID = integrationID
	return f.listsResult, f.listsErr
}

func setupRouter(fake *fakeIntegrationsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewHandler(&service.Services{Integrations: fake}, &config.Config{})
	handler.Init(router.Group("/api"))

	return router
}

func TestCreateIntegrationSuccessEnvelope(t *testing.T) {
	fake := &fakeIntegrationsService{
		createResult: &service.ValidationResult{
			Message:     "MAILCHIMP validated",
			Integration: &domain.Integration{ID: uuid.New(), Provider: domain.ProviderMailchimp, IsValid: true},
		},
	}
	router := setupRouter(fake)

	body := `{"provider":"MAILCHIMP","apiKey":"abcdefgh-us1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/integrations/esp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success  bool   `json:"success"`
		Provider string `json:"provider"`
		Data     struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "MAILCHIMP", resp.Provider)
	assert.Equal(t, "MAILCHIMP validated", resp.Data.Message)
	assert.Equal(t, domain.ProviderMailchimp, fake.gotProvider)
}

func TestCreateIntegrationValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown provider", `{"provider":"SENDGRID","apiKey":"abcdefghij"}`},
		{"missing provider", `{"apiKey":"abcdefghij"}`},
		{"api key too short", `{"provider":"MAILCHIMP","apiKey":"short"}`},
		{"missing api key", `{"provider":"MAILCHIMP"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeIntegrationsService{}
			router := setupRouter(fake)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/integrations/esp", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			// the service must never be reached on a validation failure
			assert.Empty(t, fake.gotProvider)
		})
	}
}

func TestCreateIntegrationClassifiedError(t *testing.T) {
	fake := &fakeIntegrationsService{
		createErr: &esp.Error{Kind: esp.KindInvalidCredentials, Message: "invalid credentials for provider"},
	}
	router := setupRouter(fake)

	body := `{"provider":"GETRESPONSE","apiKey":"abcdefghij"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/integrations/esp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			StatusCode int    `json:"statusCode"`
			Message    string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusUnauthorized, resp.Error.StatusCode)
	assert.Equal(t, "invalid credentials for provider", resp.Error.Message)
}

func TestGetListsResponseShape(t *testing.T) {
	total := int64(2)
	fake := &fakeIntegrationsService{
		listsResult: &esp.ListPage{
			Total: &total,
			Field: "lists",
			Items: json.RawMessage(`[{"id":"l1"},{"id":"l2"}]`),
		},
	}
	router := setupRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/integrations/esp/lists?provider=MAILCHIMP", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), `"lists":[{"id":"l1"},{"id":"l2"}]`)
	assert.Nil(t, fake.gotIntegrationID)
}

func TestGetListsByIntegrationIDWithoutProvider(t *testing.T) {
	total := int64(1)
	fake := &fakeIntegrationsService{
		listsResult: &esp.ListPage{Total: &total, Field: "campaigns", Items: json.RawMessage(`[{"campaignId":"c1"}]`)},
	}
	router := setupRouter(fake)

	id := uuid.New()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/integrations/esp/lists?integrationId="+id.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.gotIntegrationID)
	assert.Equal(t, id, *fake.gotIntegrationID)
}

func TestGetListsBadRequests(t *testing.T) {
	fake := &fakeIntegrationsService{}
	router := setupRouter(fake)

	t.Run("no provider and no id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/integrations/esp/lists", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed integration id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/integrations/esp/lists?integrationId=not-a-uuid", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetListsNotFound(t *testing.T) {
	fake := &fakeIntegrationsService{listsErr: service.ErrIntegrationNotFound}
	router := setupRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/integrations/esp/lists?provider=MAILCHIMP", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "integration not found")
}
