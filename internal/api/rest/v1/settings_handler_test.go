//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSettingsHandler_GetSystemSettings(t *testing.T) {
	defaults := settings.DefaultSystemSettings()

	settingsService := new(MockSettingsService)
	settingsService.On("GetSystemSettings", mock.Anything).Return(&defaults, nil)

	handler := NewSettingsHandler(settingsService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/settings/system", nil)

	handler.GetSystemSettings(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"system_prompt": "You are a helpful assistant that provides information about automotive services.",
		"working_hours": {"start": 8, "end": 18, "days": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"]},
		"appointment_duration": 30,
		"notification_enabled": true
	}`, w.Body.String())
}

func TestSettingsHandler_GetPrompt(t *testing.T) {
	settingsService := new(MockSettingsService)
	settingsService.On("GetPrompt", mock.Anything).Return("Be brief.", nil)

	handler := &settingsHandler{
		settingsService: settingsService,
		now:             func() time.Time { return time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC) },
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/system/prompt", nil)

	handler.GetPrompt(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"prompt": "Be brief.", "timestamp": "2030-01-02T10:00:00Z"}`, w.Body.String())
}

func TestSettingsHandler_UpdatePrompt(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		serviceErr     error
		expectedStatus int
	}{
		{"stored", "Be brief.", nil, http.StatusOK},
		{"empty", "", settings.ErrEmptyPrompt, http.StatusBadRequest},
		{"both writes failed", "Be brief.", errors.Join(settings.ErrSettingsNotSaved, errors.New("s3 down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settingsService := new(MockSettingsService)
			settingsService.On("UpdatePrompt", mock.Anything, tt.content).Return(tt.serviceErr)

			handler := NewSettingsHandler(settingsService)

			body, _ := json.Marshal(UpdatePromptRequest{Content: tt.content})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPut, "/api/system/prompt", string(body))

			handler.UpdatePrompt(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			settingsService.AssertExpectations(t)
		})
	}
}

func TestSettingsHandler_Services(t *testing.T) {
	service := &settings.ServiceOffering{
		ServiceID: "SRV-1A2B3C4D",
		Name:      "Oil change",
		Duration:  30,
		Price:     49.9,
		Category:  settings.DefaultServiceCategory,
		Active:    true,
	}

	t.Run("List", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		settingsService.On("ListServices", mock.Anything).Return([]*settings.ServiceOffering{service}, nil)

		handler := NewSettingsHandler(settingsService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/api/settings/services", nil)

		handler.ListServices(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id": "SRV-1A2B3C4D", "name": "Oil change", "description": "", "duration": 30, "price": 49.9, "category": "maintenance", "active": true}]`, w.Body.String())
	})

	t.Run("Create", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		settingsService.
			On("CreateService", mock.Anything, &settings.CreateServiceRequest{Name: "Oil change", Duration: 30, Price: 49.9}).
			Return(service, nil)

		handler := NewSettingsHandler(settingsService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/api/settings/services", `{"name": "Oil change", "duration": 30, "price": 49.9}`)

		handler.CreateService(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id": "SRV-1A2B3C4D", "name": "Oil change"}`, w.Body.String())
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		settingsService.On("UpdateService", mock.Anything, "SRV-MISSING", mock.Anything).Return(nil, settings.ErrServiceNotFound)

		handler := NewSettingsHandler(settingsService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPut, "/api/settings/services/SRV-MISSING", `{"price": 10}`)
		c.Params = gin.Params{{Key: "id", Value: "SRV-MISSING"}}

		handler.UpdateService(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		settingsService := new(MockSettingsService)
		settingsService.On("DeleteService", mock.Anything, "SRV-1A2B3C4D").Return(nil)

		handler := NewSettingsHandler(settingsService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodDelete, "/api/settings/services/SRV-1A2B3C4D", nil)
		c.Params = gin.Params{{Key: "id", Value: "SRV-1A2B3C4D"}}

		handler.DeleteService(c)

		assert.Equal(t, http.StatusOK, w.Code)
		settingsService.AssertExpectations(t)
	})
}

func TestSettingsHandler_UpdateWorkingHours(t *testing.T) {
	hours := &settings.WorkingHours{Start: 9, End: 17, Days: []string{"Monday", "Friday"}}

	settingsService := new(MockSettingsService)
	settingsService.On("UpdateWorkingHours", mock.Anything, hours).Return(nil)

	handler := NewSettingsHandler(settingsService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPut, "/api/settings/working-hours", `{"start": 9, "end": 17, "days": ["Monday", "Friday"]}`)

	handler.UpdateWorkingHours(c)

	assert.Equal(t, http.StatusOK, w.Code)
	settingsService.AssertExpectations(t)
}
