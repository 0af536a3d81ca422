//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityHandler_Recent(t *testing.T) {
	activityService := new(MockActivityService)
	activityService.On("Recent", mock.Anything, 20, 0).Return([]*activities.Activity{
		{ID: 1, Message: "Backup finished", Type: activities.TypeSystem},
	}, nil)

	handler := NewActivityHandler(activityService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/activity/recent", nil)

	handler.Recent(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response []ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, SystemCustomerName, response[0].CustomerName)
	activityService.AssertExpectations(t)
}

func TestActivityHandler_ForCustomer_Unknown(t *testing.T) {
	activityService := new(MockActivityService)
	activityService.On("ForCustomer", mock.Anything, "CUST-MISSING", 20).Return([]*activities.Activity{}, nil)

	handler := NewActivityHandler(activityService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/activity/customer/CUST-MISSING", nil)
	c.Params = gin.Params{{Key: "customer_id", Value: "CUST-MISSING"}}

	handler.ForCustomer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestActivityHandler_Log(t *testing.T) {
	activityService := new(MockActivityService)
	activityService.
		On("Log", mock.Anything, &activities.LogRequest{CustomerID: "CUST-1A2B3C4D", Message: "Called customer"}).
		Return(&activities.Activity{ID: 42, Message: "Called customer", Type: activities.TypeSystem}, nil)

	handler := NewActivityHandler(activityService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/activity/log", `{"customer_id": "CUST-1A2B3C4D", "message": "Called customer"}`)

	handler.Log(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status": "success", "id": 42, "message": "Activity logged successfully"}`, w.Body.String())
}

func TestActivityHandler_Mock(t *testing.T) {
	handler := &activityHandler{now: func() time.Time { return time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC) }}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/activity/recent/mock", nil)

	handler.Mock(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response []MockActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 3)
	assert.Equal(t, "act-1", response[0].ID)
	assert.Equal(t, "Jane Smith", response[1].Customer.Name)
}
