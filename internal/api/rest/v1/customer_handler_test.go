//go:build unit
// +build unit

package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCustomer() *customers.Customer {
	return &customers.Customer{
		ID:           1,
		CustomerID:   "CUST-1A2B3C4D",
		Phone:        "+15550001",
		Name:         "John Doe",
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		VehicleYear:  "2018",
		TotalVisits:  2,
		CreatedAt:    time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestCustomerHandler_List(t *testing.T) {
	customerService := new(MockCustomerService)
	customerService.
		On("List", mock.Anything, mock.MatchedBy(func(q *customers.CustomerQuery) bool {
			return q.Search == "toyota" && q.Limit == 5 && q.Offset == 10
		})).
		Return([]*customers.Customer{newTestCustomer()}, int64(11), nil)

	handler := NewCustomerHandler(customerService, new(MockAppointmentService), new(MockDocumentService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/customers?search=toyota&limit=5&offset=10", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response CustomerListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, Pagination{Total: 11, Limit: 5, Offset: 10}, response.Pagination)
	require.Len(t, response.Customers, 1)
	assert.Equal(t, "CUST-1A2B3C4D", response.Customers[0].ID)
	customerService.AssertExpectations(t)
}

func TestCustomerHandler_List_InvalidPaging(t *testing.T) {
	tests := []string{"limit=0", "limit=101", "limit=abc", "offset=-1"}

	for _, query := range tests {
		t.Run(query, func(t *testing.T) {
			handler := NewCustomerHandler(new(MockCustomerService), new(MockAppointmentService), new(MockDocumentService))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/api/customers?"+query, nil)

			handler.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCustomerHandler_GetByID(t *testing.T) {
	customer := newTestCustomer()

	customerService := new(MockCustomerService)
	customerService.On("GetByCustomerID", mock.Anything, customer.CustomerID).Return(customer, nil)

	appointmentService := new(MockAppointmentService)
	appointmentService.On("ListByCustomerPhone", mock.Anything, customer.Phone, recentAppointmentsLimit).
		Return([]*appointments.Appointment{{AppointmentID: "APT-00000001", ServiceType: "Oil change", Date: "2030-01-05", Time: "09:00", Status: appointments.StatusPending}}, nil)

	handler := NewCustomerHandler(customerService, appointmentService, new(MockDocumentService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/customers/"+customer.CustomerID, nil)
	c.Params = gin.Params{{Key: "id", Value: customer.CustomerID}}

	handler.GetByID(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response CustomerDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, VehicleResponse{Make: "Toyota", Model: "Corolla", Year: "2018"}, response.Vehicle)
	assert.Equal(t, 2, response.TotalVisits)
	require.Len(t, response.RecentAppointments, 1)
	assert.Equal(t, "APT-00000001", response.RecentAppointments[0].ID)
}

func TestCustomerHandler_GetByID_NotFound(t *testing.T) {
	customerService := new(MockCustomerService)
	customerService.On("GetByCustomerID", mock.Anything, "CUST-MISSING").Return(nil, customers.ErrCustomerNotFound)

	handler := NewCustomerHandler(customerService, new(MockAppointmentService), new(MockDocumentService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/customers/CUST-MISSING", nil)
	c.Params = gin.Params{{Key: "id", Value: "CUST-MISSING"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "customer not found"}`, w.Body.String())
}

func TestCustomerHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		created        bool
		expectedStatus int
		expectedState  string
	}{
		{"new customer", true, http.StatusCreated, "created"},
		{"known phone", false, http.StatusOK, "exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customerService := new(MockCustomerService)
			customerService.
				On("Create", mock.Anything, &customers.CreateCustomerRequest{Phone: "+15550001", Name: "John Doe"}).
				Return(newTestCustomer(), tt.created, nil)

			handler := NewCustomerHandler(customerService, new(MockAppointmentService), new(MockDocumentService))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"phone": "+15550001", "name": "John Doe"}`))
			req.Header.Set("Content-Type", "application/json")

			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Create(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response CreatedResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, "CUST-1A2B3C4D", response.ID)
			assert.Equal(t, tt.expectedState, response.Status)
			customerService.AssertExpectations(t)
		})
	}
}

func TestCustomerHandler_Create_MissingPhone(t *testing.T) {
	handler := NewCustomerHandler(new(MockCustomerService), new(MockAppointmentService), new(MockDocumentService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"name": "John Doe"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_ListDocuments(t *testing.T) {
	documentService := new(MockDocumentService)
	documentService.On("ListForCustomer", mock.Anything, "CUST-1A2B3C4D").Return([]documents.CustomerDocument{
		{SubmissionID: "sub-1", Category: "invoices", Record: documents.FileRecord{OriginalName: "a.pdf", S3Key: "user_data/sub-1/invoices/x_a.pdf"}},
	}, nil)

	handler := NewCustomerHandler(new(MockCustomerService), new(MockAppointmentService), documentService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/customers/CUST-1A2B3C4D/documents", nil)
	c.Params = gin.Params{{Key: "id", Value: "CUST-1A2B3C4D"}}

	handler.ListDocuments(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"submission_id": "sub-1", "category": "invoices", "original_name": "a.pdf", "s3_key": "user_data/sub-1/invoices/x_a.pdf"}]`, w.Body.String())
}
