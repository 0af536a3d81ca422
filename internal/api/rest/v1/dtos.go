package v1

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
)

// StatusResponse acknowledges a request
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CreatedResponse is returned when a resource has been created
type CreatedResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pagination describes the page of a listing
type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// System

// RootResponse identifies the gateway
type RootResponse struct {
	AppName     string `json:"app_name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// HealthResponse reports the state of the gateway dependencies
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	S3        string    `json:"s3"`
	Timestamp time.Time `json:"timestamp"`
}

// Auth

// LoginRequest is accepted as JSON or form data
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// MeResponse describes the authenticated user
type MeResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ChangePasswordRequest carries the current and the new password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Customers

// CustomerSummaryResponse is one row of the customer listing
type CustomerSummaryResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	VehicleMake  string     `json:"vehicle_make"`
	VehicleModel string     `json:"vehicle_model"`
	LastVisit    *time.Time `json:"last_visit"`
}

// CustomerListResponse is a page of customers
type CustomerListResponse struct {
	Customers  []CustomerSummaryResponse `json:"customers"`
	Pagination Pagination                `json:"pagination"`
}

// VehicleResponse describes a customer's vehicle
type VehicleResponse struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

// CustomerDetailResponse is a customer with its recent appointments
type CustomerDetailResponse struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Phone              string                `json:"phone"`
	Vehicle            VehicleResponse       `json:"vehicle"`
	TotalVisits        int                   `json:"total_visits"`
	LastVisit          *time.Time            `json:"last_visit"`
	CreatedAt          time.Time             `json:"created_at"`
	RecentAppointments []AppointmentResponse `json:"recent_appointments"`
}

// CreateCustomerRequest registers a customer
type CreateCustomerRequest struct {
	Phone        string `json:"phone" binding:"required"`
	Name         string `json:"name"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  string `json:"vehicle_year"`
}

// Appointments

// AppointmentResponse describes an appointment
type AppointmentResponse struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	Vehicle         VehicleResponse `json:"vehicle"`
	ServiceType     string          `json:"service_type"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	EstimatedCost   *float64        `json:"estimated_cost"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateAppointmentRequest books an appointment
type CreateAppointmentRequest struct {
	CustomerID      string   `json:"customer_id" binding:"required"`
	ServiceType     string   `json:"service_type" binding:"required"`
	AppointmentDate string   `json:"appointment_date" binding:"required"`
	AppointmentTime string   `json:"appointment_time" binding:"required"`
	Notes           string   `json:"notes"`
	EstimatedCost   *float64 `json:"estimated_cost"`
}

// UpdateAppointmentRequest is a partial appointment update
type UpdateAppointmentRequest struct {
	ServiceType     *string  `json:"service_type"`
	AppointmentDate *string  `json:"appointment_date"`
	AppointmentTime *string  `json:"appointment_time"`
	Status          *string  `json:"status"`
	Notes           *string  `json:"notes"`
	EstimatedCost   *float64 `json:"estimated_cost"`
}

// CalendarEventResponse is an appointment rendered for a calendar widget
type CalendarEventResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Customer string `json:"customer"`
	Service  string `json:"service"`
	Status   string `json:"status"`
}

// SlotResponse is one entry of the daily slot grid
type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

// Dashboard

// TrendResponse is the change indicator of a statistic
type TrendResponse struct {
	Direction string `json:"direction"`
	Value     int    `json:"value"`
}

// StatsResponse carries the headline numbers of the dashboard
type StatsResponse struct {
	TotalCustomers               int64         `json:"totalCustomers"`
	NewCustomers                 int64         `json:"newCustomers"`
	ReturningCustomersPercentage string        `json:"returningCustomersPercentage"`
	ScheduledAppointments        int64         `json:"scheduledAppointments"`
	TotalCustomersTrend          TrendResponse `json:"totalCustomersTrend"`
	NewCustomersTrend            TrendResponse `json:"newCustomersTrend"`
	ReturningCustomersTrend      TrendResponse `json:"returningCustomersTrend"`
	ScheduledAppointmentsTrend   TrendResponse `json:"scheduledAppointmentsTrend"`
}

// ChartPointResponse is one bar of the revenue chart
type ChartPointResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// RevenueResponse is the revenue of a period
type RevenueResponse struct {
	Period       string               `json:"period"`
	TotalRevenue float64              `json:"total_revenue"`
	ChartData    []ChartPointResponse `json:"chart_data"`
}

// Activity

// SystemCustomerName is shown for activities without a customer
const SystemCustomerName = "System"

// ActivityResponse is one entry of the activity feed
type ActivityResponse struct {
	ID           int64     `json:"id"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	CustomerID   string    `json:"customer_id,omitempty"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentActivityResponse wraps the dashboard activity feed
type RecentActivityResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
}

// LogActivityRequest records an activity
type LogActivityRequest struct {
	CustomerID string `json:"customer_id"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

// LogActivityResponse acknowledges a logged activity
type LogActivityResponse struct {
	Status  string `json:"status"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// Documents

// FileInfoResponse describes a stored upload
type FileInfoResponse struct {
	Filename     string `json:"filename"`
	S3Key        string `json:"s3_key"`
	SubmissionID string `json:"submission_id"`
	Category     string `json:"category"`
}

// UploadResponse acknowledges a document upload
type UploadResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	FileInfo FileInfoResponse `json:"file_info"`
}

// DocumentInfoResponse is document metadata with a presigned download link
type DocumentInfoResponse struct {
	Filename      string    `json:"filename"`
	S3Key         string    `json:"s3_key"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	DownloadURL   string    `json:"download_url"`
	LastModified  time.Time `json:"last_modified"`
}

// SearchResultResponse is a document matching a search
type SearchResultResponse struct {
	SubmissionID string `json:"submission_id"`
	CompanyName  string `json:"company_name"`
	Category     string `json:"category"`
	Filename     string `json:"filename"`
	S3Key        string `json:"s3_key"`
	UploadedAt   string `json:"uploaded_at"`
}

// SearchResponse wraps document search results
type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []SearchResultResponse `json:"results"`
	Total   int                    `json:"total"`
}

// CustomerDocumentResponse is a file record together with its submission and category
type CustomerDocumentResponse struct {
	SubmissionID string `json:"submission_id"`
	Category     string `json:"category"`
	documents.FileRecord
}

// SyncResponse reports a storage synchronisation
type SyncResponse struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	FileCount  int      `json:"file_count"`
	Categories []string `json:"categories"`
}

// VersionsResponse is the version history of a document
type VersionsResponse struct {
	Status         string                 `json:"status"`
	Filename       string                 `json:"filename"`
	CurrentVersion string                 `json:"current_version"`
	Versions       []documents.FileRecord `json:"versions"`
	VersionCount   int                    `json:"version_count"`
}

// Settings

// PromptResponse carries the assistant prompt
type PromptResponse struct {
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdatePromptRequest replaces the assistant prompt
type UpdatePromptRequest struct {
	Content string `json:"content"`
}

// ServiceResponse describes a service offering
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Active      bool    `json:"active"`
}

// CreateServiceRequest adds a service offering
type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// UpdateServiceRequest is a partial service offering update
type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Active      *bool    `json:"active"`
}

// CreatedServiceResponse identifies a new service offering
type CreatedServiceResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Messages

// MessageResponse is one conversation entry
type MessageResponse struct {
	ID          int64     `json:"id"`
	PhoneID     string    `json:"phone_id"`
	Phone       string    `json:"phone"`
	MessageType string    `json:"message_type"`
	MessageText string    `json:"message_text"`
	ThreadID    string    `json:"thread_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMessageRequest records a conversation entry
type CreateMessageRequest struct {
	Phone       string `json:"phone" binding:"required"`
	MessageType string `json:"message_type" binding:"required"`
	MessageText string `json:"message_text" binding:"required"`
	ThreadID    string `json:"thread_id"`
	PhoneID     string `json:"phone_id"`
}

// Mapping

func toVehicleResponse(vehicleMake, model, year string) VehicleResponse {
	return VehicleResponse{Make: vehicleMake, Model: model, Year: year}
}

func toCustomerSummary(customer *customers.Customer) CustomerSummaryResponse {
	return CustomerSummaryResponse{
		ID:           customer.CustomerID,
		Name:         customer.Name,
		Phone:        customer.Phone,
		VehicleMake:  customer.VehicleMake,
		VehicleModel: customer.VehicleModel,
		LastVisit:    customer.LastVisit,
	}
}

func toAppointmentResponse(appointment *appointments.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              appointment.AppointmentID,
		CustomerName:    appointment.CustomerName,
		CustomerPhone:   appointment.CustomerPhone,
		Vehicle:         toVehicleResponse(appointment.VehicleMake, appointment.VehicleModel, appointment.VehicleYear),
		ServiceType:     appointment.ServiceType,
		AppointmentDate: appointment.Date,
		AppointmentTime: appointment.Time,
		EstimatedCost:   appointment.EstimatedCost,
		Notes:           appointment.Notes,
		Status:          appointment.Status,
		CreatedAt:       appointment.CreatedAt,
	}
}

func toAppointmentResponses(list []*appointments.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, appointment := range list {
		result = append(result, toAppointmentResponse(appointment))
	}
	return result
}

// calendarLayout is the local date-time format of calendar entries
const calendarLayout = "2006-01-02T15:04:05"

func toCalendarEvent(appointment *appointments.Appointment) (CalendarEventResponse, error) {
	start, err := appointment.Start(time.UTC)
	if err != nil {
		return CalendarEventResponse{}, err
	}
	return CalendarEventResponse{
		ID:       appointment.AppointmentID,
		Title:    appointment.ServiceType + " - " + appointment.CustomerName,
		Start:    start.Format(calendarLayout),
		End:      start.Add(appointments.DefaultDuration).Format(calendarLayout),
		Customer: appointment.CustomerName,
		Service:  appointment.ServiceType,
		Status:   appointment.Status,
	}, nil
}

func toTrendResponse(trend dashboard.Trend) TrendResponse {
	return TrendResponse{Direction: trend.Direction, Value: trend.Value}
}

func toActivityResponses(list []*activities.Activity) []ActivityResponse {
	result := make([]ActivityResponse, 0, len(list))
	for _, activity := range list {
		result = append(result, toActivityResponse(activity))
	}
	return result
}

func toActivityResponse(activity *activities.Activity) ActivityResponse {
	name := activity.CustomerName
	if activity.CustomerID == nil {
		name = SystemCustomerName
	}
	return ActivityResponse{
		ID:           activity.ID,
		Message:      activity.Message,
		Type:         activity.Type,
		CustomerID:   activity.CustomerRef,
		CustomerName: name,
		CreatedAt:    activity.CreatedAt,
	}
}

func toServiceResponse(service *settings.ServiceOffering) ServiceResponse {
	return ServiceResponse{
		ID:          service.ServiceID,
		Name:        service.Name,
		Description: service.Description,
		Duration:    service.Duration,
		Price:       service.Price,
		Category:    service.Category,
		Active:      service.Active,
	}
}

func toMessageResponses(list []*messages.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(list))
	for _, message := range list {
		result = append(result, MessageResponse{
			ID:          message.ID,
			PhoneID:     message.PhoneID,
			Phone:       message.Phone,
			MessageType: message.MessageType,
			MessageText: message.MessageText,
			ThreadID:    message.ThreadID,
			CreatedAt:   message.CreatedAt,
		})
	}
	return result
}
