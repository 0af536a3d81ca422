//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/activities"
	"github.com/eskiturk2021/api-gateway/internal/domain/appointments"
	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/domain/customers"
	"github.com/eskiturk2021/api-gateway/internal/domain/dashboard"
	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
	"github.com/eskiturk2021/api-gateway/internal/domain/events"
	"github.com/eskiturk2021/api-gateway/internal/domain/messages"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/domain/users"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/cryptography"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/pdfinfo"
	"github.com/eskiturk2021/api-gateway/internal/infrastructure/persistence"
	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test settings shared by the service tests
const (
	TestBasePath     = "user_data/"
	TestPasswordSalt = "test-salt"
	TestBucket       = "gateway-test-bucket"
)

// TestAuthSettings returns token settings suitable for tests
func TestAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		APIKey:                 "test-api-key",
		JWTSecretKey:           "test-jwt-secret",
		JWTAlgorithm:           config.JWTAlgorithmHS256,
		TokenExpireMinutes:     30,
		RefreshTokenExpireDays: 7,
		PasswordSalt:           TestPasswordSalt,
		AdminDefaultPassword:   "admin",
	}
}

// MemoryBlobConnector keeps objects in memory
type MemoryBlobConnector struct {
	mu      sync.Mutex
	objects map[string]*memoryObject
	// FailUploads makes every upload whose key starts with the prefix fail
	FailUploads []string
}

type memoryObject struct {
	content      []byte
	contentType  string
	lastModified time.Time
}

// NewMemoryBlobConnector returns an empty MemoryBlobConnector
func NewMemoryBlobConnector() *MemoryBlobConnector {
	return &MemoryBlobConnector{objects: map[string]*memoryObject{}}
}

func (c *MemoryBlobConnector) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	for _, prefix := range c.FailUploads {
		if strings.HasPrefix(key, prefix) {
			return io.ErrClosedPipe
		}
	}
	content, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[key] = &memoryObject{content: content, contentType: contentType, lastModified: time.Now().UTC()}
	return nil
}

func (c *MemoryBlobConnector) Download(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	object, ok := c.objects[key]
	if !ok {
		return nil, blobs.ErrBlobNotFound
	}
	return bytes.Clone(object.content), nil
}

func (c *MemoryBlobConnector) Head(_ context.Context, key string) (*blobs.BlobObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	object, ok := c.objects[key]
	if !ok {
		return nil, blobs.ErrBlobNotFound
	}
	return &blobs.BlobObject{Key: key, Size: int64(len(object.content)), ContentType: object.contentType, LastModified: object.lastModified}, nil
}

func (c *MemoryBlobConnector) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, key)
	return nil
}

func (c *MemoryBlobConnector) List(_ context.Context, prefix string) ([]*blobs.BlobObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []*blobs.BlobObject
	for key, object := range c.objects {
		if strings.HasPrefix(key, prefix) {
			result = append(result, &blobs.BlobObject{Key: key, Size: int64(len(object.content)), ContentType: object.contentType, LastModified: object.lastModified})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (c *MemoryBlobConnector) PresignGetURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("%s?X-Amz-Expires=%d", c.PublicURL(key), int(expiry.Seconds())), nil
}

func (c *MemoryBlobConnector) PublicURL(key string) string {
	return "https://" + TestBucket + ".s3.amazonaws.com/" + key
}

func (c *MemoryBlobConnector) Ping(context.Context) error {
	return nil
}

// Put stores content directly, bypassing the services
func (c *MemoryBlobConnector) Put(key string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.objects[key] = &memoryObject{content: content, lastModified: time.Now().UTC()}
}

// Has reports whether key is stored
func (c *MemoryBlobConnector) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.objects[key]
	return ok
}

// RecordingPublisher collects published events
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Close() error {
	return nil
}

// Names returns the names of the published events in order
func (p *RecordingPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.events))
	for i, event := range p.events {
		names[i] = event.Name
	}
	return names
}

// Last returns the most recent event
func (p *RecordingPublisher) Last() events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return events.Event{}
	}
	return p.events[len(p.events)-1]
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService        users.AuthService
	CustomerService    customers.CustomerService
	AppointmentService appointments.AppointmentService
	DashboardService   dashboard.DashboardService
	DocumentService    documents.DocumentService
	SyncService        documents.SyncService
	SettingsService    settings.SettingsService
	ActivityService    activities.ActivityService
	MessageService     messages.MessageService

	// Infrastructure
	Hasher        users.PasswordHasher
	BlobConnector *MemoryBlobConnector
	Publisher     *RecordingPublisher
	DBContext     *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	blobConnector := NewMemoryBlobConnector()
	publisher := &RecordingPublisher{}

	hasher, err := cryptography.NewPasswordHasher(TestPasswordSalt, bcrypt.MinCost)
	require.NoError(t, err, "Failed to create password hasher")

	tokens, err := cryptography.NewTokenManager(TestAuthSettings())
	require.NoError(t, err, "Failed to create token manager")

	services := &TestServices{
		Hasher:        hasher,
		BlobConnector: blobConnector,
		Publisher:     publisher,
		DBContext:     dbContext,
	}

	services.AuthService, err = NewAuthService(dbContext.UserRepo, tokens, hasher, logger)
	require.NoError(t, err, "Failed to create AuthService")

	services.CustomerService, err = NewCustomerService(dbContext.CustomerRepo, dbContext.ActivityRepo, publisher, logger)
	require.NoError(t, err, "Failed to create CustomerService")

	services.AppointmentService, err = NewAppointmentService(
		dbContext.AppointmentRepo,
		dbContext.SlotRepo,
		dbContext.CustomerRepo,
		dbContext.ActivityRepo,
		publisher,
		logger,
	)
	require.NoError(t, err, "Failed to create AppointmentService")

	services.DashboardService, err = NewDashboardService(dbContext.CustomerRepo, dbContext.AppointmentRepo, dbContext.ActivityRepo, logger)
	require.NoError(t, err, "Failed to create DashboardService")

	services.DocumentService, err = NewDocumentService(
		blobConnector,
		dbContext.SubmissionRepo,
		dbContext.CustomerRepo,
		dbContext.ActivityRepo,
		pdfinfo.NewPageCounter(),
		publisher,
		DocumentServiceOptions{BasePath: TestBasePath, PresignExpiry: time.Hour},
		logger,
	)
	require.NoError(t, err, "Failed to create DocumentService")

	services.SyncService, err = NewSyncService(blobConnector, dbContext.SubmissionRepo, TestBasePath, logger)
	require.NoError(t, err, "Failed to create SyncService")

	services.SettingsService, err = NewSettingsService(blobConnector, dbContext.ServiceRepo, TestBasePath, logger)
	require.NoError(t, err, "Failed to create SettingsService")

	services.ActivityService, err = NewActivityService(dbContext.ActivityRepo, dbContext.CustomerRepo, logger)
	require.NoError(t, err, "Failed to create ActivityService")

	services.MessageService, err = NewMessageService(dbContext.MessageRepo, logger)
	require.NoError(t, err, "Failed to create MessageService")

	return services
}

// CreateTestCustomer registers a customer through the service
func CreateTestCustomer(t *testing.T, services *TestServices, phone, name string) *customers.Customer {
	t.Helper()

	customer, created, err := services.CustomerService.Create(context.Background(), &customers.CreateCustomerRequest{
		Phone:        phone,
		Name:         name,
		VehicleMake:  "Toyota",
		VehicleModel: "Corolla",
		VehicleYear:  "2019",
	})
	require.NoError(t, err)
	require.True(t, created)
	return customer
}

// FutureDate returns a date days from today as YYYY-MM-DD
func FutureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
