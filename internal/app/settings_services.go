package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eskiturk2021/api-gateway/internal/domain/blobs"
	"github.com/eskiturk2021/api-gateway/internal/domain/settings"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"
)

// Object keys of the assistant settings. The JSON document lives at the bucket
// root, the prompt text below the base path next to the assistant responses.
const (
	SettingsObjectKey     = "system_settings/config.json"
	PromptObjectKeySuffix = "9ba1beaf-09e6-4c72-b4cb-dae476404178/assistant_responses/system_prompt.txt"
	settingsContentType   = "application/json"
	promptTextContentType = "text/plain; charset=utf-8"
)

// settingsService implements the SettingsService interface
type settingsService struct {
	blobConnector blobs.BlobConnector
	serviceRepo   settings.ServiceRepository
	basePath      string
	logger        logger.Logger
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(blobConnector blobs.BlobConnector, serviceRepo settings.ServiceRepository, basePath string, logger logger.Logger) (settings.SettingsService, error) {
	return &settingsService{
		blobConnector: blobConnector,
		serviceRepo:   serviceRepo,
		basePath:      basePath,
		logger:        logger,
	}, nil
}

func (s *settingsService) promptKey() string {
	return s.basePath + PromptObjectKeySuffix
}

// loadSettings reads the JSON document, falling back to defaults when it is absent or unreadable
func (s *settingsService) loadSettings(ctx context.Context) settings.SystemSettings {
	current := settings.DefaultSystemSettings()

	content, err := s.blobConnector.Download(ctx, SettingsObjectKey)
	if err != nil {
		if !errors.Is(err, blobs.ErrBlobNotFound) {
			s.logger.Warn("Failed to read system settings, using defaults: ", err)
		}
		return current
	}

	if err := json.Unmarshal(content, &current); err != nil {
		s.logger.Warn("Stored system settings are not valid JSON, using defaults: ", err)
		return settings.DefaultSystemSettings()
	}
	return current
}

func (s *settingsService) saveSettings(ctx context.Context, current settings.SystemSettings) error {
	content, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode system settings: %w", err)
	}
	return s.blobConnector.Upload(ctx, SettingsObjectKey, bytes.NewReader(content), int64(len(content)), settingsContentType)
}

func (s *settingsService) GetSystemSettings(ctx context.Context) (*settings.SystemSettings, error) {
	current := s.loadSettings(ctx)

	if prompt, err := s.readPrompt(ctx); err == nil {
		current.SystemPrompt = prompt
	}
	return &current, nil
}

func (s *settingsService) readPrompt(ctx context.Context) (string, error) {
	content, err := s.blobConnector.Download(ctx, s.promptKey())
	if err != nil {
		if !errors.Is(err, blobs.ErrBlobNotFound) {
			s.logger.Warn("Failed to read system prompt: ", err)
		}
		return "", err
	}
	return string(content), nil
}

func (s *settingsService) GetPrompt(ctx context.Context) (string, error) {
	current, err := s.GetSystemSettings(ctx)
	if err != nil {
		return "", err
	}
	return current.SystemPrompt, nil
}

func (s *settingsService) UpdatePrompt(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return settings.ErrEmptyPrompt
	}

	textErr := s.blobConnector.Upload(ctx, s.promptKey(), strings.NewReader(content), int64(len(content)), promptTextContentType)
	if textErr != nil {
		s.logger.Warn("Failed to store prompt text: ", textErr)
	}

	current := s.loadSettings(ctx)
	current.SystemPrompt = content
	jsonErr := s.saveSettings(ctx, current)
	if jsonErr != nil {
		s.logger.Warn("Failed to store prompt in system settings: ", jsonErr)
	}

	if textErr != nil && jsonErr != nil {
		return fmt.Errorf("%w: %w", settings.ErrSettingsNotSaved, errors.Join(textErr, jsonErr))
	}

	s.logger.Info("System prompt updated")
	return nil
}

func (s *settingsService) ListServices(ctx context.Context) ([]*settings.ServiceOffering, error) {
	return s.serviceRepo.ListActive(ctx)
}

func (s *settingsService) CreateService(ctx context.Context, req *settings.CreateServiceRequest) (*settings.ServiceOffering, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	category := req.Category
	if category == "" {
		category = settings.DefaultServiceCategory
	}

	service := &settings.ServiceOffering{
		ServiceID:   settings.NewServiceID(),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    category,
		Active:      true,
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.logger.Info("Created service offering ", service.ServiceID)
	return service, nil
}

func (s *settingsService) UpdateService(ctx context.Context, serviceID string, req *settings.UpdateServiceRequest) (*settings.ServiceOffering, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	service, err := s.serviceRepo.GetByServiceID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	req.Apply(service)
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *settingsService) DeleteService(ctx context.Context, serviceID string) error {
	service, err := s.serviceRepo.GetByServiceID(ctx, serviceID)
	if err != nil {
		return err
	}

	service.Active = false
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return err
	}

	s.logger.Info("Deactivated service offering ", service.ServiceID)
	return nil
}

func (s *settingsService) GetWorkingHours(ctx context.Context) (*settings.WorkingHours, error) {
	current := s.loadSettings(ctx)
	return &current.WorkingHours, nil
}

func (s *settingsService) UpdateWorkingHours(ctx context.Context, hours *settings.WorkingHours) error {
	if err := hours.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	current := s.loadSettings(ctx)
	current.WorkingHours = *hours
	if err := s.saveSettings(ctx, current); err != nil {
		return fmt.Errorf("%w: %w", settings.ErrSettingsNotSaved, err)
	}

	s.logger.Info("Working hours updated")
	return nil
}
