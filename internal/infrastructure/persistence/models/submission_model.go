package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/documents"
)

// SubmissionModel is the GORM database model for user submissions.
// List and map columns are stored as JSON text.
type SubmissionModel struct {
	ID             int64                  `gorm:"primaryKey;autoIncrement"`
	SubmissionID   string                 `gorm:"uniqueIndex;size:100;not null"`
	CompanyName    string                 `gorm:"size:255"`
	Email          string                 `gorm:"size:255"`
	Phone          string                 `gorm:"index;size:30"`
	City           string                 `gorm:"size:100"`
	BusinessType   string                 `gorm:"size:100"`
	DocumentNames  []string               `gorm:"serializer:json;type:text"`
	FileLinks      documents.FileLinks    `gorm:"column:s3_file_links;serializer:json;type:text"`
	SubmissionData map[string]interface{} `gorm:"serializer:json;type:text"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SubmissionModel) TableName() string {
	return "user_submissions"
}

// ToDomain converts GORM model to domain entity
func (m *SubmissionModel) ToDomain() *documents.Submission {
	submission := &documents.Submission{
		ID:             m.ID,
		SubmissionID:   m.SubmissionID,
		CompanyName:    m.CompanyName,
		Email:          m.Email,
		Phone:          m.Phone,
		City:           m.City,
		BusinessType:   m.BusinessType,
		DocumentNames:  m.DocumentNames,
		FileLinks:      m.FileLinks,
		SubmissionData: m.SubmissionData,
		CreatedAt:      m.CreatedAt,
	}
	if submission.FileLinks == nil {
		submission.FileLinks = documents.FileLinks{}
	}
	if submission.DocumentNames == nil {
		submission.DocumentNames = []string{}
	}
	return submission
}

// FromDomain converts domain entity to GORM model
func (m *SubmissionModel) FromDomain(s *documents.Submission) {
	m.ID = s.ID
	m.SubmissionID = s.SubmissionID
	m.CompanyName = s.CompanyName
	m.Email = s.Email
	m.Phone = s.Phone
	m.City = s.City
	m.BusinessType = s.BusinessType
	m.DocumentNames = s.DocumentNames
	m.FileLinks = s.FileLinks
	m.SubmissionData = s.SubmissionData
	m.CreatedAt = s.CreatedAt
}
