package http

import (
	"encoding/json"
	"time"

	"jdih-api/internal/domain"
)

type userResponse struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

type DocumentResponse struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Description    *string               `json:"description"`
	Content        *string               `json:"content,omitempty"`
	FileName       *string               `json:"file_name"`
	FileSize       *int64                `json:"file_size"`
	HasFile        bool                  `json:"has_file"`
	CategoryID     int64                 `json:"category_id"`
	CategoryName   *string               `json:"category_name"`
	DocumentNumber *string               `json:"document_number"`
	DocumentType   domain.DocumentType   `json:"document_type"`
	Status         domain.DocumentStatus `json:"status"`
	PublishedAt    *string               `json:"published_at"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

type AuditEntryResponse struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Action    domain.AuditAction `json:"action"`
	TableName string             `json:"table_name"`
	RecordID  *int64             `json:"record_id"`
	OldValues json.RawMessage    `json:"old_values,omitempty"`
	NewValues json.RawMessage    `json:"new_values,omitempty"`
	IPAddress *string            `json:"ip_address"`
	UserAgent *string            `json:"user_agent"`
	CreatedAt string             `json:"created_at"`
}

func userToResponse(user *domain.User) userResponse {
	if user == nil {
		return userResponse{}
	}
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func categoryToResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
	}
}

// documentToResponse omits the storage key. Content is only included in
// single document responses.
func documentToResponse(doc domain.Document, withContent bool) DocumentResponse {
	resp := DocumentResponse{
		ID:             doc.ID,
		Title:          doc.Title,
		Description:    doc.Description,
		FileName:       doc.FileName,
		FileSize:       doc.FileSize,
		HasFile:        doc.FilePath != nil && *doc.FilePath != "",
		CategoryID:     doc.CategoryID,
		CategoryName:   doc.CategoryName,
		DocumentNumber: doc.DocumentNumber,
		DocumentType:   doc.DocumentType,
		Status:         doc.Status,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      doc.UpdatedAt.Format(time.RFC3339),
	}
	if withContent {
		resp.Content = doc.Content
	}
	if doc.PublishedAt != nil {
		v := doc.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	return resp
}

func documentsToResponse(docs []domain.Document) []DocumentResponse {
	resp := make([]DocumentResponse, len(docs))
	for i := range docs {
		resp[i] = documentToResponse(docs[i], false)
	}
	return resp
}

func auditEntryToResponse(entry domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		TableName: entry.TableName,
		RecordID:  entry.RecordID,
		OldValues: entry.OldValues,
		NewValues: entry.NewValues,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
