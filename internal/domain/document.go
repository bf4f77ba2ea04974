package domain

import "time"

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPublished DocumentStatus = "published"
	DocumentStatusArchived  DocumentStatus = "archived"
)

type DocumentType string

const (
	DocumentTypeUndangUndang        DocumentType = "undang-undang"
	DocumentTypePeraturanPemerintah DocumentType = "peraturan-pemerintah"
	DocumentTypePeraturanPresiden   DocumentType = "peraturan-presiden"
	DocumentTypePeraturanMenteri    DocumentType = "peraturan-menteri"
	DocumentTypeKeputusan           DocumentType = "keputusan"
	DocumentTypeInstruksi           DocumentType = "instruksi"
	DocumentTypeSuratEdaran         DocumentType = "surat-edaran"
	DocumentTypeLainnya             DocumentType = "lainnya"
)

// Document is a legal document tracked by the repository.
type Document struct {
	ID             int64
	Title          string
	Description    *string
	Content        *string
	FilePath       *string
	FileName       *string
	FileSize       *int64
	CategoryID     int64
	CategoryName   *string
	DocumentNumber *string
	DocumentType   DocumentType
	Status         DocumentStatus
	PublishedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPublished reports whether the document is visible to anonymous readers.
func (d *Document) IsPublished() bool {
	return d.Status == DocumentStatusPublished
}

// DocumentPatch carries a partial document update. Nil fields are left untouched.
type DocumentPatch struct {
	Title          *string
	Description    *string
	Content        *string
	CategoryID     *int64
	DocumentNumber *string
	DocumentType   *DocumentType
	Status         *DocumentStatus
	PublishedAt    *time.Time
}

// Apply returns a copy of doc with the patch applied.
func (p DocumentPatch) Apply(doc Document) Document {
	if p.Title != nil {
		doc.Title = *p.Title
	}
	if p.Description != nil {
		doc.Description = p.Description
	}
	if p.Content != nil {
		doc.Content = p.Content
	}
	if p.CategoryID != nil {
		doc.CategoryID = *p.CategoryID
	}
	if p.DocumentNumber != nil {
		doc.DocumentNumber = p.DocumentNumber
	}
	if p.DocumentType != nil {
		doc.DocumentType = *p.DocumentType
	}
	if p.Status != nil {
		doc.Status = *p.Status
	}
	if p.PublishedAt != nil {
		doc.PublishedAt = p.PublishedAt
	}
	return doc
}
