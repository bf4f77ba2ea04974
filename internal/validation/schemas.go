package validation

import (
	"strconv"
	"time"

	"jdih-api/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" message:"Email tidak valid"`
	Password string `json:"password" validate:"min=6" message:"Password minimal 6 karakter"`
}

type RegisterRequest struct {
	Name     string      `json:"name" validate:"min=2" message:"Nama minimal 2 karakter"`
	Email    string      `json:"email" validate:"required,email" message:"Email tidak valid"`
	Password string      `json:"password" validate:"min=6" message:"Password minimal 6 karakter"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin user" message:"Role tidak valid"`
}

type DocumentRequest struct {
	Title          string                `json:"title" validate:"required,max=500" message_required:"Judul dokumen wajib diisi" message_max:"Judul terlalu panjang"`
	Description    *string               `json:"description"`
	Content        *string               `json:"content"`
	CategoryID     int64                 `json:"category_id" validate:"gt=0" message:"Kategori wajib dipilih"`
	DocumentNumber *string               `json:"document_number"`
	DocumentType   domain.DocumentType   `json:"document_type" validate:"omitempty,oneof=undang-undang peraturan-pemerintah peraturan-presiden peraturan-menteri keputusan instruksi surat-edaran lainnya" message:"Jenis dokumen tidak valid"`
	Status         domain.DocumentStatus `json:"status" validate:"omitempty,oneof=draft published archived" message:"Status dokumen tidak valid"`
	PublishedAt    *time.Time            `json:"published_at"`
}

// Document returns the document described by the request with defaults
// applied for type and status.
func (r DocumentRequest) Document() domain.Document {
	doc := domain.Document{
		Title:          r.Title,
		Description:    r.Description,
		Content:        r.Content,
		CategoryID:     r.CategoryID,
		DocumentNumber: r.DocumentNumber,
		DocumentType:   r.DocumentType,
		Status:         r.Status,
		PublishedAt:    r.PublishedAt,
	}
	if doc.DocumentType == "" {
		doc.DocumentType = domain.DocumentTypeLainnya
	}
	if doc.Status == "" {
		doc.Status = domain.DocumentStatusDraft
	}
	return doc
}

// DocumentUpdateRequest is the partial form of DocumentRequest.
type DocumentUpdateRequest struct {
	Title          *string                `json:"title" validate:"omitempty,min=1,max=500" message_min:"Judul dokumen wajib diisi" message_max:"Judul terlalu panjang"`
	Description    *string                `json:"description"`
	Content        *string                `json:"content"`
	CategoryID     *int64                 `json:"category_id" validate:"omitempty,gt=0" message:"Kategori wajib dipilih"`
	DocumentNumber *string                `json:"document_number"`
	DocumentType   *domain.DocumentType   `json:"document_type" validate:"omitempty,oneof=undang-undang peraturan-pemerintah peraturan-presiden peraturan-menteri keputusan instruksi surat-edaran lainnya" message:"Jenis dokumen tidak valid"`
	Status         *domain.DocumentStatus `json:"status" validate:"omitempty,oneof=draft published archived" message:"Status dokumen tidak valid"`
	PublishedAt    *time.Time             `json:"published_at"`
}

func (r DocumentUpdateRequest) Patch() domain.DocumentPatch {
	return domain.DocumentPatch{
		Title:          r.Title,
		Description:    r.Description,
		Content:        r.Content,
		CategoryID:     r.CategoryID,
		DocumentNumber: r.DocumentNumber,
		DocumentType:   r.DocumentType,
		Status:         r.Status,
		PublishedAt:    r.PublishedAt,
	}
}

type SearchRequest struct {
	Q            string               `form:"q" validate:"required" message:"Kata kunci pencarian wajib diisi"`
	CategoryID   *int64               `form:"category_id" validate:"omitempty,gt=0" message:"Kategori tidak valid"`
	DocumentType *domain.DocumentType `form:"document_type" validate:"omitempty,oneof=undang-undang peraturan-pemerintah peraturan-presiden peraturan-menteri keputusan instruksi surat-edaran lainnya" message:"Jenis dokumen tidak valid"`
	Limit        int                  `form:"limit,default=20" validate:"min=1,max=100" message:"Limit harus antara 1 dan 100"`
	Offset       int                  `form:"offset,default=0" validate:"min=0" message:"Offset tidak boleh negatif"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255" message_required:"Nama kategori wajib diisi" message_max:"Nama kategori terlalu panjang"`
	Description *string `json:"description"`
}

type PaginationRequest struct {
	Page  int `form:"page,default=1" validate:"min=1" message:"Halaman minimal 1"`
	Limit int `form:"limit,default=20" validate:"min=1,max=100" message:"Limit harus antara 1 dan 100"`
}

// Offset converts the page number into a row offset.
func (p PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type IDParam struct {
	ID string `uri:"id" validate:"required,digits" message:"ID harus berupa angka"`
}

// Int64 validates the raw parameter and converts it.
func (p IDParam) Int64() (int64, error) {
	if err := Struct(p); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return 0, NewError("id", "ID harus berupa angka")
	}
	return id, nil
}

type QueryParams struct {
	Search   string                `form:"search"`
	Category string                `form:"category" validate:"omitempty,digits" message:"Kategori tidak valid"`
	Type     string                `form:"type" validate:"omitempty,oneof=undang-undang peraturan-pemerintah peraturan-presiden peraturan-menteri keputusan instruksi surat-edaran lainnya" message:"Jenis dokumen tidak valid"`
	Status   domain.DocumentStatus `form:"status" validate:"omitempty,oneof=draft published archived" message:"Status dokumen tidak valid"`
	Sort     string                `form:"sort,default=newest" validate:"oneof=newest oldest title_asc title_desc" message:"Urutan tidak valid"`
}

type AuditLogQuery struct {
	Table    string `form:"table" validate:"oneof=users documents categories" message:"Tabel tidak valid"`
	RecordID string `form:"record_id" validate:"required,digits" message:"ID harus berupa angka"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=100" message:"Limit harus antara 1 dan 100"`
}
