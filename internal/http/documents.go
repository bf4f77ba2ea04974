package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jdih-api/internal/domain"
	"jdih-api/internal/repository"
	"jdih-api/internal/service"
	"jdih-api/internal/validation"
)

// multipartOverhead leaves room for form boundaries around the file part.
const multipartOverhead = 1 << 20

func (h *Handler) listDocuments(c *gin.Context) {
	var page validation.PaginationRequest
	var query validation.QueryParams
	if err := c.ShouldBindQuery(&page); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(page); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(query); err != nil {
		h.respondValidation(c, err)
		return
	}

	var categoryID *int64
	if query.Category != "" {
		id, err := strconv.ParseInt(query.Category, 10, 64)
		if err != nil {
			h.respondValidation(c, validation.NewError("category", "Kategori tidak valid"))
			return
		}
		categoryID = &id
	}
	var docType *domain.DocumentType
	if query.Type != "" {
		t := domain.DocumentType(query.Type)
		docType = &t
	}

	var (
		docs []domain.Document
		err  error
	)
	if query.Search != "" {
		docs, err = h.documents.Search(c.Request.Context(), repository.DocumentSearch{
			Term:         query.Search,
			CategoryID:   categoryID,
			DocumentType: docType,
			Limit:        page.Limit,
			Offset:       page.Offset(),
		})
	} else {
		filter := repository.DocumentFilter{
			CategoryID:   categoryID,
			DocumentType: docType,
			Sort:         repository.DocumentSort(query.Sort),
			Limit:        page.Limit,
			Offset:       page.Offset(),
		}
		// only admins may list drafts and archived documents
		published := domain.DocumentStatusPublished
		switch {
		case !currentUser(c).IsAdmin():
			filter.Status = &published
		case query.Status != "":
			filter.Status = &query.Status
		}
		docs, err = h.documents.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.respondInternal(c, err, "list documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documentsToResponse(docs),
		"pagination": gin.H{
			"page":  page.Page,
			"limit": page.Limit,
		},
	})
}

func (h *Handler) searchDocuments(c *gin.Context) {
	var req validation.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}

	docs, err := h.documents.Search(c.Request.Context(), repository.DocumentSearch{
		Term:         req.Q,
		CategoryID:   req.CategoryID,
		DocumentType: req.DocumentType,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if err != nil {
		h.respondInternal(c, err, "search documents")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"documents": documentsToResponse(docs),
		"query":     req.Q,
	})
}

func (h *Handler) getDocument(c *gin.Context) {
	doc, ok := h.visibleDocument(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": documentToResponse(*doc, true)})
}

func (h *Handler) createDocument(c *gin.Context) {
	var req validation.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}

	user := currentUser(c)
	doc, err := h.documents.Create(c.Request.Context(), actorFor(c, user.ID), req.Document())
	if err != nil {
		h.respondDocumentError(c, err, "create document")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Dokumen berhasil dibuat",
		"document": documentToResponse(*doc, true),
	})
}

func (h *Handler) updateDocument(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req validation.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}

	user := currentUser(c)
	doc, err := h.documents.Update(c.Request.Context(), actorFor(c, user.ID), id, req.Patch())
	if err != nil {
		h.respondDocumentError(c, err, "update document")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Dokumen berhasil diperbarui",
		"document": documentToResponse(*doc, true),
	})
}

func (h *Handler) deleteDocument(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := h.documents.Delete(c.Request.Context(), actorFor(c, user.ID), id); err != nil {
		h.respondDocumentError(c, err, "delete document")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dokumen berhasil dihapus"})
}

func (h *Handler) uploadDocumentFile(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+multipartOverhead)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondValidation(c, validation.NewError("file", "Ukuran file terlalu besar"))
			return
		}
		h.respondValidation(c, validation.NewError("file", "File wajib diunggah"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondInternal(c, err, "open upload")
		return
	}
	defer file.Close()

	contentType, err := validation.CheckUpload(header.Size, file, h.maxUploadSize)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			h.respondValidation(c, vErr)
			return
		}
		h.respondInternal(c, err, "inspect upload")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.respondInternal(c, err, "rewind upload")
		return
	}

	user := currentUser(c)
	doc, err := h.documents.AttachFile(c.Request.Context(), actorFor(c, user.ID), id, service.FileUpload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		h.respondDocumentError(c, err, "attach document file")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "File berhasil diunggah",
		"document": documentToResponse(*doc, false),
	})
}

// downloadDocumentFile redirects to a short-lived storage URL.
func (h *Handler) downloadDocumentFile(c *gin.Context) {
	doc, ok := h.visibleDocument(c)
	if !ok {
		return
	}

	url, err := h.documents.FileURL(c.Request.Context(), doc)
	if err != nil {
		h.respondDocumentError(c, err, "presign document file")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// visibleDocument loads the :id document, hiding unpublished ones from
// everyone but admins.
func (h *Handler) visibleDocument(c *gin.Context) (*domain.Document, bool) {
	id, ok := h.bindID(c)
	if !ok {
		return nil, false
	}
	doc, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		h.respondDocumentError(c, err, "get document")
		return nil, false
	}
	if !doc.IsPublished() && !currentUser(c).IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{"error": msgDocumentNotFound})
		return nil, false
	}
	return doc, true
}

func (h *Handler) bindID(c *gin.Context) (int64, bool) {
	var param validation.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		h.respondValidation(c, err)
		return 0, false
	}
	id, err := param.Int64()
	if err != nil {
		h.respondValidation(c, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondDocumentError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgDocumentNotFound})
	case errors.Is(err, service.ErrCategoryNotFound):
		h.respondValidation(c, validation.NewError("category_id", msgCategoryNotFound))
	case errors.Is(err, service.ErrNoFile):
		c.JSON(http.StatusNotFound, gin.H{"error": msgFileNotFound})
	case errors.Is(err, service.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgStorageUnavailable})
	default:
		h.respondInternal(c, err, op)
	}
}
