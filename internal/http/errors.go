package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jdih-api/internal/validation"
)

const (
	msgInvalidData        = "Data tidak valid"
	msgBadCredentials     = "Email atau password salah"
	msgServerError        = "Terjadi kesalahan server"
	msgUnauthenticated    = "Tidak terautentikasi"
	msgForbidden          = "Akses ditolak"
	msgDocumentNotFound   = "Dokumen tidak ditemukan"
	msgCategoryNotFound   = "Kategori tidak ditemukan"
	msgFileNotFound       = "File tidak ditemukan"
	msgStorageUnavailable = "Penyimpanan file tidak tersedia"
)

// respondValidation answers 400 with every violated field.
func (h *Handler) respondValidation(c *gin.Context, err error) {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		vErr = validation.FromDecode(err)
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   msgInvalidData,
		"details": vErr.Fields,
	})
}

// respondInternal logs err and answers 500 without exposing it.
func (h *Handler) respondInternal(c *gin.Context, err error, op string) {
	h.logger.WithError(err).WithFields(logrus.Fields{
		"op":     op,
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
}
