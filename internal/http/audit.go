package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jdih-api/internal/validation"
)

func (h *Handler) listAuditLogs(c *gin.Context) {
	var req validation.AuditLogQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}
	recordID, err := strconv.ParseInt(req.RecordID, 10, 64)
	if err != nil {
		h.respondValidation(c, validation.NewError("record_id", "ID harus berupa angka"))
		return
	}

	entries, err := h.audit.ListByRecord(c.Request.Context(), req.Table, recordID, req.Limit)
	if err != nil {
		h.respondInternal(c, err, "list audit logs")
		return
	}

	resp := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		resp[i] = auditEntryToResponse(entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"logs": resp})
}
