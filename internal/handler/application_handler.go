package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/utkarshshahi0/crud-assesment/internal/domain/application"
	"github.com/utkarshshahi0/crud-assesment/internal/export"
	"github.com/utkarshshahi0/crud-assesment/internal/services"
	"github.com/utkarshshahi0/crud-assesment/internal/transport/httpdto"
	crud_errors "github.com/utkarshshahi0/crud-assesment/pkg/errors"
	"github.com/utkarshshahi0/crud-assesment/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

type ApplicationHandler struct {
	service *services.ApplicationService
	uploads *services.UploadService
	logger  *logger.Logger
}

func NewApplicationHandler(service *services.ApplicationService, uploads *services.UploadService, l *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, uploads: uploads, logger: l}
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var form httpdto.CreateApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
		return
	}

	amount, err := strconv.ParseFloat(form.ApplicationAmount, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("applicationAmount must be a non-negative number", "INVALID_REQUEST"))
		return
	}

	picture, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("profilePicture file is required", "INVALID_REQUEST"))
		return
	}
	sheet, err := c.FormFile("markSheet")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("markSheet file is required", "INVALID_REQUEST"))
		return
	}

	// Blobs are written before the record is persisted; a failed persist
	// leaves the files behind.
	picturePath, err := h.uploads.StoreAttachment(c.Request.Context(), "profilePicture", picture)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sheetPath, err := h.uploads.StoreAttachment(c.Request.Context(), "markSheet", sheet)
	if err != nil {
		h.respondError(c, err)
		return
	}

	rec, err := h.service.Submit(c.Request.Context(), services.SubmitInput{
		Name:              form.Name,
		Mobile:            form.Mobile,
		Email:             form.Email,
		Gender:            form.Gender,
		ApplicationAmount: amount,
		ProfilePicture:    picturePath,
		MarkSheet:         sheetPath,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if records == nil {
		records = []application.Application{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid application id", "INVALID_REQUEST"))
		return
	}

	var fields application.UpdateFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	rec, err := h.service.Modify(c.Request.Context(), id, fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid application id", "INVALID_REQUEST"))
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Application removed"})
}

func (h *ApplicationHandler) DownloadExcel(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	buf, err := export.ToSpreadsheet(records)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=applications.xlsx")
	c.Data(http.StatusOK, excelContentType, buf)
}

func (h *ApplicationHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid application id", "INVALID_REQUEST"))
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	buf, err := export.ToPrintableDocument(rec)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=application.pdf")
	c.Data(http.StatusOK, pdfContentType, buf)
}

// respondError maps service errors onto the HTTP surface: NotFound -> 404,
// validation -> 400, anything else -> opaque 500 with the detail logged.
func (h *ApplicationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, crud_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Application not found"})
	case errors.Is(err, crud_errors.ErrInvalidInput), errors.Is(err, crud_errors.ErrNotUploaded):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
	default:
		if h.logger != nil {
			h.logger.ErrorfCtx(c.Request.Context(), "request failed: %s", err.Error())
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("Server error", "INTERNAL_ERROR"))
	}
}
