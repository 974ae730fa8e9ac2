package handler

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"io"
	"meeting-summarizer/dto"
	"meeting-summarizer/service"
	"mime/multipart"
	"net/http"
)

// Multipart field names accepted for the recording, in order of preference.
var audioFields = []string{"audio", "file"}

// multipart framing on top of the largest accepted file
const formOverhead = 1 << 20

type Handler struct {
	svc            service.Service
	maxUploadBytes int64
}

// NewHandler wires the HTTP endpoints to svc. A positive maxUploadBytes caps the
// request body before it is parsed.
func NewHandler(svc service.Service, maxUploadBytes int64) *Handler {
	return &Handler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) Register(r gin.IRouter, middleware ...gin.HandlerFunc) {
	api := r.Group("/api", middleware...)
	api.POST("/upload", h.Upload)
	api.GET("/summaries", h.List)
	api.GET("/summaries/:id", h.Get)
}

func (h *Handler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverhead)
	}

	upload, err := readUpload(c)
	if err != nil {
		fail(c, err)
		return
	}

	zerolog.Ctx(ctx).Info().
		Str("file_name", upload.FileName).
		Str("content_type", upload.ContentType).
		Int("size_bytes", len(upload.Data)).
		Msg("received upload")

	// a client that goes away does not abort a run already in progress
	resp, err := h.svc.Process(context.WithoutCancel(ctx), OwnerID(c), upload)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func readUpload(c *gin.Context) (*dto.AudioUpload, error) {
	var (
		header *multipart.FileHeader
		err    error
	)
	for _, field := range audioFields {
		header, err = c.FormFile(field)
		if err == nil {
			break
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: request body exceeds %d bytes", service.ErrInvalidUpload, tooLarge.Limit)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: no audio file provided", service.ErrInvalidUpload)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", service.ErrInvalidUpload, header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %w", service.ErrInvalidUpload, header.Filename, err)
	}

	return &dto.AudioUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query", Details: err.Error()})
		return
	}

	resp, err := h.svc.List(c.Request.Context(), OwnerID(c), query)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid meeting id", Details: err.Error()})
		return
	}

	meeting, err := h.svc.Get(c.Request.Context(), OwnerID(c), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func fail(c *gin.Context, err error) {
	status := service.StatusCode(err)
	event := zerolog.Ctx(c.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = zerolog.Ctx(c.Request.Context()).Error()
	}
	event.Err(err).Int("status", status).Msg("request failed")

	c.JSON(status, dto.ErrorResponse{
		Error:   service.Label(err),
		Details: err.Error(),
	})
}
