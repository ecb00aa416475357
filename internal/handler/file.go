package handler

import (
	"errors"
	"net/http"

	"github.com/Payphone-Digital/accounts/internal/constants"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/service"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload accepts a multipart form with a "file" part and an optional "folder".
func (h *FileHandler) Upload(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "Upload")

	fileHeader, err := c.FormFile(constants.UploadFormFile)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			respondError(ctx, c, apperrors.ErrPayloadTooLarge, constants.MsgFileUploadFailed)
		case errors.Is(err, http.ErrMissingFile):
			respondError(ctx, c, apperrors.ErrNoFileProvided, constants.MsgFileUploadFailed)
		default:
			logger.WarnWithContext(ctx, "Unreadable multipart form").
				Err(err).
				Log()
			respondError(ctx, c, apperrors.ErrNoFileProvided, constants.MsgFileUploadFailed)
		}
		return
	}

	file, err := h.fileService.Upload(ctx, c.PostForm(constants.UploadFormFolder), fileHeader)
	if err != nil {
		respondError(ctx, c, err, constants.MsgFileUploadFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(constants.MsgFileUploaded, file))
}

func (h *FileHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "DeleteFile")

	if err := h.fileService.Delete(ctx, c.Param("path")); err != nil {
		respondError(ctx, c, err, constants.MsgFileDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgFileDeleted))
}

// Serve streams a stored file back. The URL returned by Upload points here.
func (h *FileHandler) Serve(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "ServeFile")

	body, size, contentType, err := h.fileService.Open(ctx, c.Param("path"))
	if err != nil {
		respondError(ctx, c, err, constants.MsgFileReadFailed)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, size, contentType, body, nil)
}
