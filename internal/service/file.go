package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"strings"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/storage"
	"github.com/google/uuid"
)

type FileService struct {
	store storage.BlobStore
}

func NewFileService(store storage.BlobStore) *FileService {
	return &FileService{store: store}
}

// ValidateUploadName checks the client supplied filename: it must be present
// and carry an allowed extension. Only the extension is inspected.
func ValidateUploadName(filename string) (string, error) {
	if filename == "" {
		return "", apperrors.ErrNoFileSelected
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return "", apperrors.ErrInvalidFileType
	}

	ext := strings.ToLower(filename[dot+1:])
	if _, ok := constants.AllowedUploadExtensions[ext]; !ok {
		return "", apperrors.ErrInvalidFileType
	}
	return ext, nil
}

// Upload stores one multipart file under folder (default "uploads") with a
// uuid-prefixed name and returns where it can be fetched.
func (s *FileService) Upload(ctx context.Context, folder string, fh *multipart.FileHeader) (*dto.FileResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Upload")

	if fh == nil {
		return nil, apperrors.ErrNoFileProvided
	}

	ext, err := ValidateUploadName(fh.Filename)
	if err != nil {
		logger.InfoWithContext(ctx, "Upload rejected").
			String("filename", fh.Filename).
			Err(err).
			Log()
		return nil, err
	}

	folder = storage.SanitizeFolder(folder)
	if folder == "" {
		folder = constants.DefaultUploadFolder
	}

	filename := storage.SanitizeFilename(fh.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), "."+ext) {
		// Names made only of stripped characters ("漢字.png") lose their stem.
		filename = "file." + ext
	}
	uniqueName := uuid.NewString() + "_" + filename
	key := folder + "/" + uniqueName
	mimetype := fh.Header.Get("Content-Type")

	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	defer src.Close()

	size, err := s.store.Put(ctx, key, src, mimetype)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to store upload").
			String("key", key).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "File uploaded").
		String("key", key).
		Int64("size", size).
		Log()

	return &dto.FileResponse{
		URL:          constants.FilesURLPrefix + key,
		Filename:     uniqueName,
		OriginalName: filename,
		Size:         size,
		Mimetype:     mimetype,
	}, nil
}

// Delete removes the file at filePath, relative to the upload root.
func (s *FileService) Delete(ctx context.Context, filePath string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteFile")

	err := s.store.Delete(ctx, strings.TrimPrefix(filePath, "/"))
	switch {
	case err == nil:
		logger.InfoWithContext(ctx, "File deleted").
			String("path", filePath).
			Log()
		return nil
	case errors.Is(err, storage.ErrInvalidKey):
		return apperrors.ErrInvalidFilePath
	case errors.Is(err, storage.ErrNotExist):
		return apperrors.ErrFileNotFound
	default:
		logger.ErrorWithContext(ctx, "Failed to delete file").
			String("path", filePath).
			Err(err).
			Log()
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}

// Open returns the file body, its size and a content type guessed from the
// extension.
func (s *FileService) Open(ctx context.Context, filePath string) (io.ReadCloser, int64, string, error) {
	filePath = strings.TrimPrefix(filePath, "/")

	body, size, err := s.store.Open(ctx, filePath)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrInvalidKey):
		return nil, 0, "", apperrors.ErrInvalidFilePath
	case errors.Is(err, storage.ErrNotExist):
		return nil, 0, "", apperrors.ErrFileNotFound
	default:
		return nil, 0, "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	contentType := mime.TypeByExtension(strings.ToLower(path.Ext(filePath)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return body, size, contentType, nil
}
