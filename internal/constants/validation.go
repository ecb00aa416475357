package constants

// MinPasswordLength is checked by the service; binding tags carry the
// email (120) and name (50) maxima.
const MinPasswordLength = 8

// Upload settings
const (
	DefaultUploadFolder = "uploads"
	UploadFormFile      = "file"
	UploadFormFolder    = "folder"
	FilesURLPrefix      = "/api/files/"
)

// AllowedUploadExtensions is matched against the lower-cased extension only.
var AllowedUploadExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"pdf":  {},
	"doc":  {},
	"docx": {},
}
