package domain

// DocumentType identifies the kind of paper form a pipeline run processes.
type DocumentType string

const (
	DocumentTypeReceipt        DocumentType = "receipt"
	DocumentTypeFuelDelivery   DocumentType = "fuel_delivery"
	DocumentTypeReconciliation DocumentType = "reconciliation_sheet"
)

// AllowedDocumentTypes enumerates every recognized document type.
var AllowedDocumentTypes = map[DocumentType]bool{
	DocumentTypeReceipt:        true,
	DocumentTypeFuelDelivery:   true,
	DocumentTypeReconciliation: true,
}

// Valid reports whether t is a recognized document type.
func (t DocumentType) Valid() bool {
	return AllowedDocumentTypes[t]
}

// FileType represents the allowed image types for upload.
type FileType string

const (
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
	"image/webp": FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
}
