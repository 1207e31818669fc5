package dataset

import (
	"path/filepath"
	"strings"

	"github.com/datadynamo/dynamo/internal/models"
)

// extensionTypes maps filename extensions to detected classes. Detection is
// a pure function of the filename; file contents are never inspected here.
var extensionTypes = map[string]string{
	".csv":  "CSV",
	".txt":  "text",
	".pdf":  "pdf",
	".doc":  "document",
	".docx": "document",
	".mp3":  "audio",
	".wav":  "audio",
	".mp4":  "video",
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".zip":  "folder",
}

// DetectType classifies a file by its extension. Unrecognized extensions
// report "Unknown".
func DetectType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return "Unknown"
}

// CanonicalType maps a detected class onto the closed dataset-type enum.
// Classes outside the enum (pdf, document, folder) collapse to Unknown.
func CanonicalType(detected string) string {
	switch detected {
	case models.DatasetText, models.DatasetImage, models.DatasetAudio,
		models.DatasetVideo, models.DatasetCSV:
		return detected
	default:
		return models.DatasetUnknown
	}
}
