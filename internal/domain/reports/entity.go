package reports

import (
	"strings"
	"time"
)

// ID type for Report
type ReportID int64

// Aggregate Root: Report
// StoredFilename is the opaque object key under which the raw file lives in
// the file store. Its extension decides which analysis path a dispatch takes.
type Report struct {
	ID             ReportID  `json:"id"`
	PatientID      int64     `json:"patient_id"`
	DoctorName     string    `json:"doctor_name"`
	Title          string    `json:"title"`
	StoredFilename string    `json:"file_path"`
	CreatedAt      time.Time `json:"created_at"`
}

// Category enum
type Category string

const (
	CategoryImage Category = "image"
	CategoryText  Category = "text"
)

var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
	"bmp": {}, "tiff": {}, "tif": {}, "webp": {},
}

// Classify maps a stored filename to its analysis category. The extension is
// the portion after the last dot, compared case-insensitively. Anything that
// is not a known raster image format falls through to the text path,
// including filenames with no extension at all.
func Classify(filename string) Category {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return CategoryText
	}
	ext := strings.ToLower(filename[i+1:])
	if _, ok := imageExts[ext]; ok {
		return CategoryImage
	}
	return CategoryText
}

// Category of the report's stored file.
func (r *Report) Category() Category {
	return Classify(r.StoredFilename)
}
