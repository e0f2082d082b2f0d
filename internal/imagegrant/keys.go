package imagegrant

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// DefaultContentType is assumed when the caller does not name one.
const DefaultContentType = "image/jpeg"

// NewImageID generates an image id: img_ plus a ULID.
func NewImageID() string {
	return "img_" + ulid.Make().String()
}

// BuildKey constructs the object key for an image, namespaced by inspection
// and image id, preserving the original file extension.
func BuildKey(inspectionID, imageID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("inspections/%s/%s%s", inspectionID, imageID, ext)
}
