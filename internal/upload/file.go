// AngelaMos | 2026
// file.go

package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// File is an uploaded binary blob together with its declared filename.
// The extension is taken from the declared name, never sniffed.
type File struct {
	Name string
	Data []byte
}

func (f *File) Extension() string {
	ext := strings.TrimPrefix(filepath.Ext(f.Name), ".")
	return strings.ToLower(ext)
}

func FromMultipart(header *multipart.FileHeader) (*File, error) {
	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer src.Close() //nolint:errcheck // read-only handle

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}

	return &File{Name: header.Filename, Data: data}, nil
}

// FromRequest extracts a named multipart file, returning nil when the
// field is absent so optional uploads stay optional.
func FromRequest(r *http.Request, field string) (*File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	return FromMultipart(headers[0])
}
