// AngelaMos | 2026
// uploader.go

package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/google/uuid"

	"github.com/herooiboo/tenjaz/internal/core"
)

type Config struct {
	Root                   string
	AllowedExtensions      []string
	TranscodableExtensions []string
}

// Uploader validates, optionally transcodes and persists uploaded
// images under a storage root, returning paths relative to that root.
type Uploader struct {
	root         string
	allowed      map[string]struct{}
	transcodable map[string]struct{}
}

func New(cfg Config) *Uploader {
	return &Uploader{
		root:         cfg.Root,
		allowed:      toSet(cfg.AllowedExtensions),
		transcodable: toSet(cfg.TranscodableExtensions),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}

// Store persists one upload into folder and returns "folder/filename".
// With transcode set, sources in the transcodable subset are re-encoded
// as WebP; everything else is written verbatim.
func (u *Uploader) Store(
	file *File,
	folder, prefix string,
	transcode bool,
) (string, error) {
	ext := file.Extension()
	if _, ok := u.allowed[ext]; !ok {
		return "", fmt.Errorf("store %s: %w", file.Name, core.ErrUnsupportedType)
	}

	if err := u.ensureFolder(folder); err != nil {
		return "", err
	}

	if transcode {
		if _, ok := u.transcodable[ext]; ok {
			filename := uniqueName(prefix, "webp")
			if err := u.transcodeToWebP(file, folder, filename); err != nil {
				return "", err
			}
			return folder + "/" + filename, nil
		}
	}

	filename := uniqueName(prefix, ext)
	dest := filepath.Join(u.root, folder, filename)
	if err := os.WriteFile(dest, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("store %s: %w: %w", file.Name, core.ErrWriteFailed, err)
	}

	return folder + "/" + filename, nil
}

// StoreAll applies Store to every present entry, keyed by field name,
// using the field name as the filename prefix. Entries already written
// when a later one fails are left in place.
func (u *Uploader) StoreAll(
	files map[string]*File,
	folder string,
	transcode bool,
) (map[string]string, error) {
	stored := make(map[string]string, len(files))

	for name, file := range files {
		if file == nil {
			continue
		}

		path, err := u.Store(file, folder, name, transcode)
		if err != nil {
			return stored, fmt.Errorf("upload %q: %w", name, err)
		}
		stored[name] = path
	}

	return stored, nil
}

func (u *Uploader) ensureFolder(folder string) error {
	dir := filepath.Join(u.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w: %w", dir, core.ErrWriteFailed, err)
	}
	return nil
}

func (u *Uploader) transcodeToWebP(file *File, folder, filename string) error {
	img, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return fmt.Errorf("decode %s: %w: %w", file.Name, core.ErrTranscodeFailed, err)
	}

	img = normalizeTrueColor(img)

	dest := filepath.Join(u.root, folder, filename)
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w: %w", dest, core.ErrWriteFailed, err)
	}

	if err := nativewebp.Encode(out, img, nil); err != nil {
		// A partially written file may remain; cleanup is the caller's
		// policy, not this pipeline's.
		_ = out.Close() //nolint:errcheck
		return fmt.Errorf("encode %s: %w: %w", file.Name, core.ErrTranscodeFailed, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w: %w", dest, core.ErrWriteFailed, err)
	}

	return nil
}

// normalizeTrueColor flattens paletted and grayscale sources into a
// 8-bit-per-channel RGBA bitmap before encoding.
func normalizeTrueColor(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		return img
	}

	bounds := img.Bounds()
	normalized := image.NewNRGBA(bounds)
	draw.Draw(normalized, bounds, img, bounds.Min, draw.Src)
	return normalized
}

func uniqueName(prefix, ext string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "") + "." + ext
}
