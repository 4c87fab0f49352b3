// Package export writes generated images to disk and reports basic image info.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"

	"imgstudio/internal/session"
)

// ErrEmptyImage is returned for payloads that decode to zero bytes.
var ErrEmptyImage = errors.New("empty image payload")

// Info describes an image payload.
type Info struct {
	MIME   string
	Format string
	Width  int
	Height int
	Size   int
}

// String renders the info as "1024x1024 JPEG, 152.3 KB".
func (i Info) String() string {
	size := fmt.Sprintf("%.1f KB", float64(i.Size)/1024)
	if i.Width == 0 || i.Height == 0 {
		return fmt.Sprintf("%s, %s", i.Format, size)
	}
	return fmt.Sprintf("%dx%d %s, %s", i.Width, i.Height, i.Format, size)
}

// Decode returns the raw bytes of a base64 payload. A data URL prefix is accepted.
func Decode(b64 string) ([]byte, error) {
	if strings.HasPrefix(b64, "data:") {
		if i := strings.Index(b64, ","); i >= 0 {
			b64 = b64[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}

// Describe detects the format of data and, for formats the decoder knows,
// its dimensions.
func Describe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyImage
	}
	mt := mimetype.Detect(data)
	info := Info{
		MIME:   mt.String(),
		Format: strings.ToUpper(strings.TrimPrefix(mt.Extension(), ".")),
		Size:   len(data),
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return info, fmt.Errorf("payload is not an image (%s)", mt.String())
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	}
	return info, nil
}

// Extension returns the file extension for data, ".png" when unknown.
func Extension(data []byte) string {
	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		return ".png"
	}
	return ext
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

// Exporter saves images under a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter returns an exporter writing into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// SaveImage writes one base64 image as <name><ext> and returns its path.
func (e *Exporter) SaveImage(name, b64 string) (string, error) {
	data, err := Decode(b64)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.dir, name+Extension(data))
	if err := WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// SaveEntry writes every image of a history entry. Images that fail to
// decode are skipped with a warning; the error reports the first failure
// only when nothing was written.
func (e *Exporter) SaveEntry(entry *session.HistoryEntry) ([]string, error) {
	stamp := entry.CreatedAt
	if stamp.IsZero() {
		stamp = e.now()
	}
	prefix := fmt.Sprintf("imgstudio_%s_%s", stamp.Format("20060102_150405"), shortID(entry.ID))

	var paths []string
	var firstErr error
	for i, b64 := range entry.Images {
		path, err := e.SaveImage(fmt.Sprintf("%s_%d", prefix, i+1), b64)
		if err != nil {
			log.WithFields(log.Fields{"entry": entry.ID, "index": i}).Warn("failed to export image: " + err.Error())
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return paths, nil
}

// SaveFavorite writes a favorite image named after its id.
func (e *Exporter) SaveFavorite(f session.Favorite) (string, error) {
	return e.SaveImage("favorite_"+shortID(f.HistoryID)+strings.TrimPrefix(f.ID, f.HistoryID), f.ImageB64)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
