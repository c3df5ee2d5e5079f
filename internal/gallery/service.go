// Package gallery manages the shared photo collection: uploads, listing,
// rotation, and deletion of stored images and their thumbnails.
package gallery

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memorylane/service/internal/imaging"
	"github.com/memorylane/service/internal/metadata"
)

// AnonymousUploader is recorded when no uploader name is provided.
const AnonymousUploader = "Anonymous"

// ErrNotFound is returned when the named image does not exist.
var ErrNotFound = errors.New("image not found")

// ErrInvalidType is returned when a filename does not carry a recognized
// image extension, or does not name a plain file in the image directory.
var ErrInvalidType = errors.New("invalid file type")

// ErrInvalidDegrees is returned when a rotation is not 90, 180, or 270.
var ErrInvalidDegrees = errors.New("invalid rotation degrees")

// Processor is the codec work the gallery depends on. The libvips-backed
// implementation lives in internal/imaging; tests substitute fakes.
type Processor interface {
	ConvertToJPEG(src, dst string) error
	Thumbnail(src, dst string) error
	Rotate(src, dst string, degrees int) error
}

// allowedMIMEs is the fixed set of declared content types the upload accepts.
// A type starting with "image/" is also accepted, matching what browsers send
// for formats not listed here. Extension matching is checked independently:
// either signal is sufficient.
var allowedMIMEs = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/gif": true, "image/webp": true, "image/avif": true,
	"image/tiff": true, "image/bmp": true, "image/ico": true,
	"image/heic": true, "image/heif": true,
}

// AllowedUpload reports whether an upload with the declared content type and
// client filename passes the type allowlist.
func AllowedUpload(contentType, filename string) bool {
	ct := strings.ToLower(contentType)
	if allowedMIMEs[ct] || strings.HasPrefix(ct, "image/") {
		return true
	}
	return imaging.IsImageFilename(filename)
}

// UploadedFile describes a stored upload in the shape the web client expects.
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	UploaderName string `json:"uploaderName"`
}

// Image is one gallery listing entry.
type Image struct {
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	UploadDate   time.Time `json:"uploadDate"`
	UploaderName string    `json:"uploaderName"`
}

// Service owns the image directory and drives the ingestion pipeline:
// persist → normalize → thumbnail → metadata.
type Service struct {
	imageDir string
	store    *metadata.Store
	proc     Processor

	// mu guards locks; each per-filename mutex serializes rotate/delete on
	// the same image so a rename never races an unlink.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a gallery Service over the given image directory.
func NewService(imageDir string, store *metadata.Store, proc Processor) *Service {
	return &Service{
		imageDir: imageDir,
		store:    store,
		proc:     proc,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Upload persists one uploaded file and runs it through the pipeline.
//
// HEIC/HEIF input is normalized to JPEG; if conversion fails after retries the
// original file is kept as the stored image rather than failing the upload.
// A failed thumbnail likewise degrades: the response points the thumbnail URL
// at the full-size image. Any hard failure removes whatever was written.
func (s *Service) Upload(src io.Reader, originalName, uploaderName string) (*UploadedFile, error) {
	uploaderName = strings.TrimSpace(uploaderName)
	if uploaderName == "" {
		uploaderName = AnonymousUploader
	}

	name := s.generateFilename(originalName)
	path := filepath.Join(s.imageDir, name)

	if err := writeStream(path, src); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	finalName := name
	if imaging.IsHEIC(name) {
		jpegName := imaging.JPEGName(name)
		jpegPath := filepath.Join(s.imageDir, jpegName)
		if err := s.proc.ConvertToJPEG(path, jpegPath); err != nil {
			log.Printf("gallery: keeping %s unconverted: %v", name, err)
		} else {
			_ = os.Remove(path)
			finalName = jpegName
		}
	}
	finalPath := filepath.Join(s.imageDir, finalName)

	thumbName := imaging.ThumbName(finalName)
	thumbOK := true
	if err := s.proc.Thumbnail(finalPath, filepath.Join(s.imageDir, thumbName)); err != nil {
		log.Printf("gallery: no thumbnail for %s: %v", finalName, err)
		thumbOK = false
	}

	entry := metadata.Entry{
		UploaderName: uploaderName,
		UploadDate:   time.Now().UTC(),
		OriginalName: originalName,
	}
	if err := s.store.Put(finalName, entry); err != nil {
		_ = os.Remove(finalPath)
		_ = os.Remove(filepath.Join(s.imageDir, thumbName))
		return nil, fmt.Errorf("record metadata: %w", err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("stat stored image: %w", err)
	}

	result := &UploadedFile{
		Filename:     finalName,
		OriginalName: originalName,
		Size:         info.Size(),
		URL:          imageURL(finalName),
		ThumbnailURL: imageURL(finalName),
		UploaderName: uploaderName,
	}
	if thumbOK {
		result.ThumbnailURL = imageURL(thumbName)
	}
	return result, nil
}

// List returns every stored original joined with its metadata. Thumbnails and
// non-image files are skipped. Images without a metadata entry fall back to
// the file's modification time and an anonymous uploader.
func (s *Service) List() ([]Image, error) {
	dirents, err := os.ReadDir(s.imageDir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}

	images := make([]Image, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !imaging.IsImageFilename(name) || imaging.IsThumb(name) {
			continue
		}

		img := Image{
			Filename:     name,
			URL:          imageURL(name),
			ThumbnailURL: imageURL(imaging.ThumbName(name)),
			UploaderName: AnonymousUploader,
		}
		if entry, ok := s.store.Get(name); ok {
			img.UploadDate = entry.UploadDate
			img.UploaderName = entry.UploaderName
		} else if info, err := d.Info(); err == nil {
			img.UploadDate = info.ModTime()
		}
		images = append(images, img)
	}
	return images, nil
}

// Rotate re-encodes the stored image rotated by degrees (90, 180, or 270) and
// swaps it over the original atomically, then refreshes the thumbnail. The
// returned bool reports whether the thumbnail refresh succeeded; a false with
// nil error is a degraded success — the rotated image already stands.
func (s *Service) Rotate(filename string, degrees int) (bool, error) {
	path, err := s.imagePath(filename)
	if err != nil {
		return false, err
	}

	lock := s.fileLock(filename)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(path); err != nil {
		return false, ErrNotFound
	}
	if !imaging.ValidDegrees(degrees) {
		return false, ErrInvalidDegrees
	}

	tmp := path + ".tmp"
	if err := s.proc.Rotate(path, tmp, degrees); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rotate image: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("swap rotated image: %w", err)
	}

	thumbPath := filepath.Join(s.imageDir, imaging.ThumbName(filename))
	if err := s.proc.Thumbnail(path, thumbPath); err != nil {
		log.Printf("gallery: thumbnail refresh failed for %s: %v", filename, err)
		return false, nil
	}
	return true, nil
}

// Delete removes the stored image, its thumbnail, and its metadata entry.
func (s *Service) Delete(filename string) error {
	path, err := s.imagePath(filename)
	if err != nil {
		return err
	}

	lock := s.fileLock(filename)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(path); err != nil {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	_ = os.Remove(filepath.Join(s.imageDir, imaging.ThumbName(filename)))

	if err := s.store.Delete(filename); err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}
	return nil
}

// generateFilename builds a server-owned name from the current time, a random
// component, and the client file's extension. The client-provided name itself
// is never used for storage paths.
func (s *Service) generateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

// imagePath validates a client-supplied filename and resolves it inside the
// image directory. Anything that is not a bare recognized image filename is
// rejected before touching the filesystem.
func (s *Service) imagePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrInvalidType
	}
	if !imaging.IsImageFilename(filename) {
		return "", ErrInvalidType
	}
	return filepath.Join(s.imageDir, filename), nil
}

func (s *Service) fileLock(filename string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[filename]
	if !ok {
		l = &sync.Mutex{}
		s.locks[filename] = l
	}
	return l
}

func imageURL(filename string) string {
	return "/images/" + filename
}

func writeStream(path string, src io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
