// Package export bundles the current photo collection into a single zip
// artifact. At most one artifact may exist at a time: creation is refused
// while one is present, and the admin must delete it before making another.
package export

import (
	"archive/zip"
	"compress/flate"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/memorylane/service/internal/imaging"
)

// artifactPrefix names export archives; the suffix is the creation time.
const artifactPrefix = "memorylane-images-"

// ErrNoImages is returned when there is nothing to export.
var ErrNoImages = errors.New("no images to export")

// ErrNotFound is returned when the named artifact does not exist.
var ErrNotFound = errors.New("export not found")

// ErrBusy is returned when another export creation holds the lock.
var ErrBusy = errors.New("export creation already in progress")

// ConflictError reports that an artifact already exists and names it so the
// caller can delete it first.
type ConflictError struct {
	Existing string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("export already exists: %s", e.Existing)
}

// CreateResult describes a freshly created artifact.
type CreateResult struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	FileCount   int    `json:"fileCount"`
}

// Status reports whether an artifact exists and its attributes when it does.
type Status struct {
	HasExport   bool       `json:"hasExport"`
	Filename    string     `json:"filename,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	Size        int64      `json:"size,omitempty"`
}

// Service creates, inspects, and deletes export artifacts.
type Service struct {
	imageDir  string
	exportDir string
	lock      *flock.Flock
}

// NewService creates an export Service bundling imageDir into exportDir.
func NewService(imageDir, exportDir string) *Service {
	return &Service{
		imageDir:  imageDir,
		exportDir: exportDir,
		lock:      flock.New(filepath.Join(exportDir, ".export.lock")),
	}
}

// Create bundles all current originals into a new zip artifact.
//
// The existence check and the archive write happen under a file lock, so two
// concurrent creations cannot both pass the check. The archive is written to
// a .partial name and renamed into place only once complete; a failed run
// leaves no discoverable artifact behind.
func (s *Service) Create() (*CreateResult, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return nil, ErrBusy
	}
	defer s.lock.Unlock()

	if existing, err := s.findArtifact(); err != nil {
		return nil, err
	} else if existing != "" {
		return nil, &ConflictError{Existing: existing}
	}

	files, err := s.eligibleImages()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	name := fmt.Sprintf("%s%d.zip", artifactPrefix, time.Now().UnixMilli())
	partial := filepath.Join(s.exportDir, name+".partial")
	if err := s.writeArchive(partial, files); err != nil {
		_ = os.Remove(partial)
		return nil, fmt.Errorf("write archive: %w", err)
	}
	if err := os.Rename(partial, filepath.Join(s.exportDir, name)); err != nil {
		_ = os.Remove(partial)
		return nil, fmt.Errorf("publish archive: %w", err)
	}

	return &CreateResult{
		Filename:    name,
		DownloadURL: downloadURL(name),
		FileCount:   len(files),
	}, nil
}

// Status reports the current artifact, if any.
func (s *Service) Status() (*Status, error) {
	name, err := s.findArtifact()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return &Status{HasExport: false}, nil
	}

	info, err := os.Stat(filepath.Join(s.exportDir, name))
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	created := info.ModTime()
	return &Status{
		HasExport:   true,
		Filename:    name,
		DownloadURL: downloadURL(name),
		CreatedAt:   &created,
		Size:        info.Size(),
	}, nil
}

// Delete removes the named artifact. A missing artifact is ErrNotFound, not
// a crash, so callers can treat deletion as idempotent.
func (s *Service) Delete(filename string) error {
	path, err := s.artifactPath(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// Path resolves the named artifact for download, or ErrNotFound.
func (s *Service) Path(filename string) (string, error) {
	return s.artifactPath(filename)
}

func (s *Service) artifactPath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", ErrNotFound
	}
	path := filepath.Join(s.exportDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// findArtifact returns the name of the existing zip artifact, or "".
func (s *Service) findArtifact() (string, error) {
	dirents, err := os.ReadDir(s.exportDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read export directory: %w", err)
	}
	for _, d := range dirents {
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".zip") {
			return d.Name(), nil
		}
	}
	return "", nil
}

// eligibleImages lists the originals to bundle: recognized image files,
// excluding thumbnails, the metadata document, and HEIC leftovers that never
// converted (most consumers cannot open them).
func (s *Service) eligibleImages() ([]string, error) {
	dirents, err := os.ReadDir(s.imageDir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}

	var files []string
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !imaging.IsImageFilename(name) {
			continue
		}
		if imaging.IsThumb(name) || imaging.IsHEIC(name) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func (s *Service) writeArchive(path string, files []string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, name := range files {
		if err := addFile(zw, filepath.Join(s.imageDir, name), name); err != nil {
			zw.Close()
			return fmt.Errorf("add %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

func downloadURL(filename string) string {
	return "/api/export/download/" + filename
}
