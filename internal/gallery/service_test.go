package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorylane/service/internal/metadata"
)

// fakeProcessor stands in for the libvips codec. Outputs are tagged so tests
// can tell converted/rotated bytes from the originals.
type fakeProcessor struct {
	convertErr error
	thumbErr   error
	rotateErr  error
}

func (f *fakeProcessor) ConvertToJPEG(src, dst string) error {
	if f.convertErr != nil {
		return f.convertErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append([]byte("jpeg:"), data...), 0o644)
}

func (f *fakeProcessor) Thumbnail(src, dst string) error {
	if f.thumbErr != nil {
		return f.thumbErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append([]byte("thumb:"), data...), 0o644)
}

func (f *fakeProcessor) Rotate(src, dst string, degrees int) error {
	if f.rotateErr != nil {
		return f.rotateErr
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append([]byte(fmt.Sprintf("rot%d:", degrees)), data...), 0o644)
}

func newTestService(t *testing.T, proc Processor) (*Service, string, *metadata.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := metadata.Open(filepath.Join(dir, "metadata.json"))
	require.NoError(t, err)
	return NewService(dir, store, proc), dir, store
}

var storedNameRe = regexp.MustCompile(`^\d+-[0-9a-f]{8}\.jpg$`)

func TestUploadJPEG(t *testing.T) {
	svc, dir, store := newTestService(t, &fakeProcessor{})

	got, err := svc.Upload(strings.NewReader("image-bytes"), "photo.jpg", "Alice")
	require.NoError(t, err)

	assert.Regexp(t, storedNameRe, got.Filename)
	assert.Equal(t, "photo.jpg", got.OriginalName)
	assert.Equal(t, int64(len("image-bytes")), got.Size)
	assert.Equal(t, "/images/"+got.Filename, got.URL)
	assert.Equal(t, "/images/thumb_"+got.Filename, got.ThumbnailURL)
	assert.Equal(t, "Alice", got.UploaderName)

	// Stored image and thumbnail are on disk.
	data, err := os.ReadFile(filepath.Join(dir, got.Filename))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
	assert.FileExists(t, filepath.Join(dir, "thumb_"+got.Filename))

	// Exactly one metadata entry, keyed by the final stored filename.
	entry, ok := store.Get(got.Filename)
	require.True(t, ok)
	assert.Equal(t, "Alice", entry.UploaderName)
	assert.Equal(t, "photo.jpg", entry.OriginalName)
	assert.WithinDuration(t, time.Now(), entry.UploadDate, time.Minute)
	assert.Equal(t, 1, store.Len())
}

func TestUploadBlankUploaderDefaultsAnonymous(t *testing.T) {
	svc, _, store := newTestService(t, &fakeProcessor{})

	got, err := svc.Upload(strings.NewReader("x"), "photo.jpg", "   ")
	require.NoError(t, err)
	assert.Equal(t, AnonymousUploader, got.UploaderName)

	entry, ok := store.Get(got.Filename)
	require.True(t, ok)
	assert.Equal(t, AnonymousUploader, entry.UploaderName)
}

func TestUploadHEICConverted(t *testing.T) {
	svc, dir, store := newTestService(t, &fakeProcessor{})

	got, err := svc.Upload(strings.NewReader("heic-bytes"), "photo.heic", "")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(got.Filename, ".jpg"), got.Filename)

	// No HEIC file remains anywhere in the image directory.
	dirents, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, d := range dirents {
		assert.False(t, strings.HasSuffix(d.Name(), ".heic"), d.Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, got.Filename))
	require.NoError(t, err)
	assert.Equal(t, "jpeg:heic-bytes", string(data))

	_, ok := store.Get(got.Filename)
	assert.True(t, ok)
}

func TestUploadHEICConversionFailureKeepsOriginal(t *testing.T) {
	svc, dir, store := newTestService(t, &fakeProcessor{convertErr: fmt.Errorf("libvips unhappy")})

	got, err := svc.Upload(strings.NewReader("heic-bytes"), "photo.heic", "")
	require.NoError(t, err, "a failed conversion must not fail the upload")

	assert.True(t, strings.HasSuffix(got.Filename, ".heic"), got.Filename)
	data, err := os.ReadFile(filepath.Join(dir, got.Filename))
	require.NoError(t, err)
	assert.Equal(t, "heic-bytes", string(data), "original bytes kept, no silent data loss")

	_, ok := store.Get(got.Filename)
	assert.True(t, ok, "metadata keyed by the unconverted filename")
}

func TestUploadThumbnailFailureDegrades(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{thumbErr: fmt.Errorf("encode failed")})

	got, err := svc.Upload(strings.NewReader("x"), "photo.jpg", "")
	require.NoError(t, err, "a failed thumbnail must not fail the upload")

	assert.Equal(t, got.URL, got.ThumbnailURL, "thumbnail URL falls back to the full-size image")
	assert.NoFileExists(t, filepath.Join(dir, "thumb_"+got.Filename))
}

func TestListExcludesThumbnailsAndNonImages(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{})

	for _, name := range []string{"a.jpg", "thumb_a.jpg", "note.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	images, err := svc.List()
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "a.jpg", images[0].Filename)
	assert.Equal(t, "/images/a.jpg", images[0].URL)
	assert.Equal(t, "/images/thumb_a.jpg", images[0].ThumbnailURL)
}

func TestListMetadataFallback(t *testing.T) {
	svc, dir, store := newTestService(t, &fakeProcessor{})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "known.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.jpg"), []byte("x"), 0o644))

	when := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Put("known.jpg", metadata.Entry{
		UploaderName: "Uncle Bob", UploadDate: when, OriginalName: "beach.jpg",
	}))

	images, err := svc.List()
	require.NoError(t, err)

	byName := map[string]Image{}
	for _, img := range images {
		byName[img.Filename] = img
	}

	known := byName["known.jpg"]
	assert.Equal(t, "Uncle Bob", known.UploaderName)
	assert.True(t, when.Equal(known.UploadDate))

	orphan := byName["orphan.jpg"]
	assert.Equal(t, AnonymousUploader, orphan.UploaderName)
	assert.False(t, orphan.UploadDate.IsZero(), "falls back to file time")
}

func TestRotateSuccess(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("orig"), 0o644))

	thumbRefreshed, err := svc.Rotate("a.jpg", 90)
	require.NoError(t, err)
	assert.True(t, thumbRefreshed)

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "rot90:orig", string(data), "stored bytes replaced in place")
	assert.NoFileExists(t, filepath.Join(dir, "a.jpg.tmp"))

	thumb, err := os.ReadFile(filepath.Join(dir, "thumb_a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "thumb:rot90:orig", string(thumb), "thumbnail regenerated from rotated bytes")
}

func TestRotateInvalidDegreesLeavesFileUntouched(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("orig"), 0o644))

	for _, degrees := range []int{0, 45, 360, -90} {
		_, err := svc.Rotate("a.jpg", degrees)
		assert.ErrorIs(t, err, ErrInvalidDegrees, "degrees=%d", degrees)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "orig", string(data))
}

func TestRotateMissingImage(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeProcessor{})
	_, err := svc.Rotate("ghost.jpg", 90)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRotateRejectsBadFilenames(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeProcessor{})

	for _, name := range []string{"", "../../etc/passwd.jpg", "sub/a.jpg", ".hidden.jpg", "notes.txt"} {
		_, err := svc.Rotate(name, 90)
		assert.ErrorIs(t, err, ErrInvalidType, "filename=%q", name)
	}
}

func TestRotateCodecFailureCleansTemp(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{rotateErr: fmt.Errorf("boom")})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("orig"), 0o644))

	_, err := svc.Rotate("a.jpg", 180)
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "orig", string(data), "original untouched after failed rotation")
	assert.NoFileExists(t, filepath.Join(dir, "a.jpg.tmp"))
}

func TestRotateThumbnailFailureIsDegradedSuccess(t *testing.T) {
	svc, dir, _ := newTestService(t, &fakeProcessor{thumbErr: fmt.Errorf("encode failed")})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("orig"), 0o644))

	thumbRefreshed, err := svc.Rotate("a.jpg", 270)
	require.NoError(t, err, "the swapped image stands even if the thumbnail refresh fails")
	assert.False(t, thumbRefreshed)

	data, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "rot270:orig", string(data))
}

func TestDeleteRemovesImageThumbnailAndMetadata(t *testing.T) {
	svc, dir, store := newTestService(t, &fakeProcessor{})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "thumb_a.jpg"), []byte("t"), 0o644))
	require.NoError(t, store.Put("a.jpg", metadata.Entry{UploaderName: "A"}))

	require.NoError(t, svc.Delete("a.jpg"))

	assert.NoFileExists(t, filepath.Join(dir, "a.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "thumb_a.jpg"))
	_, ok := store.Get("a.jpg")
	assert.False(t, ok)
}

func TestDeleteMissingImage(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeProcessor{})
	assert.ErrorIs(t, svc.Delete("ghost.jpg"), ErrNotFound)
}

func TestAllowedUpload(t *testing.T) {
	cases := []struct {
		contentType string
		filename    string
		want        bool
	}{
		{"image/jpeg", "whatever.bin", true},     // MIME alone is enough
		{"application/octet-stream", "x.png", true}, // extension alone is enough
		{"image/x-canon-cr2", "raw.bin", true},   // image/ prefix accepted
		{"", "photo.HEIC", true},
		{"application/octet-stream", "x.txt", false},
		{"text/plain", "notes.txt", false},
		{"application/pdf", "doc.pdf", false},
		{"", "", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AllowedUpload(c.contentType, c.filename),
			"contentType=%q filename=%q", c.contentType, c.filename)
	}
}
