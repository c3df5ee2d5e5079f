package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/memorylane/service/internal/response"
)

// Handler holds HTTP handlers for gallery endpoints.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

// NewHandler creates a gallery Handler enforcing the given upload size cap.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// rotateRequest is the JSON body of a rotation call.
type rotateRequest struct {
	Degrees int `json:"degrees"`
}

// Upload godoc
//
//	@Summary		Upload a photo
//	@Description	Accepts one image file plus an optional uploader name. HEIC/HEIF files are converted to JPEG and a thumbnail is generated.
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			images			formData	file	true	"image file"
//	@Param			uploaderName	formData	string	false	"uploader display name"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		413	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("images")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.TooLarge(w, fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxUploadBytes>>20))
			return
		}
		response.BadRequest(w, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		response.TooLarge(w, fmt.Sprintf("File too large. Maximum size is %dMB.", h.maxUploadBytes>>20))
		return
	}
	if !AllowedUpload(header.Header.Get("Content-Type"), header.Filename) {
		response.BadRequest(w, "Only image files are allowed!")
		return
	}

	uploaded, err := h.svc.Upload(file, header.Filename, r.FormValue("uploaderName"))
	if err != nil {
		log.Printf("gallery: upload failed: %v", err)
		response.InternalError(w, "Upload failed")
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"file":    uploaded,
		"message": fmt.Sprintf("File %s uploaded successfully", header.Filename),
	})
}

// List godoc
//
//	@Summary		List photos
//	@Description	Returns every stored original (no thumbnails) with its metadata.
//	@Tags			images
//	@Produce		json
//	@Success		200	{object}	map[string][]Image
//	@Failure		500	{object}	map[string]string
//	@Router			/images [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.List()
	if err != nil {
		log.Printf("gallery: list failed: %v", err)
		response.InternalError(w, "Failed to read images")
		return
	}
	response.OK(w, map[string][]Image{"images": images})
}

// Rotate godoc
//
//	@Summary		Rotate a photo
//	@Description	Rotates the stored image in place by 90, 180, or 270 degrees and refreshes its thumbnail.
//	@Tags			images
//	@Accept			json
//	@Produce		json
//	@Param			filename	path	string			true	"stored filename"
//	@Param			body		body	rotateRequest	true	"rotation degrees"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/images/{filename}/rotate [post]
func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	var req rotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid rotation degrees. Must be 90, 180, or 270")
		return
	}

	thumbRefreshed, err := h.svc.Rotate(filename, req.Degrees)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Image not found")
		return
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(w, "Invalid file type")
		return
	case errors.Is(err, ErrInvalidDegrees):
		response.BadRequest(w, "Invalid rotation degrees. Must be 90, 180, or 270")
		return
	default:
		log.Printf("gallery: rotate %s failed: %v", filename, err)
		response.InternalError(w, "Failed to rotate image")
		return
	}

	msg := fmt.Sprintf("Image %s rotated %d degrees successfully", filename, req.Degrees)
	if !thumbRefreshed {
		msg += " (thumbnail refresh failed)"
	}
	response.OK(w, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// Delete godoc
//
//	@Summary		Delete a photo
//	@Description	Removes the stored image together with its thumbnail and metadata entry.
//	@Tags			images
//	@Produce		json
//	@Param			filename	path	string	true	"stored filename"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/images/{filename} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	err := h.svc.Delete(filename)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Image not found")
		return
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(w, "Invalid file type")
		return
	default:
		log.Printf("gallery: delete %s failed: %v", filename, err)
		response.InternalError(w, "Failed to delete image")
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Image %s deleted successfully", filename),
	})
}
