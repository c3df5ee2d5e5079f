package export

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/memorylane/service/internal/response"
)

// Handler holds HTTP handlers for export endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an export Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create godoc
//
//	@Summary		Create an export
//	@Description	Bundles all current originals into a zip. Fails if an export already exists or there is nothing to export.
//	@Tags			export
//	@Produce		json
//	@Success		200	{object}	CreateResult
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/export/create [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Create()
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			response.JSON(w, http.StatusBadRequest, map[string]string{
				"error":          "Export already exists. Please delete the current export before creating a new one.",
				"existingExport": conflict.Existing,
			})
		case errors.Is(err, ErrNoImages):
			response.BadRequest(w, "No images to export")
		case errors.Is(err, ErrBusy):
			response.BadRequest(w, "Export creation already in progress")
		default:
			log.Printf("export: create failed: %v", err)
			response.InternalError(w, "Failed to create export")
		}
		return
	}

	response.OK(w, map[string]interface{}{
		"success":     true,
		"filename":    result.Filename,
		"downloadUrl": result.DownloadURL,
		"fileCount":   result.FileCount,
	})
}

// Status godoc
//
//	@Summary		Export status
//	@Description	Reports whether an export artifact exists and its attributes.
//	@Tags			export
//	@Produce		json
//	@Success		200	{object}	Status
//	@Failure		500	{object}	map[string]string
//	@Router			/export/status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status()
	if err != nil {
		log.Printf("export: status failed: %v", err)
		response.InternalError(w, "Failed to check export status")
		return
	}
	response.OK(w, status)
}

// Download godoc
//
//	@Summary		Download the export
//	@Description	Streams the named export artifact as a zip attachment.
//	@Tags			export
//	@Produce		application/zip
//	@Param			filename	path	string	true	"artifact filename"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/export/download/{filename} [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.svc.Path(filename)
	if err != nil {
		response.NotFound(w, "Export file not found")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("export: open %s failed: %v", filename, err)
		response.InternalError(w, "Failed to download export")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Printf("export: stat %s failed: %v", filename, err)
		response.InternalError(w, "Failed to download export")
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; nothing to send the client but a truncated stream.
		log.Printf("export: streaming %s failed: %v", filename, err)
	}
}

// Delete godoc
//
//	@Summary		Delete the export
//	@Description	Removes the named export artifact.
//	@Tags			export
//	@Produce		json
//	@Param			filename	path	string	true	"artifact filename"
//	@Success		200	{object}	map[string]interface{}
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/export/{filename} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := h.svc.Delete(filename); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Export file not found")
			return
		}
		log.Printf("export: delete %s failed: %v", filename, err)
		response.InternalError(w, "Failed to delete export")
		return
	}

	response.OK(w, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Export %s deleted successfully", filename),
	})
}
