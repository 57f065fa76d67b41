package handlers

import (
	"net/http"

	"github.com/rohits-web03/folio/internal/utils"
)

// POST /api/admin/uploads/presign
// PresignImageUpload godoc
// @Summary Get an upload URL for a project image
// @Description Returns a presigned PUT URL and the public URL to use as the project imageUrl.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body object{contentType=string} true "Image content type"
// @Success 200 {object} utils.Payload{data=repositories.ImageUpload}
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload "Image uploads are not configured"
// @Router /api/admin/uploads/presign [post]
func (h *Handler) PresignImageUpload(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	var input struct {
		ContentType string `json:"contentType"`
	}
	if err := utils.DecodeJSON(w, r, &input); err != nil || input.ContentType == "" {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	upload, err := h.Images.PresignUpload(r.Context(), input.ContentType)
	if err != nil {
		fail(w, err, "generate upload URL")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Presigned upload URL generated successfully",
		Data:    upload,
	})
}

// GET /api/admin/uploads/{key...}
// ImageUploadStatus godoc
// @Summary Check whether an uploaded image exists
// @Tags Admin
// @Produce json
// @Param key path string true "Object key"
// @Success 200 {object} utils.Payload
// @Failure 503 {object} utils.Payload "Image uploads are not configured"
// @Router /api/admin/uploads/{key} [get]
func (h *Handler) ImageUploadStatus(w http.ResponseWriter, r *http.Request) {
	if h.Images == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}
	key := r.PathValue("key")
	if key == "" {
		utils.Error(w, http.StatusBadRequest, "Missing key")
		return
	}

	exists, err := h.Images.Exists(r.Context(), key)
	if err != nil {
		fail(w, err, "check upload")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Upload status retrieved",
		Data:    map[string]any{"key": key, "exists": exists},
	})
}
