package handlers

import (
	"net/http"

	"github.com/rohits-web03/folio/internal/models"
	"github.com/rohits-web03/folio/internal/utils"
)

// POST /api/contact
// SubmitContact godoc
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.NewMessage true "Message"
// @Success 201 {object} utils.Payload{data=models.Message}
// @Failure 400 {object} utils.Payload
// @Router /api/contact [post]
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var input models.NewMessage
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	message, err := h.Store.CreateMessage(r.Context(), input)
	if err != nil {
		fail(w, err, "send message")
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Message sent successfully",
		Data:    message,
	})
}

// GET /api/admin/messages
// GetMessages godoc
// @Summary List contact messages
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Payload{data=[]models.Message}
// @Router /api/admin/messages [get]
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Store.GetMessages(r.Context())
	if err != nil {
		fail(w, err, "fetch messages")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Messages retrieved successfully",
		Data:    messages,
	})
}

// GET /api/admin/messages/{id}
// GetMessage godoc
// @Summary Get a contact message
// @Tags Admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} utils.Payload{data=models.Message}
// @Failure 404 {object} utils.Payload "Message not found"
// @Router /api/admin/messages/{id} [get]
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	message, err := h.Store.GetMessageByID(r.Context(), id)
	if err != nil {
		fail(w, err, "fetch message")
		return
	}
	if message == nil {
		utils.Error(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Message retrieved successfully",
		Data:    message,
	})
}

// PATCH /api/admin/messages/{id}/read
// MarkMessageAsRead godoc
// @Summary Mark a message as read
// @Tags Admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Message not found"
// @Router /api/admin/messages/{id}/read [patch]
func (h *Handler) MarkMessageAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	updated, err := h.Store.MarkMessageAsRead(r.Context(), id)
	if err != nil {
		fail(w, err, "update message")
		return
	}
	if !updated {
		utils.Error(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Message marked as read",
	})
}

// DELETE /api/admin/messages/{id}
// DeleteMessage godoc
// @Summary Delete a message
// @Tags Admin
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Message not found"
// @Router /api/admin/messages/{id} [delete]
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Store.DeleteMessage(r.Context(), id)
	if err != nil {
		fail(w, err, "delete message")
		return
	}
	if !deleted {
		utils.Error(w, http.StatusNotFound, "Message not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Message deleted successfully",
	})
}
