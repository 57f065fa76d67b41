package handlers

import (
	"net/http"

	"github.com/rohits-web03/folio/internal/models"
	"github.com/rohits-web03/folio/internal/utils"
)

// GET /api/projects
// GetProjects godoc
// @Summary List projects
// @Description Returns all projects newest first, optionally filtered by category.
// @Tags Projects
// @Produce json
// @Param category query string false "Category (web, mobile, design)"
// @Success 200 {object} utils.Payload{data=[]models.Project}
// @Failure 500 {object} utils.Payload
// @Router /api/projects [get]
func (h *Handler) GetProjects(w http.ResponseWriter, r *http.Request) {
	var (
		projects []models.Project
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		projects, err = h.Store.GetProjectsByCategory(r.Context(), category)
	} else {
		projects, err = h.Store.GetProjects(r.Context())
	}
	if err != nil {
		fail(w, err, "fetch projects")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Projects retrieved successfully",
		Data:    projects,
	})
}

// GET /api/projects/{id}
// GetProject godoc
// @Summary Get a project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} utils.Payload{data=models.Project}
// @Failure 400 {object} utils.Payload "Invalid id"
// @Failure 404 {object} utils.Payload "Project not found"
// @Router /api/projects/{id} [get]
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	project, err := h.Store.GetProjectByID(r.Context(), id)
	if err != nil {
		fail(w, err, "fetch project")
		return
	}
	if project == nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Project retrieved successfully",
		Data:    project,
	})
}

// POST /api/admin/projects
// CreateProject godoc
// @Summary Create a project
// @Tags Admin
// @Accept json
// @Produce json
// @Param project body models.NewProject true "Project"
// @Success 201 {object} utils.Payload{data=models.Project}
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Router /api/admin/projects [post]
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var input models.NewProject
	if err := utils.DecodeJSON(w, r, &input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	project, err := h.Store.CreateProject(r.Context(), input)
	if err != nil {
		fail(w, err, "create project")
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Project created successfully",
		Data:    project,
	})
}

// PUT /api/admin/projects/{id}
// UpdateProject godoc
// @Summary Update a project
// @Description Applies a partial update; omitted fields are left unchanged.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} utils.Payload{data=models.Project}
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Project not found"
// @Router /api/admin/projects/{id} [put]
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.ProjectPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	project, err := h.Store.UpdateProject(r.Context(), id, patch)
	if err != nil {
		fail(w, err, "update project")
		return
	}
	if project == nil {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Project updated successfully",
		Data:    project,
	})
}

// DELETE /api/admin/projects/{id}
// DeleteProject godoc
// @Summary Delete a project
// @Tags Admin
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Project not found"
// @Router /api/admin/projects/{id} [delete]
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Store.DeleteProject(r.Context(), id)
	if err != nil {
		fail(w, err, "delete project")
		return
	}
	if !deleted {
		utils.Error(w, http.StatusNotFound, "Project not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Project deleted successfully",
	})
}
