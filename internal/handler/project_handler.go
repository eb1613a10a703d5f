package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/logic"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/middleware"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/model"
	"github.com/alphadeveloper12/Link-Up-sub000/internal/storage"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	draftLogic   *logic.DraftLogic
	store        *storage.Store
}

func NewProjectHandler(projectLogic *logic.ProjectLogic, draftLogic *logic.DraftLogic, store *storage.Store) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: projectLogic,
		draftLogic:   draftLogic,
		store:        store,
	}
}

// CreateProject submits the intake form. A draft token from the
// pre-signup flow fills any field the request leaves empty.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Industry    string   `json:"industry"`
		Skills      []string `json:"skills"`
		Timeline    string   `json:"timeline"`
		Budget      string   `json:"budget"`
		Currency    string   `json:"currency"`
		FileIds     []int64  `json:"fileIds"`
		DraftToken  string   `json:"draftToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.DraftToken != "" {
		draft, err := h.draftLogic.Claim(c.Request.Context(), req.DraftToken)
		if err != nil {
			LogicError(c, err)
			return
		}
		if req.Title == "" {
			req.Title = draft.Name
		}
		if req.Description == "" {
			req.Description = draft.Description
		}
		if req.Industry == "" {
			req.Industry = draft.Industry
		}
		if len(req.Skills) == 0 {
			req.Skills = draft.Skills
		}
		if req.Timeline == "" {
			req.Timeline = draft.Timeline
		}
		if req.Budget == "" {
			req.Budget = draft.Budget
		}
	}

	project, err := h.projectLogic.CreateProject(middleware.UserId(c), &logic.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Industry:    req.Industry,
		Skills:      req.Skills,
		Timeline:    req.Timeline,
		Budget:      req.Budget,
		Currency:    req.Currency,
		FileIds:     req.FileIds,
	})
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "project created", gin.H{
		"project": ToProjectResponse(project),
	})
}

// GetProjects lists the caller's projects with filters and pagination.
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	industry := c.Query("industry")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	projects, total, err := h.projectLogic.GetProjects(status, industry, middleware.UserId(c), page, pageSize)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"projects":   ToProjectResponseList(projects),
		"pagination": newPagination(page, pageSize, total),
	})
}

// GetProject returns one project with milestones and files.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := h.projectLogic.GetProject(id)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"project": ToProjectResponse(project)})
}

// UpdateProject updates the editable subset of fields.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Industry    *string `json:"industry"`
		Timeline    *string `json:"timeline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Industry != nil {
		updates["industry"] = *req.Industry
	}
	if req.Timeline != nil {
		updates["timeline"] = *req.Timeline
	}

	if err := h.projectLogic.UpdateProject(id, middleware.UserId(c), updates); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "project updated", nil)
}

// CancelProject cancels a project that has no funded escrow.
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := h.projectLogic.CancelProject(id, middleware.UserId(c)); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "project cancelled", nil)
}

// UploadFile stores an attachment before project submission. The file is
// bound to a project later, when the intake form is submitted.
func (h *ProjectHandler) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "file field is required")
		return
	}

	stored, err := h.store.Save(fh)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			ErrorResponse(c, http.StatusRequestEntityTooLarge, "file exceeds the size limit")
			return
		}
		LogicError(c, err)
		return
	}

	file := &model.ProjectFileModel{
		UserId:      middleware.UserId(c),
		FileName:    stored.OriginalName,
		StoredName:  stored.StoredName,
		ContentType: stored.ContentType,
		SizeBytes:   stored.SizeBytes,
		PublicURL:   stored.PublicURL,
	}
	if err := h.projectLogic.RegisterFile(file); err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "file uploaded", gin.H{"file": ToFileResponse(file)})
}

// GetProjectStats returns escrow progress for one project.
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid project id")
		return
	}

	stats, err := h.projectLogic.GetProjectStats(id)
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": stats})
}

// GetAllProjectStats returns marketplace-wide aggregates, admin only.
func (h *ProjectHandler) GetAllProjectStats(c *gin.Context) {
	stats, err := h.projectLogic.GetAllProjectStats()
	if err != nil {
		LogicError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": stats})
}
