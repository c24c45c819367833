package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
)

func (h *Handlers) CreateOnboardingTask(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	var in service.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.Onboarding.CreateTask(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handlers) ListOnboardingTasks(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	tasks, err := h.Onboarding.ListTasks(c.Request.Context())
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handlers) DeactivateOnboardingTask(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Onboarding.DeactivateTask(c.Request.Context(), id); err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

type initChecklistRequest struct {
	ApplicationID uuid.UUID `json:"application_id" binding:"required"`
}

func (h *Handlers) InitChecklist(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	var req initChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.Onboarding.InitChecklist(c.Request.Context(), req.ApplicationID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) ListOnboardingItems(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	appID, err := uuid.Parse(c.Query("application_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application_id"})
		return
	}
	items, err := h.Onboarding.ListItems(c.Request.Context(), appID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type completeItemRequest struct {
	EvidenceRef string `json:"evidence_ref"`
}

func (h *Handlers) CompleteOnboardingItem(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOnboarding) {
		return
	}
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req completeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.Onboarding.Complete(c.Request.Context(), id, req.EvidenceRef)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
