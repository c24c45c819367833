package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
)

func (h *Handlers) CreatePipeline(c *gin.Context) {
	if !h.authorize(c, authz.ActionManagePipelines) {
		return
	}
	var in service.CreatePipelineInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.Pipelines.Create(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handlers) GetPipeline(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Pipelines.Get(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type reorderRequest struct {
	StageIDs []uuid.UUID `json:"stage_ids" binding:"required,min=1"`
}

func (h *Handlers) ReorderPipeline(c *gin.Context) {
	if !h.authorize(c, authz.ActionManagePipelines) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.Pipelines.Reorder(c.Request.Context(), id, req.StageIDs)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handlers) ScheduleInterview(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageInterviews) {
		return
	}
	var in service.ScheduleInterviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	iv, err := h.Interviews.Schedule(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

type interviewFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (h *Handlers) CompleteInterview(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageInterviews) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req interviewFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	iv, err := h.Interviews.Complete(c.Request.Context(), id, req.Feedback)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *Handlers) CancelInterview(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageInterviews) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	iv, err := h.Interviews.Cancel(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *Handlers) NoShowInterview(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageInterviews) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	iv, err := h.Interviews.NoShow(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, iv)
}

func (h *Handlers) CreateOffer(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOffers) {
		return
	}
	var in service.CreateOfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offer, err := h.Offers.Create(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

func (h *Handlers) GetOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.Offers.Get(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handlers) SendOffer(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOffers) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.Offers.Send(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handlers) AcceptOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.Offers.Accept(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *Handlers) DeclineOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.Offers.Decline(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

type signatureRequest struct {
	SignatureRef string `json:"signature_ref" binding:"required"`
}

func (h *Handlers) AttachSignature(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageOffers) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req signatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offer, err := h.Offers.AttachSignature(c.Request.Context(), id, req.SignatureRef)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}
