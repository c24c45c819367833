package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/utils"
)

func (h *Handlers) Apply(c *gin.Context) {
	var in service.ApplyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Applications.Apply(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ApplyWithResume is the multipart variant: the candidate uploads a PDF
// resume, we validate it, extract its text and run the same intake path.
func (h *Handlers) ApplyWithResume(c *gin.Context) {
	jobID, err := uuid.Parse(c.PostForm("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required"})
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF resumes are supported"})
		return
	}

	if err := os.MkdirAll("uploads", 0o755); err != nil {
		abortErr(c, err)
		return
	}
	path := filepath.Join("uploads", uuid.NewString()+".pdf")
	if err := c.SaveUploadedFile(file, path); err != nil {
		abortErr(c, err)
		return
	}
	defer os.Remove(path)

	text, err := utils.ExtractResumeText(path)
	if err != nil {
		log.WithError(err).Warn("resume extraction failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read PDF resume"})
		return
	}

	in := service.ApplyInput{
		JobID:      jobID,
		FirstName:  c.PostForm("first_name"),
		LastName:   c.PostForm("last_name"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		ResumeText: text,
	}
	if in.FirstName == "" || in.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first_name and email are required"})
		return
	}
	res, err := h.Applications.Apply(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) GetApplication(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.Applications.Get(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handlers) ReviewApplication(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.Applications.Review(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handlers) ShortlistApplication(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	app, err := h.Applications.Shortlist(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type advanceRequest struct {
	ExpectedStatus models.ApplicationStatus `json:"expected_status" binding:"required"`
}

func (h *Handlers) AdvanceApplication(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app, err := h.Applications.Advance(c.Request.Context(), id, req.ExpectedStatus)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type rejectRequest struct {
	ExpectedStatus models.ApplicationStatus `json:"expected_status" binding:"required"`
	Reason         string                   `json:"reason" binding:"required"`
}

func (h *Handlers) RejectApplication(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app, err := h.Applications.Reject(c.Request.Context(), id, req.ExpectedStatus, req.Reason)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type moveStageRequest struct {
	ExpectedStageID *uuid.UUID `json:"expected_stage_id"`
	TargetStageID   *uuid.UUID `json:"target_stage_id"`
}

func (h *Handlers) MoveStage(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req moveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app, err := h.Applications.MoveStage(c.Request.Context(), id, req.ExpectedStageID, req.TargetStageID)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handlers) ListInterviews(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageInterviews) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ivs, err := h.Interviews.ListByApplication(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ivs)
}
