package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/export"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
)

func (h *Handlers) CreateJob(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageJobs) {
		return
	}
	var in service.CreateJobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	job, err := h.Jobs.Create(c.Request.Context(), in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *Handlers) ListJobs(c *gin.Context) {
	jobs, err := h.Jobs.List(c.Request.Context())
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handlers) GetJob(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handlers) CloseJob(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageJobs) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Close(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handlers) UpsertRuleSet(c *gin.Context) {
	if !h.authorize(c, authz.ActionManageRules) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.UpsertRuleSetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rules, err := h.RuleSets.Upsert(c.Request.Context(), id, in)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *Handlers) GetRuleSet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rules, err := h.RuleSets.GetByJob(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *Handlers) SendRegrets(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.Applications.SendRegrets(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handlers) ListApplications(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	apps, err := h.Applications.ListByJob(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *Handlers) ExportApplications(c *gin.Context) {
	if !h.authorize(c, authz.ActionReviewApps) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	apps, err := h.Applications.ListByJob(c.Request.Context(), id)
	if err != nil {
		abortErr(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-%s.xlsx"`, id))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteApplicationsXLSX(c.Writer, job, apps); err != nil {
		log.WithError(err).Error("xlsx export failed")
	}
}
