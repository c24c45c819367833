package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
)

var log = logrus.New()

// Handlers wires the HTTP surface onto the services. Authentication is the
// gateway's job; it forwards the caller identity in headers and the
// capability check happens here, before any transition runs.
type Handlers struct {
	Jobs         *service.JobService
	RuleSets     *service.RuleSetService
	Applications *service.ApplicationService
	Pipelines    *service.PipelineService
	Interviews   *service.InterviewService
	Offers       *service.OfferService
	Onboarding   *service.OnboardingService
	Authorizer   authz.Authorizer
}

func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", HealthCheck)

	r.POST("/jobs", h.CreateJob)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.GetJob)
	r.POST("/jobs/:id/close", h.CloseJob)
	r.POST("/jobs/:id/rules", h.UpsertRuleSet)
	r.GET("/jobs/:id/rules", h.GetRuleSet)
	r.POST("/jobs/:id/regret", h.SendRegrets)
	r.GET("/jobs/:id/applications", h.ListApplications)
	r.GET("/jobs/:id/applications/export", h.ExportApplications)

	r.POST("/applications/apply", h.Apply)
	r.POST("/applications/apply-resume", h.ApplyWithResume)
	r.GET("/applications/:id", h.GetApplication)
	r.POST("/applications/:id/review", h.ReviewApplication)
	r.POST("/applications/:id/shortlist", h.ShortlistApplication)
	r.POST("/applications/:id/advance", h.AdvanceApplication)
	r.POST("/applications/:id/reject", h.RejectApplication)
	r.POST("/applications/:id/move-stage", h.MoveStage)
	r.GET("/applications/:id/interviews", h.ListInterviews)

	r.POST("/pipelines", h.CreatePipeline)
	r.GET("/pipelines/:id", h.GetPipeline)
	r.POST("/pipelines/:id/reorder", h.ReorderPipeline)

	r.POST("/interviews", h.ScheduleInterview)
	r.POST("/interviews/:id/complete", h.CompleteInterview)
	r.POST("/interviews/:id/cancel", h.CancelInterview)
	r.POST("/interviews/:id/no-show", h.NoShowInterview)

	r.POST("/offers", h.CreateOffer)
	r.GET("/offers/:id", h.GetOffer)
	r.POST("/offers/:id/send", h.SendOffer)
	r.POST("/offers/:id/accept", h.AcceptOffer)
	r.POST("/offers/:id/decline", h.DeclineOffer)
	r.POST("/offers/:id/signature", h.AttachSignature)

	r.POST("/onboarding/tasks", h.CreateOnboardingTask)
	r.GET("/onboarding/tasks", h.ListOnboardingTasks)
	r.POST("/onboarding/tasks/:id/deactivate", h.DeactivateOnboardingTask)
	r.POST("/onboarding/init", h.InitChecklist)
	r.GET("/onboarding/items", h.ListOnboardingItems)
	r.POST("/onboarding/:itemId/complete", h.CompleteOnboardingItem)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// abortErr translates a service error into its HTTP status. Unexpected
// errors are logged and masked.
func abortErr(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	body := gin.H{"error": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(status, body)
}

func actorFrom(c *gin.Context) authz.Actor {
	return authz.Actor{
		UserID: c.GetHeader("X-User-ID"),
		Role:   authz.Role(c.GetHeader("X-User-Role")),
	}
}

// authorize runs the capability check and writes the 403 itself.
func (h *Handlers) authorize(c *gin.Context, action authz.Action) bool {
	if err := h.Authorizer.Can(actorFrom(c), action); err != nil {
		abortErr(c, err)
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
