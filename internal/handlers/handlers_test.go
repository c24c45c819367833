package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/notify"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))

	st := store.New(db)
	mailer := &notify.LogMailer{Log: log}
	renderer := notify.TemplateRenderer{}
	now := time.Now

	h := &Handlers{
		Jobs:         service.NewJobService(st.Jobs),
		RuleSets:     service.NewRuleSetService(st.Jobs, st.RuleSets),
		Applications: service.NewApplicationService(st, mailer, renderer, "", now),
		Pipelines:    service.NewPipelineService(st.Pipelines),
		Interviews:   service.NewInterviewService(st),
		Offers:       service.NewOfferService(st, renderer, now),
		Onboarding:   service.NewOnboardingService(st, now),
		Authorizer:   authz.RoleAuthorizer{},
	}
	r := gin.New()
	SetupRoutes(r, h)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("X-User-Role", role)
		req.Header.Set("X-User-ID", "test-user")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createJob(t *testing.T, r *gin.Engine) models.JobPosting {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/jobs", gin.H{
		"title":  "Loan Officer",
		"branch": "Nakuru",
		"region": "Rift Valley",
	}, "hr")
	require.Equal(t, http.StatusCreated, w.Code)
	var job models.JobPosting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	return job
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRuleSetEndpointRejectsBadThresholds(t *testing.T) {
	r, _ := newTestServer(t)
	job := createJob(t, r)

	w := doJSON(t, r, http.MethodPost, "/jobs/"+job.ID.String()+"/rules", gin.H{
		"must_have":           []string{"loan"},
		"shortlist_threshold": 10,
		"reject_threshold":    20,
	}, "hr")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyReturnsScoreAndDecision(t *testing.T) {
	r, _ := newTestServer(t)
	job := createJob(t, r)

	w := doJSON(t, r, http.MethodPost, "/jobs/"+job.ID.String()+"/rules", gin.H{
		"must_have":           []string{"loan", "microfinance"},
		"preferred":           []string{"credit"},
		"shortlist_threshold": 35,
		"reject_threshold":    15,
	}, "hr")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/applications/apply", gin.H{
		"job_id":      job.ID,
		"first_name":  "Jane",
		"email":       "jane@example.com",
		"resume_text": "loan officer with microfinance credit experience",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var res service.ApplyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "SHORTLIST", string(res.Decision))
	assert.Equal(t, 45.0, res.Score)
	assert.Equal(t, models.AppShortlisted, res.Application.Status)
}

func TestApplyMissingJobIs404(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/applications/apply", gin.H{
		"job_id":     "6b1af15e-51f7-4f01-b896-4cf7e3f1f8a0",
		"first_name": "Jane",
		"email":      "jane@example.com",
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOfferAcceptTwiceIs409(t *testing.T) {
	r, _ := newTestServer(t)
	job := createJob(t, r)

	w := doJSON(t, r, http.MethodPost, "/applications/apply", gin.H{
		"job_id":      job.ID,
		"first_name":  "Jane",
		"email":       "jane@example.com",
		"resume_text": "anything",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var applied service.ApplyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &applied))

	w = doJSON(t, r, http.MethodPost, "/offers", gin.H{
		"application_id": applied.Application.ID,
		"title":          "Teller",
		"salary":         50000,
		"currency":       "KES",
	}, "hr")
	require.Equal(t, http.StatusCreated, w.Code)
	var offer models.Offer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offer))

	w = doJSON(t, r, http.MethodPost, "/offers/"+offer.ID.String()+"/accept", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/offers/"+offer.ID.String()+"/accept", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOnboardingInitBeforeAcceptanceIs412(t *testing.T) {
	r, _ := newTestServer(t)
	job := createJob(t, r)

	w := doJSON(t, r, http.MethodPost, "/applications/apply", gin.H{
		"job_id":      job.ID,
		"first_name":  "Jane",
		"email":       "jane@example.com",
		"resume_text": "anything",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var applied service.ApplyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &applied))

	w = doJSON(t, r, http.MethodPost, "/onboarding/init", gin.H{
		"application_id": applied.Application.ID,
	}, "hr")
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestForbiddenRoleIs403(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/jobs", gin.H{"title": "Teller"}, "candidate")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMoveStageStaleExpectationIs409(t *testing.T) {
	r, _ := newTestServer(t)
	job := createJob(t, r)

	w := doJSON(t, r, http.MethodPost, "/applications/apply", gin.H{
		"job_id":      job.ID,
		"first_name":  "Jane",
		"email":       "jane@example.com",
		"resume_text": "anything",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var applied service.ApplyResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &applied))

	w = doJSON(t, r, http.MethodPost, "/pipelines", gin.H{
		"name":   "Hiring",
		"stages": []gin.H{{"name": "Screen"}, {"name": "Interview"}},
	}, "hr")
	require.Equal(t, http.StatusCreated, w.Code)
	var p models.Pipeline
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	appID := applied.Application.ID.String()
	w = doJSON(t, r, http.MethodPost, "/applications/"+appID+"/move-stage", gin.H{
		"target_stage_id": p.Stages[0].ID,
	}, "hr")
	require.Equal(t, http.StatusOK, w.Code)

	// Still claiming the application is unstaged.
	w = doJSON(t, r, http.MethodPost, "/applications/"+appID+"/move-stage", gin.H{
		"target_stage_id": p.Stages[1].ID,
	}, "hr")
	assert.Equal(t, http.StatusConflict, w.Code)
}
