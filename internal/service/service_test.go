package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/notify"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps in-memory sqlite honest under concurrent tests.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, store.Migrate(db))
	return store.New(db)
}

// fakeMailer records sends and fails for any address listed in failFor.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]bool)}
}

func (m *fakeMailer) SendMessage(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return fmt.Errorf("smtp refused %s", to)
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

// fixedClock pins the service time; tests advance it by swapping the value.
type fixedClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

func (c *fixedClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = at
}

func newFixture(t *testing.T) (*store.Store, *fakeMailer, *fixedClock) {
	st := newTestStore(t)
	mailer := newFakeMailer()
	clock := &fixedClock{at: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	return st, mailer, clock
}

func newApplicationService(st *store.Store, mailer *fakeMailer, clock *fixedClock) *ApplicationService {
	return NewApplicationService(st, mailer, notify.TemplateRenderer{}, "", clock.Now)
}

func seedJob(t *testing.T, st *store.Store) *models.JobPosting {
	t.Helper()
	job := &models.JobPosting{
		Title:       "Loan Officer",
		Description: "Microfinance lending role",
		Branch:      "Nakuru",
		Region:      "Rift Valley",
		Status:      models.JobActive,
	}
	require.NoError(t, st.Jobs.Create(context.Background(), job))
	return job
}

func seedRules(t *testing.T, st *store.Store, job *models.JobPosting, autoRegret bool) *models.RuleSet {
	t.Helper()
	rules := &models.RuleSet{
		JobID:              job.ID,
		MustHave:           []string{"loan", "microfinance"},
		Preferred:          []string{"credit"},
		ShortlistThreshold: 35,
		RejectThreshold:    15,
		AutoRegret:         autoRegret,
	}
	require.NoError(t, st.RuleSets.Upsert(context.Background(), rules))
	return rules
}
