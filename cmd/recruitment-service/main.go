package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/authz"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/config"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/db"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/handlers"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/notify"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/service"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Migrate(dbConn); err != nil {
		log.Fatal(err)
	}

	st := store.New(dbConn)
	mailer := &notify.LogMailer{Log: log}
	renderer := notify.TemplateRenderer{}
	now := time.Now

	h := &handlers.Handlers{
		Jobs:         service.NewJobService(st.Jobs),
		RuleSets:     service.NewRuleSetService(st.Jobs, st.RuleSets),
		Applications: service.NewApplicationService(st, mailer, renderer, cfg.RegretTmpl, now),
		Pipelines:    service.NewPipelineService(st.Pipelines),
		Interviews:   service.NewInterviewService(st),
		Offers:       service.NewOfferService(st, renderer, now),
		Onboarding:   service.NewOnboardingService(st, now),
		Authorizer:   authz.RoleAuthorizer{},
	}

	r := gin.Default()
	handlers.SetupRoutes(r, h)

	log.Printf("Recruitment Service listening on %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
