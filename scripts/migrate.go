// scripts/migrate.go
package scripts

import (
	"log"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/config"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/db"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

func Migrate() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	// AutoMigrate adds missing tables, columns and the onboarding
	// (application_id, task_id) unique index.
	if err := store.Migrate(dbConn); err != nil {
		log.Fatal(err)
	}

	log.Println("migrations complete")
}
