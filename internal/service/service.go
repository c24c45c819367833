// Package service implements the recruitment lifecycle: scoring intake,
// the application and offer state machines, pipelines, interviews and
// onboarding checklist generation. Services are stateless; all contention
// is resolved by the store's conditional writes.
package service

import (
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Clock lets tests pin time. Production wiring passes time.Now.
type Clock func() time.Time
