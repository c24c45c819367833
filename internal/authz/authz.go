// Package authz is the capability-check collaborator. Handlers consult it
// before invoking a transition; the services themselves never re-derive the
// caller's role.
package authz

import (
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleHR        Role = "hr"
	RoleCandidate Role = "candidate"
)

type Action string

const (
	ActionManageJobs       Action = "jobs.manage"
	ActionManageRules      Action = "rules.manage"
	ActionApply            Action = "applications.apply"
	ActionReviewApps       Action = "applications.review"
	ActionManagePipelines  Action = "pipelines.manage"
	ActionManageInterviews Action = "interviews.manage"
	ActionManageOffers     Action = "offers.manage"
	ActionManageOnboarding Action = "onboarding.manage"
)

// Actor is the pre-authenticated caller identity handed in by the gateway.
type Actor struct {
	UserID string
	Role   Role
}

type Authorizer interface {
	Can(actor Actor, action Action) error
}

// RoleAuthorizer grants actions by role. Admin can do everything;
// candidates may only apply.
type RoleAuthorizer struct{}

func (RoleAuthorizer) Can(actor Actor, action Action) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role == RoleHR && action != ActionApply {
		return nil
	}
	if action == ActionApply {
		return nil
	}
	return apperr.Forbidden("role " + string(actor.Role) + " cannot perform " + string(action))
}
