package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/apperr"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/notify"
	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/store"
)

type OfferService struct {
	applications store.ApplicationStore
	jobs         store.JobStore
	offers       store.OfferStore
	renderer     notify.Renderer
	now          Clock
}

func NewOfferService(st *store.Store, renderer notify.Renderer, now Clock) *OfferService {
	return &OfferService{
		applications: st.Applications,
		jobs:         st.Jobs,
		offers:       st.Offers,
		renderer:     renderer,
		now:          now,
	}
}

type CreateOfferInput struct {
	ApplicationID uuid.UUID  `json:"application_id" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Salary        float64    `json:"salary" binding:"required"`
	Currency      string     `json:"currency" binding:"required"`
	ContractTmpl  string     `json:"contract_template"`
	ExpiresAt     *time.Time `json:"expires_at"`
}

// Create opens a PENDING offer for the application. The contract text is
// the stored template with named placeholders substituted; rendering to a
// signed document happens in an external collaborator.
func (s *OfferService) Create(ctx context.Context, in CreateOfferInput) (*models.Offer, error) {
	if in.Salary <= 0 {
		return nil, apperr.Validation("salary must be positive")
	}
	if strings.TrimSpace(in.Currency) == "" {
		return nil, apperr.Validation("currency is required")
	}
	app, err := s.applications.Get(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.Get(ctx, app.JobID)
	if err != nil {
		return nil, err
	}

	contract := ""
	if in.ContractTmpl != "" {
		contract = s.renderer.Render(in.ContractTmpl, map[string]string{
			"firstName": app.FirstName,
			"lastName":  app.LastName,
			"jobTitle":  in.Title,
			"branch":    job.Branch,
			"region":    job.Region,
			"salary":    formatSalary(in.Salary, in.Currency),
		})
	}

	offer := &models.Offer{
		ApplicationID: in.ApplicationID,
		Title:         strings.TrimSpace(in.Title),
		Salary:        in.Salary,
		Currency:      strings.ToUpper(strings.TrimSpace(in.Currency)),
		Status:        models.OfferPending,
		ContractText:  contract,
		ExpiresAt:     in.ExpiresAt,
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, err
	}
	log.WithFields(map[string]interface{}{"offer_id": offer.ID, "application_id": app.ID}).Info("offer created")
	return offer, nil
}

// Get returns the offer with its effective (lazily expired) status. The
// persisted status column is left alone; expiry is a read-time view.
func (s *OfferService) Get(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	offer, err := s.offers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	offer.Status = offer.EffectiveStatus(s.now())
	return offer, nil
}

// Send moves PENDING→SENT and stamps issuedAt.
func (s *OfferService) Send(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	if err := s.rejectExpired(ctx, id); err != nil {
		return nil, err
	}
	now := s.now()
	return s.offers.TransitionStatus(ctx, id,
		[]models.OfferStatus{models.OfferPending},
		models.OfferSent,
		store.OfferUpdate{IssuedAt: &now})
}

// Accept is legal from PENDING or SENT. A repeat call finds the offer
// already ACCEPTED and fails with Conflict; respondedAt is never rewritten.
func (s *OfferService) Accept(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	return s.respond(ctx, id, models.OfferAccepted)
}

// Decline mirrors Accept into REJECTED.
func (s *OfferService) Decline(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	return s.respond(ctx, id, models.OfferRejected)
}

func (s *OfferService) respond(ctx context.Context, id uuid.UUID, next models.OfferStatus) (*models.Offer, error) {
	if err := s.rejectExpired(ctx, id); err != nil {
		return nil, err
	}
	now := s.now()
	return s.offers.TransitionStatus(ctx, id,
		[]models.OfferStatus{models.OfferPending, models.OfferSent},
		next,
		store.OfferUpdate{RespondedAt: &now})
}

// AttachSignature persists the reference to a captured signature image.
// Capturing the image is the rendering collaborator's job; only an
// accepted offer can carry one.
func (s *OfferService) AttachSignature(ctx context.Context, id uuid.UUID, signatureRef string) (*models.Offer, error) {
	if strings.TrimSpace(signatureRef) == "" {
		return nil, apperr.Validation("signature reference is required")
	}
	offer, err := s.offers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.Status != models.OfferAccepted {
		return nil, apperr.Conflict("signature can only be attached to an accepted offer")
	}
	return s.offers.AttachSignature(ctx, id, signatureRef)
}

func (s *OfferService) rejectExpired(ctx context.Context, id uuid.UUID) error {
	offer, err := s.offers.Get(ctx, id)
	if err != nil {
		return err
	}
	if offer.EffectiveStatus(s.now()) == models.OfferExpired {
		return apperr.Conflict("offer has expired")
	}
	return nil
}

func formatSalary(amount float64, currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency)) + " " + strconv.FormatFloat(amount, 'f', -1, 64)
}
