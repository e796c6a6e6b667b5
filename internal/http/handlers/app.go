package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faraz1977/ai-visionary/internal/checkout"
	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/infra"
	"github.com/faraz1977/ai-visionary/internal/ledger"
	"github.com/faraz1977/ai-visionary/internal/middleware"
	"github.com/faraz1977/ai-visionary/internal/session"
	"github.com/faraz1977/ai-visionary/internal/storage"
	"github.com/faraz1977/ai-visionary/internal/workflow"
)

// App bundles the collaborators each handler needs.
type App struct {
	Logger        infra.Logger
	Sessions      *session.Manager
	Workflow      *workflow.Controller
	Checkout      *checkout.Processor
	Ledger        *ledger.Recorder
	Results       *storage.FileStore
	SessionSecret string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error":   code,
		"message": message,
	})
}

// currentSession resolves the authenticated session or writes the 401.
func (a *App) currentSession(w http.ResponseWriter, r *http.Request) (*session.State, bool) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing session context")
		return nil, false
	}
	st, err := a.Sessions.Get(sessionID)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "session expired")
		return nil, false
	}
	return st, true
}

// domainError maps workflow and checkout failures onto HTTP responses.
// Every failure returns control to an interactive, retryable state.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientCredits):
		a.error(w, http.StatusPaymentRequired, "insufficient_credits", "not enough credits; upgrade to continue")
	case errors.Is(err, domain.ErrJobRunning):
		a.error(w, http.StatusConflict, "job_running", "a job is already running for this session")
	case errors.Is(err, domain.ErrChargeInFlight):
		a.error(w, http.StatusConflict, "charge_in_flight", "a charge is already in progress")
	case errors.Is(err, domain.ErrChargeDeclined):
		a.error(w, http.StatusPaymentRequired, "charge_declined", "the payment was declined")
	case errors.Is(err, domain.ErrNoImage):
		a.error(w, http.StatusBadRequest, "no_image", "upload an image first")
	case errors.Is(err, domain.ErrNoResult):
		a.error(w, http.StatusConflict, "no_result", "no processed result to download")
	case errors.Is(err, domain.ErrImageTooLarge):
		a.error(w, http.StatusRequestEntityTooLarge, "image_too_large", "images are limited to 10MB")
	case errors.Is(err, domain.ErrUnsupportedImage):
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_image", "only PNG and JPG images are supported")
	case errors.Is(err, domain.ErrNoImageProduced):
		a.error(w, http.StatusBadGateway, "no_image_produced", "the model returned no edited image")
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "processing_failed", "processing failed, please retry")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "not signed in")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "unknown resource")
	default:
		a.error(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}

type accountDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Plan    string `json:"plan"`
	Credits int    `json:"credits"`
}

func toAccountDTO(acct *domain.Account) accountDTO {
	if acct == nil {
		return accountDTO{}
	}
	return accountDTO{
		Name:    acct.Name,
		Email:   acct.Email,
		Plan:    string(acct.Plan),
		Credits: acct.Credits,
	}
}
