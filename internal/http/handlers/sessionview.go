package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/session"
)

type viewStateDTO struct {
	View         string     `json:"view"`
	ActiveTool   string     `json:"active_tool,omitempty"`
	PricingModal bool       `json:"pricing_modal"`
	Account      accountDTO `json:"account"`
}

type navigateRequest struct {
	Action string `json:"action"`
	Tool   string `json:"tool,omitempty"`
}

// Navigation actions accepted by SessionNavigate.
const (
	actionBack           = "back"
	actionSelectTool     = "select-tool"
	actionRequestUpgrade = "request-upgrade"
	actionClosePricing   = "close-pricing"
	actionOpenPayment    = "open-payment"
	actionCheckoutCancel = "checkout-cancel"
)

// SessionState returns the current view state.
func (a *App) SessionState(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, a.viewState(st))
}

// SessionNavigate applies one navigator transition. Unknown actions are
// rejected; "back" resolves purely from the current view.
func (a *App) SessionNavigate(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	var badAction, badTool bool
	st.With(func(s *session.State) {
		switch req.Action {
		case actionBack:
			s.Nav.Back()
		case actionSelectTool:
			tool, ok := domain.ParseToolID(req.Tool)
			if !ok {
				badTool = true
				return
			}
			s.Nav.SelectTool(tool, s.Account != nil)
		case actionRequestUpgrade:
			s.Nav.RequestUpgrade()
		case actionClosePricing:
			s.Nav.ClosePricing()
		case actionOpenPayment:
			s.Nav.OpenPayment()
		case actionCheckoutCancel:
			s.Nav.CheckoutCancel()
		default:
			badAction = true
		}
	})
	if badAction {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown navigation action")
		return
	}
	if badTool {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown tool")
		return
	}
	a.json(w, http.StatusOK, a.viewState(st))
}

func (a *App) viewState(st *session.State) viewStateDTO {
	var dto viewStateDTO
	st.With(func(s *session.State) {
		dto = viewStateDTO{
			View:         string(s.Nav.View),
			ActiveTool:   string(s.Nav.ActiveTool),
			PricingModal: s.Nav.PricingShown,
			Account:      toAccountDTO(s.Account),
		}
	})
	return dto
}
