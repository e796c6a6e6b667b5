package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/faraz1977/ai-visionary/internal/checkout"
	"github.com/faraz1977/ai-visionary/internal/middleware"
	"github.com/faraz1977/ai-visionary/internal/session"
)

// CheckoutQuote prices the PRO plan. The currency defaults from the
// client's resolved country (PK gets PKR) and can be overridden with the
// "currency" query parameter; "annual=true" applies the discount.
func (a *App) CheckoutQuote(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.currentSession(w, r); !ok {
		return
	}
	cur := checkout.CurrencyForCountry(middleware.CountryFromContext(r.Context()))
	if q := r.URL.Query().Get("currency"); q != "" {
		cur = checkout.ParseCurrency(q)
	}
	annual, _ := strconv.ParseBool(r.URL.Query().Get("annual"))
	a.json(w, http.StatusOK, checkout.NewQuote(cur, annual))
}

// CheckoutCharge runs the simulated charge and, on success, applies the
// PRO upgrade and returns the refreshed view state. The request blocks for
// the simulator's processing and confirmation phases.
func (a *App) CheckoutCharge(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}

	if err := a.Checkout.Charge(r.Context(), st); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.error(w, http.StatusRequestTimeout, "charge_aborted", "the charge was interrupted")
			return
		}
		a.domainError(w, err)
		return
	}

	a.Ledger.Upgrade(r.Context(), st.ID)

	var resp struct {
		Account accountDTO `json:"account"`
		View    string     `json:"view"`
	}
	st.With(func(s *session.State) {
		resp.Account = toAccountDTO(s.Account)
		resp.View = string(s.Nav.View)
	})
	a.json(w, http.StatusOK, resp)
}
