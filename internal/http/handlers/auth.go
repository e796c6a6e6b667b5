package handlers

import (
	"net/http"

	"github.com/faraz1977/ai-visionary/internal/middleware"
	"github.com/faraz1977/ai-visionary/internal/session"
)

type loginResponse struct {
	Token   string     `json:"token"`
	Account accountDTO `json:"account"`
	View    string     `json:"view"`
}

// Login is the simulated sign-in: it always succeeds, hands out the fixed
// starting account, and lands the session on the dashboard.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	st := a.Sessions.Login()

	token, err := middleware.SignSessionToken(a.SessionSecret, st.ID)
	if err != nil {
		a.Sessions.Logout(st.ID)
		a.Logger.Error().Err(err).Msg("auth: sign session token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to establish session")
		return
	}

	a.Ledger.Login(r.Context(), st.ID)

	var resp loginResponse
	st.With(func(s *session.State) {
		resp = loginResponse{
			Token:   token,
			Account: toAccountDTO(s.Account),
			View:    string(s.Nav.View),
		}
	})
	a.json(w, http.StatusOK, resp)
}

// Logout discards the session and everything it held.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	a.Sessions.Logout(st.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in account.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	st, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	var dto accountDTO
	st.With(func(s *session.State) {
		dto = toAccountDTO(s.Account)
	})
	a.json(w, http.StatusOK, dto)
}
