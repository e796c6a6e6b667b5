package session

import (
	"testing"

	"github.com/faraz1977/ai-visionary/internal/domain"
)

func TestLoginEstablishesDashboardSession(t *testing.T) {
	m := NewManager()
	st := m.Login()
	if st.ID == "" {
		t.Fatal("session id missing")
	}
	if st.Account == nil || st.Account.Credits != domain.FreeStartingCredits || st.Account.Plan != domain.PlanFree {
		t.Fatalf("starting account: %+v", st.Account)
	}
	if st.Nav.View != ViewDashboard {
		t.Fatalf("view = %s, want %s", st.Nav.View, ViewDashboard)
	}

	got, err := m.Get(st.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != st {
		t.Fatal("Get() returned a different session")
	}
}

func TestLogoutDiscardsSession(t *testing.T) {
	m := NewManager()
	st := m.Login()
	m.Logout(st.ID)
	if _, err := m.Get(st.ID); err == nil {
		t.Fatal("expected error after logout")
	}
	if m.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", m.Count())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager()
	a := m.Login()
	b := m.Login()

	a.With(func(s *State) { s.Account.Debit(2) })

	if b.Account.Credits != domain.FreeStartingCredits {
		t.Fatalf("session b credits = %d, want %d", b.Account.Credits, domain.FreeStartingCredits)
	}
}
