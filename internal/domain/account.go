package domain

// Plan enumerates billing plans.
type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

const (
	// FreeStartingCredits is granted to every account at login.
	FreeStartingCredits = 5
	// ProCredits is the flat balance an account holds after an upgrade.
	ProCredits = 1000
)

// Account represents the signed-in identity for one session. It lives only
// in memory and is discarded at logout.
type Account struct {
	Name    string
	Email   string
	Plan    Plan
	Credits int
}

// NewFreeAccount returns the stand-in identity the mock login always yields.
func NewFreeAccount() *Account {
	return &Account{
		Name:    "Artist Faraz",
		Email:   "artistfaraz.997@gmail.com",
		Plan:    PlanFree,
		Credits: FreeStartingCredits,
	}
}

// Debit reduces the balance by amount and reports whether it was applied.
// The balance never goes negative: a debit only lands when the pre-debit
// balance covers the full amount. Callers must check the return value
// before treating the work as paid for.
func (a *Account) Debit(amount int) bool {
	if a == nil || amount <= 0 || a.Credits < amount {
		return false
	}
	a.Credits -= amount
	return true
}

// Upgrade moves the account to PRO with a flat credit reset. Unused free
// credits are not preserved; applying it twice yields the same state.
func (a *Account) Upgrade() {
	if a == nil {
		return
	}
	a.Plan = PlanPro
	a.Credits = ProCredits
}

// IsFree reports whether the account is on the free plan.
func (a *Account) IsFree() bool {
	return a != nil && a.Plan == PlanFree
}
