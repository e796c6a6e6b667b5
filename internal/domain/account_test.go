package domain

import "testing"

func TestDebit(t *testing.T) {
	tests := []struct {
		name        string
		credits     int
		amount      int
		wantOK      bool
		wantBalance int
	}{
		{name: "exact balance", credits: 5, amount: 5, wantOK: true, wantBalance: 0},
		{name: "partial spend", credits: 5, amount: 2, wantOK: true, wantBalance: 3},
		{name: "insufficient", credits: 1, amount: 2, wantOK: false, wantBalance: 1},
		{name: "zero amount", credits: 5, amount: 0, wantOK: false, wantBalance: 5},
		{name: "negative amount", credits: 5, amount: -3, wantOK: false, wantBalance: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct := &Account{Plan: PlanFree, Credits: tt.credits}
			if got := acct.Debit(tt.amount); got != tt.wantOK {
				t.Fatalf("Debit(%d) = %v, want %v", tt.amount, got, tt.wantOK)
			}
			if acct.Credits != tt.wantBalance {
				t.Fatalf("balance = %d, want %d", acct.Credits, tt.wantBalance)
			}
		})
	}
}

func TestDebitNilAccount(t *testing.T) {
	var acct *Account
	if acct.Debit(1) {
		t.Fatal("Debit on nil account must fail")
	}
}

func TestUpgradeFlatReset(t *testing.T) {
	acct := NewFreeAccount()
	if acct.Plan != PlanFree || acct.Credits != FreeStartingCredits {
		t.Fatalf("unexpected starting account: %+v", acct)
	}

	acct.Upgrade()
	if acct.Plan != PlanPro || acct.Credits != ProCredits {
		t.Fatalf("after upgrade: %+v", acct)
	}

	// Idempotent: a second upgrade yields the same final state.
	acct.Debit(10)
	acct.Upgrade()
	if acct.Plan != PlanPro || acct.Credits != ProCredits {
		t.Fatalf("after second upgrade: %+v", acct)
	}
}

func TestNewFreeAccountIdentity(t *testing.T) {
	acct := NewFreeAccount()
	if acct.Name == "" || acct.Email == "" {
		t.Fatalf("stand-in identity incomplete: %+v", acct)
	}
	if !acct.IsFree() {
		t.Fatal("starting account must be on the free plan")
	}
}
