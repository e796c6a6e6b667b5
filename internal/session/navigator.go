package session

import "github.com/faraz1977/ai-visionary/internal/domain"

// View enumerates the top-level screens.
type View string

const (
	ViewLanding   View = "LANDING"
	ViewDashboard View = "DASHBOARD"
	ViewTool      View = "TOOL_VIEW"
	ViewPayment   View = "PAYMENT"
)

// Navigator selects which top-level screen is active and how "back"
// resolves. The pricing-modal flag is orthogonal to the main state. No
// state is terminal; Landing is initial.
type Navigator struct {
	View         View
	ActiveTool   domain.ToolID
	PricingShown bool
}

// NewNavigator returns a navigator at the initial Landing view.
func NewNavigator() Navigator {
	return Navigator{View: ViewLanding}
}

// LoginSuccess moves Landing to Dashboard. It is the only path into a
// logged-in state.
func (n *Navigator) LoginSuccess() {
	n.View = ViewDashboard
}

// SelectTool records the active tool and opens the tool view. Without an
// account the call is a no-op.
func (n *Navigator) SelectTool(tool domain.ToolID, loggedIn bool) {
	if !loggedIn {
		return
	}
	n.ActiveTool = tool
	n.View = ViewTool
}

// Back resolves by a fixed per-state lookup, not a history stack: two-hop
// histories still land on the table's target for the current state.
func (n *Navigator) Back() {
	switch n.View {
	case ViewTool, ViewPayment:
		n.View = ViewDashboard
	default:
		n.View = ViewLanding
	}
}

// RequestUpgrade shows the pricing modal from any state.
func (n *Navigator) RequestUpgrade() {
	n.PricingShown = true
}

// ClosePricing hides the pricing modal.
func (n *Navigator) ClosePricing() {
	n.PricingShown = false
}

// OpenPayment moves to the checkout screen after a plan was picked from
// the pricing modal.
func (n *Navigator) OpenPayment() {
	n.PricingShown = false
	n.View = ViewPayment
}

// CheckoutComplete returns to the dashboard after a successful charge.
// The account mutation is the session's concern, not the navigator's.
func (n *Navigator) CheckoutComplete() {
	n.View = ViewDashboard
}

// CheckoutCancel is equivalent to Back from the payment screen.
func (n *Navigator) CheckoutCancel() {
	n.Back()
}
