package model

import "time"

// Step is the discriminant of the customer's position in the ordering dialogue.
type Step string

const (
	StepWelcome          Step = "WELCOME"
	StepRegisterName     Step = "REGISTER_NAME"
	StepRegisterPIN      Step = "REGISTER_PIN"
	StepLoginPIN         Step = "LOGIN_PIN"
	StepMainMenu         Step = "MAIN_MENU"
	StepBrowseCategories Step = "BROWSE_CATEGORIES"
	StepBrowseProducts   Step = "BROWSE_PRODUCTS"
	StepProductDetail    Step = "PRODUCT_DETAIL"
	StepAddQuantity      Step = "ADD_QUANTITY"
	StepViewCart         Step = "VIEW_CART"
	StepCheckoutPayment  Step = "CHECKOUT_PAYMENT"
	StepMyOrders         Step = "MY_ORDERS"
	StepTrackOrder       Step = "TRACK_ORDER"
)

// Selection carries the transient per-step state of a conversation. Only the
// fields valid for the current step are populated; global resets and every
// list re-render clear it wholesale.
type Selection struct {
	PendingName  string          `json:"pending_name,omitempty"`
	CategoryID   int64           `json:"category_id,omitempty"`
	ProductID    int64           `json:"product_id,omitempty"`
	ProductStock int             `json:"product_stock,omitempty"`
	// ListIndex maps displayed ordinal (1..N) to entity id for the most
	// recently rendered list. Intentionally honored even if the underlying
	// catalog changes, until the next render replaces it.
	ListIndex map[int]int64 `json:"list_index,omitempty"`
}

// Session is the durable per-sender conversation state. Owned exclusively by
// the conversation store; expires after an inactivity window.
type Session struct {
	Step           Step      `json:"step"`
	UserID         *int64    `json:"user_id,omitempty"`
	Selection      Selection `json:"selection"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// NewSession returns a fresh anonymous session at the welcome step.
func NewSession() *Session {
	return &Session{Step: StepWelcome, LastActivityAt: time.Now()}
}

// Authenticated reports whether login or registration has completed.
func (s *Session) Authenticated() bool {
	return s.UserID != nil
}

// ClearSelection drops all transient per-step state.
func (s *Session) ClearSelection() {
	s.Selection = Selection{}
}
