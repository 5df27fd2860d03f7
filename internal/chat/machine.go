package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
)

// Facade is the application capability surface the state machine drives.
type Facade interface {
	CustomerByPhone(ctx context.Context, phone string) (*model.User, error)
	RegisterCustomer(ctx context.Context, phone, name, pin string) (*model.User, error)
	AuthenticateCustomer(ctx context.Context, phone, pin string) (*model.User, error)
	Categories(ctx context.Context) ([]model.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	AddToCart(ctx context.Context, userID, productID int64, quantity int) error
	CartContents(ctx context.Context, userID int64) (*model.CartContents, error)
	Checkout(ctx context.Context, userID int64, paymentType model.PaymentType) (*usecase.CheckoutResult, error)
	OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	OrderByNumber(ctx context.Context, number string) (*model.Order, error)
}

// Outcome is the result of one transition: the outgoing text and whether the
// session should be dropped (logout).
type Outcome struct {
	Reply      string
	EndSession bool
}

const (
	welcomeText = "Welcome to eTuckshop!\n1. Log in\n2. Register\n\nYou can type menu at any time to start over."

	mainMenuText = "Main menu:\n1. Browse products\n2. View cart\n3. My orders\n4. Track order\n5. Help\n6. Log out"

	helpText = "eTuckshop help:\n- Reply with the number of a menu option.\n- 0 goes back one step.\n- menu returns to the main menu.\n- Orders are paid in cash at pickup or online in advance."

	invalidText = "Sorry, that's not a valid choice."
)

// Machine applies one conversation transition per inbound command. Invalid
// input re-prompts without changing step; any data-access failure is returned
// to the caller with the session untouched.
type Machine struct {
	facade Facade
}

// NewMachine constructs the state machine over the application facade.
func NewMachine(facade Facade) *Machine {
	return &Machine{facade: facade}
}

// Handle runs one transition. It mutates sess in place; the caller persists
// it only when no error is returned.
func (m *Machine) Handle(ctx context.Context, sender string, sess *model.Session, cmd Command) (Outcome, error) {
	// Global overrides apply regardless of the current step.
	switch cmd.Kind {
	case CmdReset:
		return m.reset(sess), nil
	case CmdHelp:
		return Outcome{Reply: helpText}, nil
	}

	if requiresAuth(sess.Step) && !sess.Authenticated() {
		sess.Step = model.StepWelcome
		sess.ClearSelection()
		return Outcome{Reply: welcomeText}, nil
	}

	switch sess.Step {
	case model.StepWelcome:
		return m.welcome(ctx, sender, sess, cmd)
	case model.StepRegisterName:
		return m.registerName(sess, cmd)
	case model.StepRegisterPIN:
		return m.registerPIN(ctx, sender, sess, cmd)
	case model.StepLoginPIN:
		return m.loginPIN(ctx, sender, sess, cmd)
	case model.StepMainMenu:
		return m.mainMenu(ctx, sess, cmd)
	case model.StepBrowseCategories:
		return m.browseCategories(ctx, sess, cmd)
	case model.StepBrowseProducts:
		return m.browseProducts(ctx, sess, cmd)
	case model.StepProductDetail:
		return m.productDetail(ctx, sess, cmd)
	case model.StepAddQuantity:
		return m.addQuantity(ctx, sess, cmd)
	case model.StepViewCart:
		return m.viewCart(ctx, sess, cmd)
	case model.StepCheckoutPayment:
		return m.checkoutPayment(ctx, sess, cmd)
	case model.StepMyOrders:
		return m.backToMenu(sess), nil
	case model.StepTrackOrder:
		return m.trackOrder(ctx, sess, cmd)
	default:
		sess.Step = model.StepWelcome
		sess.ClearSelection()
		return Outcome{Reply: welcomeText}, nil
	}
}

func requiresAuth(step model.Step) bool {
	switch step {
	case model.StepWelcome, model.StepRegisterName, model.StepRegisterPIN, model.StepLoginPIN:
		return false
	}
	return true
}

func (m *Machine) reset(sess *model.Session) Outcome {
	sess.ClearSelection()
	if sess.Authenticated() {
		sess.Step = model.StepMainMenu
		return Outcome{Reply: mainMenuText}
	}
	sess.Step = model.StepWelcome
	return Outcome{Reply: welcomeText}
}

func (m *Machine) backToMenu(sess *model.Session) Outcome {
	sess.Step = model.StepMainMenu
	sess.ClearSelection()
	return Outcome{Reply: mainMenuText}
}

// --- onboarding ---

func (m *Machine) welcome(ctx context.Context, sender string, sess *model.Session, cmd Command) (Outcome, error) {
	switch cmd.Number {
	case 1:
		usr, err := m.facade.CustomerByPhone(ctx, sender)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return Outcome{Reply: "We don't have an account for this number yet. Reply 2 to register."}, nil
			}
			return Outcome{}, err
		}
		sess.Step = model.StepLoginPIN
		return Outcome{Reply: fmt.Sprintf("Hi %s! Enter your 4-digit PIN to log in.", usr.Name)}, nil
	case 2:
		_, err := m.facade.CustomerByPhone(ctx, sender)
		if err == nil {
			return Outcome{Reply: "You already have an account. Reply 1 to log in."}, nil
		}
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return Outcome{}, err
		}
		sess.Step = model.StepRegisterName
		return Outcome{Reply: "Let's get you set up. What's your name?"}, nil
	default:
		return Outcome{Reply: welcomeText}, nil
	}
}

func (m *Machine) registerName(sess *model.Session, cmd Command) (Outcome, error) {
	name := strings.TrimSpace(cmd.Text)
	if len(name) < 2 {
		return Outcome{Reply: "Please tell us your name (at least 2 characters)."}, nil
	}
	sess.Selection.PendingName = name
	sess.Step = model.StepRegisterPIN
	return Outcome{Reply: fmt.Sprintf("Thanks %s! Choose a 4-digit PIN to secure your account.", name)}, nil
}

func (m *Machine) registerPIN(ctx context.Context, sender string, sess *model.Session, cmd Command) (Outcome, error) {
	if !usecase.ValidPIN(cmd.Text) {
		return Outcome{Reply: "Your PIN must be exactly 4 digits. Try again."}, nil
	}
	usr, err := m.facade.RegisterCustomer(ctx, sender, sess.Selection.PendingName, cmd.Text)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			sess.Step = model.StepLoginPIN
			sess.ClearSelection()
			return Outcome{Reply: "An account already exists for this number. Enter your PIN to log in."}, nil
		}
		return Outcome{}, err
	}
	sess.UserID = &usr.ID
	sess.Step = model.StepMainMenu
	sess.ClearSelection()
	return Outcome{Reply: fmt.Sprintf("You're all set, %s!\n\n%s", usr.Name, mainMenuText)}, nil
}

func (m *Machine) loginPIN(ctx context.Context, sender string, sess *model.Session, cmd Command) (Outcome, error) {
	if !usecase.ValidPIN(cmd.Text) {
		return Outcome{Reply: "Your PIN is 4 digits. Try again."}, nil
	}
	usr, err := m.facade.AuthenticateCustomer(ctx, sender, cmd.Text)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			return Outcome{Reply: "That PIN doesn't match. Try again."}, nil
		}
		return Outcome{}, err
	}
	sess.UserID = &usr.ID
	sess.Step = model.StepMainMenu
	sess.ClearSelection()
	return Outcome{Reply: fmt.Sprintf("Welcome back, %s!\n\n%s", usr.Name, mainMenuText)}, nil
}

// --- main menu ---

func (m *Machine) mainMenu(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	switch cmd.Number {
	case 1:
		return m.renderCategories(ctx, sess)
	case 2:
		return m.renderCart(ctx, sess)
	case 3:
		return m.renderOrders(ctx, sess)
	case 4:
		sess.Step = model.StepTrackOrder
		return Outcome{Reply: "Enter your order number (it looks like TS-XXXX-XXXX), or 0 to go back."}, nil
	case 5:
		return Outcome{Reply: helpText}, nil
	case 6:
		return Outcome{Reply: "You've been logged out. Send hi whenever you want to shop again.", EndSession: true}, nil
	default:
		return Outcome{Reply: invalidText + "\n\n" + mainMenuText}, nil
	}
}

// --- browsing ---

func (m *Machine) renderCategories(ctx context.Context, sess *model.Session) (Outcome, error) {
	categories, err := m.facade.Categories(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if len(categories) == 0 {
		sess.Step = model.StepMainMenu
		sess.ClearSelection()
		return Outcome{Reply: "The catalog is empty right now, check back soon.\n\n" + mainMenuText}, nil
	}

	var b strings.Builder
	b.WriteString("Pick a category:\n")
	index := make(map[int]int64, len(categories))
	for i, cat := range categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, cat.Name)
		index[i+1] = cat.ID
	}
	b.WriteString("0. Back")

	sess.Step = model.StepBrowseCategories
	sess.Selection = model.Selection{ListIndex: index}
	return Outcome{Reply: b.String()}, nil
}

func (m *Machine) browseCategories(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	if cmd.Kind == CmdBack {
		return m.backToMenu(sess), nil
	}
	categoryID, ok := sess.Selection.ListIndex[cmd.Number]
	if cmd.Kind != CmdNumber || !ok {
		return Outcome{Reply: "Pick a number from the list, or 0 to go back."}, nil
	}
	return m.renderProducts(ctx, sess, categoryID)
}

func (m *Machine) renderProducts(ctx context.Context, sess *model.Session, categoryID int64) (Outcome, error) {
	products, err := m.facade.ProductsByCategory(ctx, categoryID)
	if err != nil {
		return Outcome{}, err
	}
	if len(products) == 0 {
		return Outcome{Reply: "Nothing in stock there right now. Pick another category, or 0 to go back."}, nil
	}

	var b strings.Builder
	b.WriteString("Pick a product:\n")
	index := make(map[int]int64, len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, p.Name, money(p.Price))
		index[i+1] = p.ID
	}
	b.WriteString("0. Back")

	sess.Step = model.StepBrowseProducts
	sess.Selection = model.Selection{CategoryID: categoryID, ListIndex: index}
	return Outcome{Reply: b.String()}, nil
}

func (m *Machine) browseProducts(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	if cmd.Kind == CmdBack {
		return m.renderCategories(ctx, sess)
	}
	productID, ok := sess.Selection.ListIndex[cmd.Number]
	if cmd.Kind != CmdNumber || !ok {
		return Outcome{Reply: "Pick a number from the list, or 0 to go back."}, nil
	}
	return m.renderProductDetail(ctx, sess, productID)
}

func (m *Machine) renderProductDetail(ctx context.Context, sess *model.Session, productID int64) (Outcome, error) {
	product, err := m.facade.Product(ctx, productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return m.renderProducts(ctx, sess, sess.Selection.CategoryID)
		}
		return Outcome{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", product.Name)
	if product.Description != "" {
		fmt.Fprintf(&b, "%s\n", product.Description)
	}
	fmt.Fprintf(&b, "Price: %s\nIn stock: %d\n\n1. Add to cart\n0. Back", money(product.Price), product.Stock)

	categoryID := sess.Selection.CategoryID
	sess.Step = model.StepProductDetail
	sess.Selection = model.Selection{
		CategoryID:   categoryID,
		ProductID:    product.ID,
		ProductStock: product.Stock,
	}
	return Outcome{Reply: b.String()}, nil
}

func (m *Machine) productDetail(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	switch {
	case cmd.Kind == CmdBack:
		return m.renderProducts(ctx, sess, sess.Selection.CategoryID)
	case cmd.Number == 1:
		sess.Step = model.StepAddQuantity
		return Outcome{Reply: "How many would you like? (1-10)"}, nil
	default:
		return Outcome{Reply: "Reply 1 to add to cart, or 0 to go back."}, nil
	}
}

func (m *Machine) addQuantity(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	if cmd.Kind == CmdBack {
		return m.renderProductDetail(ctx, sess, sess.Selection.ProductID)
	}
	if cmd.Kind != CmdNumber || cmd.Number > usecase.MaxLineQuantity {
		return Outcome{Reply: "Enter a number between 1 and 10."}, nil
	}
	if cmd.Number > sess.Selection.ProductStock {
		return Outcome{Reply: fmt.Sprintf("Only %d left in stock. Choose a smaller quantity.", sess.Selection.ProductStock)}, nil
	}

	product, err := m.facade.Product(ctx, sess.Selection.ProductID)
	if err != nil {
		return Outcome{}, err
	}
	if err := m.facade.AddToCart(ctx, *sess.UserID, product.ID, cmd.Number); err != nil {
		var stockErr domainErrors.InsufficientStockError
		if errors.As(err, &stockErr) {
			return Outcome{Reply: fmt.Sprintf("Only %d of %s left in stock. Choose a smaller quantity.", stockErr.Available, stockErr.ProductName)}, nil
		}
		if errors.Is(err, domainErrors.ErrInvalidQuantity) {
			return Outcome{Reply: "Enter a number between 1 and 10."}, nil
		}
		return Outcome{}, err
	}

	sess.Step = model.StepMainMenu
	sess.ClearSelection()
	return Outcome{Reply: fmt.Sprintf("Added %d x %s to your cart.\n\n%s", cmd.Number, product.Name, mainMenuText)}, nil
}

// --- cart and checkout ---

func (m *Machine) renderCart(ctx context.Context, sess *model.Session) (Outcome, error) {
	contents, err := m.facade.CartContents(ctx, *sess.UserID)
	if err != nil {
		return Outcome{}, err
	}
	if contents.Empty() {
		sess.Step = model.StepMainMenu
		sess.ClearSelection()
		return Outcome{Reply: "Your cart is empty. Browse products to add something.\n\n" + mainMenuText}, nil
	}

	var b strings.Builder
	b.WriteString("Your cart:\n")
	for _, line := range contents.Lines {
		fmt.Fprintf(&b, "- %d x %s = %s\n", line.Quantity, line.Name, money(line.Subtotal().Round(2)))
	}
	fmt.Fprintf(&b, "Total: %s\n\n1. Checkout\n0. Back", money(contents.Total()))

	sess.Step = model.StepViewCart
	sess.ClearSelection()
	return Outcome{Reply: b.String()}, nil
}

func (m *Machine) viewCart(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	switch {
	case cmd.Kind == CmdBack:
		return m.backToMenu(sess), nil
	case cmd.Number == 1:
		sess.Step = model.StepCheckoutPayment
		return Outcome{Reply: "How would you like to pay?\n1. Cash at pickup\n2. Pay online\n0. Back"}, nil
	default:
		return Outcome{Reply: "Reply 1 to checkout, or 0 to go back."}, nil
	}
}

func (m *Machine) checkoutPayment(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	switch {
	case cmd.Kind == CmdBack:
		return m.renderCart(ctx, sess)
	case cmd.Number == 1:
		return m.checkout(ctx, sess, model.PaymentTypeCash)
	case cmd.Number == 2:
		return m.checkout(ctx, sess, model.PaymentTypePrepaid)
	default:
		return Outcome{Reply: "Reply 1 for cash at pickup, 2 to pay online, or 0 to go back."}, nil
	}
}

func (m *Machine) checkout(ctx context.Context, sess *model.Session, paymentType model.PaymentType) (Outcome, error) {
	result, err := m.facade.Checkout(ctx, *sess.UserID, paymentType)
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmptyCart) {
			sess.Step = model.StepMainMenu
			sess.ClearSelection()
			return Outcome{Reply: "Your cart is empty.\n\n" + mainMenuText}, nil
		}
		var stockErr domainErrors.InsufficientStockError
		if errors.As(err, &stockErr) {
			outcome, renderErr := m.renderCart(ctx, sess)
			if renderErr != nil {
				return Outcome{}, renderErr
			}
			outcome.Reply = fmt.Sprintf("Not enough stock for %s — only %d available. Adjust your cart and try again.\n\n%s",
				stockErr.ProductName, stockErr.Available, outcome.Reply)
			return outcome, nil
		}
		return Outcome{}, err
	}

	sess.Step = model.StepMainMenu
	sess.ClearSelection()

	order := result.Order
	var b strings.Builder
	switch paymentType {
	case model.PaymentTypeCash:
		fmt.Fprintf(&b, "Order %s confirmed! Total: %s.\n", order.Number, money(order.Total))
		if result.ArtifactErr != nil || result.Artifact == nil {
			b.WriteString("We couldn't generate your pickup code — your order is safe, please contact the counter with your order number.")
		} else {
			fmt.Fprintf(&b, "Show this code at the counter:\n%s\n", result.Artifact.Payload)
			if result.Artifact.ExpiresAt != nil {
				fmt.Fprintf(&b, "It expires in %d seconds.", int(time.Until(*result.Artifact.ExpiresAt).Seconds()))
			}
		}
	case model.PaymentTypePrepaid:
		fmt.Fprintf(&b, "Order %s created! Total: %s.\n", order.Number, money(order.Total))
		if result.PaymentURL == "" {
			b.WriteString("We couldn't create your payment link — your order is safe, please contact support with your order number.")
		} else {
			fmt.Fprintf(&b, "Complete your payment here:\n%s\nWe'll send your pickup code once payment is confirmed.", result.PaymentURL)
		}
	}
	b.WriteString("\n\n" + mainMenuText)
	return Outcome{Reply: b.String()}, nil
}

// --- orders ---

func (m *Machine) renderOrders(ctx context.Context, sess *model.Session) (Outcome, error) {
	orders, err := m.facade.OrdersByUser(ctx, *sess.UserID)
	if err != nil {
		return Outcome{}, err
	}
	if len(orders) == 0 {
		sess.Step = model.StepMainMenu
		sess.ClearSelection()
		return Outcome{Reply: "You haven't placed any orders yet.\n\n" + mainMenuText}, nil
	}

	var b strings.Builder
	b.WriteString("Your orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "- %s: %s, %s\n", o.Number, money(o.Total), o.Status)
	}
	b.WriteString("\nSend anything to go back to the menu.")

	sess.Step = model.StepMyOrders
	sess.ClearSelection()
	return Outcome{Reply: b.String()}, nil
}

func (m *Machine) trackOrder(ctx context.Context, sess *model.Session, cmd Command) (Outcome, error) {
	if cmd.Kind == CmdBack {
		return m.backToMenu(sess), nil
	}
	number := strings.ToUpper(strings.TrimSpace(cmd.Text))
	order, err := m.facade.OrderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return Outcome{Reply: fmt.Sprintf("We couldn't find order %s. Check the number and try again, or 0 to go back.", number)}, nil
		}
		return Outcome{}, err
	}
	if order.UserID != *sess.UserID {
		return Outcome{Reply: fmt.Sprintf("We couldn't find order %s. Check the number and try again, or 0 to go back.", number)}, nil
	}

	sess.Step = model.StepMainMenu
	sess.ClearSelection()
	return Outcome{Reply: fmt.Sprintf("Order %s: %s. Total %s.\n\n%s", order.Number, order.Status, money(order.Total), mainMenuText)}, nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
