package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tokosinar/posfront/internal/domain"
	"github.com/tokosinar/posfront/internal/invoice"
	"github.com/tokosinar/posfront/internal/workspace"
)

// focus tracks which text input, if any, owns the keyboard. Screen-wide
// shortcut keys are inert while an input is focused.
type focus int

const (
	focusNone focus = iota
	focusSearch
	focusScan
	focusDiscount
	focusNumpad
)

// Model is the bubbletea model for the cashier screen. All sale state lives
// in the workspace; the model owns only cursors, inputs and overlays.
type Model struct {
	ws *workspace.Workspace

	searchInput   textinput.Model
	scanInput     textinput.Model
	discountInput textinput.Model
	numpadInput   textinput.Model
	focus         focus

	productCursor int
	cartCursor    int

	// lastInvoice holds the rendered receipt after a successful checkout
	// until the cashier dismisses it.
	lastInvoice string

	notices []workspace.Notice

	width  int
	height int
}

// New builds the screen around an already-loaded workspace.
func New(ws *workspace.Workspace) Model {
	search := textinput.New()
	search.Placeholder = "cari produk..."
	search.Prompt = "Cari: "
	search.CharLimit = 64

	scan := textinput.New()
	scan.Placeholder = "barcode"
	scan.Prompt = "Scan: "
	scan.CharLimit = 64

	discount := textinput.New()
	discount.Placeholder = "0"
	discount.Prompt = "Diskon: "
	discount.CharLimit = 12

	numpad := textinput.New()
	numpad.Placeholder = "0"
	numpad.Prompt = "Jumlah Bayar: "
	numpad.CharLimit = 12

	return Model{
		ws:            ws,
		searchInput:   search,
		scanInput:     scan,
		discountInput: discount,
		numpadInput:   numpad,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) typing() bool {
	return m.focus != focusNone
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	ctx := context.Background()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The receipt overlay swallows everything until dismissed.
	if m.lastInvoice != "" {
		if key == "esc" || key == "enter" {
			m.lastInvoice = ""
		}
		return m, nil
	}

	// Screen-wide shortcuts first; inert while typing.
	switch workspace.Dispatch(key, m.typing()) {
	case workspace.ActionOpenNumpad:
		m.focus = focusNumpad
		m.numpadInput.SetValue("")
		m.numpadInput.Focus()
		m.ws.OpenNumpad()
		return m.drain(), nil
	case workspace.ActionFinalize:
		if len(m.ws.Carts()) > 0 && m.ws.SelectedCustomer() != nil {
			if tx, err := m.ws.SubmitTransaction(ctx); err == nil {
				m.lastInvoice = invoice.RenderText(invoice.Summarize(*tx))
			}
		}
		return m.drain(), nil
	case workspace.ActionToggleView, workspace.ActionToggleShortcuts:
		_, _ = m.ws.HandleKey(ctx, key, false)
		return m.drain(), nil
	case workspace.ActionCancel:
		_, _ = m.ws.HandleKey(ctx, key, false)
		return m.drain(), nil
	}

	if m.typing() {
		return m.handleInputKey(ctx, key, msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil
	case "s":
		m.focus = focusScan
		m.scanInput.SetValue("")
		m.scanInput.Focus()
		return m, nil
	case "d":
		m.focus = focusDiscount
		m.discountInput.SetValue(m.ws.DiscountInput())
		m.discountInput.Focus()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		if m.ws.View() == workspace.ViewProducts {
			products := m.ws.FilteredProducts()
			if m.productCursor < len(products) {
				_ = m.ws.AddToCart(ctx, products[m.productCursor])
			}
		}
		return m.drain(), nil
	case "+", "=":
		if line, ok := m.selectedCartLine(); ok {
			_ = m.ws.UpdateQuantity(ctx, line.ID, line.Qty+1)
		}
		return m.drain(), nil
	case "-":
		if line, ok := m.selectedCartLine(); ok && line.Qty > 1 {
			_ = m.ws.UpdateQuantity(ctx, line.ID, line.Qty-1)
		}
		return m.drain(), nil
	case "x", "delete":
		if line, ok := m.selectedCartLine(); ok {
			_ = m.ws.RemoveFromCart(ctx, line.ID)
			if m.cartCursor > 0 {
				m.cartCursor--
			}
		}
		return m.drain(), nil
	case "c":
		m.cycleCustomer()
	case "p":
		m.cyclePaymentMethod()
	}

	return m, nil
}

// handleInputKey routes keys into the focused text input, committing on
// enter and blurring on esc.
func (m Model) handleInputKey(ctx context.Context, key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key == "esc" {
		m.blur()
		m.ws.CloseNumpad()
		return m, nil
	}

	if key == "enter" {
		switch m.focus {
		case focusSearch:
			m.ws.SetSearchQuery(m.searchInput.Value())
			m.productCursor = 0
		case focusScan:
			code := strings.TrimSpace(m.scanInput.Value())
			if code != "" {
				_ = m.ws.ScanBarcode(ctx, code)
			}
			m.scanInput.SetValue("")
			m.blur()
			return m.drain(), nil
		case focusDiscount:
			m.ws.SetDiscountInput(strings.TrimSpace(m.discountInput.Value()))
		case focusNumpad:
			value, _ := strconv.ParseInt(strings.TrimSpace(m.numpadInput.Value()), 10, 64)
			m.ws.NumpadConfirm(value)
		}
		m.blur()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		// Live filtering as the query changes.
		m.ws.SetSearchQuery(m.searchInput.Value())
		m.productCursor = 0
	case focusScan:
		m.scanInput, cmd = m.scanInput.Update(msg)
	case focusDiscount:
		m.discountInput, cmd = m.discountInput.Update(msg)
	case focusNumpad:
		m.numpadInput, cmd = m.numpadInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) blur() {
	m.searchInput.Blur()
	m.scanInput.Blur()
	m.discountInput.Blur()
	m.numpadInput.Blur()
	m.focus = focusNone
}

// drain pulls queued workspace notices into the status area, keeping the
// latest few.
func (m Model) drain() Model {
	m.notices = append(m.notices, m.ws.DrainNotices()...)
	if len(m.notices) > 3 {
		m.notices = m.notices[len(m.notices)-3:]
	}
	return m
}

func (m *Model) moveCursor(delta int) {
	if m.ws.View() == workspace.ViewCart {
		n := len(m.ws.Carts())
		m.cartCursor = clamp(m.cartCursor+delta, n)
		return
	}
	n := len(m.ws.FilteredProducts())
	m.productCursor = clamp(m.productCursor+delta, n)
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) selectedCartLine() (domain.CartLine, bool) {
	carts := m.ws.Carts()
	if m.cartCursor >= len(carts) {
		return domain.CartLine{}, false
	}
	return carts[m.cartCursor], true
}

func (m *Model) cycleCustomer() {
	customers := m.ws.Customers()
	if len(customers) == 0 {
		return
	}
	current := m.ws.SelectedCustomer()
	if current == nil {
		m.ws.SelectCustomer(&customers[0])
		return
	}
	for i := range customers {
		if customers[i].ID == current.ID {
			next := (i + 1) % len(customers)
			m.ws.SelectCustomer(&customers[next])
			return
		}
	}
	m.ws.SelectCustomer(&customers[0])
}

func (m *Model) cyclePaymentMethod() {
	options := m.ws.PaymentOptions()
	current := m.ws.PaymentMethod()
	for i := range options {
		if options[i].Value == current {
			next := (i + 1) % len(options)
			m.ws.SetPaymentMethod(options[next].Value)
			return
		}
	}
	m.ws.SetPaymentMethod(options[0].Value)
}
