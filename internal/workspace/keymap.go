package workspace

import (
	"context"
	"strings"
)

// View selects which panel a narrow screen shows.
type View string

const (
	ViewProducts View = "products"
	ViewCart     View = "cart"
)

// Action is the outcome of a key press.
type Action int

const (
	ActionNone Action = iota
	ActionOpenNumpad
	ActionFinalize
	ActionToggleView
	ActionToggleShortcuts
	ActionCancel
)

// Screen-wide shortcut keys. Lower-cased; Dispatch normalizes.
const (
	KeyOpenNumpad      = "f1"
	KeyFinalize        = "f2"
	KeyToggleView      = "f3"
	KeyToggleShortcuts = "f4"
	KeyCancel          = "esc"
)

// Dispatch maps a single key press to a workspace action. typing reports
// whether focus is inside a text input; every command key is inert there.
func Dispatch(key string, typing bool) Action {
	if typing {
		return ActionNone
	}

	switch strings.ToLower(key) {
	case KeyOpenNumpad:
		return ActionOpenNumpad
	case KeyFinalize:
		return ActionFinalize
	case KeyToggleView:
		return ActionToggleView
	case KeyToggleShortcuts:
		return ActionToggleShortcuts
	case KeyCancel, "escape":
		return ActionCancel
	default:
		return ActionNone
	}
}

// HandleKey dispatches a key press and applies the resulting UI-mode
// transition. Only the finalize command reaches the backend; it is inert
// unless the cart has items and a customer is selected. The applied action is
// returned, ActionNone when the press had no effect.
func (w *Workspace) HandleKey(ctx context.Context, key string, typing bool) (Action, error) {
	action := Dispatch(key, typing)

	switch action {
	case ActionOpenNumpad:
		w.numpadOpen = true
	case ActionFinalize:
		if len(w.carts) == 0 || w.selectedCustomer == nil {
			return ActionNone, nil
		}
		_, err := w.SubmitTransaction(ctx)
		return ActionFinalize, err
	case ActionToggleView:
		if w.view == ViewProducts {
			w.view = ViewCart
		} else {
			w.view = ViewProducts
		}
	case ActionToggleShortcuts:
		w.showShortcuts = !w.showShortcuts
	case ActionCancel:
		w.numpadOpen = false
		w.showShortcuts = false
	}

	return action, nil
}

// UI-mode accessors and direct transitions for pointer-driven surfaces.

func (w *Workspace) View() View          { return w.view }
func (w *Workspace) NumpadOpen() bool    { return w.numpadOpen }
func (w *Workspace) ShortcutsOpen() bool { return w.showShortcuts }

func (w *Workspace) SetView(v View) {
	if v == ViewProducts || v == ViewCart {
		w.view = v
	}
}

func (w *Workspace) OpenNumpad()  { w.numpadOpen = true }
func (w *Workspace) CloseNumpad() { w.numpadOpen = false }

// ShortcutHelp lists the active shortcuts for the help overlay.
func ShortcutHelp() [][2]string {
	return [][2]string{
		{"F1", "Buka Numpad"},
		{"F2", "Selesaikan Transaksi"},
		{"F3", "Toggle Produk/Keranjang"},
		{"F4", "Tampilkan Bantuan"},
		{"Esc", "Tutup Modal"},
	}
}
