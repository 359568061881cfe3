package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tokosinar/posfront/internal/invoice"
	"github.com/tokosinar/posfront/internal/workspace"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	overlayStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	busyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	totalStyle    = lipgloss.NewStyle().Bold(true)
)

const (
	maxPaneLines = 14
	narrowBreak  = 80
)

func (m Model) View() string {
	if m.lastInvoice != "" {
		return overlayStyle.Render(m.lastInvoice) + "\n" + dimStyle.Render("enter/esc: tutup")
	}
	if m.ws.ShortcutsOpen() {
		return m.shortcutsView()
	}

	header := titleStyle.Render("POSFRONT — Kasir") + "  " + dimStyle.Render("q: keluar  /: cari  s: scan  c: pelanggan  p: metode  d: diskon")

	var body string
	if m.width > 0 && m.width < narrowBreak {
		// Narrow: one panel at a time, F3 toggles.
		if m.ws.View() == workspace.ViewCart {
			body = m.cartPane()
		} else {
			body = m.productsPane()
		}
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.productsPane(), m.cartPane())
	}

	sections := []string{header, body, m.paymentPane(), m.noticesView()}
	if m.focus == focusNumpad {
		sections = append(sections, overlayStyle.Render(m.numpadInput.View()))
	}

	return strings.Join(sections, "\n")
}

func (m Model) productsPane() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Produk") + "\n")
	b.WriteString(m.searchInput.View() + "\n")

	products := m.ws.FilteredProducts()
	if len(products) == 0 {
		b.WriteString(dimStyle.Render("tidak ada produk") + "\n")
	}
	for i, p := range products {
		if i >= maxPaneLines {
			b.WriteString(dimStyle.Render(fmt.Sprintf("... %d lagi", len(products)-i)) + "\n")
			break
		}
		line := fmt.Sprintf("%-24s %10s  stok %d", truncate(p.Title, 24), invoice.FormatPrice(p.SellPrice), p.Stock)
		switch {
		case m.ws.AddingProductID() == p.ID:
			line = busyStyle.Render(line + " ...")
		case p.Stock <= 0:
			line = dimStyle.Render(line)
		}
		if i == m.productCursor && m.ws.View() == workspace.ViewProducts {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(m.scanInput.View())
	return paneStyle.Render(b.String())
}

func (m Model) cartPane() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Keranjang (%d)", m.ws.CartCount())) + "\n")

	carts := m.ws.Carts()
	if len(carts) == 0 {
		b.WriteString(dimStyle.Render("keranjang kosong") + "\n")
	}
	for i, line := range carts {
		row := fmt.Sprintf("%-20s x%-3d %10s", truncate(line.Product.Title, 20), line.Qty, invoice.FormatPrice(line.Subtotal))
		switch line.ID {
		case m.ws.UpdatingLineID(), m.ws.RemovingLineID():
			row = busyStyle.Render(row + " ...")
		}
		if i == m.cartCursor && m.ws.View() == workspace.ViewCart {
			row = cursorStyle.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row + "\n")
	}

	b.WriteString(dimStyle.Render("+/-: qty  x: hapus"))
	return paneStyle.Render(b.String())
}

func (m Model) paymentPane() string {
	customer := "belum dipilih"
	if c := m.ws.SelectedCustomer(); c != nil {
		customer = c.Name
	}

	method := m.ws.PaymentMethod()
	for _, opt := range m.ws.PaymentOptions() {
		if opt.Value == method {
			method = opt.Label
			break
		}
	}

	draft := m.ws.Draft()
	parts := []string{
		"Pelanggan: " + customer,
		"Metode: " + method,
		"Subtotal: " + invoice.FormatPrice(draft.Subtotal),
		"Diskon: " + invoice.FormatPrice(draft.Discount),
		totalStyle.Render("Bayar: " + invoice.FormatPrice(draft.Payable)),
		"Tunai: " + invoice.FormatPrice(draft.Cash),
		"Kembali: " + invoice.FormatPrice(draft.Change),
	}
	if m.ws.Submitting() {
		parts = append(parts, busyStyle.Render("menyimpan..."))
	} else {
		parts = append(parts, dimStyle.Render("F2: selesaikan"))
	}

	return paneStyle.Render(strings.Join(parts, "   "))
}

func (m Model) noticesView() string {
	if len(m.notices) == 0 {
		return dimStyle.Render("F4: bantuan")
	}
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		if n.Level == workspace.NoticeError {
			lines = append(lines, errorStyle.Render("✗ "+n.Message))
		} else {
			lines = append(lines, successStyle.Render("✓ "+n.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) shortcutsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts") + "\n\n")
	for _, entry := range workspace.ShortcutHelp() {
		b.WriteString(fmt.Sprintf("  %-4s %s\n", entry[0], entry[1]))
	}
	b.WriteString("\n" + dimStyle.Render("Esc: tutup"))
	return overlayStyle.Render(b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
