package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"

	"stockroom/internal/model"
	"stockroom/internal/sales"
	"stockroom/internal/util"
)

type catalogLoadedMsg struct {
	products []model.Product
	err      error
}

// SalesFormModel records a new sale.
type SalesFormModel struct {
	source   DataSource
	fields   fieldSet
	products []model.Product
	byName   map[string]string
	loading  bool
	saving   bool
	spinner  spinner.Model
	suggest  suggestions
	err      string
}

// NewSalesFormModel creates the sales order form. When products is empty
// the catalogue is fetched from source first.
func NewSalesFormModel(source DataSource, products []model.Product, now time.Time) *SalesFormModel {
	fs := newFieldSet(
		newField("date", "Date *", "YYYY-MM-DD", 10),
		newField("productName", "Product *", "Start typing a product name...", 100),
		newField("quantity", "Quantity *", "1", 6),
		newField("price", "Unit price *", "0.00", 12),
		newField("discount", "Discount % (optional)", "0", 6),
		newField("promotion", "Promotion? (y/n)", "n", 3),
	)
	fs.setValue("date", sales.Today(now))
	fs.focus(fs.index("productName"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &SalesFormModel{source: source, fields: fs, spinner: sp}
	if len(products) > 0 {
		m.setProducts(products)
	} else {
		m.loading = true
	}
	return m
}

// Init starts the catalogue fetch when one is needed.
func (m *SalesFormModel) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	src := m.source
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		products, err := src.ListProducts(ctx)
		return catalogLoadedMsg{products: products, err: err}
	})
}

func (m *SalesFormModel) setProducts(products []model.Product) {
	m.products = products
	m.byName = make(map[string]string, len(products))
	names := make([]string, len(products))
	fold := cases.Fold()
	for i, p := range products {
		names[i] = p.Name
		m.byName[fold.String(p.Name)] = p.ID
	}
	m.suggest.setOptions(names)
}

func (m *SalesFormModel) product(id string) (model.Product, bool) {
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// pick fills the product name and its list price.
func (m *SalesFormModel) pick(name string) {
	m.fields.setValue("productName", name)
	if id, ok := lookupFold(m.byName, name); ok {
		if p, ok := m.product(id); ok {
			m.fields.setValue("price", strconv.FormatFloat(p.UnitPrice, 'f', 2, 64))
		}
	}
	m.fields.nextField()
}

// Update handles all messages.
func (m *SalesFormModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Sprintf("Could not load products: %v", msg.err)
			return nil
		}
		m.setProducts(msg.products)
		return nil
	case spinner.TickMsg:
		if !m.loading && !m.saving {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case model.ErrorMsg:
		m.saving = false
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.saving {
		return nil
	}

	if m.fields.focusedKey() == "productName" {
		if picked, handled := m.suggest.handleKey(keyMsg); handled {
			if picked != "" {
				m.pick(picked)
			}
			return nil
		}
	}

	cmd, action := m.fields.handleKey(keyMsg)
	switch action {
	case formSave:
		return m.save()
	case formMoved, formCancel:
		m.suggest.close()
		return cmd
	}

	if m.fields.focusedKey() == "productName" {
		m.suggest.update(m.fields.value("productName"))
	}
	return cmd
}

func (m *SalesFormModel) input() sales.Input {
	return sales.Input{
		Date:        m.fields.value("date"),
		ProductName: m.fields.value("productName"),
		Quantity:    m.fields.value("quantity"),
		Price:       m.fields.value("price"),
		Discount:    m.fields.value("discount"),
	}
}

func parseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no", "0":
		return false, true
	case "y", "yes", "1":
		return true, true
	}
	return false, false
}

func (m *SalesFormModel) save() tea.Cmd {
	in := m.input()
	promo, promoOK := parseYesNo(m.fields.value("promotion"))
	in.Promotion = promo

	rec, errs := sales.Validate(in, func(name string) (string, bool) {
		return lookupFold(m.byName, name)
	})
	errs.Check(promoOK, "promotion", "Use y or n")
	m.fields.errs = errs
	if errs.Len() > 0 {
		m.fields.focusFirstError()
		return nil
	}

	m.saving = true
	m.err = ""
	src := m.source
	local := isLocal(src)
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		saved, err := src.CreateSalesRecord(ctx, rec)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to record sale: %w", err)}
		}
		return model.SalesRecordSavedMsg{Record: saved, Local: local}
	})
}

// preview is the running order total, or "" while the inputs do not parse.
func (m *SalesFormModel) preview() string {
	q, err := strconv.Atoi(strings.TrimSpace(m.fields.value("quantity")))
	if err != nil {
		return ""
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(m.fields.value("price")), 64)
	if err != nil {
		return ""
	}
	var d float64
	if s := strings.TrimSpace(m.fields.value("discount")); s != "" {
		if d, err = strconv.ParseFloat(s, 64); err != nil {
			return ""
		}
	}
	return util.FormatMoney(sales.Total(q, p, d))
}

// View renders the form.
func (m *SalesFormModel) View(width, height int) string {
	fields := m.fields.view()
	if i := m.fields.index("productName"); i >= 0 {
		switch {
		case m.loading:
			fields[i] = lipgloss.JoinVertical(lipgloss.Left, fields[i],
				HelpDescStyle.Render(m.spinner.View()+" Loading products..."))
		case m.fields.focused == i && m.suggest.open:
			fields[i] = lipgloss.JoinVertical(lipgloss.Left, fields[i], m.suggest.view(min(50, width-8)))
		}
	}

	var footer []string
	if total := m.preview(); total != "" {
		footer = append(footer, LabelStyle.Render("Total: ")+total)
	}
	if m.saving {
		footer = append(footer, HelpDescStyle.Render(m.spinner.View()+" Saving to "+sourceLabel(m.source)+"..."))
	}
	if m.err != "" {
		footer = append(footer, ErrorStyle.Render(m.err))
	}
	return renderFormPanel("New sales order", fields, strings.Join(footer, "\n"), width, height)
}
