// Package tui implements the interactive category review flow. The user
// walks the categorized withdrawals, reassigns the wrong ones, and the
// resulting corrections feed the learned rule store.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harperclay/ledgerdiff/internal/model"
)

// Correction is one user reassignment made during review.
type Correction struct {
	TransactionID string
	Description   string
	Category      string
}

// State represents the current review step.
type State int

const (
	// StatePickTransaction shows the categorized transaction list.
	StatePickTransaction State = iota
	// StatePickCategory shows the category choices for one transaction.
	StatePickCategory
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ECC71"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type txItem struct {
	tx model.Transaction
}

func (i txItem) Title() string {
	return fmt.Sprintf("%s  $%.2f", i.tx.Description, i.tx.Amount)
}

func (i txItem) Description() string {
	name := i.tx.Category
	if cat := model.CategoryByID(i.tx.Category); cat != nil {
		name = cat.Name
	}
	return fmt.Sprintf("%s · %s", i.tx.Date, name)
}

func (i txItem) FilterValue() string { return i.tx.Description }

type catItem struct {
	cat model.Category
}

func (i catItem) Title() string       { return i.cat.Name }
func (i catItem) Description() string { return i.cat.ID }
func (i catItem) FilterValue() string { return i.cat.Name }

// Model holds the review TUI state.
type Model struct {
	transactions []model.Transaction
	corrections  []Correction
	txList       list.Model
	catList      list.Model
	keymap       KeyMap
	selected     *model.Transaction
	state        State
	aborted      bool
	done         bool
}

// NewModel builds the review model over categorized transactions. Deposits
// are excluded; their category is not user-editable.
func NewModel(transactions []model.Transaction) Model {
	withdrawals := make([]model.Transaction, 0, len(transactions))
	txItems := make([]list.Item, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Direction != model.DirectionWithdrawal {
			continue
		}
		withdrawals = append(withdrawals, tx)
		txItems = append(txItems, txItem{tx: tx})
	}

	catItems := make([]list.Item, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		catItems = append(catItems, catItem{cat: cat})
	}

	txList := list.New(txItems, list.NewDefaultDelegate(), 80, 20)
	txList.Title = "Review categories"
	txList.SetShowHelp(false)
	txList.SetShowStatusBar(false)

	catList := list.New(catItems, list.NewDefaultDelegate(), 80, 20)
	catList.Title = "Pick a category"
	catList.SetShowHelp(false)
	catList.SetShowStatusBar(false)
	catList.SetFilteringEnabled(false)

	return Model{
		transactions: withdrawals,
		txList:       txList,
		catList:      catList,
		keymap:       DefaultKeyMap(),
		state:        StatePickTransaction,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.txList.SetSize(msg.Width, msg.Height-4)
		m.catList.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Do not intercept keys while the list filter input is active.
		if m.state == StatePickTransaction && m.txList.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.aborted = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Done):
			if m.state == StatePickTransaction {
				m.done = true
				return m, tea.Quit
			}

		case key.Matches(msg, m.keymap.Back):
			if m.state == StatePickCategory {
				m.state = StatePickTransaction
				m.selected = nil
				return m, nil
			}

		case key.Matches(msg, m.keymap.Select):
			return m.handleSelect()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StatePickTransaction:
		m.txList, cmd = m.txList.Update(msg)
	case StatePickCategory:
		m.catList, cmd = m.catList.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.state {
	case StatePickTransaction:
		item, ok := m.txList.SelectedItem().(txItem)
		if !ok {
			return m, nil
		}
		tx := item.tx
		m.selected = &tx
		m.state = StatePickCategory

	case StatePickCategory:
		item, ok := m.catList.SelectedItem().(catItem)
		if !ok || m.selected == nil {
			return m, nil
		}
		if item.cat.ID != m.selected.Category {
			m.corrections = append(m.corrections, Correction{
				TransactionID: m.selected.ID,
				Description:   m.selected.Description,
				Category:      item.cat.ID,
			})
			m.applyCorrection(m.selected.ID, item.cat.ID)
		}
		m.selected = nil
		m.state = StatePickTransaction
	}
	return m, nil
}

// applyCorrection updates the list entry so the new category shows
// immediately.
func (m *Model) applyCorrection(txID, category string) {
	for i := range m.transactions {
		if m.transactions[i].ID == txID {
			m.transactions[i].Category = category
			break
		}
	}
	for i, it := range m.txList.Items() {
		if item, ok := it.(txItem); ok && item.tx.ID == txID {
			item.tx.Category = category
			m.txList.SetItem(i, item)
			return
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var body string
	switch m.state {
	case StatePickTransaction:
		body = m.txList.View()
	case StatePickCategory:
		header := ""
		if m.selected != nil {
			header = selectedStyle.Render(m.selected.Description) + "\n"
		}
		body = header + m.catList.View()
	}

	help := helpStyle.Render("enter select · esc back · d done · q quit")
	return titleStyle.Render("📒 ledgerdiff review") + "\n" + body + "\n" + help
}

// Corrections returns the reassignments made during the session. Empty when
// the user quit without saving.
func (m Model) Corrections() []Correction {
	if m.aborted {
		return nil
	}
	return m.corrections
}

// Aborted reports whether the user quit without saving.
func (m Model) Aborted() bool {
	return m.aborted
}

