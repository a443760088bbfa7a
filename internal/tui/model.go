package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/keessnoek/ing-transactie-verwerker/internal/categorize"
	"github.com/keessnoek/ing-transactie-verwerker/internal/common"
	"github.com/keessnoek/ing-transactie-verwerker/internal/model"
	"github.com/keessnoek/ing-transactie-verwerker/internal/service"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/components"
	"github.com/keessnoek/ing-transactie-verwerker/internal/tui/themes"
)

// Model holds the state of the review screen. Every piece of it is
// discarded on reload.
type Model struct {
	backend   service.Backend
	theme     themes.Theme
	pending   *pendingCommit
	panels    components.Panels
	help      help.Model
	keymap    KeyMap
	config    Config
	spinner   spinner.Model
	cards     []components.SuggestionCard
	potential []model.PotentialPattern
	preview   components.PreviewModal
	picker    components.CategoryPicker
	notice    components.Notice
	confirm   components.Confirm
	slot      categorize.ModalSlot
	gen       uint64
	cursor    int
	pickerFor int
	width     int
	height    int
	// reloadAfterNotice defers the post-commit reload until the success
	// notice is dismissed.
	reloadAfterNotice bool
	showHelp          bool
	ready             bool
	quitting          bool
}

// newModel creates a model that has not loaded anything yet.
func newModel(backend service.Backend, cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	return Model{
		backend:   backend,
		config:    cfg,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   s,
		panels:    components.ReviewPanels(),
		preview:   components.NewPreviewModal(cfg.Theme, cfg.Formatter),
		picker:    components.NewCategoryPicker(cfg.Theme),
		notice:    components.NewNotice(cfg.Theme),
		confirm:   components.NewConfirm(cfg.Theme),
		gen:       1,
		pickerFor: -1,
		width:     cfg.Width,
		height:    cfg.Height,
	}
}

// Init starts loading the analysis.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadAnalysis(m.gen))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if next.config.Recorder != nil {
		next.config.Recorder.RecordState(next, msg)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case analysisLoadedMsg:
		return m.handleAnalysisLoaded(msg)

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	case commitDoneMsg:
		return m.handleCommitDone(msg)

	case reloadMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.reload()

	case components.NoticeDismissedMsg:
		if m.reloadAfterNotice {
			m.reloadAfterNotice = false
			return m, m.scheduleReload()
		}
		return m, nil

	case components.ConfirmResultMsg:
		return m.handleConfirmResult(msg)

	case components.CategoryPickedMsg:
		if m.pickerFor >= 0 && m.pickerFor < len(m.cards) {
			m.cards[m.pickerFor].Selector.SelectID(msg.ID)
		}
		m.pickerFor = -1
		return m, nil

	case components.PickerCanceledMsg:
		m.pickerFor = -1
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.panels.Visible(components.PanelLoading) {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// handleKey routes a key press to the top-most layer.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch {
	case m.notice.Visible():
		m.notice, cmd = m.notice.Update(msg)
		return m, cmd

	case m.confirm.Visible():
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd

	case m.picker.Visible():
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case m.showHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil

	case m.preview.IsOpen():
		return m.handlePreviewKey(msg)
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true

	case key.Matches(msg, m.keymap.Reload):
		common.LogInfo("Manual reload requested", nil)
		return m.reload()

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.PrevCategory):
		if card := m.card(m.cursor); card != nil {
			card.Selector.Prev()
		}

	case key.Matches(msg, m.keymap.NextCategory):
		if card := m.card(m.cursor); card != nil {
			card.Selector.Next()
		}

	case key.Matches(msg, m.keymap.PickCategory):
		return m.openPicker(m.cursor)

	case key.Matches(msg, m.keymap.Preview):
		return m.OpenPreview(m.cursor)

	case key.Matches(msg, m.keymap.Categorize):
		return m.Categorize(m.cursor)
	}

	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	active, _ := m.slot.Active()

	switch {
	case key.Matches(msg, m.keymap.Close):
		m.closePreview()
		return m, nil

	case key.Matches(msg, m.keymap.CommitSelected):
		return m.CategorizeSelected()

	case key.Matches(msg, m.keymap.PrevCategory):
		if card := m.card(active.Index); card != nil {
			card.Selector.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keymap.NextCategory):
		if card := m.card(active.Index); card != nil {
			card.Selector.Next()
		}
		return m, nil

	case key.Matches(msg, m.keymap.PickCategory):
		return m.openPicker(active.Index)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// card returns the card at index, or nil.
func (m Model) card(index int) *components.SuggestionCard {
	if index < 0 || index >= len(m.cards) {
		return nil
	}
	return &m.cards[index]
}

func (m Model) handleAnalysisLoaded(msg analysisLoadedMsg) (Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.ready = true
	m.panels.Hide(components.PanelLoading)

	err := msg.err
	if err == nil && msg.analysis == nil {
		err = common.ErrUnexpectedResponse
	}
	if err != nil {
		m.notice.Show(m.config.Reporter.Handle(err, "Load analysis"))
		m.panels.SetText(components.PanelError, common.UserMessage(err))
		m.panels.Show(components.PanelError)
		return m, nil
	}

	a := msg.analysis
	f := m.config.Formatter
	m.panels.SetText(components.PanelUncategorized, f.Count(a.Uncategorized))
	m.panels.SetText(components.PanelCategorized, f.Count(a.Categorized))
	m.panels.Show(components.PanelStatistics)

	if len(a.Suggestions) > 0 {
		m.cards = components.NewSuggestionCards(a.Suggestions, a.Categories)
		m.panels.Show(components.PanelSuggestions)
	}
	if len(a.Potential) > 0 {
		m.potential = a.Potential
		m.panels.Show(components.PanelPotential)
	}
	if a.IsEmpty() {
		m.panels.Show(components.PanelNoSuggestions)
	}

	common.LogInfo("Analysis loaded", common.Fields{
		"suggestions":   len(a.Suggestions),
		"potential":     len(a.Potential),
		"categories":    len(a.Categories),
		"uncategorized": a.Uncategorized,
	})
	return m, nil
}

// OpenPreview opens the preview modal for the card at index and requests
// its matching transactions. It is ignored while another preview is
// loading.
func (m Model) OpenPreview(index int) (Model, tea.Cmd) {
	card := m.card(index)
	if card == nil {
		return m, nil
	}

	ctx := card.ModalContext()
	seq, err := m.slot.Open(ctx)
	if err != nil {
		common.LogInfo("Preview request ignored", common.Fields{"index": index, "reason": err.Error()})
		return m, nil
	}

	cmd := m.preview.Open(ctx.CategoryName)
	return m, tea.Batch(cmd, m.loadPreview(seq, ctx.Patterns))
}

func (m Model) handlePreviewLoaded(msg previewLoadedMsg) (Model, tea.Cmd) {
	// sequence numbers restart with every reload
	if msg.gen != m.gen || !m.slot.Resolve(msg.seq) {
		common.LogDebug("Discarding stale preview result", common.Fields{"gen": msg.gen, "seq": msg.seq})
		return m, nil
	}

	err := msg.err
	if err == nil {
		err = categorize.CheckPreview(msg.resp)
	}
	if err != nil {
		m.config.Reporter.Log(err, "Preview transactions")
		m.preview.ShowEmpty()
		return m, nil
	}

	m.preview.ShowTransactions(msg.resp)
	return m, nil
}

func (m *Model) closePreview() {
	m.slot.Close()
	m.preview.Close()
}

func (m Model) openPicker(index int) (Model, tea.Cmd) {
	card := m.card(index)
	if card == nil {
		return m, nil
	}
	m.pickerFor = index
	return m, m.picker.Open(card.Selector.Options())
}

// Categorize asks to assign the chosen category to every transaction
// matching the patterns of the card at index.
func (m Model) Categorize(index int) (Model, tea.Cmd) {
	card := m.card(index)
	if card == nil || card.Control.IsBusy() {
		return m, nil
	}

	req, err := categorize.WholeGroupRequest(card.Selector, card.Suggestion.Patterns)
	if err != nil {
		m.notice.Show(common.UserMessage(err))
		return m, nil
	}

	m.pending = &pendingCommit{index: index, req: req}
	m.confirm.Ask(categorize.ConfirmPrompt(req))
	return m, nil
}

// CategorizeSelected asks to assign the chosen category to the checked
// rows of the open preview.
func (m Model) CategorizeSelected() (Model, tea.Cmd) {
	active, ok := m.slot.Active()
	var sel categorize.Selector
	if card := m.card(active.Index); ok && card != nil {
		if card.Control.IsBusy() {
			return m, nil
		}
		sel = card.Selector
	}

	req, err := categorize.FilteredRequest(active, ok, sel, m.preview.Selection())
	if err != nil {
		m.notice.Show(common.UserMessage(err))
		return m, nil
	}

	m.pending = &pendingCommit{index: active.Index, req: req, filtered: true}
	m.confirm.Ask(categorize.ConfirmPrompt(req))
	return m, nil
}

func (m Model) handleConfirmResult(msg components.ConfirmResultMsg) (Model, tea.Cmd) {
	p := m.pending
	m.pending = nil
	if p == nil || !msg.Confirmed {
		return m, nil
	}

	if p.filtered {
		m.closePreview()
	}

	card := m.card(p.index)
	if card == nil || !card.Control.Begin() {
		return m, nil
	}
	return m, m.commit(p.index, p.req)
}

func (m Model) handleCommitDone(msg commitDoneMsg) (Model, tea.Cmd) {
	m.notice.Show(msg.outcome.Message)

	if msg.gen != m.gen {
		return m, nil
	}
	if msg.outcome.Reload() {
		m.reloadAfterNotice = true
		return m, nil
	}
	if card := m.card(msg.index); card != nil {
		card.Control.Restore()
	}
	return m, nil
}

// reload discards all state and loads the analysis again.
func (m Model) reload() (Model, tea.Cmd) {
	next := newModel(m.backend, m.config)
	next.gen = m.gen + 1
	next.width = m.width
	next.height = m.height
	next.help.Width = m.width
	return next, tea.Batch(next.spinner.Tick, next.loadAnalysis(next.gen))
}
