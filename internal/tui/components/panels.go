package components

// PanelID names a region of the screen whose visibility or text the
// workflow controls.
type PanelID string

// Review screen panels.
const (
	PanelLoading       PanelID = "loading"
	PanelStatistics    PanelID = "statistics"
	PanelUncategorized PanelID = "uncategorizedCount"
	PanelCategorized   PanelID = "categorizedCount"
	PanelSuggestions   PanelID = "suggestions"
	PanelPotential     PanelID = "potential"
	PanelNoSuggestions PanelID = "noSuggestions"
	PanelError         PanelID = "error"
)

// Preview modal panels.
const (
	PanelPreviewTitle        PanelID = "previewTitle"
	PanelPreviewLoading      PanelID = "previewLoading"
	PanelPreviewCount        PanelID = "previewCount"
	PanelPreviewControls     PanelID = "previewControls"
	PanelPreviewTransactions PanelID = "previewTransactions"
	PanelPreviewEmpty        PanelID = "previewEmpty"
)

type panel struct {
	text    string
	visible bool
}

// Panels tracks visibility and text per panel id. Operations on ids that
// were not registered are ignored, and every operation is idempotent.
type Panels struct {
	panels map[PanelID]*panel
}

// NewPanels registers ids, all hidden and empty.
func NewPanels(ids ...PanelID) Panels {
	p := Panels{panels: make(map[PanelID]*panel, len(ids))}
	for _, id := range ids {
		p.panels[id] = &panel{}
	}
	return p
}

// ReviewPanels returns the panels of the review screen with the loading
// panel shown.
func ReviewPanels() Panels {
	p := NewPanels(
		PanelLoading,
		PanelStatistics,
		PanelUncategorized,
		PanelCategorized,
		PanelSuggestions,
		PanelPotential,
		PanelNoSuggestions,
		PanelError,
	)
	p.Show(PanelLoading)
	return p
}

// Show makes id visible.
func (p Panels) Show(id PanelID) {
	if pn, ok := p.panels[id]; ok {
		pn.visible = true
	}
}

// Hide makes id invisible.
func (p Panels) Hide(id PanelID) {
	if pn, ok := p.panels[id]; ok {
		pn.visible = false
	}
}

// SetText replaces the text of id.
func (p Panels) SetText(id PanelID, text string) {
	if pn, ok := p.panels[id]; ok {
		pn.text = text
	}
}

// Visible reports whether id is shown.
func (p Panels) Visible(id PanelID) bool {
	pn, ok := p.panels[id]
	return ok && pn.visible
}

// Text returns the text of id.
func (p Panels) Text(id PanelID) string {
	if pn, ok := p.panels[id]; ok {
		return pn.text
	}
	return ""
}
