package nfchat

import (
	"encoding/json"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// DetailPanel displays one full flow record as pretty-printed JSON. Values
// arrive already normalized, so wide counters render as plain numbers.
type DetailPanel struct {
	flow         map[string]any
	contentLines []string // Rendered content split into lines (cached)

	Width        int
	Height       int
	Focused      bool
	ScrollOffset int // Line offset for scrolling content
}

func NewDetailPanel() DetailPanel {
	return DetailPanel{}
}

// computeContentLines renders the record as JSON and splits into lines
func (pnl *DetailPanel) computeContentLines() {

	if pnl.flow == nil {
		pnl.contentLines = nil
		return
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err := encoder.Encode(pnl.flow)
	if err != nil {
		pnl.contentLines = []string{"Error pretty-printing JSON: " + err.Error()}
		return
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	pnl.contentLines = strings.Split(content, "\n")
}

func (pnl DetailPanel) Update(msg tea.Msg) (DetailPanel, tea.Cmd) {

	switch msg := msg.(type) {

	case flowMsg:
		pnl.flow = msg.data
		pnl.computeContentLines()
		pnl.ScrollOffset = 0

	case tea.KeyPressMsg:
		if !pnl.Focused {
			return pnl, nil
		}

		switch msg.String() {
		case "up", "k":
			if pnl.ScrollOffset > 0 {
				pnl.ScrollOffset--
			}

		case "down", "j":
			// Only allow scrolling if content exceeds viewport
			if pnl.Height > 0 && len(pnl.contentLines) > pnl.Height {
				maxScroll := len(pnl.contentLines) - pnl.Height
				if pnl.ScrollOffset < maxScroll {
					pnl.ScrollOffset++
				}
			}
		}

	case tea.WindowSizeMsg:
		pnl.Width = msg.Width
		pnl.Height = msg.Height
		pnl.ScrollOffset = 0
	}

	return pnl, nil
}

// Render renders the detail view (pure - no state mutation)
func (pnl DetailPanel) Render() string {
	if pnl.contentLines == nil {
		return "Loading full record..."
	}

	// Show visible portion based on scroll offset and height
	visibleLines := pnl.contentLines[pnl.ScrollOffset:]
	if pnl.Height > 0 && len(visibleLines) > pnl.Height {
		visibleLines = visibleLines[:pnl.Height]
	}

	return strings.Join(visibleLines, "\n")
}
