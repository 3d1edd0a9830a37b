package nfchat

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pkg/errors"
)

// Todo: handle cell overflow
// Todo: extend last column to edge of panel

const (
	headerHeight = 2
)

// TablePanel handles the flow table display and navigation state
type TablePanel struct {
	Selected int // Absolute position (0 to Total-1) of selected line
	Offset   int // Offset of page shown
	Total    int // Total flow lines after filtering

	Width   int
	Height  int
	Focused bool

	columns []Column
	table   *table.Table
}

// pageSize returns the number of rows that fit on screen
func (pnl TablePanel) pageSize() int {
	return pnl.Height - headerHeight
}

// selectedLine returns the index of the currently selected line
func (pnl TablePanel) selectedLine() int {
	return pnl.Selected - pnl.Offset
}

func NewTablePanel(columns []Column, fields []Field, count int) TablePanel {

	lgt := table.New()
	styleTable(lgt)

	tablePanel := TablePanel{
		Focused: true,
		table:   lgt,
		Total:   count,
	}

	tablePanel = tablePanel.SetColumns(columns, fields)

	return tablePanel
}

func (pnl TablePanel) SetColumns(columns []Column, fields []Field) TablePanel {

	// Build field index
	idxByName := map[string]int{}
	for i, field := range fields {
		idxByName[field.Name] = i
	}

	// Resolve each column against fields; drop columns the loaded file lacks
	resolved := make([]Column, 0, len(columns))
	for _, col := range columns {
		idx, ok := idxByName[col.Field]
		if !ok {
			continue
		}

		col.fieldIdx = idx
		col.formatter = makeFormatter(fields[idx].Type, col.Format)
		resolved = append(resolved, col)
	}
	pnl.columns = resolved

	// Set headers (padded to width+1 for spacing)
	var headers []string
	for _, col := range pnl.columns {
		if col.Hidden {
			continue
		}
		padded := fmt.Sprintf("%-*s", col.Width+1, col.Field)
		headers = append(headers, padded)
	}
	pnl.table.Headers(headers...)

	return pnl
}

func (pnl TablePanel) Update(msg tea.Msg) (TablePanel, tea.Cmd) {
	switch msg := msg.(type) {

	case resetMsg:
		pnl.Selected = 0
		pnl.Offset = 0
		return pnl, getPageCmd(0, pnl.pageSize())

	case pageMsg:
		pnl.Total = msg.count
		if pnl.Selected >= pnl.Total && pnl.Total > 0 {
			pnl.Selected = pnl.Total - 1
		}
		return pnl, nil

	case tea.KeyPressMsg:

		if !pnl.Focused {
			return pnl, nil
		}

		pageSize := pnl.pageSize()

		switch msg.String() {
		case "up", "k":
			if pnl.Selected > 0 {
				pnl.Selected--
			}

		case "down", "j":
			if pnl.Selected < pnl.Total-1 {
				pnl.Selected++
			}

		case "pgup", "ctrl+u":
			pnl.Selected -= pageSize
			if pnl.Selected < 0 {
				pnl.Selected = 0
			}

		case "pgdown", "ctrl+d":
			pnl.Selected += pageSize
			if pnl.Selected >= pnl.Total {
				pnl.Selected = pnl.Total - 1
			}

		case "g":
			pnl.Selected = 0

		case "G":
			pnl.Selected = pnl.Total - 1
		}

		// Adjust Offset to keep selection visible
		oldOffset := pnl.Offset
		if pnl.Selected < pnl.Offset {
			pnl.Offset = pnl.Selected
		} else if pnl.Selected >= pnl.Offset+pageSize {
			pnl.Offset = pnl.Selected - pageSize + 1
		}

		// If we've scrolled to a different page, request new data
		if pnl.Offset != oldOffset {
			return pnl, getPageCmd(pnl.Offset, pageSize)
		}

	case tea.WindowSizeMsg:
		pnl.Width = msg.Width
		pnl.Height = msg.Height

		// Request data with new page size
		pageSize := pnl.pageSize()
		if pageSize > 0 {
			return pnl, getPageCmd(pnl.Offset, pageSize)
		}
	}

	return pnl, nil
}

// SelectedId returns the id of the currently selected line
func (pnl TablePanel) SelectedId(lines []Line) (id string, err error) {
	selected := pnl.selectedLine()

	if len(lines) == 0 || selected >= len(lines) || selected < 0 {
		err = errors.Errorf("index %d is out of bounds of %d lines", selected, len(lines))
		return
	}

	id = lines[selected].Id
	return
}

// Render renders the table with the given data
func (pnl TablePanel) Render(lines []Line) string {

	// style selected row
	selected := pnl.selectedLine()
	pnl.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == selected {
			return hlRowStyle
		}
		return unStyle
	})

	// repopulate table
	pnl.table.ClearRows()
	for _, line := range lines {
		var row []string
		for _, col := range pnl.columns {
			if col.Hidden {
				continue
			}
			if col.fieldIdx >= len(line.Values) {
				row = append(row, "")
				continue
			}

			formatted := col.formatter(line.Values[col.fieldIdx])
			row = append(row, truncate(formatted, col.Width))
		}
		pnl.table.Row(row...)
	}

	return pnl.table.Render()
}

// help

// makeFormatter picks a render func per column. Millisecond-epoch columns
// are BIGINT in the store; a format string turns them into wall-clock time.
func makeFormatter(fieldType, format string) func(Value) string {
	if format != "" && strings.HasPrefix(fieldType, "BIGINT") {
		return func(v Value) string {
			ms, err := v.Int64()
			if err != nil {
				return v.String()
			}
			return time.UnixMilli(ms).UTC().Format(format)
		}
	}

	return func(v Value) string {
		return v.String()
	}
}

func truncate(in string, width int) string {

	if len(in) <= width {
		return in
	}
	if width < 1 {
		return ""
	}

	truncated := in[:width-1]
	ellipsis := mutedStyle.Render("…")
	return truncated + ellipsis
}
