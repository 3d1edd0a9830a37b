package nfchat

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	"github.com/h4x0r/nfchat-sub002/session"
)

// FilterPanel displays a modal dialog for editing the filter session, one
// dimension per row. Mutations go through the session's setters; apply
// compiles the state and pushes the predicate to the store.
type FilterPanel struct {
	session *session.Session

	attackLabels []string // distinct labels from the store
	labelIdx     int      // cycled selection on the attack row

	selectedRow int
	input       string

	width  int
	height int
}

type rowKind int

const (
	rowTimeStart rowKind = iota
	rowTimeEnd
	rowSrcIPs
	rowDstIPs
	rowSrcPorts
	rowDstPorts
	rowProtocols
	rowL7Protocols
	rowAttack
	rowCustom
)

type filterRow struct {
	kind rowKind
	name string
}

var filterRows = []filterRow{
	{rowTimeStart, "Start (ms)"},
	{rowTimeEnd, "End (ms)"},
	{rowSrcIPs, "Src IPs"},
	{rowDstIPs, "Dst IPs"},
	{rowSrcPorts, "Src Ports"},
	{rowDstPorts, "Dst Ports"},
	{rowProtocols, "Protocols"},
	{rowL7Protocols, "L7 Protos"},
	{rowAttack, "Attack"},
	{rowCustom, "Custom"},
}

func NewFilterPanel(ssn *session.Session) FilterPanel {
	return FilterPanel{
		session: ssn,
	}
}

func (pnl FilterPanel) Update(msg tea.Msg) (FilterPanel, tea.Cmd) {
	switch msg := msg.(type) {

	case labelsMsg:
		pnl.attackLabels = msg.labels
		pnl.labelIdx = 0
		return pnl, nil

	case tea.WindowSizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		return pnl, nil

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl FilterPanel) handleKey(msg tea.KeyPressMsg) (FilterPanel, tea.Cmd) {
	switch msg.String() {

	case "up":
		if pnl.selectedRow > 0 {
			pnl.selectedRow--
			pnl.input = ""
		}

	case "down":
		if pnl.selectedRow < len(filterRows)-1 {
			pnl.selectedRow++
			pnl.input = ""
		}

	case "left":
		if pnl.row().kind == rowAttack && len(pnl.attackLabels) > 0 {
			pnl.labelIdx = (pnl.labelIdx - 1 + len(pnl.attackLabels)) % len(pnl.attackLabels)
		}

	case "right":
		if pnl.row().kind == rowAttack && len(pnl.attackLabels) > 0 {
			pnl.labelIdx = (pnl.labelIdx + 1) % len(pnl.attackLabels)
		}

	case "backspace":
		if pnl.input != "" {
			runes := []rune(pnl.input)
			pnl.input = string(runes[:len(runes)-1])
		} else {
			pnl.removeLast()
		}

	case "enter":
		return pnl.commit()

	case "ctrl+p":
		// Apply: compile and hand the predicate to the model
		where := pnl.session.Predicate()
		return pnl, func() tea.Msg {
			return applyMsg{where: where}
		}

	case "ctrl+x":
		pnl.session.Clear()
		pnl.input = ""

	default:
		if text := msg.Text; text != "" {
			pnl.input += text
		}
	}

	return pnl, nil
}

func (pnl FilterPanel) row() filterRow {
	return filterRows[pnl.selectedRow]
}

// commit folds the input buffer into the selected dimension
func (pnl FilterPanel) commit() (FilterPanel, tea.Cmd) {

	value := strings.TrimSpace(pnl.input)
	kind := pnl.row().kind

	// Attack row toggles the cycled label; no text input involved
	if kind == rowAttack {
		if len(pnl.attackLabels) > 0 {
			pnl.session.ToggleAttackType(pnl.attackLabels[pnl.labelIdx])
		}
		return pnl, nil
	}

	switch kind {

	case rowTimeStart, rowTimeEnd:
		state := pnl.session.State()
		start, end := state.TimeRange.Start, state.TimeRange.End

		var bound *int64
		if value != "" {
			ms, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return pnl, errorCmd(errors.Wrapf(err, "bad millisecond epoch %q", value))
			}
			bound = &ms
		}

		if kind == rowTimeStart {
			pnl.session.SetTimeRange(bound, end)
		} else {
			pnl.session.SetTimeRange(start, bound)
		}

	case rowCustom:
		pnl.session.SetCustomFilter(value)

	default:
		if value == "" {
			return pnl, nil
		}
		if err := pnl.addListValue(kind, value); err != nil {
			return pnl, errorCmd(err)
		}
	}

	pnl.input = ""
	return pnl, nil
}

func (pnl FilterPanel) addListValue(kind rowKind, value string) error {

	switch kind {
	case rowSrcIPs:
		pnl.session.AddSrcIP(value)
	case rowDstIPs:
		pnl.session.AddDstIP(value)
	default:
		number, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "bad number %q", value)
		}
		switch kind {
		case rowSrcPorts:
			pnl.session.AddSrcPort(number)
		case rowDstPorts:
			pnl.session.AddDstPort(number)
		case rowProtocols:
			pnl.session.AddProtocol(number)
		case rowL7Protocols:
			pnl.session.AddL7Protocol(number)
		}
	}

	return nil
}

// removeLast drops the newest element of a list row
func (pnl FilterPanel) removeLast() {

	state := pnl.session.State()

	switch pnl.row().kind {
	case rowSrcIPs:
		if n := len(state.SrcIPs); n > 0 {
			pnl.session.RemoveSrcIP(state.SrcIPs[n-1])
		}
	case rowDstIPs:
		if n := len(state.DstIPs); n > 0 {
			pnl.session.RemoveDstIP(state.DstIPs[n-1])
		}
	case rowSrcPorts:
		if n := len(state.SrcPorts); n > 0 {
			pnl.session.RemoveSrcPort(state.SrcPorts[n-1])
		}
	case rowDstPorts:
		if n := len(state.DstPorts); n > 0 {
			pnl.session.RemoveDstPort(state.DstPorts[n-1])
		}
	case rowProtocols:
		if n := len(state.Protocols); n > 0 {
			pnl.session.RemoveProtocol(state.Protocols[n-1])
		}
	case rowL7Protocols:
		if n := len(state.L7Protocols); n > 0 {
			pnl.session.RemoveL7Protocol(state.L7Protocols[n-1])
		}
	case rowCustom:
		pnl.session.SetCustomFilter("")
	}
}

// rowValue renders the current contents of a dimension
func (pnl FilterPanel) rowValue(kind rowKind) string {

	state := pnl.session.State()

	switch kind {
	case rowTimeStart:
		if state.TimeRange.Start != nil {
			return strconv.FormatInt(*state.TimeRange.Start, 10)
		}
	case rowTimeEnd:
		if state.TimeRange.End != nil {
			return strconv.FormatInt(*state.TimeRange.End, 10)
		}
	case rowSrcIPs:
		return strings.Join(state.SrcIPs, ", ")
	case rowDstIPs:
		return strings.Join(state.DstIPs, ", ")
	case rowSrcPorts:
		return joinInts(state.SrcPorts)
	case rowDstPorts:
		return joinInts(state.DstPorts)
	case rowProtocols:
		return joinInts(state.Protocols)
	case rowL7Protocols:
		return joinInts(state.L7Protocols)
	case rowAttack:
		return pnl.renderAttackRow(state.AttackTypes)
	case rowCustom:
		return state.CustomFilter
	}

	return ""
}

// renderAttackRow shows every known label, checked when active, with the
// cycled label bracketed
func (pnl FilterPanel) renderAttackRow(active []string) string {

	if len(pnl.attackLabels) == 0 {
		return "(no labels in file)"
	}

	isActive := map[string]bool{}
	for _, label := range active {
		isActive[label] = true
	}

	var parts []string
	for i, label := range pnl.attackLabels {
		part := label
		if isActive[label] {
			part = "x " + part
		}
		if i == pnl.labelIdx {
			part = "[" + part + "]"
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "  ")
}

func (pnl FilterPanel) View() tea.View {
	var content strings.Builder

	content.WriteString("Filter:\n")
	for i, row := range filterRows {
		prefix := "  "
		if i == pnl.selectedRow {
			prefix = "> "
		}

		value := pnl.rowValue(row.kind)
		if i == pnl.selectedRow && row.kind != rowAttack {
			value += selStyle.Render(pnl.input + "▏")
		}

		content.WriteString(fmt.Sprintf("%s%-11s %s\n", prefix, row.name, value))
	}

	var helpText string
	switch pnl.row().kind {
	case rowAttack:
		helpText = "←→: select  Enter: toggle  ↑↓: change row  ^p: apply  ^x: clear  Esc: cancel"
	case rowTimeStart, rowTimeEnd, rowCustom:
		helpText = "type value  Enter: set (empty clears)  ↑↓: change row  ^p: apply  ^x: clear  Esc: cancel"
	default:
		helpText = "type value  Enter: add  Backspace: remove  ↑↓: change row  ^p: apply  ^x: clear  Esc: cancel"
	}
	content.WriteString("\n" + mutedStyle.Render(helpText))

	// Create a bordered box
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(76)

	dialog := dialogStyle.Render(content.String())

	if pnl.width == 0 || pnl.height == 0 {
		return tea.NewView(dialog)
	}

	// Center the dialog
	dialogHeight := strings.Count(dialog, "\n") + 1
	dialogWidth := 80 // Approximate width with border

	vPad := (pnl.height - dialogHeight) / 2
	hPad := (pnl.width - dialogWidth) / 2

	if vPad < 0 {
		vPad = 0
	}
	if hPad < 0 {
		hPad = 0
	}

	dialogLayer := lipgloss.NewLayer("filter", dialog).
		X(hPad).
		Y(vPad)

	canvas := lipgloss.NewCanvas(pnl.width, pnl.height)
	canvas.Compose(dialogLayer)

	return tea.NewView(canvas)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, val := range values {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ", ")
}
