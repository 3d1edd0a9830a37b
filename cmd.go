package nfchat

import (
	tea "charm.land/bubbletea/v2"
)

// getPageCmd signals the model to load a page of lines
func getPageCmd(offset, size int) tea.Cmd {
	return func() tea.Msg {
		return getPageMsg{offset: offset, size: size}
	}
}

// errorCmd wraps an error in a command
func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errorMsg{err: err}
	}
}

// getPage gets a page of lines from the store
func (m Model) getPage(offset, size int) tea.Cmd {

	return func() tea.Msg {

		fields, count, err := m.Store.GetView()
		if err != nil {
			return errorMsg{err: err}
		}

		lines, err := m.Store.GetPage(offset, size)
		if err != nil {
			return errorMsg{err: err}
		}

		return pageMsg{
			fields: fields,
			lines:  lines,
			count:  count,
		}
	}
}

// getFlow gets one full record from the store
func (m Model) getFlow(id string) tea.Cmd {
	return func() tea.Msg {
		flow, err := m.Store.GetFlow(id)
		if err != nil {
			return errorMsg{err: err}
		}

		return flowMsg{data: flow}
	}
}

// getLabels gets the distinct attack labels for the filter screen
func (m Model) getLabels() tea.Cmd {
	return func() tea.Msg {
		labels, err := m.Store.AttackTypes()
		if err != nil {
			return errorMsg{err: err}
		}

		return labelsMsg{labels: labels}
	}
}
