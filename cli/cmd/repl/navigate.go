package repl

// show loads history entry i into the input, switching to the entry's mode.
func (m model) show(i int, e HistoryEntry) model {
	if m.mode != e.Mode {
		m = m.setMode(e.Mode)
	}

	m.histPos = i
	m.setField(field{text: e.Line, cursor: len(e.Line)})
	m.refresh(false)

	return m
}

// leave ends history browsing with an empty input.
func (m model) leave() model {
	m.histPos = m.history.Len()
	m.input.SetValue("")
	m.refresh(false)

	return m
}

// browse moves step entries through the whole history. Moving past the
// newest entry clears the input.
func (m model) browse(step int) model {
	i := m.histPos + step

	if e, err := m.history.Entry(i); err == nil {
		return m.show(i, e)
	}

	if step > 0 {
		return m.leave()
	}

	return m
}

// nearest returns the index of the closest entry made in mode, searching
// from the current position in the direction of step, or -1.
func (m model) nearest(mode inputMode, step int) (int, HistoryEntry) {
	for i := m.histPos + step; ; i += step {
		e, err := m.history.Entry(i)
		if err != nil {
			return -1, HistoryEntry{}
		}

		if e.Mode == mode {
			return i, e
		}
	}
}

// browseMode moves through the entries made in the current mode only.
func (m model) browseMode(step int) model {
	if i, e := m.nearest(m.mode, step); i >= 0 {
		return m.show(i, e)
	}

	if step > 0 && m.histPos < m.history.Len() {
		return m.leave()
	}

	return m
}

// browseCommands moves through command history from either mode. Running
// off either end restores the mode and input the browsing began with.
func (m model) browseCommands(step int) model {
	if !m.detour.active {
		m.detour = detour{
			active: true,
			mode:   m.mode,
			origin: field{text: m.input.Value(), cursor: m.input.Position()},
		}

		if m.mode != modeCtrl {
			m = m.setMode(modeCtrl)
		}
	}

	if i, e := m.nearest(modeCtrl, step); i >= 0 {
		return m.show(i, e)
	}

	m.detour.active = false

	if m.mode != m.detour.mode {
		m = m.setMode(m.detour.mode)
	}

	m.histPos = m.history.Len()
	m.setField(m.detour.origin)
	m.refresh(false)

	return m
}
