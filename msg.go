package nfchat

// pageMsg contains loaded page data
type pageMsg struct {
	fields []Field
	lines  []Line
	count  int
}

// flowMsg contains one full record for the detail screen
type flowMsg struct {
	data map[string]any
}

// getPageMsg signals to load a page of lines
type getPageMsg struct {
	offset int
	size   int
}

// labelsMsg contains the distinct attack labels for the filter screen
type labelsMsg struct {
	labels []string
}

// applyMsg carries a freshly compiled predicate to push to the store
type applyMsg struct {
	where string
}

// resetMsg signals to reset table position to start
type resetMsg struct{}

// errorMsg contains an error
type errorMsg struct {
	err error
}
