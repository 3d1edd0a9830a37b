package nfchat

type Column struct {
	Field  string `yaml:"field"`
	Width  int    `yaml:"width"`
	Format string `yaml:"format,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`

	// Resolved at layout time
	fieldIdx  int
	formatter func(Value) string
}
