package nfchat

import (
	"os"

	"gopkg.in/yaml.v3"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

// Layout configures the table columns and an optional initial filter state.
type Layout struct {
	Columns []Column       `yaml:"columns"`
	Filter  nt.FilterState `yaml:"filter,omitempty"`
}

func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, err
	}

	return &layout, nil
}
