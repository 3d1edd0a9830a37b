package entity

// TimeRange bounds a query by flow start/end in millisecond epochs.
// A nil side is unbounded.
type TimeRange struct {
	Start *int64 `yaml:"start,omitempty"`
	End   *int64 `yaml:"end,omitempty"`
}

// FilterState is the complete description of an ad-hoc query refinement.
// Every field is optional; an empty field contributes no constraint.
// Element order within the list fields is preserved as given.
type FilterState struct {
	TimeRange   TimeRange `yaml:"time_range,omitempty"`
	SrcIPs      []string  `yaml:"src_ips,omitempty"`
	DstIPs      []string  `yaml:"dst_ips,omitempty"`
	SrcPorts    []int     `yaml:"src_ports,omitempty"`
	DstPorts    []int     `yaml:"dst_ports,omitempty"`
	Protocols   []int     `yaml:"protocols,omitempty"`
	L7Protocols []int     `yaml:"l7_protocols,omitempty"`
	AttackTypes []string  `yaml:"attack_types,omitempty"`

	// CustomFilter is a raw SQL boolean expression, passed through verbatim.
	// Trusted input only.
	CustomFilter string `yaml:"custom_filter,omitempty"`

	// ResultCount is informational, set by the query layer after execution.
	// Not part of the compiled predicate.
	ResultCount int `yaml:"-"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the list fields.
func (fs FilterState) Clone() FilterState {
	out := fs
	out.SrcIPs = append([]string(nil), fs.SrcIPs...)
	out.DstIPs = append([]string(nil), fs.DstIPs...)
	out.SrcPorts = append([]int(nil), fs.SrcPorts...)
	out.DstPorts = append([]int(nil), fs.DstPorts...)
	out.Protocols = append([]int(nil), fs.Protocols...)
	out.L7Protocols = append([]int(nil), fs.L7Protocols...)
	out.AttackTypes = append([]string(nil), fs.AttackTypes...)
	if fs.TimeRange.Start != nil {
		start := *fs.TimeRange.Start
		out.TimeRange.Start = &start
	}
	if fs.TimeRange.End != nil {
		end := *fs.TimeRange.End
		out.TimeRange.End = &end
	}
	return out
}

// Sort represents a sort directive for flow queries.
type Sort struct {
	Field string // Field name to sort by
	Desc  bool   // Sort descending if true, ascending if false
}
