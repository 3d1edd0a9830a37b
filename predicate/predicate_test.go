package predicate

import (
	"strings"
	"testing"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

func millis(ms int64) *int64 {
	return &ms
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		fs       nt.FilterState
		expected string
	}{
		{
			name:     "empty state yields always-true",
			fs:       nt.FilterState{},
			expected: "1=1",
		},
		{
			name:     "source ips",
			fs:       nt.FilterState{SrcIPs: []string{"59.166.0.2", "59.166.0.4"}},
			expected: "IPV4_SRC_ADDR IN ('59.166.0.2', '59.166.0.4')",
		},
		{
			name:     "destination ips",
			fs:       nt.FilterState{DstIPs: []string{"149.171.126.7"}},
			expected: "IPV4_DST_ADDR IN ('149.171.126.7')",
		},
		{
			name:     "source ports",
			fs:       nt.FilterState{SrcPorts: []int{53, 443}},
			expected: "L4_SRC_PORT IN (53, 443)",
		},
		{
			name:     "destination ports",
			fs:       nt.FilterState{DstPorts: []int{80}},
			expected: "L4_DST_PORT IN (80)",
		},
		{
			name:     "attack types",
			fs:       nt.FilterState{AttackTypes: []string{"Exploits", "DoS"}},
			expected: "Attack IN ('Exploits', 'DoS')",
		},
		{
			name:     "protocols",
			fs:       nt.FilterState{Protocols: []int{6, 17}},
			expected: "PROTOCOL IN (6, 17)",
		},
		{
			name:     "l7 protocols",
			fs:       nt.FilterState{L7Protocols: []int{5, 7}},
			expected: "L7_PROTO IN (5, 7)",
		},
		{
			name:     "time start only",
			fs:       nt.FilterState{TimeRange: nt.TimeRange{Start: millis(1424242190000)}},
			expected: "FLOW_START_MILLISECONDS >= 1424242190000",
		},
		{
			name:     "time end only",
			fs:       nt.FilterState{TimeRange: nt.TimeRange{End: millis(1424242200000)}},
			expected: "FLOW_END_MILLISECONDS <= 1424242200000",
		},
		{
			name: "time range both sides",
			fs: nt.FilterState{
				TimeRange: nt.TimeRange{Start: millis(1424242190000), End: millis(1424242200000)},
			},
			expected: "FLOW_START_MILLISECONDS >= 1424242190000 AND FLOW_END_MILLISECONDS <= 1424242200000",
		},
		{
			name:     "custom filter wrapped verbatim",
			fs:       nt.FilterState{CustomFilter: "IN_BYTES > 1024 AND L7_PROTO = 5"},
			expected: "(IN_BYTES > 1024 AND L7_PROTO = 5)",
		},
		{
			name:     "custom filter trimmed",
			fs:       nt.FilterState{CustomFilter: "  IN_PKTS < 9  "},
			expected: "(IN_PKTS < 9)",
		},
		{
			name:     "blank custom filter ignored",
			fs:       nt.FilterState{CustomFilter: "   "},
			expected: "1=1",
		},
		{
			name:     "quotes in string values are escaped",
			fs:       nt.FilterState{AttackTypes: []string{"O'Brien"}},
			expected: "Attack IN ('O''Brien')",
		},
		{
			name: "full conjunction in fixed field order",
			fs: nt.FilterState{
				TimeRange:    nt.TimeRange{Start: millis(1000), End: millis(2000)},
				SrcIPs:       []string{"10.0.0.1"},
				DstIPs:       []string{"10.0.0.2"},
				SrcPorts:     []int{1234},
				DstPorts:     []int{53},
				AttackTypes:  []string{"DoS"},
				Protocols:    []int{17},
				L7Protocols:  []int{5},
				CustomFilter: "IN_BYTES > 0",
			},
			expected: "FLOW_START_MILLISECONDS >= 1000" +
				" AND FLOW_END_MILLISECONDS <= 2000" +
				" AND IPV4_SRC_ADDR IN ('10.0.0.1')" +
				" AND IPV4_DST_ADDR IN ('10.0.0.2')" +
				" AND L4_SRC_PORT IN (1234)" +
				" AND L4_DST_PORT IN (53)" +
				" AND Attack IN ('DoS')" +
				" AND PROTOCOL IN (17)" +
				" AND L7_PROTO IN (5)" +
				" AND (IN_BYTES > 0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.fs)
			if got != tt.expected {
				t.Errorf("Compile() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Single populated fields must not produce a dangling AND.
func TestCompileSingleFieldHasNoAnd(t *testing.T) {
	states := []nt.FilterState{
		{SrcIPs: []string{"1.2.3.4"}},
		{DstPorts: []int{443}},
		{AttackTypes: []string{"Fuzzers"}},
		{CustomFilter: "PROTOCOL = 6"},
		{TimeRange: nt.TimeRange{Start: millis(5)}},
	}

	for _, fs := range states {
		got := Compile(fs)
		if strings.Contains(got, " AND ") {
			t.Errorf("Compile(%+v) = %q, expected a single conjunct", fs, got)
		}
	}
}

func TestCompileConjunctCount(t *testing.T) {
	fs := nt.FilterState{
		SrcIPs:      []string{"1.1.1.1"},
		DstIPs:      []string{"2.2.2.2"},
		Protocols:   []int{6},
		AttackTypes: []string{"DoS", "Worms"},
	}

	got := Compile(fs)
	if n := strings.Count(got, " AND "); n != 3 {
		t.Errorf("expected 3 joins for 4 conjuncts, got %d in %q", n, got)
	}
}

func TestCompileOrderPreservedWithinList(t *testing.T) {
	fs := nt.FilterState{SrcIPs: []string{"9.9.9.9", "1.1.1.1", "5.5.5.5"}}

	got := Compile(fs)
	expected := "IPV4_SRC_ADDR IN ('9.9.9.9', '1.1.1.1', '5.5.5.5')"
	if got != expected {
		t.Errorf("element order not preserved: got %q", got)
	}
}

func TestCompileDeterministic(t *testing.T) {
	fs := nt.FilterState{
		SrcIPs:      []string{"59.166.0.2"},
		Protocols:   []int{6, 17},
		AttackTypes: []string{"DoS"},
	}

	first := Compile(fs)
	for i := 0; i < 10; i++ {
		if got := Compile(fs); got != first {
			t.Fatalf("output changed between calls: %q vs %q", first, got)
		}
	}
}
