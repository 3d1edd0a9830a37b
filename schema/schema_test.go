package schema

import (
	"reflect"
	"testing"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

func TestResolveSuccess(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected nt.ColumnMapping
	}{
		{
			name:    "nfdump short names",
			headers: []string{"sa", "da", "sp", "dp", "pr"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "sa",
				nt.ColDstAddr:  "da",
				nt.ColSrcPort:  "sp",
				nt.ColDstPort:  "dp",
				nt.ColProtocol: "pr",
			},
		},
		{
			name:    "generic snake case uppercased",
			headers: []string{"SRC_IP", "DST_IP", "SRC_PORT", "DST_PORT", "PROTO"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "SRC_IP",
				nt.ColDstAddr:  "DST_IP",
				nt.ColSrcPort:  "SRC_PORT",
				nt.ColDstPort:  "DST_PORT",
				nt.ColProtocol: "PROTO",
			},
		},
		{
			name:    "silk names",
			headers: []string{"sIP", "dIP", "sPort", "dPort", "protocol"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "sIP",
				nt.ColDstAddr:  "dIP",
				nt.ColSrcPort:  "sPort",
				nt.ColDstPort:  "dPort",
				nt.ColProtocol: "protocol",
			},
		},
		{
			name: "canonical names with label and counters",
			headers: []string{
				"FLOW_START_MILLISECONDS", "FLOW_END_MILLISECONDS",
				"IPV4_SRC_ADDR", "IPV4_DST_ADDR", "L4_SRC_PORT", "L4_DST_PORT",
				"PROTOCOL", "L7_PROTO", "IN_BYTES", "OUT_BYTES", "Attack",
			},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:   "IPV4_SRC_ADDR",
				nt.ColDstAddr:   "IPV4_DST_ADDR",
				nt.ColSrcPort:   "L4_SRC_PORT",
				nt.ColDstPort:   "L4_DST_PORT",
				nt.ColProtocol:  "PROTOCOL",
				nt.ColL7Proto:   "L7_PROTO",
				nt.ColAttack:    "Attack",
				nt.ColFlowStart: "FLOW_START_MILLISECONDS",
				nt.ColFlowEnd:   "FLOW_END_MILLISECONDS",
				nt.ColInBytes:   "IN_BYTES",
				nt.ColOutBytes:  "OUT_BYTES",
			},
		},
		{
			name:    "label variant for attack column",
			headers: []string{"src_ip", "dst_ip", "src_port", "dst_port", "proto", "label"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "src_ip",
				nt.ColDstAddr:  "dst_ip",
				nt.ColSrcPort:  "src_port",
				nt.ColDstPort:  "dst_port",
				nt.ColProtocol: "proto",
				nt.ColAttack:   "label",
			},
		},
		{
			name:    "extra headers ignored",
			headers: []string{"flow_id", "sa", "da", "sp", "dp", "pr", "tos", "flags"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "sa",
				nt.ColDstAddr:  "da",
				nt.ColSrcPort:  "sp",
				nt.ColDstPort:  "dp",
				nt.ColProtocol: "pr",
			},
		},
		{
			name:    "first match wins per column",
			headers: []string{"sa", "src_ip", "da", "sp", "dp", "pr"},
			expected: nt.ColumnMapping{
				nt.ColSrcAddr:  "sa",
				nt.ColDstAddr:  "da",
				nt.ColSrcPort:  "sp",
				nt.ColDstPort:  "dp",
				nt.ColProtocol: "pr",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.headers)
			if !res.Success {
				t.Fatalf("Resolve(%v) failed, missing %v", tt.headers, res.MissingColumns)
			}
			if !reflect.DeepEqual(res.Mapping, tt.expected) {
				t.Errorf("mapping = %v, want %v", res.Mapping, tt.expected)
			}
			if res.MissingColumns != nil {
				t.Errorf("success carried missing columns: %v", res.MissingColumns)
			}
		})
	}
}

func TestResolveFailure(t *testing.T) {
	tests := []struct {
		name            string
		headers         []string
		expectedMissing []string
	}{
		{
			name:    "no flow columns at all",
			headers: []string{"timestamp", "bytes", "packets"},
			expectedMissing: []string{
				nt.ColSrcAddr, nt.ColDstAddr, nt.ColSrcPort, nt.ColDstPort, nt.ColProtocol,
			},
		},
		{
			name:            "ports missing",
			headers:         []string{"sa", "da", "pr"},
			expectedMissing: []string{nt.ColSrcPort, nt.ColDstPort},
		},
		{
			name:            "protocol missing",
			headers:         []string{"src_ip", "dst_ip", "src_port", "dst_port"},
			expectedMissing: []string{nt.ColProtocol},
		},
		{
			name:    "empty header row",
			headers: []string{},
			expectedMissing: []string{
				nt.ColSrcAddr, nt.ColDstAddr, nt.ColSrcPort, nt.ColDstPort, nt.ColProtocol,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.headers)
			if res.Success {
				t.Fatalf("Resolve(%v) succeeded, expected failure", tt.headers)
			}
			if !reflect.DeepEqual(res.MissingColumns, tt.expectedMissing) {
				t.Errorf("missing = %v, want %v", res.MissingColumns, tt.expectedMissing)
			}
			if !reflect.DeepEqual(res.FoundHeaders, tt.headers) {
				t.Errorf("found headers = %v, want input verbatim %v", res.FoundHeaders, tt.headers)
			}
		})
	}
}

func TestResolveCaseAndWhitespace(t *testing.T) {
	res := Resolve([]string{" Sa ", "DA", "Sp", "dP", " PR"})
	if !res.Success {
		t.Fatalf("expected success, missing %v", res.MissingColumns)
	}
	if res.Mapping[nt.ColSrcAddr] != " Sa " {
		t.Errorf("mapping must carry the original header, got %q", res.Mapping[nt.ColSrcAddr])
	}
}

func TestRequiredColumnsOrder(t *testing.T) {
	expected := []string{nt.ColSrcAddr, nt.ColDstAddr, nt.ColSrcPort, nt.ColDstPort, nt.ColProtocol}
	if got := RequiredColumns(); !reflect.DeepEqual(got, expected) {
		t.Errorf("RequiredColumns() = %v, want %v", got, expected)
	}
}

// Alias sets must stay pairwise disjoint or a header could resolve to two
// canonical columns.
func TestAliasSetsDisjoint(t *testing.T) {
	seen := map[string]string{}
	for _, set := range aliasSets {
		names := append([]string{normalize(set.canonical)}, set.aliases...)
		for _, alias := range names {
			if owner, ok := seen[alias]; ok {
				t.Errorf("alias %q claimed by both %s and %s", alias, owner, set.canonical)
			}
			seen[alias] = set.canonical
		}
	}
}
