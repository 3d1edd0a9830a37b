// Package schema resolves arbitrary export-tool column headers against the
// canonical flow schema. Uploaded files name the same fields many ways
// (nfdump short names, SiLK names, generic snake case); resolution produces
// a canonical-to-source mapping, or a report of what is missing so the
// caller can offer manual assignment.
package schema

import (
	"strings"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

// aliasSet lists the accepted header spellings for one canonical column.
// Matching is case-insensitive; the canonical name itself is always accepted.
// Alias sets are kept pairwise disjoint so a header can satisfy at most one
// column.
type aliasSet struct {
	canonical string
	required  bool
	aliases   []string
}

// Declaration order fixes the order of MissingColumns in a failure report.
var aliasSets = []aliasSet{
	{
		canonical: nt.ColSrcAddr,
		required:  true,
		aliases:   []string{"sa", "sip", "srcip", "src_ip", "src_addr", "srcaddr", "saddr", "source_ip", "source_address"},
	},
	{
		canonical: nt.ColDstAddr,
		required:  true,
		aliases:   []string{"da", "dip", "dstip", "dst_ip", "dst_addr", "dstaddr", "daddr", "dest_ip", "destination_ip", "destination_address"},
	},
	{
		canonical: nt.ColSrcPort,
		required:  true,
		aliases:   []string{"sp", "sport", "srcport", "src_port", "source_port"},
	},
	{
		canonical: nt.ColDstPort,
		required:  true,
		aliases:   []string{"dp", "dport", "dstport", "dst_port", "dest_port", "destination_port"},
	},
	{
		canonical: nt.ColProtocol,
		required:  true,
		aliases:   []string{"pr", "proto", "ip_proto", "ip_protocol"},
	},
	{
		canonical: nt.ColAttack,
		aliases:   []string{"attack_type", "attacktype", "label", "attack_cat", "category", "class"},
	},
	{
		canonical: nt.ColL7Proto,
		aliases:   []string{"l7proto", "l7_protocol", "app_proto", "app_protocol", "application"},
	},
	{
		canonical: nt.ColFlowStart,
		aliases:   []string{"ts", "first", "stime", "start_time", "flow_start", "timestamp"},
	},
	{
		canonical: nt.ColFlowEnd,
		aliases:   []string{"te", "last", "etime", "end_time", "flow_end"},
	},
	{
		canonical: nt.ColInBytes,
		aliases:   []string{"ibyt", "bytes_in", "bytes", "sbytes"},
	},
	{
		canonical: nt.ColOutBytes,
		aliases:   []string{"obyt", "bytes_out", "dbytes"},
	},
	{
		canonical: nt.ColInPkts,
		aliases:   []string{"ipkt", "packets_in", "packets", "pkts", "spkts"},
	},
	{
		canonical: nt.ColOutPkts,
		aliases:   []string{"opkt", "packets_out", "dpkts"},
	},
}

// Resolve matches an ordered header row against the canonical schema.
// For each canonical column the first matching header wins; columns are
// scanned independently. Headers matching nothing are ignored, extra
// columns are permitted. Resolve never fails; a missing required column
// produces a structured failure instead.
func Resolve(headers []string) nt.SchemaResolution {

	mapping := nt.ColumnMapping{}
	var missing []string

	for _, set := range aliasSets {
		found := ""
		for _, header := range headers {
			if set.matches(header) {
				found = header
				break
			}
		}

		switch {
		case found != "":
			mapping[set.canonical] = found
		case set.required:
			missing = append(missing, set.canonical)
		}
	}

	if len(missing) > 0 {
		return nt.SchemaResolution{
			MissingColumns: missing,
			FoundHeaders:   headers,
		}
	}

	return nt.SchemaResolution{
		Success: true,
		Mapping: mapping,
	}
}

// RequiredColumns returns the canonical columns a file must provide, in
// declaration order.
func RequiredColumns() []string {
	var required []string
	for _, set := range aliasSets {
		if set.required {
			required = append(required, set.canonical)
		}
	}
	return required
}

func (set aliasSet) matches(header string) bool {
	normalized := normalize(header)
	if normalized == normalize(set.canonical) {
		return true
	}
	for _, alias := range set.aliases {
		if normalized == alias {
			return true
		}
	}
	return false
}

func normalize(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
