package entity

// Canonical column names for the flows table. All accepted header variants
// from uploaded files are rewritten to these at ingest time.
const (
	ColSrcAddr   = "IPV4_SRC_ADDR"
	ColDstAddr   = "IPV4_DST_ADDR"
	ColSrcPort   = "L4_SRC_PORT"
	ColDstPort   = "L4_DST_PORT"
	ColProtocol  = "PROTOCOL"
	ColL7Proto   = "L7_PROTO"
	ColAttack    = "Attack"
	ColFlowStart = "FLOW_START_MILLISECONDS"
	ColFlowEnd   = "FLOW_END_MILLISECONDS"
	ColInBytes   = "IN_BYTES"
	ColOutBytes  = "OUT_BYTES"
	ColInPkts    = "IN_PKTS"
	ColOutPkts   = "OUT_PKTS"
)

// ColumnMapping maps canonical column names to the header string actually
// found in a source file. A canonical name absent from the mapping was not
// found in that file.
type ColumnMapping map[string]string

// SchemaResolution is the outcome of matching a file's header row against the
// canonical schema. On failure MissingColumns lists the required canonical
// names not found, in declaration order, and FoundHeaders carries the input
// header list unchanged for a manual-mapping fallback.
type SchemaResolution struct {
	Success        bool
	Mapping        ColumnMapping
	MissingColumns []string
	FoundHeaders   []string
}
