// Package predicate compiles a FilterState into a flat SQL boolean
// expression for the WHERE clause of flow queries.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	nt "github.com/h4x0r/nfchat-sub002/entity"
)

// always-true sentinel keeps downstream SQL assembly free of empty-string cases
const emptyPredicate = "1=1"

// Compile converts a filter state into a SQL boolean expression. It never
// fails: an empty state yields "1=1". Each populated field contributes
// exactly one conjunct, in a fixed field order, with element order inside
// IN lists preserved as given. Output is deterministic for a given input.
//
// String values are quote-escaped. CustomFilter is the exception: it is
// wrapped in parentheses verbatim and must come from a trusted source.
func Compile(fs nt.FilterState) string {

	var conjuncts []string

	if fs.TimeRange.Start != nil {
		conjuncts = append(conjuncts, fmt.Sprintf("%s >= %d", nt.ColFlowStart, *fs.TimeRange.Start))
	}
	if fs.TimeRange.End != nil {
		conjuncts = append(conjuncts, fmt.Sprintf("%s <= %d", nt.ColFlowEnd, *fs.TimeRange.End))
	}

	conjuncts = appendInList(conjuncts, nt.ColSrcAddr, fs.SrcIPs)
	conjuncts = appendInList(conjuncts, nt.ColDstAddr, fs.DstIPs)
	conjuncts = appendIntInList(conjuncts, nt.ColSrcPort, fs.SrcPorts)
	conjuncts = appendIntInList(conjuncts, nt.ColDstPort, fs.DstPorts)
	conjuncts = appendInList(conjuncts, nt.ColAttack, fs.AttackTypes)
	conjuncts = appendIntInList(conjuncts, nt.ColProtocol, fs.Protocols)
	conjuncts = appendIntInList(conjuncts, nt.ColL7Proto, fs.L7Protocols)

	if custom := strings.TrimSpace(fs.CustomFilter); custom != "" {
		conjuncts = append(conjuncts, "("+custom+")")
	}

	if len(conjuncts) == 0 {
		return emptyPredicate
	}

	return strings.Join(conjuncts, " AND ")
}

// appendInList emits `COL IN ('a', 'b')` with values quoted and escaped.
func appendInList(conjuncts []string, column string, values []string) []string {
	if len(values) == 0 {
		return conjuncts
	}

	quoted := make([]string, len(values))
	for i, val := range values {
		quoted[i] = "'" + escape(val) + "'"
	}

	return append(conjuncts, fmt.Sprintf("%s IN (%s)", column, strings.Join(quoted, ", ")))
}

// appendIntInList emits `COL IN (1, 2)` unquoted.
func appendIntInList(conjuncts []string, column string, values []int) []string {
	if len(values) == 0 {
		return conjuncts
	}

	literals := make([]string, len(values))
	for i, val := range values {
		literals[i] = strconv.Itoa(val)
	}

	return append(conjuncts, fmt.Sprintf("%s IN (%s)", column, strings.Join(literals, ", ")))
}

// escape doubles single quotes so a value cannot terminate its literal
func escape(val string) string {
	return strings.ReplaceAll(val, "'", "''")
}
