// Package nfchat is a terminal dashboard over a table of NetFlow-style flow
// records. A filter session compiles to a SQL predicate on every change and
// scopes the counts, pages, and timeline served by the backing store.
package nfchat

import (
	nt "github.com/h4x0r/nfchat-sub002/entity"
)

// Todo: sort directives on the table screen
// Todo: sparkline render of Timeline buckets in the footer

// Store specifies the flow warehouse backing the dashboard.
type Store interface {
	// Name returns the name of the loaded data source
	Name() string
	// Ingest loads a flow file, resolving its headers to canonical columns
	Ingest(path string) (count int, err error)
	// SetPredicate scopes all queries with a compiled WHERE fragment
	SetPredicate(where string) (err error)
	// Predicate returns the active WHERE fragment
	Predicate() string
	// GetView returns fields and predicate-scoped count
	GetView() (fields []nt.Field, count int, err error)
	// GetPage of flow lines
	GetPage(offset, size int) (lines []nt.Line, err error)
	// GetFlow returns one full record keyed by canonical column
	GetFlow(id string) (data map[string]any, err error)
	// Timeline buckets flow counts by start time
	Timeline(bucketMillis int64) (buckets []nt.Bucket, err error)
	// AttackTypes lists distinct attack labels for the filter screen
	AttackTypes() (labels []string, err error)
}

// Aliases so the panel code reads like the rest of the package.
type (
	Value  = nt.Value
	Field  = nt.Field
	Line   = nt.Line
	Logger = nt.Logger
)
