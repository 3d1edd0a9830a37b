// Package duck backs the dashboard with an in-memory DuckDB table of
// canonical flow records. Ingest resolves a file's header row against the
// canonical schema and rewrites columns during load; queries are scoped by
// the predicate pushed from the filter session.
package duck

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	nt "github.com/h4x0r/nfchat-sub002/entity"
	"github.com/h4x0r/nfchat-sub002/numeric"
	"github.com/h4x0r/nfchat-sub002/schema"
)

type Duck struct {
	db      *sql.DB
	logger  nt.Logger
	where   string
	source  string
	mapping nt.ColumnMapping
}

// ResolutionError reports a failed schema resolution. It carries the full
// resolution so the caller can present the missing canonical columns and the
// headers actually found, for a manual-mapping fallback.
type ResolutionError struct {
	Resolution nt.SchemaResolution
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Resolution.MissingColumns, ", "))
}

func New(lgr nt.Logger) (dk *Duck, err error) {

	db, err := sql.Open("duckdb", "")
	if err != nil {
		err = errors.Wrapf(err, "failed to open memo duck")
		return
	}

	dk = &Duck{
		db:     db,
		logger: lgr,
		where:  "1=1",
	}

	return
}

func (dk *Duck) Close() {
	dk.db.Close()
}

// Name returns the name of the loaded file
func (dk *Duck) Name() string {
	return dk.source
}

// Mapping returns the canonical-to-source column mapping of the loaded file.
func (dk *Duck) Mapping() nt.ColumnMapping {
	return dk.mapping
}

// Ingest resolves the header row of a flow csv and loads it into the flows
// table with columns rewritten to canonical names. Nothing is loaded unless
// every required canonical column resolves; a failure returns a
// ResolutionError and leaves the store untouched.
func (dk *Duck) Ingest(path string) (count int, err error) {

	headers, err := readHeader(path)
	if err != nil {
		return
	}

	res := schema.Resolve(headers)
	if !res.Success {
		err = &ResolutionError{Resolution: res}
		return
	}

	err = dk.createFlows(path, res.Mapping)
	if err != nil {
		return
	}

	err = dk.recordIngest(path)
	if err != nil {
		return
	}

	dk.source = path
	dk.mapping = res.Mapping

	err = dk.db.QueryRow("SELECT COUNT(*) FROM flows").Scan(&count)
	err = errors.Wrapf(err, "failed to count flows")
	return
}

// SetPredicate stores the compiled WHERE fragment used by all queries.
// The compiler guarantees a non-empty expression ("1=1" when unfiltered),
// so an empty string is rejected rather than papered over.
func (dk *Duck) SetPredicate(where string) (err error) {
	if strings.TrimSpace(where) == "" {
		return errors.Errorf("empty predicate; compiler should emit 1=1")
	}
	dk.where = where
	return nil
}

// Predicate returns the active WHERE fragment.
func (dk *Duck) Predicate() string {
	return dk.where
}

// GetView fields and count under the active predicate
func (dk *Duck) GetView() (fields []nt.Field, count int, err error) {

	fields, err = dk.getFields()
	if err != nil {
		return
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM flows WHERE %s", dk.where)
	err = dk.db.QueryRow(countQuery).Scan(&count)
	if err != nil {
		err = errors.Wrapf(err, "failed to count flows")
		return
	}

	return
}

// GetPage of flow lines under the active predicate
func (dk *Duck) GetPage(offset, size int) (lines []nt.Line, err error) {

	query := fmt.Sprintf("SELECT * FROM flows WHERE %s ORDER BY id LIMIT %d OFFSET %d", dk.where, size, offset)

	rows, err := dk.db.Query(query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query flows")
		return
	}
	defer rows.Close()

	count, err := columnCount(rows)
	if err != nil {
		return
	}

	for rows.Next() {
		var vals []any
		vals, err = scanRow(rows, count)
		if err != nil {
			err = errors.Wrapf(err, "failed to scan row")
			return
		}

		values := make([]nt.Value, count)
		for i, val := range vals {
			values[i] = nt.Value{Raw: numeric.Normalize(val)}
		}

		line := nt.Line{
			Id:     values[0].String(),
			Values: values,
		}
		lines = append(lines, line)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating rows")
	return
}

// GetFlow returns one flow record keyed by canonical column name
func (dk *Duck) GetFlow(id string) (data map[string]any, err error) {

	rows, err := dk.db.Query("SELECT * FROM flows WHERE id = ?", id)
	if err != nil {
		err = errors.Wrapf(err, "failed to query flow %s", id)
		return
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		err = errors.Wrapf(err, "failed to get cols from query rows")
		return
	}

	if !rows.Next() {
		err = errors.Errorf("no flow with id %s", id)
		return
	}

	vals, err := scanRow(rows, len(cols))
	if err != nil {
		err = errors.Wrapf(err, "failed to scan flow %s", id)
		return
	}

	data = make(map[string]any, len(cols))
	for i, col := range cols {
		data[col] = numeric.Normalize(vals[i])
	}

	return
}

// Timeline buckets flow counts by start time under the active predicate.
// bucketMillis is the bucket width.
func (dk *Duck) Timeline(bucketMillis int64) (buckets []nt.Bucket, err error) {

	if bucketMillis <= 0 {
		err = errors.Errorf("bucket width must be positive, got %d", bucketMillis)
		return
	}
	if _, ok := dk.mapping[nt.ColFlowStart]; !ok {
		err = errors.Errorf("loaded file has no %s column", nt.ColFlowStart)
		return
	}

	query := fmt.Sprintf(
		"SELECT (%s // %d) * %d AS bucket, COUNT(*) FROM flows WHERE %s GROUP BY bucket ORDER BY bucket",
		nt.ColFlowStart, bucketMillis, bucketMillis, dk.where)

	rows, err := dk.db.Query(query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query timeline")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var bucket nt.Bucket
		if err = rows.Scan(&bucket.StartMillis, &bucket.Count); err != nil {
			err = errors.Wrapf(err, "failed to scan bucket")
			return
		}
		buckets = append(buckets, bucket)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating buckets")
	return
}

// AttackTypes returns the distinct attack labels in the loaded file, for the
// filter screen's toggle list. Empty when the file carried no label column.
func (dk *Duck) AttackTypes() (labels []string, err error) {

	if _, ok := dk.mapping[nt.ColAttack]; !ok {
		return
	}

	query := fmt.Sprintf("SELECT DISTINCT %s FROM flows WHERE %s IS NOT NULL ORDER BY 1", nt.ColAttack, nt.ColAttack)

	rows, err := dk.db.Query(query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query attack types")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		if err = rows.Scan(&label); err != nil {
			err = errors.Wrapf(err, "failed to scan attack type")
			return
		}
		labels = append(labels, label)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating attack types")
	return
}

// AttackCounts returns per-label flow counts under the active predicate,
// busiest first. Empty when the file carried no label column.
func (dk *Duck) AttackCounts() (counts []nt.LabelCount, err error) {

	if _, ok := dk.mapping[nt.ColAttack]; !ok {
		return
	}

	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM flows WHERE %s AND %s IS NOT NULL GROUP BY 1 ORDER BY 2 DESC, 1",
		nt.ColAttack, dk.where, nt.ColAttack)

	rows, err := dk.db.Query(query)
	if err != nil {
		err = errors.Wrapf(err, "failed to query attack counts")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var lc nt.LabelCount
		if err = rows.Scan(&lc.Label, &lc.Count); err != nil {
			err = errors.Wrapf(err, "failed to scan attack count")
			return
		}
		counts = append(counts, lc)
	}

	err = rows.Err()
	err = errors.Wrapf(err, "error iterating attack counts")
	return
}

// unexported

// readHeader reads only the first record of the csv; rows are not touched
// until resolution succeeds.
func readHeader(path string) (headers []string, err error) {

	file, err := os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open %s", path)
		return
	}
	defer file.Close()

	headers, err = csv.NewReader(file).Read()
	err = errors.Wrapf(err, "failed to read header row from %s", path)
	return
}

func (dk *Duck) createFlows(path string, mapping nt.ColumnMapping) (err error) {

	create := fmt.Sprintf(`
		CREATE TABLE flows AS
		SELECT
			ROW_NUMBER() OVER () AS id,
			%s
		FROM read_csv(%s, header=true)
	`, projection(mapping), sqlString(path))

	_, err = dk.db.Exec(create)
	if err != nil {
		err = errors.Wrapf(err, "failed to create flows table")
		return
	}

	if _, ok := mapping[nt.ColFlowStart]; !ok {
		return // no start column, nothing to index
	}

	_, err = dk.db.Exec(fmt.Sprintf("CREATE INDEX idx_flow_start ON flows(%s)", nt.ColFlowStart))
	err = errors.Wrapf(err, "failed to create index")
	return
}

func (dk *Duck) recordIngest(path string) (err error) {

	_, err = dk.db.Exec("CREATE TABLE IF NOT EXISTS ingests (id VARCHAR, path VARCHAR, loaded_at TIMESTAMP DEFAULT now())")
	if err != nil {
		err = errors.Wrapf(err, "failed to create ingests table")
		return
	}

	_, err = dk.db.Exec("INSERT INTO ingests (id, path) VALUES (?, ?)", uuid.NewString(), path)
	err = errors.Wrapf(err, "failed to record ingest")
	return
}

// canonicalOrder fixes the column order of the flows table.
var canonicalOrder = []string{
	nt.ColFlowStart,
	nt.ColFlowEnd,
	nt.ColSrcAddr,
	nt.ColDstAddr,
	nt.ColSrcPort,
	nt.ColDstPort,
	nt.ColProtocol,
	nt.ColL7Proto,
	nt.ColInBytes,
	nt.ColOutBytes,
	nt.ColInPkts,
	nt.ColOutPkts,
	nt.ColAttack,
}

// projection builds the select list rewriting source headers to canonical
// names, in canonical order, skipping columns the file does not have.
func projection(mapping nt.ColumnMapping) string {

	var selects []string
	for _, canonical := range canonicalOrder {
		source, ok := mapping[canonical]
		if !ok {
			continue
		}
		selects = append(selects, fmt.Sprintf("%s AS %s", sqlIdent(source), sqlIdent(canonical)))
	}

	return strings.Join(selects, ",\n\t\t\t")
}

// sqlIdent double-quotes an identifier; source headers are arbitrary strings
func sqlIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlString(val string) string {
	return "'" + strings.ReplaceAll(val, "'", "''") + "'"
}

func (dk *Duck) getFields() (fields []nt.Field, err error) {

	rows, err := dk.db.Query(`
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = 'flows'
		ORDER BY ordinal_position
	`)
	if err != nil {
		err = errors.Wrapf(err, "failed to query schema")
		return
	}
	defer rows.Close()

	for rows.Next() {
		var field nt.Field
		if err = rows.Scan(&field.Name, &field.Type); err != nil {
			err = errors.Wrapf(err, "failed to scan field")
			return
		}
		fields = append(fields, field)
	}

	return
}

func columnCount(rows *sql.Rows) (int, error) {
	cols, err := rows.Columns()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get cols from query rows")
	}
	return len(cols), nil
}

func scanRow(rows *sql.Rows, columnCount int) ([]any, error) {
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	err := rows.Scan(ptrs...)
	return vals, err
}
