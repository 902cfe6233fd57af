package store

import (
	"fmt"
	"slices"
	"strings"
)

// Schema names a table and its expected column order.
type Schema struct {
	Name    string
	Columns []string
}

// Row is one table row keyed by column name. Missing keys are stored as "".
type Row map[string]string

var (
	ConfigSchema = Schema{
		Name:    "config",
		Columns: []string{"start_date", "auto_phase", "manual_phase", "target_exam"},
	}
	LogSchema = Schema{
		Name: "log",
		Columns: []string{
			"date", "phase", "day_type", "mode", "block", "done",
			"estimated_minutes", "energy", "focus", "note", "subject",
		},
	}
	SubjectSchema = Schema{
		Name:    "subjects",
		Columns: []string{"name", "total_lectures", "completed_lectures", "active"},
	}

	Schemas = []Schema{ConfigSchema, LogSchema, SubjectSchema}
)

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func createDDL(schema Schema) string {
	cols := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		cols[i] = quote(c) + " TEXT NOT NULL DEFAULT ''"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(schema.Name), strings.Join(cols, ", "))
}

// Columns returns the table's current column names in order, or nil when the
// table does not exist.
func (s *Store) Columns(table string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quote(table)))
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notnull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table info %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// EnsureTable creates the table when missing. When its columns differ from
// the expected order, the table is rebuilt with the expected columns and the
// shared columns are copied over.
func (s *Store) EnsureTable(schema Schema) error {
	cols, err := s.Columns(schema.Name)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		if _, err := s.db.Exec(createDDL(schema)); err != nil {
			return fmt.Errorf("create table %s: %w", schema.Name, err)
		}
		return nil
	}
	if slices.Equal(cols, schema.Columns) {
		return nil
	}
	return s.repairTable(schema, cols)
}

func (s *Store) repairTable(schema Schema, existing []string) error {
	old := schema.Name + "_old"
	var shared []string
	for _, c := range schema.Columns {
		if slices.Contains(existing, c) {
			shared = append(shared, quote(c))
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin repair %s: %w", schema.Name, err)
	}
	defer tx.Rollback()

	stmts := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", quote(old)),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", quote(schema.Name), quote(old)),
		createDDL(schema),
	}
	if len(shared) > 0 {
		list := strings.Join(shared, ", ")
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO %s (%s) SELECT %s FROM %s ORDER BY rowid",
			quote(schema.Name), list, coalesced(shared), quote(old),
		))
	}
	stmts = append(stmts, fmt.Sprintf("DROP TABLE %s", quote(old)))

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("repair table %s: %w", schema.Name, err)
		}
	}
	return tx.Commit()
}

func coalesced(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '')", c)
	}
	return strings.Join(out, ", ")
}

// LoadTable returns every row in insertion order.
func (s *Store) LoadTable(schema Schema) ([]Row, error) {
	cols := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		cols[i] = quote(c)
	}
	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY rowid", strings.Join(cols, ", "), quote(schema.Name),
	))
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", schema.Name, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		vals := make([]string, len(schema.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", schema.Name, err)
		}
		row := make(Row, len(vals))
		for i, c := range schema.Columns {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SaveTable clears the table and writes rows in order, in one transaction.
func (s *Store) SaveTable(schema Schema, rows []Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save %s: %w", schema.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", quote(schema.Name))); err != nil {
		return fmt.Errorf("clear table %s: %w", schema.Name, err)
	}

	cols := make([]string, len(schema.Columns))
	marks := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		cols[i] = quote(c)
		marks[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quote(schema.Name), strings.Join(cols, ", "), strings.Join(marks, ", "),
	))
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", schema.Name, err)
	}
	defer stmt.Close()

	args := make([]any, len(schema.Columns))
	for _, row := range rows {
		for i, c := range schema.Columns {
			args[i] = row[c]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert %s row: %w", schema.Name, err)
		}
	}
	return tx.Commit()
}
