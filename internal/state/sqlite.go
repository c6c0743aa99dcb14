package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/glossa-labs/transfield/pkg/core"
)

// RecordNotFoundError is returned when a record ID does not exist.
type RecordNotFoundError struct {
	Model string
	ID    string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("model %q: no record with id %q", e.Model, e.ID)
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store. A nil logger discards log
// output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// The pool must not open a second connection: every in-memory
		// connection is its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("opened record store", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the table for a built schema if it is missing: one
// typed column per concrete field plus the id primary key.
func (s *SQLiteStore) InitSchema(ctx context.Context, schema *core.Schema) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	cols := []string{`"id" TEXT PRIMARY KEY`}
	for _, f := range schema.Fields() {
		cols = append(cols, columnDef(f))
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s)`, quoteIdent(schema.Name), strings.Join(cols, ", "))

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table for model %q: %w", schema.Name, err)
	}
	s.logger.Debug("initialized model table", "model", schema.Name, "columns", len(cols))
	return nil
}

// SaveRecord inserts a record, assigning a fresh UUID when it has no ID.
// Unset attributes are stored as NULL.
func (s *SQLiteStore) SaveRecord(ctx context.Context, rec *core.Record) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	schema := rec.Schema()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	cols := []string{`"id"`}
	placeholders := []string{"?"}
	args := []any{rec.ID}
	for _, f := range schema.Fields() {
		cols = append(cols, quoteIdent(f.Name))
		placeholders = append(placeholders, "?")
		v, ok := rec.Attr(f.Name)
		if !ok {
			v = nil
		}
		args = append(args, v)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(schema.Name), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to save record for model %q: %w", schema.Name, err)
	}
	return rec.ID, nil
}

// UpdateRecord rewrites an existing record's attributes in place. The
// update is a single statement, so a constraint violation leaves the
// stored row untouched.
func (s *SQLiteStore) UpdateRecord(ctx context.Context, rec *core.Record) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if rec.ID == "" {
		return fmt.Errorf("cannot update a record without an id")
	}

	schema := rec.Schema()
	sets := make([]string, 0, len(schema.Fields()))
	args := make([]any, 0, len(schema.Fields())+1)
	for _, f := range schema.Fields() {
		sets = append(sets, quoteIdent(f.Name)+" = ?")
		v, ok := rec.Attr(f.Name)
		if !ok {
			v = nil
		}
		args = append(args, v)
	}
	args = append(args, rec.ID)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE "id" = ?`,
		quoteIdent(schema.Name), strings.Join(sets, ", "))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update record %q of model %q: %w", rec.ID, schema.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &RecordNotFoundError{Model: schema.Name, ID: rec.ID}
	}
	return nil
}

// GetRecord loads one record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, schema *core.Schema, id string) (*core.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "id" = ?`, selectList(schema), quoteIdent(schema.Name))
	row := s.db.QueryRowContext(ctx, query, id)

	rec, err := scanRecord(schema, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &RecordNotFoundError{Model: schema.Name, ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %q of model %q: %w", id, schema.Name, err)
	}
	return rec, nil
}

// ListRecords loads all records of a schema, ordered by ID.
func (s *SQLiteStore) ListRecords(ctx context.Context, schema *core.Schema) ([]*core.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY "id"`, selectList(schema), quoteIdent(schema.Name))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list records of model %q: %w", schema.Name, err)
	}
	defer rows.Close()

	var records []*core.Record
	for rows.Next() {
		rec, err := scanRecord(schema, rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record of model %q: %w", schema.Name, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteRecord removes one record by ID.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, schema *core.Schema, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE "id" = ?`, quoteIdent(schema.Name))
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %q of model %q: %w", id, schema.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &RecordNotFoundError{Model: schema.Name, ID: id}
	}
	return nil
}

// scanRecord scans one row into a fresh record. NULL columns stay unset.
func scanRecord(schema *core.Schema, scan func(...any) error) (*core.Record, error) {
	fields := schema.Fields()
	dest := make([]any, len(fields)+1)
	var id string
	dest[0] = &id
	values := make([]any, len(fields))
	for i := range fields {
		dest[i+1] = &values[i]
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	rec := schema.NewRecord()
	rec.ID = id
	for i, f := range fields {
		if values[i] == nil {
			continue
		}
		rec.SetAttr(f.Name, values[i])
	}
	return rec, nil
}

// selectList returns the quoted column list for a schema, id first.
func selectList(schema *core.Schema) string {
	cols := []string{`"id"`}
	for _, f := range schema.Fields() {
		cols = append(cols, quoteIdent(f.Name))
	}
	return strings.Join(cols, ", ")
}

// columnDef renders one column definition from a field declaration.
func columnDef(f *core.FieldDecl) string {
	var b strings.Builder
	b.WriteString(quoteIdent(f.Name))
	b.WriteString(" ")
	b.WriteString(columnType(f.Type))
	if !f.Nullable {
		b.WriteString(" NOT NULL")
	}
	if f.HasDefault {
		b.WriteString(" DEFAULT ")
		b.WriteString(defaultLiteral(f.Default))
	}
	return b.String()
}

// columnType maps field types onto SQLite storage classes.
func columnType(t core.FieldType) string {
	switch t {
	case core.FieldInt, core.FieldBool:
		return "INTEGER"
	case core.FieldFloat:
		return "REAL"
	default:
		// string, text and datetime are stored as TEXT
		return "TEXT"
	}
}

// defaultLiteral renders a default value as a SQL literal.
func defaultLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "1"
		}
		return "0"
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// quoteIdent quotes an identifier for SQLite.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
