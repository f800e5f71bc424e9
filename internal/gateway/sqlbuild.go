package gateway

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Table and column names come from the request body, so they are validated
// against a strict identifier shape before being interpolated as quoted
// identifiers. Values never touch the SQL text; they are always bound as
// positional parameters.

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier: %q", e.Name)
}

// ValidateIdentifier rejects anything that is not a plain SQL identifier,
// including names carrying the quote character.
func ValidateIdentifier(name string) error {
	if !identPattern.MatchString(name) {
		return &InvalidIdentifierError{Name: name}
	}
	return nil
}

func quoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

// sortedKeys gives the builders a deterministic column order; Go maps carry
// no insertion order to preserve.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func validateAll(table string, maps ...map[string]any) error {
	if err := ValidateIdentifier(table); err != nil {
		return err
	}
	for _, m := range maps {
		for k := range m {
			if err := ValidateIdentifier(k); err != nil {
				return err
			}
		}
	}
	return nil
}

// BuildSelect produces `SELECT * FROM "t" [WHERE ...] LIMIT 100` with filter
// values bound positionally.
func BuildSelect(table string, filters map[string]any) (string, []any, error) {
	if err := validateAll(table, filters); err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(quoteIdent(table))

	var args []any
	if len(filters) > 0 {
		sb.WriteString(" WHERE ")
		for i, key := range sortedKeys(filters) {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			args = append(args, filters[key])
			fmt.Fprintf(&sb, "%s = $%d", quoteIdent(key), len(args))
		}
	}
	sb.WriteString(" LIMIT 100")

	return sb.String(), args, nil
}

// BuildInsert produces `INSERT INTO "t" (...) VALUES (...) RETURNING *`.
func BuildInsert(table string, data map[string]any) (string, []any, error) {
	if err := validateAll(table, data); err != nil {
		return "", nil, err
	}

	keys := sortedKeys(data)
	cols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, key := range keys {
		cols[i] = quoteIdent(key)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = data[key]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	return query, args, nil
}

// BuildUpdate produces `UPDATE "t" SET ... WHERE ... RETURNING *`. Data
// parameters are numbered before filter parameters.
func BuildUpdate(table string, data, filters map[string]any) (string, []any, error) {
	if err := validateAll(table, data, filters); err != nil {
		return "", nil, err
	}

	var args []any
	setClauses := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		args = append(args, data[key])
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", quoteIdent(key), len(args)))
	}
	whereClauses := make([]string, 0, len(filters))
	for _, key := range sortedKeys(filters) {
		args = append(args, filters[key])
		whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", quoteIdent(key), len(args)))
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s RETURNING *",
		quoteIdent(table), strings.Join(setClauses, ", "), strings.Join(whereClauses, " AND "))
	return query, args, nil
}

// BuildDelete produces `DELETE FROM "t" WHERE ... RETURNING *`.
func BuildDelete(table string, filters map[string]any) (string, []any, error) {
	if err := validateAll(table, filters); err != nil {
		return "", nil, err
	}

	var args []any
	whereClauses := make([]string, 0, len(filters))
	for _, key := range sortedKeys(filters) {
		args = append(args, filters[key])
		whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", quoteIdent(key), len(args)))
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s RETURNING *",
		quoteIdent(table), strings.Join(whereClauses, " AND "))
	return query, args, nil
}
