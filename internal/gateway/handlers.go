package gateway

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/TripleGChat/TG-Backend/internal/utils"
)

const listTablesQuery = `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = 'public'
	ORDER BY table_name`

const describeTableQuery = `
	SELECT column_name, data_type, is_nullable, column_default
	FROM information_schema.columns
	WHERE table_schema = 'public' AND table_name = $1
	ORDER BY ordinal_position`

// Service executes action descriptors against the shared connection pool.
type Service struct {
	DB *sql.DB
}

type actionRequest struct {
	Action  string         `json:"action"`
	Query   string         `json:"query"`
	Table   string         `json:"table"`
	Data    map[string]any `json:"data"`
	Filters map[string]any `json:"filters"`
}

type actionResponse struct {
	Success  bool             `json:"success"`
	Data     []map[string]any `json:"data"`
	RowCount int              `json:"rowCount"`
}

func (s *Service) DBHandler(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		query string
		args  []any
		err   error
	)

	switch req.Action {
	case "query":
		if req.Query == "" {
			utils.RespondError(w, http.StatusBadRequest, "Query is required")
			return
		}
		if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(req.Query)), "SELECT") {
			utils.RespondError(w, http.StatusBadRequest, "Only SELECT queries are allowed")
			return
		}
		query = req.Query

	case "list_tables":
		query = listTablesQuery

	case "describe_table":
		if req.Table == "" {
			utils.RespondError(w, http.StatusBadRequest, "Table name is required")
			return
		}
		query, args = describeTableQuery, []any{req.Table}

	case "select":
		if req.Table == "" {
			utils.RespondError(w, http.StatusBadRequest, "Table name is required")
			return
		}
		query, args, err = BuildSelect(req.Table, req.Filters)

	case "insert":
		if req.Table == "" || len(req.Data) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Table and data are required")
			return
		}
		query, args, err = BuildInsert(req.Table, req.Data)

	case "update":
		if req.Table == "" || len(req.Data) == 0 || len(req.Filters) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Table, data, and filters are required")
			return
		}
		query, args, err = BuildUpdate(req.Table, req.Data, req.Filters)

	case "delete":
		if req.Table == "" || len(req.Filters) == 0 {
			utils.RespondError(w, http.StatusBadRequest, "Table and filters are required")
			return
		}
		query, args, err = BuildDelete(req.Table, req.Filters)

	default:
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown action: %s", req.Action))
		return
	}

	var invalidIdent *InvalidIdentifierError
	if errors.As(err, &invalidIdent) {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rows, err := s.DB.QueryContext(r.Context(), query, args...)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	data, err := scanRows(rows)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, actionResponse{
		Success:  true,
		Data:     data,
		RowCount: len(data),
	})
}

// scanRows turns a result set into JSON-friendly maps. Byte slices become
// strings so text columns don't serialize as base64.
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	data := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		data = append(data, row)
	}
	return data, rows.Err()
}
