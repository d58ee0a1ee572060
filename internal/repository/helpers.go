package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/guildhall/internal/database"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, database.ErrDuplicate) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already contains") ||
		strings.Contains(errStr, "already exists")
}

// convertRecordID converts a SurrealDB ID (which may be a complex object) to "table:id"
func convertRecordID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case map[string]interface{}:
		// {"tb": "guild", "id": "xxx"} or {"Table": ..., "ID": ...}
		tb := firstString(v, "tb", "TB", "Table")
		idPart := ""
		if idVal, ok := v["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := v["ID"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		return idPart
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s := firstString(m, "String", "string"); s != "" {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	}
	return 0
}

// records returns the map records of one statement in a Query response
func records(results []interface{}, statement int) []map[string]interface{} {
	raw := database.StatementResult(results, statement)
	out := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		if data, ok := r.(map[string]interface{}); ok {
			out = append(out, data)
		}
	}
	return out
}

// asRecord unwraps a QueryOne result into a record map
func asRecord(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, database.ErrNotFound
		}
		result = arr[0]
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// nilIfEmpty maps "" to NONE in SurrealQL
func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
