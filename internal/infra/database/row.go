package database

import (
	"fmt"
	"strconv"
	"time"
)

// Helpers de conversão para as linhas genéricas que o executor devolve.
// O driver entrega int64/string/time.Time/nil dependendo da coluna.

func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

func (r Row) NullInt64(col string) *int64 {
	if r[col] == nil {
		return nil
	}
	n := r.Int64(col)
	return &n
}

func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		t, _ := time.Parse("2006-01-02 15:04:05", v)
		return t
	default:
		return time.Time{}
	}
}

func (r Row) NullTime(col string) *time.Time {
	if r[col] == nil {
		return nil
	}
	t := r.Time(col)
	return &t
}
