package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap хранит jsonb колонку как map. NULL читается как пустой объект.
type JSONMap map[string]any

// Value сериализует map для записи в jsonb.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}

// Scan читает jsonb из базы.
func (m *JSONMap) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: неподдерживаемый тип %T", src)
	}

	out := JSONMap{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("jsonmap: %w", err)
		}
	}
	*m = out
	return nil
}
