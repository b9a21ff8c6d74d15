package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSON is a wrapper around gorm.io/datatypes.JSON to allow for custom data type mapping.
// Site settings and component props are stored in JSON columns.
type JSON struct {
	datatypes.JSON
}

// NewJSON marshals v into a JSON column value
func NewJSON(v any) (JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return JSON{}, err
	}
	return JSON{JSON: datatypes.JSON(data)}, nil
}

// RawJSON wraps an already encoded JSON document. Empty input is stored as {}.
func RawJSON(data []byte) JSON {
	if len(data) == 0 {
		data = []byte("{}")
	}
	return JSON{JSON: datatypes.JSON(data)}
}

// Map decodes the column into a generic object. Anything that is not a JSON
// object decodes to an empty map.
func (j JSON) Map() map[string]any {
	out := make(map[string]any)
	if len(j.JSON) == 0 {
		return out
	}
	if err := json.Unmarshal(j.JSON, &out); err != nil || out == nil {
		return make(map[string]any)
	}
	return out
}

// Value promotes the embedded JSON's Value method
func (j JSON) Value() (driver.Value, error) {
	return j.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
