package database

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Vector wraps a float32 slice for use as a text vector column value.
// It implements sql.Scanner and driver.Valuer to convert between Go and the
// bracket text format "[1.0,2.0,3.0]", which works identically as a TEXT
// column in SQLite and Postgres and matches the pgvector literal syntax
// should the column ever be migrated to a native vector type.
type Vector struct {
	floats []float32
}

// NewVector creates a Vector from a float32 slice. The input is
// defensively copied so later mutations of the source slice have no effect.
func NewVector(floats []float32) Vector {
	cp := make([]float32, len(floats))
	copy(cp, floats)
	return Vector{floats: cp}
}

// Floats returns a defensive copy of the underlying float32 slice.
// Returns nil if the vector was never initialized (e.g. scanned from nil).
func (v Vector) Floats() []float32 {
	if v.floats == nil {
		return nil
	}
	cp := make([]float32, len(v.floats))
	copy(cp, v.floats)
	return cp
}

// Dimension returns the number of elements in the vector.
func (v Vector) Dimension() int {
	return len(v.floats)
}

// Scan implements sql.Scanner. It parses the vector text format
// "[1.0,2.0,3.0]" from either a string or []byte value.
func (v *Vector) Scan(value any) error {
	if value == nil {
		v.floats = nil
		return nil
	}

	var raw string
	switch val := value.(type) {
	case string:
		raw = val
	case []byte:
		raw = string(val)
	default:
		return fmt.Errorf("cannot scan %T into Vector", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "[]" || raw == "" {
		v.floats = []float32{}
		return nil
	}

	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")

	parts := strings.Split(raw, ",")
	floats := make([]float32, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("parse element %d: %w", i, err)
		}
		floats[i] = float32(f)
	}

	v.floats = floats
	return nil
}

// Value implements driver.Valuer. It serializes the vector to the text
// format "[1.0,2.0,3.0]".
func (v Vector) Value() (driver.Value, error) {
	return v.String(), nil
}

// String returns the vector literal "[1.0,2.0,3.0]".
func (v Vector) String() string {
	// Pre-allocate: ~12 bytes per float (digits + comma) plus brackets.
	var b strings.Builder
	b.Grow(len(v.floats)*12 + 2)
	b.WriteByte('[')
	for i, f := range v.floats {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
