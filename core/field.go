package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is a key-value pair attached to an Entry. Numeric, boolean, time and
// duration values are packed into Int64/Float64 so they never escape to the heap.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     any
}

// StringField creates a string field
func StringField(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// IntField creates an int field
func IntField(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// BoolField creates a bool field
func BoolField(key string, val bool) Field {
	var n int64
	if val {
		n = 1
	}
	return Field{Key: key, Type: BoolType, Int64: n}
}

// ErrorField creates an "error" field. A nil error yields an empty string value.
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: "error", Type: ErrorType}
	}
	return Field{Key: "error", Type: ErrorType, Str: err.Error()}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case AnyType:
		return fmt.Sprint(f.Any)
	default:
		return ""
	}
}
