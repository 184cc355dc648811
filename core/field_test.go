package core

import (
	"errors"
	"testing"
	"time"
)

func TestField_StringValue(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"String field", StringField("k", "hello"), "hello"},
		{"Int field", IntField("k", 42), "42"},
		{"Int64 field", Field{Type: Int64Type, Int64: 1234567890}, "1234567890"},
		{"Bool field (true)", BoolField("k", true), "true"},
		{"Bool field (false)", BoolField("k", false), "false"},
		{"Float64 field", Field{Type: Float64Type, Float64: 3.14}, "3.14"},
		{"Duration field", Field{Type: DurationType, Int64: int64(5 * time.Second)}, "5s"},
		{"Error field", ErrorField(errors.New("an error occurred")), "an error occurred"},
		{"Nil error field", ErrorField(nil), ""},
		{"Any field", Field{Type: AnyType, Any: []int{1, 2}}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.StringValue(); got != tt.want {
				t.Errorf("Field.StringValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorField_Key(t *testing.T) {
	if got := ErrorField(nil).Key; got != "error" {
		t.Errorf("ErrorField key = %q, want %q", got, "error")
	}
}
