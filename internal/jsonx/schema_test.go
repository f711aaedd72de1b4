package jsonx

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValidateRequiredKeys_MissingKey(t *testing.T) {
	check := ValidateRequiredKeys(map[string]any{"name": "x"}, []string{"name", "id"})
	if check.Valid {
		t.Fatal("expected invalid result")
	}
	if !reflect.DeepEqual(check.MissingKeys, []string{"id"}) {
		t.Fatalf("missing = %v, want [id]", check.MissingKeys)
	}
}

func TestValidateRequiredKeys_AllPresent(t *testing.T) {
	check := ValidateRequiredKeys(map[string]any{"name": "x", "id": 7}, []string{"name", "id"})
	if !check.Valid {
		t.Fatalf("expected valid, missing=%v err=%v", check.MissingKeys, check.Err)
	}
}

func TestValidateRequiredKeys_NullValueCounts(t *testing.T) {
	// Present-but-null still counts as present; only absence is missing.
	check := ValidateRequiredKeys(map[string]any{"name": nil}, []string{"name"})
	if !check.Valid {
		t.Fatalf("null value should satisfy presence, missing=%v", check.MissingKeys)
	}
}

func TestValidateRequiredKeys_RejectsNonObject(t *testing.T) {
	for _, value := range []any{[]any{1, 2}, "text", 42.0, nil} {
		check := ValidateRequiredKeys(value, []string{"name"})
		if check.Valid {
			t.Fatalf("non-object %T should be invalid", value)
		}
		if check.Err == nil {
			t.Fatalf("non-object %T should carry a type error", value)
		}
	}
}

func TestValidateSchema_ValidAndInvalid(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"subject": {"type": "string"}},
		"required": ["subject"]
	}`)

	if err := ValidateSchema(map[string]any{"subject": "fox"}, schema); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
	if err := ValidateSchema(map[string]any{"subject": 3.0}, schema); err == nil {
		t.Fatal("type mismatch should fail validation")
	}
	if err := ValidateSchema(map[string]any{}, schema); err == nil {
		t.Fatal("missing required key should fail validation")
	}
}

func TestValidateSchema_EmptySchemaPasses(t *testing.T) {
	if err := ValidateSchema(map[string]any{"anything": true}, nil); err != nil {
		t.Fatalf("empty schema should validate nothing: %v", err)
	}
}

func TestStringField_Coercions(t *testing.T) {
	obj := map[string]any{
		"s":    " padded ",
		"list": []any{"red", "blue"},
		"n":    3.5,
		"null": nil,
	}

	if got := StringField(obj, "s"); got != "padded" {
		t.Fatalf("string field = %q", got)
	}
	if got := StringField(obj, "list"); got != "red, blue" {
		t.Fatalf("list field = %q", got)
	}
	if got := StringField(obj, "n"); got != "3.5" {
		t.Fatalf("number field = %q", got)
	}
	if got := StringField(obj, "null"); got != "" {
		t.Fatalf("null field = %q, want empty", got)
	}
	if got := StringField(obj, "absent"); got != "" {
		t.Fatalf("absent field = %q, want empty", got)
	}
}

func TestStringList_Coercions(t *testing.T) {
	obj := map[string]any{
		"list":   []any{"a", "", " b "},
		"single": "only",
	}

	if got := StringList(obj, "list"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("list = %v", got)
	}
	if got := StringList(obj, "single"); !reflect.DeepEqual(got, []string{"only"}) {
		t.Fatalf("single = %v", got)
	}
	if got := StringList(obj, "absent"); got != nil {
		t.Fatalf("absent = %v, want nil", got)
	}
}
