package encoding

import (
	"testing"

	"github.com/archetect/archetect/internal/core/entities"
)

func TestEncoderJSON(t *testing.T) {
	enc := NewEncoder()

	t.Run("encode simple struct", func(t *testing.T) {
		data := struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}{
			Name:  "test",
			Count: 42,
		}

		result, err := enc.EncodeJSON(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := `{"name":"test","count":42}`
		if string(result) != expected {
			t.Errorf("expected %s, got %s", expected, string(result))
		}
	})

	t.Run("decode JSON", func(t *testing.T) {
		input := `{"name":"decoded","count":100}`
		var result struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		err := enc.DecodeJSON([]byte(input), &result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Name != "decoded" || result.Count != 100 {
			t.Errorf("unexpected result: %+v", result)
		}
	})
}

func TestEncoderTOON_scalars(t *testing.T) {
	enc := NewEncoder()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"empty string", "", "-"},
		{"simple string unquoted", "widget", "widget"},
		{"string with spaces quoted", "hello there", `"hello there"`},
		{"true bool", true, "T"},
		{"false bool", false, "F"},
		{"int", 42, "42"},
		{"nil", nil, "-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := enc.EncodeTOON(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tc.want {
				t.Errorf("expected %q, got %q", tc.want, string(result))
			}
		})
	}
}

func TestEncoderTOON_struct(t *testing.T) {
	enc := NewEncoder()

	data := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Count       int    `json:"count"`
	}{
		Name:        "payment-service",
		Description: "handles payments",
		Count:       5,
	}

	result, err := enc.EncodeTOON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fields are abbreviated (n=name, d=description) where a common
	// abbreviation exists; unrecognized field names pass through lowercased.
	expected := `{n:payment-service;d:"handles payments";count:5}`
	if string(result) != expected {
		t.Errorf("expected %s, got %s", expected, string(result))
	}
}

func TestEncoderTOON_arrayAndMap(t *testing.T) {
	enc := NewEncoder()

	t.Run("array of strings", func(t *testing.T) {
		result, err := enc.EncodeTOON([]string{"one", "two", "three"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(result) != "[one;two;three]" {
			t.Errorf("unexpected encoding: %s", string(result))
		}
	})

	t.Run("empty array", func(t *testing.T) {
		result, err := enc.EncodeTOON([]string{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(result) != "[]" {
			t.Errorf("unexpected encoding: %s", string(result))
		}
	})

	t.Run("empty struct fields are skipped", func(t *testing.T) {
		data := struct {
			Name string `json:"name"`
			Tags []string `json:"tags,omitempty"`
		}{Name: "widget"}

		result, err := enc.EncodeTOON(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(result) != "{n:widget}" {
			t.Errorf("expected empty tags field to be omitted, got: %s", string(result))
		}
	})
}

// TestEncoderTOON_configuration exercises the actual type `config merged`
// encodes: entities.Configuration. Answers/Switches/Offline abbreviate via
// archetect's own key table (a/s/o), not the teacher's C4 field set;
// Overwrite and Catalog have no abbreviation and pass through by name.
func TestEncoderTOON_configuration(t *testing.T) {
	enc := NewEncoder()

	cfg := &entities.Configuration{
		Switches:  []string{"verbose"},
		Offline:   true,
		Overwrite: "preserve",
		Catalog:   "https://github.com/acme/catalog.git",
	}

	result, err := enc.EncodeTOON(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resultStr := string(result)
	if !contains(resultStr, "s:[verbose]") {
		t.Errorf("expected switches abbreviated to s:, got: %s", resultStr)
	}
	if !contains(resultStr, "o:T") {
		t.Errorf("expected offline abbreviated to o:, got: %s", resultStr)
	}
	if !contains(resultStr, `catalog:"https://github.com/acme/catalog.git"`) {
		t.Errorf("expected catalog field (no abbreviation registered) to pass through, got: %s", resultStr)
	}
}

func TestEncoderTOON_answerMap(t *testing.T) {
	enc := NewEncoder()

	answers := entities.NewAnswerMap()
	answers.Set("name", entities.NewStringValue("World"))
	answers.Set("enable", entities.NewBoolValue(true))

	result, err := enc.EncodeTOON(answers.ToAnyMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resultStr := string(result)
	if !contains(resultStr, "n:World") {
		t.Errorf("expected name abbreviated to n:, got: %s", resultStr)
	}
	if !contains(resultStr, "enable:T") {
		t.Errorf("expected enable:T, got: %s", resultStr)
	}
}

func TestDecodeTOON_fallsBackToJSONShapedInput(t *testing.T) {
	enc := NewEncoder()

	var decoded map[string]any
	err := enc.DecodeTOON([]byte(`{"name":"decoded"}`), &decoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["name"] != "decoded" {
		t.Errorf("unexpected decode result: %+v", decoded)
	}
}

func TestDecodeTOON_rejectsNonJSONInput(t *testing.T) {
	enc := NewEncoder()

	var decoded map[string]any
	err := enc.DecodeTOON([]byte("n:widget;d:a gadget"), &decoded)
	if err == nil {
		t.Error("expected an error decoding native TOON syntax (not yet supported)")
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(s) > 0 && containsHelper(s, substr))
}

func containsHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
