package jsonc

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yacchi/kasane/document"
)

func TestDocument_Decode(t *testing.T) {
	d := New()

	t.Run("comments and trailing commas", func(t *testing.T) {
		input := []byte(`{
  // line comment
  "host": "localhost",
  /* block comment */
  "port": 8080,
  "nested": {
    "flag": true,
  },
}`)
		got, err := d.Decode(input)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}

		want := map[string]any{
			"host": "localhost",
			"port": 8080.0,
			"nested": map[string]any{
				"flag": true,
			},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Decode() = %v, want %v", got, want)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := d.Decode([]byte("  \n"))
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Decode() = %v, want empty map", got)
		}
	})

	t.Run("non-object root", func(t *testing.T) {
		_, err := d.Decode([]byte(`"just a string"`))
		var illegal *document.IllegalDocumentError
		if !errors.As(err, &illegal) {
			t.Errorf("Decode() error = %v, want *IllegalDocumentError", err)
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := d.Decode([]byte(`{"a": `))
		var parseErr *document.ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Decode() error = %v, want *ParseError", err)
		}
	})
}

func TestDocument_Roundtrip(t *testing.T) {
	d := New()

	data := map[string]any{
		"b": "overwritten",
		"d": map[string]any{
			"dd": map[string]any{"ddd2": "X"},
		},
		"n": nil,
	}

	encoded, err := d.Encode(data)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := d.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if !reflect.DeepEqual(decoded, data) {
		t.Errorf("roundtrip = %v, want %v", decoded, data)
	}
}

func TestDocument_Format(t *testing.T) {
	d := New()
	if d.Format() != FormatJSONC {
		t.Errorf("Format() = %q, want %q", d.Format(), FormatJSONC)
	}
	if d.Extension() != ".json" {
		t.Errorf("Extension() = %q, want .json", d.Extension())
	}
}
