// File path: internal/glossary/definition_test.go
package glossary

import (
	"errors"
	"testing"
)

func TestDecodeDefinitionFlattened(t *testing.T) {
	raw := `{"canonical_name":"GPU","category_primary":"Compute","summary":"A processor.","definition_md":"## GPU","strategic_importance":"high","companies":[{"name":"NVIDIA","public":true}]}`
	def, err := DecodeDefinition(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if def.CanonicalName != "GPU" {
		t.Fatalf("unexpected canonical name: %q", def.CanonicalName)
	}
	if len(def.Companies) != 1 || def.Companies[0].Name != "NVIDIA" {
		t.Fatalf("unexpected companies: %+v", def.Companies)
	}
	if def.Companies[0].Public == nil || !*def.Companies[0].Public {
		t.Fatalf("expected public=true")
	}
}

func TestDecodeDefinitionNestedTermKey(t *testing.T) {
	raw := `{"term":{"canonical_name":"LLM","category_primary":"Models","summary":"s","definition_md":"d","strategic_importance":"i"},"companies":[{"name":"OpenAI"}]}`
	def, err := DecodeDefinition(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if def.CanonicalName != "LLM" {
		t.Fatalf("unexpected canonical name: %q", def.CanonicalName)
	}
	if len(def.Companies) != 1 || def.Companies[0].Name != "OpenAI" {
		t.Fatalf("expected top-level companies to be adopted, got %+v", def.Companies)
	}
}

func TestDecodeDefinitionStripsFences(t *testing.T) {
	raw := "```json\n{\"canonical_name\":\"RAG\",\"summary\":\"s\",\"definition_md\":\"d\"}\n```"
	def, err := DecodeDefinition(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if def.CanonicalName != "RAG" {
		t.Fatalf("unexpected canonical name: %q", def.CanonicalName)
	}
}

func TestDecodeDefinitionMalformed(t *testing.T) {
	_, err := DecodeDefinition("The term GPU refers to a graphics processing unit.")
	if err == nil {
		t.Fatalf("expected error for non-JSON output")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decodeErr.Raw == "" {
		t.Fatalf("expected raw text to be carried")
	}
}

func TestDecodeDefinitionEmpty(t *testing.T) {
	var decodeErr *DecodeError
	if _, err := DecodeDefinition("   "); !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError for empty response, got %v", err)
	}
}

func TestFlexStringToleratesNumbers(t *testing.T) {
	raw := `{"canonical_name":"X","summary":"s","definition_md":"d","companies":[{"name":"Acme","revenue_estimate":1200000000,"funding_total":"$50M"}]}`
	def, err := DecodeDefinition(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	company := def.Companies[0]
	if company.RevenueEstimate.String() != "1200000000" {
		t.Fatalf("unexpected revenue: %q", company.RevenueEstimate)
	}
	if company.FundingTotal.String() != "$50M" {
		t.Fatalf("unexpected funding: %q", company.FundingTotal)
	}
}

func TestStripJSONFences(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"```json\n{}\n```", "{}"},
		{"``` {}\n```", "{}"},
		{"{}", "{}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tc := range cases {
		if got := StripJSONFences(tc.input); got != tc.want {
			t.Fatalf("StripJSONFences(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
