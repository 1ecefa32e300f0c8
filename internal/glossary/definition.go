// File path: internal/glossary/definition.go
package glossary

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// GeneratedCompany is one company entry from the generator's payload.
// Public is tri-state: nil when the generator did not commit either way.
type GeneratedCompany struct {
	Name            string     `json:"name"`
	Public          *bool      `json:"public"`
	RevenueEstimate FlexString `json:"revenue_estimate"`
	FundingRaised   FlexString `json:"funding_raised"`
	FundingTotal    FlexString `json:"funding_total"`
	Description     string     `json:"description"`
}

// GeneratedDefinition is the structured payload expected from the definition
// generator. All fields are untrusted until decoded through DecodeDefinition.
type GeneratedDefinition struct {
	CanonicalName       string             `json:"canonical_name"`
	CategoryPrimary     string             `json:"category_primary"`
	Summary             string             `json:"summary"`
	DefinitionMD        string             `json:"definition_md"`
	StrategicImportance string             `json:"strategic_importance"`
	Companies           []GeneratedCompany `json:"companies"`
}

// DecodeError reports generator output that could not be parsed. Raw carries
// the offending text (fences already stripped) for diagnosis.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("generator did not return valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^\\s*```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```\\s*$")
)

// StripJSONFences removes a surrounding markdown code fence, if present.
func StripJSONFences(s string) string {
	t := strings.TrimSpace(s)
	t = fenceOpen.ReplaceAllString(t, "")
	t = fenceClose.ReplaceAllString(t, "")
	return strings.TrimSpace(t)
}

// DecodeDefinition parses raw generator output into a GeneratedDefinition.
// Fenced JSON is unwrapped first, and payloads nested under a "term" key are
// accepted alongside the flattened form. A parse failure yields a *DecodeError
// and no partial result.
func DecodeDefinition(raw string) (*GeneratedDefinition, error) {
	cleaned := StripJSONFences(raw)
	if cleaned == "" {
		return nil, &DecodeError{Raw: raw, Err: fmt.Errorf("empty response")}
	}
	var envelope struct {
		GeneratedDefinition
		Term *GeneratedDefinition `json:"term"`
	}
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, &DecodeError{Raw: cleaned, Err: err}
	}
	def := envelope.GeneratedDefinition
	if envelope.Term != nil {
		def = *envelope.Term
		if len(def.Companies) == 0 {
			def.Companies = envelope.GeneratedDefinition.Companies
		}
	}
	def.CanonicalName = strings.TrimSpace(def.CanonicalName)
	def.Summary = strings.TrimSpace(def.Summary)
	def.DefinitionMD = strings.TrimSpace(def.DefinitionMD)
	def.StrategicImportance = strings.TrimSpace(def.StrategicImportance)
	return &def, nil
}

// FlexString tolerates generators that emit numbers where the contract says
// string (funding and revenue figures, most often).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("value %s is neither string nor number", trimmed)
}

func (f FlexString) String() string {
	return string(f)
}
