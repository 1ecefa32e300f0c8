// File path: internal/glossary/category.go
package glossary

import "strings"

// The fixed taxonomy for category_primary.
const (
	CategoryModels       = "Models"
	CategoryCompute      = "Compute"
	CategoryData         = "Data"
	CategoryTooling      = "Tooling & DevOps"
	CategoryApplications = "Applications"
	CategorySafety       = "Safety & Governance"
	CategoryBusiness     = "Business & Market Structure"
)

// Categories lists every allowed category_primary value.
var Categories = []string{
	CategoryModels,
	CategoryCompute,
	CategoryData,
	CategoryTooling,
	CategoryApplications,
	CategorySafety,
	CategoryBusiness,
}

// categoryRules are checked in order; the first keyword hit wins, so "data
// platform" lands in Data before Tooling & DevOps gets a look.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{CategoryModels, []string{"model"}},
	{CategoryCompute, []string{"compute", "infra"}},
	{CategoryData, []string{"data", "database", "vector"}},
	{CategoryTooling, []string{"tool", "devops", "platform"}},
	{CategoryApplications, []string{"app"}},
	{CategorySafety, []string{"safety", "govern"}},
	{CategoryBusiness, []string{"market", "business"}},
}

// CoerceCategory maps an arbitrary category label from the generator onto the
// fixed taxonomy. Unrecognized input maps to Tooling & DevOps.
func CoerceCategory(input string) string {
	s := strings.ToLower(input)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.category
			}
		}
	}
	return CategoryTooling
}
