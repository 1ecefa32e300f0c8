// File path: internal/workflow/define_test.go
package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/opengloss/glossd/internal/glossary"
	"github.com/opengloss/glossd/internal/store"
)

type fakeStore struct {
	terms       map[string]*store.Term
	versions    []store.TermVersion
	companies   map[string]*store.Company
	links       map[uuid.UUID]map[uuid.UUID]bool
	failCompany string
	insertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		terms:     make(map[string]*store.Term),
		companies: make(map[string]*store.Company),
		links:     make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeStore) TermByNormalizedName(ctx context.Context, normalized string) (*store.Term, error) {
	if term, ok := f.terms[normalized]; ok {
		copied := *term
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) InsertTerm(ctx context.Context, term store.Term, embedding []float32) (*store.Term, error) {
	f.insertCalls++
	if _, ok := f.terms[term.NormalizedName]; ok {
		return nil, fmt.Errorf("duplicate key value violates unique constraint \"terms_normalized_name_key\"")
	}
	term.ID = uuid.New()
	f.terms[term.NormalizedName] = &term
	copied := term
	return &copied, nil
}

func (f *fakeStore) InsertTermVersion(ctx context.Context, version store.TermVersion) (*store.TermVersion, error) {
	version.ID = uuid.New()
	f.versions = append(f.versions, version)
	copied := version
	return &copied, nil
}

func (f *fakeStore) RefreshTermCache(ctx context.Context, termID, versionID uuid.UUID, summary, category string, embedding []float32) (*store.Term, error) {
	for _, term := range f.terms {
		if term.ID == termID {
			vid := versionID
			term.CurrentVersionID = &vid
			term.Summary = summary
			term.CategoryPrimary = category
			copied := *term
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("term %s: %w", termID, store.ErrNotFound)
}

func (f *fakeStore) UpsertCompany(ctx context.Context, company store.Company, embedding []float32) (*store.Company, error) {
	if company.NormalizedName == f.failCompany {
		return nil, fmt.Errorf("simulated company upsert failure")
	}
	if existing, ok := f.companies[company.NormalizedName]; ok {
		company.ID = existing.ID
	} else {
		company.ID = uuid.New()
	}
	f.companies[company.NormalizedName] = &company
	copied := company
	return &copied, nil
}

func (f *fakeStore) LinkTermCompany(ctx context.Context, termID, companyID uuid.UUID) error {
	if f.links[termID] == nil {
		f.links[termID] = make(map[uuid.UUID]bool)
	}
	f.links[termID][companyID] = true
	return nil
}

func (f *fakeStore) CompaniesForTerm(ctx context.Context, termID uuid.UUID) ([]store.Company, error) {
	out := []store.Company{}
	for _, company := range f.companies {
		if f.links[termID][company.ID] {
			out = append(out, *company)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	def   *glossary.GeneratedDefinition
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, term string) (*glossary.GeneratedDefinition, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.def
	return &copied, nil
}

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, input []string) ([][]float32, error) {
	f.calls++
	vectors := make([][]float32, len(input))
	for i := range input {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func baseDefinition() *glossary.GeneratedDefinition {
	public := true
	return &glossary.GeneratedDefinition{
		CanonicalName:       "GPU (Graphics Processing Unit)",
		CategoryPrimary:     "Compute",
		Summary:             "A parallel processor for model training and inference.",
		DefinitionMD:        "## GPU\n\nA graphics processing unit.",
		StrategicImportance: "Critical to the compute supply chain.",
		Companies: []glossary.GeneratedCompany{
			{Name: "NVIDIA", Public: &public, Description: "GPU vendor"},
			{Name: "AMD", Public: &public, Description: "GPU vendor"},
		},
	}
}

func newTestWorkflow(t *testing.T, st *fakeStore, gen *fakeGenerator) *Workflow {
	t.Helper()
	wf, err := New(st, gen, &fakeEmbedder{})
	if err != nil {
		t.Fatalf("workflow construction failed: %v", err)
	}
	return wf
}

func TestDefineNewTerm(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	result, err := wf.Define(context.Background(), "gpu", nil)
	if err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if !result.IsNew {
		t.Fatalf("expected new term")
	}
	if len(st.terms) != 1 {
		t.Fatalf("expected 1 term row, got %d", len(st.terms))
	}
	if len(st.versions) != 1 {
		t.Fatalf("expected 1 version row, got %d", len(st.versions))
	}
	if result.Term.CanonicalName != "GPU (Graphics Processing Unit)" {
		t.Fatalf("expected generator canonical name, got %q", result.Term.CanonicalName)
	}
	if result.Term.NormalizedName != "gpu" {
		t.Fatalf("unexpected normalized name: %q", result.Term.NormalizedName)
	}
	if result.Term.CategoryPrimary != glossary.CategoryCompute {
		t.Fatalf("unexpected category: %q", result.Term.CategoryPrimary)
	}
	if result.Term.CurrentVersionID == nil || *result.Term.CurrentVersionID != result.Version.ID {
		t.Fatalf("current_version_id not pointing at new version")
	}
	if len(result.Companies) != 2 {
		t.Fatalf("expected 2 linked companies, got %d", len(result.Companies))
	}
}

func TestDefineCanonicalFallsBackToInput(t *testing.T) {
	st := newFakeStore()
	def := baseDefinition()
	def.CanonicalName = ""
	gen := &fakeGenerator{def: def}
	wf := newTestWorkflow(t, st, gen)

	result, err := wf.Define(context.Background(), "  Vector Database ", nil)
	if err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if result.Term.CanonicalName != "Vector Database" {
		t.Fatalf("expected raw input fallback, got %q", result.Term.CanonicalName)
	}
	if result.Term.NormalizedName != "vector database" {
		t.Fatalf("unexpected normalized name: %q", result.Term.NormalizedName)
	}
}

func TestDefineExistingTermPreservesCanonicalIdentity(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	first, err := wf.Define(context.Background(), "GPU", nil)
	if err != nil {
		t.Fatalf("first define failed: %v", err)
	}

	// The generator now suggests a different canonical name; the stored one
	// must win.
	gen.def.CanonicalName = "Graphics Card"
	second, err := wf.Define(context.Background(), " gpu ", nil)
	if err != nil {
		t.Fatalf("second define failed: %v", err)
	}
	if second.IsNew {
		t.Fatalf("expected existing term")
	}
	if second.Term.CanonicalName != first.Term.CanonicalName {
		t.Fatalf("canonical identity drifted: %q != %q", second.Term.CanonicalName, first.Term.CanonicalName)
	}
	if len(st.terms) != 1 {
		t.Fatalf("expected exactly 1 term row, got %d", len(st.terms))
	}
	if len(st.versions) != 2 {
		t.Fatalf("expected 2 version rows, got %d", len(st.versions))
	}
	if st.insertCalls != 1 {
		t.Fatalf("expected a single term insert, got %d", st.insertCalls)
	}
	if second.Term.CurrentVersionID == nil || *second.Term.CurrentVersionID != second.Version.ID {
		t.Fatalf("current_version_id must equal the second call's version id")
	}
}

func TestDefineGeneratorFailureWritesNothing(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{err: &glossary.DecodeError{Raw: "not json", Err: fmt.Errorf("invalid character")}}
	wf := newTestWorkflow(t, st, gen)

	if _, err := wf.Define(context.Background(), "gpu", nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(st.terms) != 0 || len(st.versions) != 0 || len(st.companies) != 0 {
		t.Fatalf("expected no rows after generator failure: terms=%d versions=%d companies=%d",
			len(st.terms), len(st.versions), len(st.companies))
	}
}

func TestDefineCompanyUpsertFailureIsSkipped(t *testing.T) {
	st := newFakeStore()
	st.failCompany = "nvidia"
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	result, err := wf.Define(context.Background(), "gpu", nil)
	if err != nil {
		t.Fatalf("define should survive a company upsert failure: %v", err)
	}
	if len(result.Companies) != 1 {
		t.Fatalf("expected 1 linked company after skip, got %d", len(result.Companies))
	}
	if result.Companies[0].Name != "AMD" {
		t.Fatalf("unexpected surviving company: %q", result.Companies[0].Name)
	}
}

func TestDefineCompanyLinksDeduplicateAcrossRuns(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	if _, err := wf.Define(context.Background(), "gpu", nil); err != nil {
		t.Fatalf("first define failed: %v", err)
	}
	result, err := wf.Define(context.Background(), "gpu", nil)
	if err != nil {
		t.Fatalf("second define failed: %v", err)
	}
	if len(result.Companies) != 2 {
		t.Fatalf("expected 2 companies without duplicates, got %d", len(result.Companies))
	}
	if len(st.companies) != 2 {
		t.Fatalf("expected overlapping companies to merge, got %d rows", len(st.companies))
	}
}

func TestDefineSkipsCompaniesWithEmptyNames(t *testing.T) {
	st := newFakeStore()
	def := baseDefinition()
	def.Companies = append(def.Companies, glossary.GeneratedCompany{Name: "   "})
	gen := &fakeGenerator{def: def}
	wf := newTestWorkflow(t, st, gen)

	result, err := wf.Define(context.Background(), "gpu", nil)
	if err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if len(result.Companies) != 2 {
		t.Fatalf("expected empty-named company to be ignored, got %d", len(result.Companies))
	}
}

func TestDefineRejectsEmptyTerm(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	if _, err := wf.Define(context.Background(), "   ", nil); err == nil {
		t.Fatalf("expected validation error")
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called for empty input")
	}
}

func TestDefineEditorAttribution(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{def: baseDefinition()}
	wf := newTestWorkflow(t, st, gen)

	editor := uuid.New()
	result, err := wf.Define(context.Background(), "gpu", &editor)
	if err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if result.Version.EditorUserID == nil || *result.Version.EditorUserID != editor {
		t.Fatalf("version missing editor attribution")
	}
	if result.Term.CreatedBy == nil || *result.Term.CreatedBy != editor {
		t.Fatalf("term missing creator attribution")
	}
}
