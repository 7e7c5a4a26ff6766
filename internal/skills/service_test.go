package skills

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"gigmatch/internal/cache"
	"gigmatch/internal/embeddings"
)

func newTestService(e embeddings.Embedder, c cache.Cache) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return New(e, c, "test-model", time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// taxonomyMatrix builds a vector per taxonomy skill: zero vectors (which
// score 0 against anything) except for the named overrides.
func taxonomyMatrix(overrides map[string]embeddings.Vector) []embeddings.Vector {
	vecs := make([]embeddings.Vector, len(allSkills))
	for i, skill := range allSkills {
		if v, ok := overrides[skill]; ok {
			vecs[i] = v
		} else {
			vecs[i] = embeddings.Vector{0, 0}
		}
	}
	return vecs
}

func TestExtract(t *testing.T) {
	svc := newTestService(&embeddings.MockEmbedder{}, nil)

	analysis := svc.Extract("Senior Python developer, deployed on Kubernetes, 7 years of experience with cobol")

	if !slices.Contains(analysis.ExtractedSkills, "python") {
		t.Errorf("expected python extracted, got %v", analysis.ExtractedSkills)
	}
	if analysis.ConfidenceScores["python"] != 1.0 {
		t.Errorf("taxonomy hit must have confidence 1.0, got %f", analysis.ConfidenceScores["python"])
	}
	if !slices.Contains(analysis.SkillCategories["cloud"], "kubernetes") {
		t.Errorf("expected kubernetes in cloud category, got %v", analysis.SkillCategories)
	}
	if !slices.Contains(analysis.ExtractedSkills, "cobol") {
		t.Errorf("expected years-of-experience claim extracted, got %v", analysis.ExtractedSkills)
	}
	if analysis.ConfidenceScores["cobol"] != 0.7 {
		t.Errorf("experience-pattern hit must have confidence 0.7, got %f", analysis.ConfidenceScores["cobol"])
	}
}

func TestExtractDeduplicates(t *testing.T) {
	svc := newTestService(&embeddings.MockEmbedder{}, nil)

	analysis := svc.Extract("react react react")
	count := 0
	for _, s := range analysis.ExtractedSkills {
		if s == "react" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected react once, got %d", count)
	}
}

func TestRelated(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, "python").Return(embeddings.Vector{1, 0}, nil).Once()
	e.On("EmbedBatch", mock.Anything, allSkills).Return(taxonomyMatrix(map[string]embeddings.Vector{
		"python": {1, 0},          // excluded: it is the input
		"golang": {1, 0},          // sim 1.0
		"django": {0.9, 0.43589},  // sim 0.9
		"figma":  {0.25, 0.96825}, // sim 0.25, below threshold
	}), nil).Once()
	svc := newTestService(e, nil)

	related, err := svc.Related(context.Background(), []string{"python"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 related skills, got %v", related)
	}
	if related[0].Skill != "golang" || related[0].RelevanceScore != 100.0 {
		t.Errorf("unexpected first result: %+v", related[0])
	}
	if related[1].Skill != "django" || related[1].RelevanceScore != 90.0 {
		t.Errorf("unexpected second result: %+v", related[1])
	}
	e.AssertExpectations(t)
}

func TestRelatedEmptyInput(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e, nil)

	related, err := svc.Related(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(related) != 0 {
		t.Errorf("expected no results, got %v", related)
	}
	e.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestValidateStandardizesNearMiss(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("EmbedBatch", mock.Anything, []string{"reactjs"}).
		Return([]embeddings.Vector{{1, 0}}, nil).Once()
	e.On("EmbedBatch", mock.Anything, allSkills).Return(taxonomyMatrix(map[string]embeddings.Vector{
		"react": {0.9, 0.43589}, // sim 0.9, above 0.8
	}), nil).Once()
	svc := newTestService(e, nil)

	got, err := svc.Validate(context.Background(), []string{"Python", "reactjs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Python", "react"}
	if !slices.Equal(got.ValidatedSkills, want) {
		t.Errorf("expected %v, got %v", want, got.ValidatedSkills)
	}
	if got.Suggestions["reactjs"] != "react" {
		t.Errorf("expected suggestion reactjs->react, got %v", got.Suggestions)
	}
	if got.IsValid {
		t.Error("expected IsValid=false when a rewrite happened")
	}
}

func TestValidateKeepsUnrecognized(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("EmbedBatch", mock.Anything, []string{"underwater basket weaving"}).
		Return([]embeddings.Vector{{1, 0}}, nil).Once()
	e.On("EmbedBatch", mock.Anything, allSkills).
		Return(taxonomyMatrix(nil), nil).Once()
	svc := newTestService(e, nil)

	got, err := svc.Validate(context.Background(), []string{"underwater basket weaving"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ValidatedSkills[0] != "underwater basket weaving" {
		t.Errorf("unmatched skill must be kept verbatim, got %v", got.ValidatedSkills)
	}
	if !got.IsValid {
		t.Error("expected IsValid=true with no rewrites")
	}
}

func TestTaxonomyVectorsCacheHit(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, "python").Return(embeddings.Vector{1, 0}, nil).Once()

	c := &cache.MockCache{}
	c.On("GetTaxonomyVectors", mock.Anything, "test-model").
		Return(taxonomyMatrix(nil), nil).Once()

	svc := newTestService(e, c)
	if _, err := svc.Related(context.Background(), []string{"python"}, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A warm cache must not re-embed the taxonomy.
	e.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}
