package match

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/mock"

	"gigmatch/internal/embeddings"
)

func newTestService(e embeddings.Embedder) *Service {
	return New(e, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func ptr[T any](v T) *T { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSkillMatchEmptyRequired(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	got, err := svc.SkillMatch(context.Background(), nil, []string{"python"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("empty required set must be vacuously satisfied, got %f", got)
	}
	e.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
}

func TestSkillMatchAllExact(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	got, err := svc.SkillMatch(context.Background(),
		[]string{"Python", " react "},
		[]string{"REACT", "python", "golang"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1.0 {
		t.Errorf("subset of available must score 1.0, got %f", got)
	}
	e.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
}

func TestSkillMatchEmptyAvailable(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	got, err := svc.SkillMatch(context.Background(), []string{"python", "react"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.0 {
		t.Errorf("no available skills must score 0.0, got %f", got)
	}
	e.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
}

func TestSkillMatchSemanticCredit(t *testing.T) {
	// Neither required skill is present verbatim. "python" vs "django"
	// lands above the 0.7 threshold at 0.72 and earns that as partial
	// credit; "react" at 0.4 earns nothing. Expected: 0.72/2.
	e := &embeddings.MockEmbedder{}
	e.On("EmbedBatch", mock.Anything, []string{"python", "react", "django"}).
		Return([]embeddings.Vector{
			{0.72, 0.69397406},
			{0.4, 0.91651514},
			{1, 0},
		}, nil).Once()
	svc := newTestService(e)

	got, err := svc.SkillMatch(context.Background(), []string{"python", "react"}, []string{"django"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.36) > 1e-6 {
		t.Errorf("expected 0.36, got %f", got)
	}
	e.AssertExpectations(t)
}

func TestSkillMatchBelowThresholdNoCredit(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("EmbedBatch", mock.Anything, []string{"cooking", "painting"}).
		Return([]embeddings.Vector{
			{1, 0},
			{0.2, 0.9797959},
		}, nil).Once()
	svc := newTestService(e)

	got, err := svc.SkillMatch(context.Background(), []string{"cooking"}, []string{"painting"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.0 {
		t.Errorf("similarity at or below threshold must earn no credit, got %f", got)
	}
}

func TestSkillMatchEmbedderFailure(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("EmbedBatch", mock.Anything, mock.Anything).
		Return(nil, embeddings.ErrUnavailable)
	svc := newTestService(e)

	_, err := svc.SkillMatch(context.Background(), []string{"python"}, []string{"django"})
	if !errors.Is(err, embeddings.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestRateMatch(t *testing.T) {
	tests := []struct {
		name                 string
		rate, bmin, bmax     *float64
		expected             float64
	}{
		{"no rate is neutral", nil, ptr(20.0), ptr(40.0), 0.5},
		{"no rate no bounds is neutral", nil, nil, nil, 0.5},
		{"no bounds is full", ptr(55.0), nil, nil, 1.0},
		{"inside bounds", ptr(30.0), ptr(20.0), ptr(40.0), 1.0},
		{"on lower bound", ptr(20.0), ptr(20.0), ptr(40.0), 1.0},
		{"on upper bound", ptr(40.0), ptr(20.0), ptr(40.0), 1.0},
		{"above bounds decays", ptr(50.0), ptr(20.0), ptr(40.0), 0.75},
		{"below bounds decays", ptr(10.0), ptr(20.0), ptr(40.0), 0.5},
		{"far above floors at zero", ptr(500.0), ptr(20.0), ptr(40.0), 0.0},
		{"only max below", ptr(30.0), nil, ptr(40.0), 1.0},
		{"only max above decays", ptr(50.0), nil, ptr(40.0), 0.75},
		{"only min above", ptr(50.0), ptr(20.0), nil, 1.0},
		{"only min below scales", ptr(10.0), ptr(20.0), nil, 0.5},
		{"zero min denominator", ptr(0.0), ptr(0.0), nil, 1.0},
		{"zero max denominator", ptr(10.0), nil, ptr(0.0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rateMatch(tt.rate, tt.bmin, tt.bmax)
			if !almostEqual(got, tt.expected) {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestBudgetMatch(t *testing.T) {
	tests := []struct {
		name            string
		preferred, bmax *float64
		expected        float64
	}{
		{"no preferred rate", nil, ptr(100.0), 1.0},
		{"no budget max", ptr(50.0), nil, 1.0},
		{"within budget", ptr(50.0), ptr(100.0), 1.0},
		{"above budget decays", ptr(100.0), ptr(75.0), 0.75},
		{"zero rate", ptr(0.0), ptr(0.0), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := budgetMatch(tt.preferred, tt.bmax)
			if !almostEqual(got, tt.expected) {
				t.Errorf("got %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestMatchFreelancersToJobEmptyInput(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	got, err := svc.MatchFreelancersToJob(context.Background(), JobTarget{Description: "x"}, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
	e.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestMatchFreelancersToJobMissingIdentity(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	_, err := svc.MatchFreelancersToJob(context.Background(), JobTarget{},
		[]FreelancerProfile{{Name: "no id"}}, 10)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	e.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything)
}

func TestMatchFreelancersToJobBonusesBreakTies(t *testing.T) {
	// Identical skills and bio; the freelancer with more experience and a
	// higher rating must score strictly higher and rank first.
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, mock.Anything).Return(embeddings.Vector{1, 0}, nil)
	svc := newTestService(e)

	job := JobTarget{Description: "build an api", RequiredSkills: []string{"go"}}
	freelancers := []FreelancerProfile{
		{UserID: "junior", Skills: []string{"go"}, Bio: "engineer", ExperienceYears: ptr(2), AvgRating: 3.0},
		{UserID: "senior", Skills: []string{"go"}, Bio: "engineer", ExperienceYears: ptr(8), AvgRating: 5.0},
	}

	got, err := svc.MatchFreelancersToJob(context.Background(), job, freelancers, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].FreelancerID != "senior" {
		t.Errorf("expected senior first, got %s", got[0].FreelancerID)
	}
	if got[0].MatchScore <= got[1].MatchScore {
		t.Errorf("senior must score strictly higher: %f vs %f", got[0].MatchScore, got[1].MatchScore)
	}
	for _, m := range got {
		if m.MatchScore < 0 || m.MatchScore > 100 {
			t.Errorf("match score out of range: %f", m.MatchScore)
		}
	}
}

func TestMatchFreelancersToJobScoresAndEcho(t *testing.T) {
	// Exact skill match, identical embeddings (semantic 1.0), rate inside
	// budget, 10+ years, perfect rating: every component maxes out.
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, mock.Anything).Return(embeddings.Vector{0, 1}, nil)
	svc := newTestService(e)

	job := JobTarget{
		Description:    "react frontend",
		RequiredSkills: []string{"react"},
		BudgetMin:      ptr(20.0),
		BudgetMax:      ptr(40.0),
	}
	skills := []string{"React", "CSS"}
	got, err := svc.MatchFreelancersToJob(context.Background(), job, []FreelancerProfile{{
		UserID:          "f1",
		Skills:          skills,
		HourlyRate:      ptr(30.0),
		ExperienceYears: ptr(12),
		AvgRating:       5.0,
	}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := got[0]
	if m.MatchScore != 100.0 {
		t.Errorf("expected clamped 100.0, got %f", m.MatchScore)
	}
	if m.SkillMatch != 100.0 || m.RateMatch != 100.0 || m.ExperienceMatch != 100.0 {
		t.Errorf("expected maxed sub-scores, got %+v", m)
	}
	// Skills echo back exactly as supplied, not normalized.
	if len(m.Skills) != 2 || m.Skills[0] != "React" || m.Skills[1] != "CSS" {
		t.Errorf("skills not echoed unmodified: %v", m.Skills)
	}
}

func TestMatchFreelancersToJobAllOptionalAbsent(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, mock.Anything).Return(embeddings.Vector{1, 1}, nil)
	svc := newTestService(e)

	got, err := svc.MatchFreelancersToJob(context.Background(),
		JobTarget{Description: "anything"},
		[]FreelancerProfile{{UserID: "f1"}}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got[0]
	if m.MatchScore < 0 || m.MatchScore > 100 {
		t.Errorf("score out of bounds: %f", m.MatchScore)
	}
	// Absent rate with no bounds: rate sub-score reports the 1.0 free pass.
	if m.RateMatch != 100.0 {
		t.Errorf("expected rate match 100, got %f", m.RateMatch)
	}
	if m.ExperienceMatch != 0.0 {
		t.Errorf("absent experience must report 0, got %f", m.ExperienceMatch)
	}
}

func TestMatchJobsToFreelancerMissingIdentity(t *testing.T) {
	e := &embeddings.MockEmbedder{}
	svc := newTestService(e)

	_, err := svc.MatchJobsToFreelancer(context.Background(), FreelancerTarget{},
		[]Job{{Title: "untitled"}}, 10)
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
}

func TestMatchJobsToFreelancerBudgetWeighting(t *testing.T) {
	// Same skills and text everywhere; only the budget differs. The job
	// whose ceiling covers the preferred rate must rank first.
	e := &embeddings.MockEmbedder{}
	e.On("Embed", mock.Anything, mock.Anything).Return(embeddings.Vector{1, 0}, nil)
	svc := newTestService(e)

	freelancer := FreelancerTarget{
		Skills:        []string{"go"},
		Bio:           "backend developer",
		PreferredRate: ptr(100.0),
	}
	jobs := []Job{
		{JobID: "tight", Skills: []string{"go"}, BudgetMax: ptr(75.0)},
		{JobID: "roomy", Skills: []string{"go"}, BudgetMax: ptr(150.0)},
	}

	got, err := svc.MatchJobsToFreelancer(context.Background(), freelancer, jobs, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].JobID != "roomy" {
		t.Errorf("expected roomy first, got %s", got[0].JobID)
	}
	// tight: 0.5 + 0.35 + 0.75*0.15 = 0.9625
	if !almostEqual(got[1].MatchScore, 96.25) {
		t.Errorf("expected 96.25, got %f", got[1].MatchScore)
	}
	if !almostEqual(got[1].BudgetMatch, 75.0) {
		t.Errorf("expected budget sub-score 75, got %f", got[1].BudgetMatch)
	}
}
