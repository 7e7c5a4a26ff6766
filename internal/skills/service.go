package skills

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"gigmatch/internal/cache"
	"gigmatch/internal/embeddings"
)

const (
	// relatedThreshold filters taxonomy skills too dissimilar to suggest.
	relatedThreshold = 0.3

	// standardizeThreshold is the minimum similarity at which an unknown
	// skill name is rewritten to its nearest taxonomy entry.
	standardizeThreshold = 0.8

	defaultRelatedLimit = 10
)

// expPattern picks up "5 years of experience with kubernetes" style claims.
var expPattern = regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?(?:experience\s+(?:with|in)\s+)?([a-zA-Z+#.]+)`)

// Service extracts, relates, and standardizes skill names against the
// taxonomy. Related and Validate embed the taxonomy once and reuse the
// matrix through the cache.
type Service struct {
	embedder embeddings.Embedder
	cache    cache.Cache
	model    string
	cacheTTL time.Duration
	log      *slog.Logger
}

func New(embedder embeddings.Embedder, c cache.Cache, model string, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{embedder: embedder, cache: c, model: model, cacheTTL: cacheTTL, log: log}
}

// Analysis is the result of extracting skills from free text.
type Analysis struct {
	ExtractedSkills  []string            `json:"extracted_skills"`
	SkillCategories  map[string][]string `json:"skill_categories"`
	ConfidenceScores map[string]float64  `json:"confidence_scores"`
}

// RelatedSkill is a taxonomy skill similar to the input set.
type RelatedSkill struct {
	Skill          string  `json:"skill"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Validation is the result of standardizing a list of skill names.
type Validation struct {
	ValidatedSkills []string          `json:"validated_skills"`
	Suggestions     map[string]string `json:"suggestions"`
	IsValid         bool              `json:"is_valid"`
}

// Extract finds taxonomy skills mentioned in text (confidence 1.0) plus
// "N years of X" claims (confidence 0.7), deduplicated in discovery order.
func (s *Service) Extract(text string) Analysis {
	textLower := strings.ToLower(text)

	var extracted []string
	byCategory := make(map[string][]string)
	confidence := make(map[string]float64)

	catNames := make([]string, 0, len(categories))
	for name := range categories {
		catNames = append(catNames, name)
	}
	sort.Strings(catNames)

	for _, category := range catNames {
		for _, skill := range categories[category] {
			if strings.Contains(textLower, skill) {
				extracted = append(extracted, skill)
				byCategory[category] = append(byCategory[category], skill)
				confidence[skill] = 1.0
			}
		}
	}

	for _, m := range expPattern.FindAllStringSubmatch(textLower, -1) {
		skill := m[2]
		if _, known := confidence[skill]; !known {
			extracted = append(extracted, skill)
			confidence[skill] = 0.7
		}
	}

	seen := make(map[string]struct{}, len(extracted))
	unique := extracted[:0]
	for _, skill := range extracted {
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, skill)
	}

	return Analysis{
		ExtractedSkills:  unique,
		SkillCategories:  byCategory,
		ConfidenceScores: confidence,
	}
}

// Related returns up to limit taxonomy skills semantically close to the
// input set, most relevant first, excluding the inputs themselves.
func (s *Service) Related(ctx context.Context, input []string, limit int) ([]RelatedSkill, error) {
	if len(input) == 0 {
		return []RelatedSkill{}, nil
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	query, err := s.embedder.Embed(ctx, strings.Join(input, ", "))
	if err != nil {
		return nil, fmt.Errorf("embed input skills: %w", err)
	}
	taxonomy, err := s.taxonomyVectors(ctx)
	if err != nil {
		return nil, err
	}

	sims := embeddings.BatchSimilarity(query, taxonomy)

	order := make([]int, len(allSkills))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	inputSet := make(map[string]struct{}, len(input))
	for _, skill := range input {
		inputSet[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	related := make([]RelatedSkill, 0, limit)
	for _, i := range order {
		if float64(sims[i]) <= relatedThreshold {
			break
		}
		if _, isInput := inputSet[allSkills[i]]; isInput {
			continue
		}
		related = append(related, RelatedSkill{
			Skill:          allSkills[i],
			RelevanceScore: math.Round(float64(sims[i])*100*100) / 100,
		})
		if len(related) >= limit {
			break
		}
	}
	return related, nil
}

// Validate standardizes skill names: exact taxonomy hits pass through,
// near-misses above standardizeThreshold are rewritten to their closest
// taxonomy entry (recorded in Suggestions), and everything else is kept
// as supplied. IsValid reports whether no rewrites were needed.
func (s *Service) Validate(ctx context.Context, input []string) (Validation, error) {
	result := Validation{
		ValidatedSkills: make([]string, 0, len(input)),
		Suggestions:     make(map[string]string),
	}

	var unknown []string
	var unknownIdx []int
	for _, skill := range input {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if _, ok := skillSet[normalized]; ok {
			result.ValidatedSkills = append(result.ValidatedSkills, skill)
			continue
		}
		unknownIdx = append(unknownIdx, len(result.ValidatedSkills))
		result.ValidatedSkills = append(result.ValidatedSkills, skill)
		unknown = append(unknown, normalized)
	}

	if len(unknown) > 0 {
		vecs, err := s.embedder.EmbedBatch(ctx, unknown)
		if err != nil {
			return Validation{}, fmt.Errorf("embed skills: %w", err)
		}
		taxonomy, err := s.taxonomyVectors(ctx)
		if err != nil {
			return Validation{}, err
		}

		for u, vec := range vecs {
			sims := embeddings.BatchSimilarity(vec, taxonomy)
			best := 0
			for i, sim := range sims {
				if sim > sims[best] {
					best = i
				}
			}
			if float64(sims[best]) > standardizeThreshold {
				original := input[unknownIdx[u]]
				result.ValidatedSkills[unknownIdx[u]] = allSkills[best]
				result.Suggestions[original] = allSkills[best]
			}
		}
	}

	result.IsValid = len(result.Suggestions) == 0
	return result, nil
}

// taxonomyVectors returns the embedded taxonomy, served from cache when
// possible. Cache failures degrade to re-encoding, not request failures.
func (s *Service) taxonomyVectors(ctx context.Context) ([]embeddings.Vector, error) {
	cached, err := s.cache.GetTaxonomyVectors(ctx, s.model)
	if err != nil {
		s.log.Warn("taxonomy cache read failed", "err", err)
	} else if len(cached) == len(allSkills) {
		return cached, nil
	}

	vecs, err := s.embedder.EmbedBatch(ctx, allSkills)
	if err != nil {
		return nil, fmt.Errorf("embed taxonomy: %w", err)
	}
	if err := s.cache.SetTaxonomyVectors(ctx, s.model, vecs, s.cacheTTL); err != nil {
		s.log.Warn("taxonomy cache write failed", "err", err)
	}
	return vecs, nil
}
