package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"gigmatch/internal/embeddings"
)

// Service scores and ranks freelancers against jobs and jobs against
// freelancers. It is a pure function of its inputs plus the embedder;
// candidates are scored sequentially so results are reproducible.
type Service struct {
	embedder embeddings.Embedder
	log      *slog.Logger
}

func New(embedder embeddings.Embedder, log *slog.Logger) *Service {
	return &Service{embedder: embedder, log: log}
}

// MatchFreelancersToJob scores freelancers against a job and returns the
// top matches, best first. Weights: skill 0.40, semantic 0.30, rate 0.15,
// plus experience and rating bonuses.
func (s *Service) MatchFreelancersToJob(ctx context.Context, job JobTarget, freelancers []FreelancerProfile, limit int) ([]FreelancerMatch, error) {
	if len(freelancers) == 0 {
		return []FreelancerMatch{}, nil
	}
	for i, f := range freelancers {
		if f.UserID == "" {
			return nil, &InvalidInputError{Field: fmt.Sprintf("freelancers[%d].user_id", i), Reason: "required"}
		}
	}

	jobVec, err := s.embedder.Embed(ctx, profileText(job.Description, job.RequiredSkills))
	if err != nil {
		return nil, fmt.Errorf("embed job: %w", err)
	}

	matches := make([]FreelancerMatch, 0, len(freelancers))
	for _, f := range freelancers {
		fVec, err := s.embedder.Embed(ctx, profileText(f.Bio, f.Skills))
		if err != nil {
			return nil, fmt.Errorf("embed freelancer %s: %w", f.UserID, err)
		}

		skillScore, err := s.SkillMatch(ctx, job.RequiredSkills, f.Skills)
		if err != nil {
			return nil, fmt.Errorf("skill match for %s: %w", f.UserID, err)
		}

		semantic := clamp01(float64(embeddings.CosineSimilarity(jobVec, fVec)))
		rate := rateMatch(f.HourlyRate, job.BudgetMin, job.BudgetMax)

		years := 0
		if f.ExperienceYears != nil {
			years = *f.ExperienceYears
		}
		expBonus := float64(min(years, maxBonusYears)) / maxBonusYears * bonusWeight
		ratingBonus := f.AvgRating / maxRating * bonusWeight

		score := skillScore*freelancerSkillWeight +
			semantic*freelancerSemanticWeight +
			rate*freelancerRateWeight +
			expBonus + ratingBonus

		matches = append(matches, FreelancerMatch{
			FreelancerID:    f.UserID,
			Name:            f.Name,
			MatchScore:      percent(score),
			SkillMatch:      percent(skillScore),
			ExperienceMatch: percent(expBonus / bonusWeight),
			RateMatch:       percent(rate),
			Skills:          f.Skills,
		})
	}

	return rankFreelancers(matches, limit), nil
}

// MatchJobsToFreelancer scores jobs against a freelancer and returns the
// top matches, best first. Weights: skill 0.50, semantic 0.35, budget 0.15.
func (s *Service) MatchJobsToFreelancer(ctx context.Context, freelancer FreelancerTarget, jobs []Job, limit int) ([]JobMatch, error) {
	if len(jobs) == 0 {
		return []JobMatch{}, nil
	}
	for i, j := range jobs {
		if j.JobID == "" {
			return nil, &InvalidInputError{Field: fmt.Sprintf("jobs[%d].job_id", i), Reason: "required"}
		}
	}

	fVec, err := s.embedder.Embed(ctx, profileText(freelancer.Bio, freelancer.Skills))
	if err != nil {
		return nil, fmt.Errorf("embed freelancer: %w", err)
	}

	matches := make([]JobMatch, 0, len(jobs))
	for _, job := range jobs {
		jobVec, err := s.embedder.Embed(ctx, profileText(job.Title+" "+job.Description, job.Skills))
		if err != nil {
			return nil, fmt.Errorf("embed job %s: %w", job.JobID, err)
		}

		skillScore, err := s.SkillMatch(ctx, job.Skills, freelancer.Skills)
		if err != nil {
			return nil, fmt.Errorf("skill match for %s: %w", job.JobID, err)
		}

		semantic := clamp01(float64(embeddings.CosineSimilarity(fVec, jobVec)))
		budget := budgetMatch(freelancer.PreferredRate, job.BudgetMax)

		score := skillScore*jobSkillWeight + semantic*jobSemanticWeight + budget*jobBudgetWeight

		matches = append(matches, JobMatch{
			JobID:       job.JobID,
			Title:       job.Title,
			MatchScore:  percent(score),
			SkillMatch:  percent(skillScore),
			BudgetMatch: percent(budget),
			Skills:      job.Skills,
		})
	}

	return rankJobs(matches, limit), nil
}

// SkillMatch returns the fraction of required skills satisfied by available
// skills, in [0,1]. Exact (case-insensitive) matches count in full; each
// remaining required skill earns its best cosine similarity against the
// available set as partial credit, but only above semanticThreshold. An
// empty required set is vacuously satisfied.
func (s *Service) SkillMatch(ctx context.Context, required, available []string) (float64, error) {
	req := normalizeSkills(required)
	if len(req) == 0 {
		return 1.0, nil
	}
	avail := normalizeSkills(available)

	availSet := make(map[string]struct{}, len(avail))
	for _, sk := range avail {
		availSet[sk] = struct{}{}
	}

	exact := 0
	var unmatched []string
	for _, sk := range req {
		if _, ok := availSet[sk]; ok {
			exact++
		} else {
			unmatched = append(unmatched, sk)
		}
	}

	total := float64(exact)
	if len(unmatched) > 0 && len(avail) > 0 {
		texts := make([]string, 0, len(unmatched)+len(avail))
		texts = append(texts, unmatched...)
		texts = append(texts, avail...)
		vecs, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("embed skills: %w", err)
		}
		availVecs := vecs[len(unmatched):]

		for _, reqVec := range vecs[:len(unmatched)] {
			sims := embeddings.BatchSimilarity(reqVec, availVecs)
			best := sims[0]
			for _, sim := range sims[1:] {
				if sim > best {
					best = sim
				}
			}
			if float64(best) > semanticThreshold {
				total += float64(best)
			}
		}
	}

	return clamp01(total / float64(len(req))), nil
}

// rateMatch scores a freelancer's rate against optional budget bounds.
// No rate is neutral (0.5), no bounds is a free pass (1.0), inside the
// bounds is 1.0, and outside decays linearly to 0.
func rateMatch(rate, budgetMin, budgetMax *float64) float64 {
	if rate == nil {
		return 0.5
	}
	r := *rate

	switch {
	case budgetMin != nil && budgetMax != nil:
		lo, hi := *budgetMin, *budgetMax
		if lo <= r && r <= hi {
			return 1.0
		}
		if r < lo {
			if lo == 0 {
				return 1.0
			}
			return math.Max(0, 1-(lo-r)/lo)
		}
		if hi == 0 {
			return 0
		}
		return math.Max(0, 1-(r-hi)/hi)
	case budgetMax != nil:
		hi := *budgetMax
		if r <= hi {
			return 1.0
		}
		if hi == 0 {
			return 0
		}
		return math.Max(0, 1-(r-hi)/hi)
	case budgetMin != nil:
		lo := *budgetMin
		if r >= lo {
			return 1.0
		}
		if lo == 0 {
			return 1.0
		}
		return math.Max(0, r/lo)
	default:
		return 1.0
	}
}

// budgetMatch scores a freelancer's preferred rate against a job's budget
// ceiling. Missing either side is a free pass; a rate above the ceiling
// decays linearly relative to the rate itself.
func budgetMatch(preferredRate, budgetMax *float64) float64 {
	if preferredRate == nil || budgetMax == nil {
		return 1.0
	}
	rate, ceiling := *preferredRate, *budgetMax
	if rate <= ceiling {
		return 1.0
	}
	if rate == 0 {
		return 1.0
	}
	return math.Max(0, 1-(rate-ceiling)/rate)
}

// profileText builds the embedding input for a description/bio plus skills,
// mirroring the text layout the scores were calibrated on.
func profileText(text string, skills []string) string {
	return text + " Skills: " + strings.Join(skills, ", ")
}

// normalizeSkills lowercases, trims, drops empties, and dedups while
// preserving first-occurrence order.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		sk = strings.ToLower(strings.TrimSpace(sk))
		if sk == "" {
			continue
		}
		if _, ok := seen[sk]; ok {
			continue
		}
		seen[sk] = struct{}{}
		out = append(out, sk)
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// percent converts a fractional score to a percentage in [0,100] rounded
// to 2 decimal places, the external reporting contract for every score.
func percent(v float64) float64 {
	return math.Round(clamp01(v)*100*100) / 100
}
