package recommend

import (
	"math"
	"strings"
)

// PriceRecommendation is an hourly-rate suggestion with its input factors.
type PriceRecommendation struct {
	RecommendedPrice float64      `json:"recommended_price"`
	PriceRangeMin    float64      `json:"price_range_min"`
	PriceRangeMax    float64      `json:"price_range_max"`
	Confidence       float64      `json:"confidence"`
	Factors          PriceFactors `json:"factors"`
}

// PriceFactors exposes how the recommendation was built.
type PriceFactors struct {
	BaseRate        float64 `json:"base_rate"`
	SkillFactor     float64 `json:"skill_factor"`
	ExperienceLevel string  `json:"experience_level"`
}

// SimilarJob carries the market price of a comparable job, when known.
type SimilarJob struct {
	Price *float64 `json:"price,omitempty"`
}

// Base hourly rates in USD per experience level.
var baseRates = map[string]float64{
	"entry":        25,
	"intermediate": 50,
	"expert":       100,
}

const defaultBaseRate = 50

// highValueSkills raise the recommendation by 10% per matching required skill.
var highValueSkills = []string{
	"machine learning", "ai", "blockchain", "aws", "kubernetes",
	"react", "node.js", "python", "golang", "rust", "security",
}

// RecommendPrice suggests an hourly rate from the experience level, a
// premium per high-value required skill, and the average price of similar
// jobs when supplied.
func (s *Service) RecommendPrice(requiredSkills []string, experienceLevel string, similarJobs []SimilarJob) PriceRecommendation {
	baseRate, ok := baseRates[strings.ToLower(experienceLevel)]
	if !ok {
		baseRate = defaultBaseRate
	}

	skillFactor := 1.0
	for _, skill := range requiredSkills {
		lower := strings.ToLower(skill)
		for _, hv := range highValueSkills {
			if strings.Contains(lower, hv) {
				skillFactor += 0.1
				break
			}
		}
	}

	var sum float64
	var priced int
	for _, job := range similarJobs {
		if job.Price != nil && *job.Price > 0 {
			sum += *job.Price
			priced++
		}
	}
	if priced > 0 {
		marketAvg := sum / float64(priced)
		baseRate = (baseRate + marketAvg) / 2
	}

	recommended := baseRate * skillFactor
	return PriceRecommendation{
		RecommendedPrice: round2(recommended),
		PriceRangeMin:    round2(recommended * 0.8),
		PriceRangeMax:    round2(recommended * 1.3),
		Confidence:       0.75,
		Factors: PriceFactors{
			BaseRate:        baseRate,
			SkillFactor:     skillFactor,
			ExperienceLevel: experienceLevel,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
