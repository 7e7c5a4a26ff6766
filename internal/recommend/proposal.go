package recommend

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gigmatch/internal/embeddings"
)

// ProposalQuality is a 0-100 quality score with actionable feedback.
type ProposalQuality struct {
	Score       float64  `json:"score"`
	Feedback    []string `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

var professionalTerms = []string{
	"experience", "deliver", "timeline", "quality", "communication", "milestone",
}

// AnalyzeProposalQuality scores a proposal on length, required-skill
// coverage, semantic relevance to the job, professional language, and
// engagement, with suggestions for each weak area.
func (s *Service) AnalyzeProposalQuality(ctx context.Context, proposalText, jobDescription string, requiredSkills []string) (ProposalQuality, error) {
	var score float64
	feedback := []string{}
	suggestions := []string{}

	wordCount := len(strings.Fields(proposalText))
	switch {
	case wordCount < 50:
		feedback = append(feedback, "Proposal is too short")
		suggestions = append(suggestions, "Add more detail about your approach and experience")
	case wordCount > 500:
		feedback = append(feedback, "Proposal might be too long")
		suggestions = append(suggestions, "Consider being more concise")
	default:
		score += 0.2
		feedback = append(feedback, "Good proposal length")
	}

	proposalLower := strings.ToLower(proposalText)
	mentioned := 0
	for _, skill := range requiredSkills {
		if strings.Contains(proposalLower, strings.ToLower(skill)) {
			mentioned++
		}
	}
	mentionRatio := float64(mentioned) / math.Max(float64(len(requiredSkills)), 1)
	if mentionRatio < 0.3 {
		suggestions = append(suggestions, "Mention more of the required skills and your experience with them")
	} else {
		score += 0.2
		feedback = append(feedback, "Good skill coverage")
	}

	vecs, err := s.embedder.EmbedBatch(ctx, []string{proposalText, jobDescription})
	if err != nil {
		return ProposalQuality{}, fmt.Errorf("embed proposal: %w", err)
	}
	relevance := float64(embeddings.CosineSimilarity(vecs[0], vecs[1]))
	score += relevance * 0.4
	if relevance < 0.5 {
		suggestions = append(suggestions, "Make your proposal more relevant to the specific job requirements")
	} else {
		feedback = append(feedback, "Proposal is relevant to the job")
	}

	profCount := 0
	for _, term := range professionalTerms {
		if strings.Contains(proposalLower, term) {
			profCount++
		}
	}
	if profCount >= 3 {
		score += 0.1
		feedback = append(feedback, "Uses professional language")
	} else {
		suggestions = append(suggestions, "Use more professional language about delivery and communication")
	}

	if strings.Contains(proposalText, "?") {
		score += 0.1
		feedback = append(feedback, "Shows engagement by asking questions")
	} else {
		suggestions = append(suggestions, "Consider asking clarifying questions to show engagement")
	}

	final := math.Min(math.Max(score, 0), 1)
	return ProposalQuality{
		Score:       round2(final * 100),
		Feedback:    feedback,
		Suggestions: suggestions,
	}, nil
}
