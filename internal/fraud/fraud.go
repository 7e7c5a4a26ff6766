// Package fraud scores users, job postings, and proposals against fixed
// risk heuristics. It shares no state with the matching engine and never
// calls the embedding provider.
package fraud

import (
	"fmt"
	"math"
	"strings"
)

// Risk levels reported to callers.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

var highRiskPatterns = []string{
	"wire transfer",
	"western union",
	"bitcoin only",
	"payment outside platform",
	"urgent payment",
	"cryptocurrency only",
	"prepaid card",
}

var spamPatterns = []string{
	"click here",
	"act now",
	"limited time",
	"guaranteed income",
	"work from home",
	"easy money",
	"no experience needed",
}

var genericPhrases = []string{
	"i am interested", "hire me", "i can do this", "contact me",
}

// UserRecord is the account snapshot evaluated for user risk.
type UserRecord struct {
	AccountAgeDays    int    `json:"account_age_days"`
	ProfileCompletion int    `json:"profile_completion"`
	EmailVerified     bool   `json:"email_verified"`
	PhoneVerified     bool   `json:"phone_verified"`
	Bio               string `json:"bio"`
}

// ActivityRecord is optional recent-activity context for user risk.
type ActivityRecord struct {
	FailedPayments int `json:"failed_payments"`
	JobsLast24h    int `json:"jobs_last_24h"`
	Disputes       int `json:"disputes"`
}

// JobRecord is a posting evaluated for posting risk.
type JobRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	BudgetMax   *float64 `json:"budget_max,omitempty"`
}

// ProposalRecord is a proposal evaluated for proposal risk.
type ProposalRecord struct {
	CoverLetter string  `json:"cover_letter"`
	BidAmount   float64 `json:"bid_amount"`
	JobBudget   float64 `json:"job_budget"`
}

// Risk is a 0-100 risk score with its triggering flags.
type Risk struct {
	RiskScore      float64  `json:"risk_score"`
	RiskLevel      string   `json:"risk_level"`
	Flags          []string `json:"flags"`
	Recommendation string   `json:"recommendation"`
}

// Service evaluates fraud risk. Stateless; safe for concurrent use.
type Service struct{}

func New() *Service {
	return &Service{}
}

// AnalyzeUser scores account trustworthiness from age, profile
// completeness, verification, activity patterns, and bio content.
func (s *Service) AnalyzeUser(user UserRecord, activity *ActivityRecord) Risk {
	var score float64
	flags := []string{}

	if user.AccountAgeDays < 7 {
		score += 0.2
		flags = append(flags, "New account (less than 7 days)")
	} else if user.AccountAgeDays < 30 {
		score += 0.1
		flags = append(flags, "Account less than 30 days old")
	}

	if user.ProfileCompletion < 50 {
		score += 0.15
		flags = append(flags, "Incomplete profile")
	}
	if !user.EmailVerified {
		score += 0.15
		flags = append(flags, "Email not verified")
	}
	if !user.PhoneVerified {
		score += 0.1
		flags = append(flags, "Phone not verified")
	}

	if activity != nil {
		if activity.FailedPayments > 3 {
			score += 0.2
			flags = append(flags, fmt.Sprintf("%d failed payment attempts", activity.FailedPayments))
		}
		if activity.JobsLast24h > 10 {
			score += 0.15
			flags = append(flags, "Unusual number of jobs posted")
		}
		if activity.Disputes > 2 {
			score += 0.2
			flags = append(flags, fmt.Sprintf("%d disputes on record", activity.Disputes))
		}
	}

	bioLower := strings.ToLower(user.Bio)
	for _, pattern := range highRiskPatterns {
		if strings.Contains(bioLower, pattern) {
			score += 0.15
			flags = append(flags, fmt.Sprintf("Suspicious content: mentions '%s'", pattern))
		}
	}

	return buildRisk(score, flags,
		"User appears legitimate. Standard monitoring recommended.",
		"Enhanced verification recommended before high-value transactions.",
		"Manual review required. Consider restricting account features.")
}

// AnalyzeJob scores a posting for spam markers, off-platform payment
// terms, budget anomalies, and thin descriptions.
func (s *Service) AnalyzeJob(job JobRecord) Risk {
	var score float64
	flags := []string{}

	combined := strings.ToLower(job.Title + " " + job.Description)
	for _, pattern := range spamPatterns {
		if strings.Contains(combined, pattern) {
			score += 0.1
			flags = append(flags, fmt.Sprintf("Spam indicator: '%s'", pattern))
		}
	}
	for _, pattern := range highRiskPatterns {
		if strings.Contains(combined, pattern) {
			score += 0.2
			flags = append(flags, fmt.Sprintf("High-risk payment term: '%s'", pattern))
		}
	}

	if job.BudgetMax != nil && *job.BudgetMax > 50000 {
		score += 0.1
		flags = append(flags, "Unusually high budget")
	}
	if job.BudgetMax == nil || *job.BudgetMax == 0 {
		score += 0.05
		flags = append(flags, "No budget specified")
	}

	if len(strings.Fields(job.Description)) < 20 {
		score += 0.1
		flags = append(flags, "Very short description")
	}

	return buildRisk(score, flags,
		"Job posting appears legitimate.",
		"Review job details before applying.",
		"Job posting flagged for manual review.")
}

// AnalyzeProposal scores a proposal for suspicious content, bids far off
// the job budget, and boilerplate cover letters.
func (s *Service) AnalyzeProposal(proposal ProposalRecord) Risk {
	var score float64
	flags := []string{}

	coverLower := strings.ToLower(proposal.CoverLetter)
	for _, pattern := range highRiskPatterns {
		if strings.Contains(coverLower, pattern) {
			score += 0.2
			flags = append(flags, fmt.Sprintf("Suspicious content: '%s'", pattern))
		}
	}

	if proposal.JobBudget > 0 {
		ratio := proposal.BidAmount / proposal.JobBudget
		if ratio < 0.1 {
			score += 0.2
			flags = append(flags, "Bid significantly below budget")
		} else if ratio > 3 {
			score += 0.15
			flags = append(flags, "Bid significantly above budget")
		}
	}

	generic := 0
	for _, phrase := range genericPhrases {
		if strings.Contains(coverLower, phrase) {
			generic++
		}
	}
	if generic >= 2 {
		score += 0.1
		flags = append(flags, "Generic proposal content")
	}

	return buildRisk(score, flags,
		"Proposal appears legitimate.",
		"Review freelancer profile carefully.",
		"Proposal flagged for review.")
}

func buildRisk(score float64, flags []string, lowRec, mediumRec, highRec string) Risk {
	score = math.Min(score, 1.0)

	level, rec := LevelLow, lowRec
	switch {
	case score >= 0.6:
		level, rec = LevelHigh, highRec
	case score >= 0.3:
		level, rec = LevelMedium, mediumRec
	}

	return Risk{
		RiskScore:      math.Round(score*100*100) / 100,
		RiskLevel:      level,
		Flags:          flags,
		Recommendation: rec,
	}
}
