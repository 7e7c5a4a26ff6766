package match

// FreelancerProfile is a candidate scored against a job. Inputs are owned
// by the caller and never mutated. Optional numeric fields are pointers so
// "absent" and "zero" stay distinguishable.
type FreelancerProfile struct {
	UserID          string   `json:"user_id"`
	Name            string   `json:"name"`
	Skills          []string `json:"skills"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	CompletedJobs   int      `json:"completed_jobs"`
	AvgRating       float64  `json:"avg_rating"`
}

// Job is a posting scored against a freelancer. Every field except JobID is
// optional and defaults to its zero value when absent from the request.
type Job struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	BudgetMin   *float64 `json:"budget_min,omitempty"`
	BudgetMax   *float64 `json:"budget_max,omitempty"`
}

// JobTarget describes the job side of a freelancers-to-job match.
type JobTarget struct {
	Description    string
	RequiredSkills []string
	BudgetMin      *float64
	BudgetMax      *float64
}

// FreelancerTarget describes the freelancer side of a jobs-to-freelancer match.
type FreelancerTarget struct {
	Skills        []string
	Bio           string
	PreferredRate *float64
}

// FreelancerMatch is one ranked result of MatchFreelancersToJob.
// All score fields are percentages in [0,100], rounded to 2 decimals.
type FreelancerMatch struct {
	FreelancerID    string   `json:"freelancer_id"`
	Name            string   `json:"name"`
	MatchScore      float64  `json:"match_score"`
	SkillMatch      float64  `json:"skill_match"`
	ExperienceMatch float64  `json:"experience_match"`
	RateMatch       float64  `json:"rate_match"`
	Skills          []string `json:"skills"`
}

// JobMatch is one ranked result of MatchJobsToFreelancer.
type JobMatch struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	MatchScore  float64  `json:"match_score"`
	SkillMatch  float64  `json:"skill_match"`
	BudgetMatch float64  `json:"budget_match"`
	Skills      []string `json:"skills"`
}

// Calibration constants. The semantic threshold and the exact-full /
// semantic-partial credit split are tuned values; changing them materially
// shifts match quality, so they are fixed here rather than configurable.
const (
	// semanticThreshold is the minimum cosine similarity at which a
	// near-miss skill earns partial credit equal to that similarity.
	semanticThreshold = 0.7

	// DefaultLimit caps result count when the caller passes limit <= 0.
	DefaultLimit = 20
)

// Weight profile for scoring freelancers against a job.
const (
	freelancerSkillWeight    = 0.40
	freelancerSemanticWeight = 0.30
	freelancerRateWeight     = 0.15
)

// Weight profile for scoring jobs against a freelancer.
const (
	jobSkillWeight    = 0.50
	jobSemanticWeight = 0.35
	jobBudgetWeight   = 0.15
)

// Experience and rating each add at most 0.1 to the freelancer score;
// experience saturates at ten years.
const (
	bonusWeight   = 0.1
	maxBonusYears = 10
	maxRating     = 5
)
