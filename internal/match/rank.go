package match

import "sort"

// Ranking sorts by match score descending with a stable sort, so candidates
// with equal scores keep their input order. The tie-break is part of the
// contract: callers rely on it being deterministic.

func rankFreelancers(matches []FreelancerMatch, limit int) []FreelancerMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches[:min(capLimit(limit), len(matches))]
}

func rankJobs(matches []JobMatch, limit int) []JobMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches[:min(capLimit(limit), len(matches))]
}

func capLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
