package main

import (
	"encoding/json"
	"net/http"

	"gigmatch/internal/app"
	"gigmatch/internal/httputil"
	"gigmatch/internal/match"
)

type matchFreelancersRequest struct {
	JobDescription string                    `json:"job_description" validate:"required"`
	RequiredSkills []string                  `json:"required_skills"`
	Freelancers    []match.FreelancerProfile `json:"freelancers"`
	BudgetMin      *float64                  `json:"budget_min"`
	BudgetMax      *float64                  `json:"budget_max"`
	Limit          int                       `json:"limit" validate:"omitempty,min=1,max=100"`
}

type matchJobsRequest struct {
	FreelancerSkills []string    `json:"freelancer_skills"`
	FreelancerBio    string      `json:"freelancer_bio"`
	Jobs             []match.Job `json:"jobs"`
	PreferredRate    *float64    `json:"preferred_rate"`
	Limit            int         `json:"limit" validate:"omitempty,min=1,max=100"`
}

func matchFreelancersHandler(deps app.Deps, svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchFreelancersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		job := match.JobTarget{
			Description:    req.JobDescription,
			RequiredSkills: req.RequiredSkills,
			BudgetMin:      req.BudgetMin,
			BudgetMax:      req.BudgetMax,
		}
		matches, err := svc.MatchFreelancersToJob(r.Context(), job, req.Freelancers, req.Limit)
		if err != nil {
			httputil.FailFromError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, matches)
	}
}

func matchJobsHandler(deps app.Deps, svc *match.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchJobsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		freelancer := match.FreelancerTarget{
			Skills:        req.FreelancerSkills,
			Bio:           req.FreelancerBio,
			PreferredRate: req.PreferredRate,
		}
		matches, err := svc.MatchJobsToFreelancer(r.Context(), freelancer, req.Jobs, req.Limit)
		if err != nil {
			httputil.FailFromError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, matches)
	}
}
