package main

import (
	"encoding/json"
	"net/http"

	"gigmatch/internal/app"
	"gigmatch/internal/httputil"
	"gigmatch/internal/recommend"
)

type priceRequest struct {
	RequiredSkills  []string               `json:"required_skills"`
	ExperienceLevel string                 `json:"experience_level"`
	SimilarJobs     []recommend.SimilarJob `json:"similar_jobs"`
}

type proposalQualityRequest struct {
	ProposalText   string   `json:"proposal_text" validate:"required"`
	JobDescription string   `json:"job_description" validate:"required"`
	RequiredSkills []string `json:"required_skills"`
}

type resumeRequest struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years" validate:"min=0"`
	CompletedJobs   int      `json:"completed_jobs" validate:"min=0"`
	AvgRating       float64  `json:"avg_rating" validate:"min=0,max=5"`
}

func priceHandler(deps app.Deps, svc *recommend.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		rec := svc.RecommendPrice(req.RequiredSkills, req.ExperienceLevel, req.SimilarJobs)
		httputil.WriteJSON(w, http.StatusOK, rec)
	}
}

func proposalQualityHandler(deps app.Deps, svc *recommend.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req proposalQualityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		quality, err := svc.AnalyzeProposalQuality(r.Context(), req.ProposalText, req.JobDescription, req.RequiredSkills)
		if err != nil {
			httputil.FailFromError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, quality)
	}
}

func resumeHandler(deps app.Deps, svc *recommend.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resumeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		summary := svc.GenerateResumeSummary(req.Skills, req.ExperienceYears, req.CompletedJobs, req.AvgRating)
		httputil.WriteJSON(w, http.StatusOK, summary)
	}
}
