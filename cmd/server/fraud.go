package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gigmatch/internal/app"
	"gigmatch/internal/events"
	"gigmatch/internal/fraud"
	"gigmatch/internal/httputil"
)

type fraudUserRequest struct {
	User     fraud.UserRecord      `json:"user"`
	Activity *fraud.ActivityRecord `json:"activity"`
}

func fraudUserHandler(deps app.Deps, svc *fraud.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fraudUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		risk := svc.AnalyzeUser(req.User, req.Activity)
		publishIfHighRisk(r.Context(), deps, "user", req.User, risk)
		httputil.WriteJSON(w, http.StatusOK, risk)
	}
}

func fraudJobHandler(deps app.Deps, svc *fraud.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fraud.JobRecord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		risk := svc.AnalyzeJob(req)
		publishIfHighRisk(r.Context(), deps, "job", req, risk)
		httputil.WriteJSON(w, http.StatusOK, risk)
	}
}

func fraudProposalHandler(deps app.Deps, svc *fraud.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fraud.ProposalRecord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		risk := svc.AnalyzeProposal(req)
		publishIfHighRisk(r.Context(), deps, "proposal", req, risk)
		httputil.WriteJSON(w, http.StatusOK, risk)
	}
}

// publishIfHighRisk emits a fraud.flagged event for high-risk results.
// Publishing is best-effort: failures are logged, never surfaced.
func publishIfHighRisk(ctx context.Context, deps app.Deps, entity string, subject any, risk fraud.Risk) {
	if risk.RiskLevel != fraud.LevelHigh {
		return
	}

	payload, err := json.Marshal(map[string]any{
		"entity":  entity,
		"subject": subject,
		"risk":    risk,
	})
	if err != nil {
		deps.Log.Warn("failed to encode fraud event", "err", err, "entity", entity)
		return
	}

	ev := events.Event{
		ID:        uuid.New(),
		Type:      events.TypeFraudFlagged,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	}
	if err := events.PublishWithRetry(ctx, deps.Events, ev, 3, 200*time.Millisecond); err != nil {
		deps.Log.Warn("failed to publish fraud event", "err", err, "entity", entity)
	}
}
