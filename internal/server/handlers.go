package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"podhub/internal/shared"
)

type API struct {
	Store   *Store
	Audit   *AuditLog // nil disables auditing
	Log     *zap.Logger
	Metrics *Metrics

	skipAuth map[string]bool
}

func NewAPI(store *Store, audit *AuditLog, logger *zap.Logger) *API {
	return &API{
		Store:   store,
		Audit:   audit,
		Log:     logger,
		Metrics: NewMetrics(),
		skipAuth: map[string]bool{
			"/health":  true,
			"/metrics": true,
		},
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 2<<20))
}

func decodeBody(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// Health reports liveness for load balancers; gate-exempt.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Login scans users for an exact email+password match. No lockout, no
// timing mitigation; this fronts a seed file, not an identity provider.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req shared.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	user, ok := a.Store.Login(req.Email, req.Password)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, shared.LoginResponse{
		Token: user.Token,
		User:  shared.UserSummary{ID: user.ID, Role: user.Role},
	})
}

// Me returns the identity the gate resolved. The 401 branch is
// defensive; the gate already rejects unauthenticated non-login requests.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, shared.MeResponse{ID: user.ID, Name: user.Name, Role: user.Role})
}

func (a *API) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := a.requireManager(w, r)
	if !ok {
		return
	}

	var req shared.ApproveLeaveRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	if err := a.Store.ApproveLeave(req.LeaveID, req.Status); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Leave request not found"})
			return
		}
		a.Log.Error("leave approval persist failed", zap.Int64("leave_id", req.LeaveID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to save changes"})
		return
	}

	a.audit(user, "leave.approve", fmt.Sprintf("leave:%d", req.LeaveID), req.Status)

	writeJSON(w, http.StatusOK, shared.ApproveLeaveResponse{
		Message: "Leave request " + req.Status,
		Status:  req.Status,
	})
}

func (a *API) PodDetails(w http.ResponseWriter, r *http.Request) {
	details, ok := a.Store.PodDetails()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "No pod details found"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// Recommendations is readable by any authenticated user regardless of
// role, unlike leave approval.
func (a *API) Recommendations(w http.ResponseWriter, r *http.Request) {
	pods, ok := a.Store.Recommendations()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "No pod recommendations found"})
		return
	}
	writeJSON(w, http.StatusOK, pods)
}

func (a *API) Recommend(w http.ResponseWriter, r *http.Request) {
	var req shared.RecommendRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad json"})
		return
	}

	if req.PodID == "" || req.RecommendedUserID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing required fields"})
		return
	}

	if err := a.Store.RecommendMember(req.PodID, req.RecommendedUserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Pod not found"})
			return
		}
		a.Log.Error("recommendation persist failed", zap.String("pod_id", req.PodID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to save changes"})
		return
	}

	if user, ok := CurrentUser(r); ok {
		a.audit(user, "pod.recommend", "pod:"+req.PodID, fmt.Sprintf("user:%d", req.RecommendedUserID))
	}

	writeJSON(w, http.StatusOK, shared.RecommendResponse{Message: "Recommendation sent successfully"})
}

// FullDocument serves the whole backing document, the equivalent of a
// mock server's /db route.
func (a *API) FullDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Store.Snapshot())
}

// Namespace serves a top-level namespace (or dotted path) verbatim.
func (a *API) Namespace(w http.ResponseWriter, r *http.Request) {
	path := pathParam(r, "namespace")
	value, ok := a.Store.Lookup(path)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, value)
}

// AuditEvents lists recent gated mutations; manager-only.
func (a *API) AuditEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireManager(w, r); !ok {
		return
	}
	if a.Audit == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "audit log not enabled"})
		return
	}
	events, err := a.Audit.RecentEvents(100)
	if err != nil {
		a.Log.Error("audit query failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "db error"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// audit records a mutation after a successful persist. Failures are
// logged, not surfaced; the document change already happened.
func (a *API) audit(actor User, action, entity, detail string) {
	if a.Audit == nil {
		return
	}
	if err := a.Audit.Record(actor.ID, action, entity, detail); err != nil {
		a.Log.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
