package shared

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the slice of a user that login hands back to clients.
type UserSummary struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type MeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type ApproveLeaveRequest struct {
	LeaveID int64  `json:"leaveId"`
	Status  string `json:"status"` // stored verbatim, no enum check
}

type ApproveLeaveResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type RecommendRequest struct {
	PodID             string `json:"podId"`
	RecommendedUserID int64  `json:"recommendedUserId"`
}

type RecommendResponse struct {
	Message string `json:"message"`
}
