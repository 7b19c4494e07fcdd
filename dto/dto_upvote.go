package dto

type UpvoteState struct {
	TargetID  string `json:"targetId"`
	IsUpvoted bool   `json:"isUpvoted"`
	Upvotes   int64  `json:"upvotes"`
}

// SyncUpvotesRequest replays client-side optimistic toggles.
type SyncUpvotesRequest struct {
	Actions []UpvoteAction `json:"actions"`
}

type UpvoteAction struct {
	TargetID string `json:"targetId"`
	Action   string `json:"action"` // "upvote" or "downvote"
}

type SyncUpvoteResult struct {
	TargetID string `json:"targetId"`
	Applied  bool   `json:"applied"`
	Message  string `json:"message,omitempty"`
	Upvotes  int64  `json:"upvotes"`
}
