package entity

type PenaltyLevel string

const (
	PenaltyNone            PenaltyLevel = "NONE"
	PenaltyWarning         PenaltyLevel = "WARNING"
	PenaltyDepositRequired PenaltyLevel = "DEPOSIT_REQUIRED"
	PenaltyBlocked         PenaltyLevel = "BLOCKED"
)

// UserProfile is the identity acting as "me" for the duration of a request.
type UserProfile struct {
	ID           string       `json:"id" firestore:"id"`
	Name         string       `json:"name" firestore:"name"`
	Avatar       string       `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	NoShowCount  int          `json:"no_show_count" firestore:"noShowCount"`
	PenaltyLevel PenaltyLevel `json:"penalty_level" firestore:"penaltyLevel"`
}
