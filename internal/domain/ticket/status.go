package ticket

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo is the whole state machine:
// pending -> approved | rejected, approved -> completed.
func (s Status) CanTransitionTo(to Status) bool {
	if s.Terminal() {
		return false
	}
	switch s {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusCompleted
	}
	return false
}

// Terminal statuses accept no further transition.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusCompleted:
		return true
	case StatusPending, StatusApproved:
		return false
	}
	return false
}
