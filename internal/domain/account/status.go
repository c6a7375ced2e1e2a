package account

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusClosed    Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo: active <-> suspended, either -> closed. closed is terminal.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusActive:
		return to == StatusSuspended || to == StatusClosed
	case StatusSuspended:
		return to == StatusActive || to == StatusClosed
	case StatusClosed:
		return false
	}
	return false
}
