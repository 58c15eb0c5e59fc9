package valueobjects

import "fmt"

// Status is the ticket lifecycle state as stored.
type Status int

const (
	StatusNew     Status = 0
	StatusOpen    Status = 1
	StatusPending Status = 2
	StatusClosed  Status = 3
)

var statusLabels = map[Status]string{
	StatusNew:     "New",
	StatusOpen:    "Open",
	StatusPending: "Pending",
	StatusClosed:  "Closed",
}

func (s Status) Int() int {
	return int(s)
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the display name. Unknown stored values render as "New".
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusNew]
}

func (s Status) String() string {
	return s.Label()
}

func (s Status) IsOpen() bool {
	return s == StatusOpen
}

func (s Status) IsClosed() bool {
	return s == StatusClosed
}

// NewStatus validates an integer status received from a caller.
func NewStatus(v int) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return 0, fmt.Errorf("invalid ticket status: %d", v)
	}
	return s, nil
}

// AllStatuses returns every status in ascending order.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusOpen, StatusPending, StatusClosed}
}
