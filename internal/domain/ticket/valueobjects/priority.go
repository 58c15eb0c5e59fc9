package valueobjects

import "fmt"

// Priority is the ticket urgency level.
type Priority int

const (
	PriorityNormal   Priority = 1
	PriorityUrgent   Priority = 2
	PriorityCritical Priority = 3
)

var priorityLabels = map[Priority]string{
	PriorityNormal:   "Normal",
	PriorityUrgent:   "Urgent",
	PriorityCritical: "Critical",
}

func (p Priority) Int() int {
	return int(p)
}

func (p Priority) IsValid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// Label returns the display name. Unknown stored values render as "Normal".
func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[PriorityNormal]
}

func (p Priority) String() string {
	return p.Label()
}

func NewPriority(v int) (Priority, error) {
	p := Priority(v)
	if !p.IsValid() {
		return 0, fmt.Errorf("invalid priority: %d", v)
	}
	return p, nil
}
