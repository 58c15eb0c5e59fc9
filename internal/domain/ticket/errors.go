package ticket

import "errors"

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("priority must be a number")
	ErrInvalidUser          = errors.New("invalid user id")
	ErrAssigneeNotPermitted = errors.New("user does not have permission to be set as an assignee")
	ErrInvalidType          = errors.New("invalid ticket type")
	ErrInvalidGroup         = errors.New("invalid group")
	ErrInvalidSystem        = errors.New("invalid system")
	ErrEmptyIssue           = errors.New("issue is required")
	ErrEmptySubject         = errors.New("subject is required")
	ErrEmptyComment         = errors.New("comment is required")
	ErrEmptyNote            = errors.New("note is required")
	ErrInvalidComment       = errors.New("invalid comment")
	ErrInvalidNote          = errors.New("invalid note")
	ErrInvalidAttachment    = errors.New("attachment name and path are required")
	ErrVersionConflict      = errors.New("ticket was modified concurrently")
)
