package usecases

import (
	"errors"

	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	apperrors "github.com/orris-inc/helpdesk/internal/shared/errors"
)

// toAppError translates domain sentinels into user-facing errors. Anything
// unrecognised is returned unchanged and ends up as a generic 500.
func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, ticket.ErrTicketNotFound):
		return apperrors.NewNotFoundError("Ticket not found")
	case errors.Is(err, ticket.ErrVersionConflict):
		return apperrors.NewConflictError("Ticket was modified by another request, reload and try again")
	case errors.Is(err, ticket.ErrAssigneeNotPermitted):
		return apperrors.NewValidationError("User does not have permission to be set as an assignee.")
	case errors.Is(err, ticket.ErrInvalidUser), errors.Is(err, user.ErrUserNotFound):
		return apperrors.NewValidationError("Invalid user")
	case errors.Is(err, ticket.ErrInvalidStatus):
		return apperrors.NewValidationError("Invalid status")
	case errors.Is(err, ticket.ErrInvalidPriority):
		return apperrors.NewValidationError("Priority must be a number.")
	case errors.Is(err, ticket.ErrInvalidType), errors.Is(err, tickettype.ErrTypeNotFound):
		return apperrors.NewValidationError("Invalid ticket type")
	case errors.Is(err, ticket.ErrInvalidGroup), errors.Is(err, group.ErrGroupNotFound):
		return apperrors.NewValidationError("Invalid group")
	case errors.Is(err, ticket.ErrInvalidSystem), errors.Is(err, system.ErrSystemNotFound):
		return apperrors.NewValidationError("Invalid system")
	case errors.Is(err, tag.ErrTagNotFound):
		return apperrors.NewValidationError("Invalid tag")
	case errors.Is(err, ticket.ErrEmptySubject):
		return apperrors.NewValidationError("Subject is required")
	case errors.Is(err, ticket.ErrEmptyIssue):
		return apperrors.NewValidationError("Issue is required")
	case errors.Is(err, ticket.ErrEmptyComment):
		return apperrors.NewValidationError("Comment cannot be empty")
	case errors.Is(err, ticket.ErrEmptyNote):
		return apperrors.NewValidationError("Note cannot be empty")
	case errors.Is(err, ticket.ErrInvalidComment):
		return apperrors.NewValidationError("Invalid Comment")
	case errors.Is(err, ticket.ErrInvalidNote):
		return apperrors.NewValidationError("Invalid Note")
	case errors.Is(err, ticket.ErrInvalidAttachment):
		return apperrors.NewValidationError("Attachment name and path are required")
	case errors.Is(err, sequence.ErrInvalidUID):
		return apperrors.NewInternalError("Invalid UID")
	}
	return err
}
