package ticket

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Issue    string `json:"issue"`
	GroupID  uint   `json:"group"`
	TypeID   uint   `json:"type"`
	Priority int    `json:"priority"`
	TagIDs   []uint `json:"tags"`
	SystemID uint   `json:"system"`
}

func (r CreateTicketRequest) ToCommand(actor common.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:    actor,
		Subject:  r.Subject,
		Issue:    r.Issue,
		GroupID:  r.GroupID,
		TypeID:   r.TypeID,
		Priority: r.Priority,
		TagIDs:   r.TagIDs,
		SystemID: r.SystemID,
	}
}

// UpdateTicketRequest is a partial update: absent fields are left alone.
// A system of 0 detaches the ticket from its system.
type UpdateTicketRequest struct {
	Subject  *string `json:"subject"`
	Issue    *string `json:"issue"`
	Priority *int    `json:"priority"`
	TypeID   *uint   `json:"type"`
	GroupID  *uint   `json:"group"`
	TagIDs   *[]uint `json:"tags"`
	SystemID *uint   `json:"system"`
}

func (r UpdateTicketRequest) ToCommand(actor common.Actor, uid int64) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:    actor,
		UID:      uid,
		Subject:  r.Subject,
		Issue:    r.Issue,
		Priority: r.Priority,
		TypeID:   r.TypeID,
		GroupID:  r.GroupID,
		TagIDs:   r.TagIDs,
		SystemID: r.SystemID,
	}
}

type UpdateStatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// AssignRequest with a null assignee clears the assignment.
type AssignRequest struct {
	AssigneeID *uint `json:"assignee"`
}

type CommentRequest struct {
	Body string `json:"body"`
}

type AttachmentRequest struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
}

type SubscriberRequest struct {
	UserID    uint `json:"user" binding:"required"`
	Subscribe bool `json:"subscribe"`
}

func parseUID(c *gin.Context) (int64, error) {
	raw := c.Param("uid")
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid <= 0 {
		return 0, errors.NewValidationError("Invalid ticket uid", raw)
	}
	return uid, nil
}

// parseListQuery reads the list filters. Repeated keys (status=1&status=2)
// become multi-value filters.
func parseListQuery(c *gin.Context, actor common.Actor, defaultLimit int) (usecases.ListTicketsQuery, error) {
	q := usecases.ListTicketsQuery{
		Actor:        actor,
		Text:         c.Query("q"),
		AssignedSelf: c.Query("assigned_self") == "true",
	}

	var err error
	if q.Statuses, err = queryInts(c, "status"); err != nil {
		return q, err
	}
	if q.Priorities, err = queryInts(c, "priority"); err != nil {
		return q, err
	}
	if q.TypeIDs, err = queryIDs(c, "type"); err != nil {
		return q, err
	}
	if q.TagIDs, err = queryIDs(c, "tag"); err != nil {
		return q, err
	}
	if q.AssigneeIDs, err = queryIDs(c, "assignee"); err != nil {
		return q, err
	}
	if q.OwnerIDs, err = queryIDs(c, "owner"); err != nil {
		return q, err
	}
	if q.GroupIDs, err = queryIDs(c, "group"); err != nil {
		return q, err
	}
	if q.SystemIDs, err = queryIDs(c, "system"); err != nil {
		return q, err
	}

	if raw := c.Query("uid"); raw != "" {
		uid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, errors.NewValidationError("Invalid uid filter", raw)
		}
		q.UID = &uid
	}
	if q.DateStart, err = queryDate(c, "date_start"); err != nil {
		return q, err
	}
	if q.DateEnd, err = queryDate(c, "date_end"); err != nil {
		return q, err
	}

	page := utils.ParsePageFilter(c, defaultLimit)
	q.Page = page.Page
	q.Limit = page.Limit
	return q, nil
}

func queryInts(c *gin.Context, key string) ([]int, error) {
	values := c.QueryArray(key)
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.NewValidationError("Invalid "+key+" filter", v)
		}
		out = append(out, n)
	}
	return out, nil
}

func queryIDs(c *gin.Context, key string) ([]uint, error) {
	values := c.QueryArray(key)
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]uint, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return nil, errors.NewValidationError("Invalid "+key+" filter", v)
		}
		out = append(out, uint(n))
	}
	return out, nil
}

// queryDate accepts RFC 3339 or a bare YYYY-MM-DD date.
func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.NewValidationError("Invalid "+key, raw)
}

func queryPositiveInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.NewValidationError("Invalid "+key, raw)
	}
	return n, nil
}
