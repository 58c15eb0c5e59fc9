package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
	"github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		model := r.mapper.ToModel(t)
		if err := tx.Create(model).Error; err != nil {
			r.logger.Errorw("failed to create ticket", "uid", t.UID(), "error", err)
			return fmt.Errorf("failed to create ticket: %w", err)
		}
		if err := t.SetID(model.ID); err != nil {
			return err
		}
		return r.saveChildren(tx, t, false)
	})
}

// Update writes t when the stored version matches. The in-memory version is
// bumped only after the transaction commits.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	tx := db.GetTxFromContext(ctx, r.db)
	model := r.mapper.ToModel(t)

	err := tx.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TicketModel{}).
			Where("id = ? AND version = ?", t.ID(), t.Version()).
			Updates(map[string]interface{}{
				"owner_id":    model.OwnerID,
				"assignee_id": model.AssigneeID,
				"group_id":    model.GroupID,
				"type_id":     model.TypeID,
				"org_id":      model.OrgID,
				"system_id":   model.SystemID,
				"priority":    model.Priority,
				"status":      model.Status,
				"subject":     model.Subject,
				"issue":       model.Issue,
				"updated":     model.Updated,
				"closed_date": model.ClosedDate,
				"deleted":     model.Deleted,
				"subscribers": model.Subscribers,
				"version":     gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ticket.ErrVersionConflict
		}
		return r.saveChildren(tx, t, true)
	})
	if err != nil {
		if !errors.Is(err, ticket.ErrVersionConflict) {
			r.logger.Errorw("failed to update ticket", "id", t.ID(), "error", err)
		}
		return err
	}

	t.BumpVersion()
	return nil
}

// saveChildren rewrites comments, attachments and tags, and inserts history
// entries that have no id yet.
func (r *TicketRepository) saveChildren(tx *gorm.DB, t *ticket.Ticket, replace bool) error {
	if replace {
		if err := tx.Where("ticket_id = ?", t.ID()).Delete(&models.CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ticket comments: %w", err)
		}
		if err := tx.Where("ticket_id = ?", t.ID()).Delete(&models.AttachmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ticket attachments: %w", err)
		}
		if err := tx.Where("ticket_id = ?", t.ID()).Delete(&models.TicketTagModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ticket tags: %w", err)
		}
	}

	if comments := r.mapper.CommentsToModels(t); len(comments) > 0 {
		if err := tx.Create(&comments).Error; err != nil {
			return fmt.Errorf("failed to save ticket comments: %w", err)
		}
	}
	if attachments := r.mapper.AttachmentsToModels(t); len(attachments) > 0 {
		if err := tx.Create(&attachments).Error; err != nil {
			return fmt.Errorf("failed to save ticket attachments: %w", err)
		}
	}
	if tagIDs := t.TagIDs(); len(tagIDs) > 0 {
		rows := make([]models.TicketTagModel, 0, len(tagIDs))
		for _, id := range tagIDs {
			rows = append(rows, models.TicketTagModel{TicketID: t.ID(), TagID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save ticket tags: %w", err)
		}
	}

	pending := make([]*ticket.HistoryEntry, 0)
	for _, h := range t.History() {
		if h.IsNew() {
			pending = append(pending, h)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	rows := make([]*models.HistoryModel, 0, len(pending))
	for _, h := range pending {
		rows = append(rows, r.mapper.HistoryToModel(t.ID(), h))
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to append ticket history: %w", err)
	}
	for i, h := range pending {
		if err := h.SetID(rows[i].ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *TicketRepository) GetByUID(ctx context.Context, uid int64) (*ticket.Ticket, error) {
	return r.getOne(ctx, "uid = ?", uid)
}

func (r *TicketRepository) getOne(ctx context.Context, cond string, arg interface{}) (*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.TicketModel
	if err := tx.Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	list, err := r.hydrate(tx, []models.TicketModel{model})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// hydrate loads the children of every row with one query per table.
func (r *TicketRepository) hydrate(tx *gorm.DB, rows []models.TicketModel) ([]*ticket.Ticket, error) {
	if len(rows) == 0 {
		return []*ticket.Ticket{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}

	var comments []models.CommentModel
	if err := tx.Where("ticket_id IN ?", ids).Order("date ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket comments: %w", err)
	}
	var attachments []models.AttachmentModel
	if err := tx.Where("ticket_id IN ?", ids).Order("date ASC").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket attachments: %w", err)
	}
	var history []models.HistoryModel
	if err := tx.Where("ticket_id IN ?", ids).Order("id ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket history: %w", err)
	}
	var tags []models.TicketTagModel
	if err := tx.Where("ticket_id IN ?", ids).Order("tag_id ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket tags: %w", err)
	}

	children := make(map[uint]*mappers.TicketChildren, len(rows))
	for _, id := range ids {
		children[id] = &mappers.TicketChildren{}
	}
	for _, c := range comments {
		children[c.TicketID].Comments = append(children[c.TicketID].Comments, c)
	}
	for _, a := range attachments {
		children[a.TicketID].Attachments = append(children[a.TicketID].Attachments, a)
	}
	for _, h := range history {
		children[h.TicketID].History = append(children[h.TicketID].History, h)
	}
	for _, tg := range tags {
		children[tg.TicketID].TagIDs = append(children[tg.TicketID].TagIDs, tg.TagID)
	}

	out := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i], *children[rows[i].ID])
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket %d: %w", rows[i].ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// visible applies the scope and every filter criterion except pagination.
func (r *TicketRepository) visible(tx *gorm.DB, scope ticket.Scope, f ticket.Filter) *gorm.DB {
	q := tx.Model(&models.TicketModel{}).
		Scopes(db.NotDeleted(), db.InGroups(scope.Effective(f.GroupIDs)))
	if f.MatchNone {
		q = q.Where("1 = 0")
	}

	start, end := f.DateRange(biztime.NowUTC())
	q = q.Where("date >= ? AND date <= ?", start.UnixMilli(), end.UnixMilli())

	if len(f.Statuses) > 0 {
		values := make([]int, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			values = append(values, s.Int())
		}
		q = q.Where("status IN ?", values)
	}
	if len(f.Priorities) > 0 {
		values := make([]int, 0, len(f.Priorities))
		for _, p := range f.Priorities {
			values = append(values, p.Int())
		}
		q = q.Where("priority IN ?", values)
	}
	if len(f.TypeIDs) > 0 {
		q = q.Where("type_id IN ?", f.TypeIDs)
	}
	if len(f.SystemIDs) > 0 {
		q = q.Where("system_id IN ?", f.SystemIDs)
	}
	if len(f.AssigneeIDs) > 0 {
		q = q.Where("assignee_id IN ?", f.AssigneeIDs)
	}
	if len(f.OwnerIDs) > 0 {
		q = q.Where("owner_id IN ?", f.OwnerIDs)
	}
	if len(f.TagIDs) > 0 {
		sub := tx.Model(&models.TicketTagModel{}).Select("ticket_id").Where("tag_id IN ?", f.TagIDs)
		q = q.Where("id IN (?)", sub)
	}
	if f.UID != nil {
		q = q.Where("uid = ?", *f.UID)
	}
	if text := strings.TrimSpace(f.Text); text != "" {
		like := containsPattern(text)
		q = q.Where("(LOWER(subject) LIKE ? ESCAPE '!' OR LOWER(issue) LIKE ? ESCAPE '!')", like, like)
	}
	return q
}

func (r *TicketRepository) List(ctx context.Context, scope ticket.Scope, filter ticket.Filter) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	page := query.NewPageFilter(filter.Page, filter.Limit)

	var rows []models.TicketModel
	err := r.visible(tx, scope, filter).
		Order("uid DESC").
		Scopes(db.Paginate(page.Page, page.Limit)).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return r.hydrate(tx, rows)
}

func (r *TicketRepository) Count(ctx context.Context, scope ticket.Scope, filter ticket.Filter) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := r.visible(tx, scope, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return total, nil
}

func (r *TicketRepository) ListAll(ctx context.Context, scope ticket.Scope) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketModel
	err := tx.Model(&models.TicketModel{}).
		Scopes(db.NotDeleted(), db.InGroups(scope.Effective(nil))).
		Order("status ASC").
		Order("uid DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all tickets: %w", err)
	}
	return r.hydrate(tx, rows)
}

func (r *TicketRepository) Search(ctx context.Context, scope ticket.Scope, field ticket.SearchField, term string, limit int) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	term = strings.TrimSpace(term)
	if term == "" {
		return []*ticket.Ticket{}, nil
	}

	q := tx.Model(&models.TicketModel{}).
		Scopes(db.NotDeleted(), db.InGroups(scope.Effective(nil)))

	switch field {
	case ticket.SearchUID:
		q = q.Where("CAST(uid AS CHAR) LIKE ? ESCAPE '!'", likeEscaper.Replace(term)+"%")
	case ticket.SearchSubject:
		q = q.Where("LOWER(subject) LIKE ? ESCAPE '!'", containsPattern(term))
	case ticket.SearchIssue:
		q = q.Where("LOWER(issue) LIKE ? ESCAPE '!'", containsPattern(term))
	default:
		return nil, fmt.Errorf("unsupported search field: %s", field)
	}

	q = q.Order("uid DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.TicketModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search tickets by %s: %w", field, err)
	}
	return r.hydrate(tx, rows)
}

func (r *TicketRepository) ListOverdue(ctx context.Context, groupIDs []uint, cutoff time.Time) ([]*ticket.OverdueSummary, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		ID       uint
		UID      int64 `gorm:"column:uid"`
		Subject  string
		Activity int64
	}
	err := tx.Model(&models.TicketModel{}).
		Select("id, uid, subject, COALESCE(updated, date) AS activity").
		Scopes(db.NotDeleted(), db.InGroups(groupIDs)).
		Where("status = ?", vo.StatusOpen.Int()).
		Where("COALESCE(updated, date) < ?", cutoff.UnixMilli()).
		Order("uid ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tickets: %w", err)
	}

	out := make([]*ticket.OverdueSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, &ticket.OverdueSummary{
			ID:      row.ID,
			UID:     row.UID,
			Subject: row.Subject,
			Updated: time.UnixMilli(row.Activity).UTC(),
		})
	}
	return out, nil
}

func (r *TicketRepository) ListForStats(ctx context.Context, since time.Time) ([]*ticket.StatsSource, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.TicketModel
	err := tx.Model(&models.TicketModel{}).
		Select("id, uid, owner_id, assignee_id, date").
		Scopes(db.NotDeleted()).
		Where("date >= ?", since.UnixMilli()).
		Order("date ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets for stats: %w", err)
	}
	if len(rows) == 0 {
		return []*ticket.StatsSource{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}

	var comments []models.CommentModel
	err = tx.Select("ticket_id, owner_id").
		Where("ticket_id IN ? AND kind = ?", ids, string(ticket.KindComment)).
		Order("date ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load comments for stats: %w", err)
	}

	var historyCounts []struct {
		TicketID uint
		Total    int
	}
	err = tx.Model(&models.HistoryModel{}).
		Select("ticket_id, COUNT(*) AS total").
		Where("ticket_id IN ?", ids).
		Group("ticket_id").
		Scan(&historyCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count history for stats: %w", err)
	}

	commenters := make(map[uint][]uint, len(rows))
	for _, c := range comments {
		commenters[c.TicketID] = append(commenters[c.TicketID], c.OwnerID)
	}
	historyByTicket := make(map[uint]int, len(historyCounts))
	for _, h := range historyCounts {
		historyByTicket[h.TicketID] = h.Total
	}

	out := make([]*ticket.StatsSource, 0, len(rows))
	for _, m := range rows {
		out = append(out, &ticket.StatsSource{
			UID:          m.UID,
			OwnerID:      m.OwnerID,
			AssigneeID:   m.AssigneeID,
			CommenterIDs: commenters[m.ID],
			HistoryCount: historyByTicket[m.ID],
		})
	}
	return out, nil
}

type countRow struct {
	RefID uint
	Total int64
}

func toCounts(rows []countRow) []*ticket.Count {
	out := make([]*ticket.Count, 0, len(rows))
	for _, row := range rows {
		out = append(out, &ticket.Count{ID: row.RefID, Count: row.Total})
	}
	return out
}

func (r *TicketRepository) CountByTag(ctx context.Context, since time.Time) ([]*ticket.Count, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []countRow
	err := tx.Table("ticket_tags").
		Select("ticket_tags.tag_id AS ref_id, COUNT(*) AS total").
		Joins("JOIN tickets ON tickets.id = ticket_tags.ticket_id").
		Where("tickets.deleted = ? AND tickets.date >= ?", false, since.UnixMilli()).
		Group("ticket_tags.tag_id").
		Order("total DESC").
		Order("ref_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets by tag: %w", err)
	}
	return toCounts(rows), nil
}

func (r *TicketRepository) CountByType(ctx context.Context, since time.Time) ([]*ticket.Count, error) {
	return r.countBy(ctx, "type_id", since, 0)
}

func (r *TicketRepository) TopGroups(ctx context.Context, since time.Time, top int) ([]*ticket.Count, error) {
	return r.countBy(ctx, "group_id", since, top)
}

func (r *TicketRepository) countBy(ctx context.Context, column string, since time.Time, limit int) ([]*ticket.Count, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	q := tx.Model(&models.TicketModel{}).
		Select(column+" AS ref_id, COUNT(*) AS total").
		Scopes(db.NotDeleted()).
		Where("date >= ?", since.UnixMilli()).
		Group(column).
		Order("total DESC").
		Order("ref_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []countRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by %s: %w", column, err)
	}
	return toCounts(rows), nil
}

// CountByGroup includes soft-deleted tickets.
func (r *TicketRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.TicketModel{}).Where("group_id = ?", groupID).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets in group: %w", err)
	}
	return total, nil
}

// ReassignType bumps the version of every moved ticket so concurrent edits
// see a conflict.
func (r *TicketRepository) ReassignType(ctx context.Context, from, to uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TicketModel{}).
		Where("type_id = ?", from).
		Updates(map[string]interface{}{
			"type_id": to,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to reassign ticket type", "from", from, "to", to, "error", result.Error)
		return 0, fmt.Errorf("failed to reassign ticket type: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
