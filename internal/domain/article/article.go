package article

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/domain/shared"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrCategoryNotFound = errors.New("article category not found")
	ErrEmptySubject     = errors.New("subject is required")
	ErrEmptyContent     = errors.New("content is required")
)

// Status is the publication state of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusPublished
}

// History action codes.
const (
	ActionCreated     = "article:created"
	ActionUpdated     = "article:updated"
	ActionPublished   = "article:published"
	ActionUnpublished = "article:unpublished"
	ActionDeleted     = "article:deleted"
)

const excerptLength = 200

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// HistoryEntry is one article audit record.
type HistoryEntry struct {
	ID          uint
	Action      string
	Description string
	OwnerID     uint
	Date        time.Time
}

type Article struct {
	id              uint
	uid             int64
	authorID        uint
	orgID           uint
	categoryID      uint
	subject         string
	content         string
	html            string
	excerpt         string
	tags            []string
	permalink       string
	status          Status
	deleted         bool
	commentsEnabled bool
	subscribers     []uint
	likers          []uint
	history         []*HistoryEntry
	date            time.Time
	modifiedDate    time.Time
}

// NewArticle creates a draft. html is the sanitized rendering of content.
func NewArticle(uid int64, authorID, orgID, categoryID uint, subject, content, html string, tags []string) (*Article, error) {
	if uid <= 0 {
		return nil, fmt.Errorf("invalid uid")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author is required")
	}
	if orgID == 0 {
		return nil, fmt.Errorf("organization is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrEmptySubject
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	now := biztime.NowUTC()
	a := &Article{
		uid:             uid,
		authorID:        authorID,
		orgID:           orgID,
		categoryID:      categoryID,
		subject:         subject,
		content:         content,
		html:            html,
		excerpt:         Excerpt(content),
		tags:            normalizeTags(tags),
		permalink:       Permalink(subject, uid),
		status:          StatusDraft,
		commentsEnabled: true,
		subscribers:     []uint{authorID},
		likers:          []uint{},
		history:         []*HistoryEntry{},
		date:            now,
		modifiedDate:    now,
	}
	a.record(authorID, ActionCreated, "Article was created.")
	return a, nil
}

// ReconstructArticle rebuilds a persisted article.
func ReconstructArticle(
	id uint,
	uid int64,
	authorID, orgID, categoryID uint,
	subject, content, html, excerpt string,
	tags []string,
	permalink string,
	status Status,
	deleted, commentsEnabled bool,
	subscribers, likers []uint,
	history []*HistoryEntry,
	date, modifiedDate time.Time,
) *Article {
	if history == nil {
		history = []*HistoryEntry{}
	}
	return &Article{
		id:              id,
		uid:             uid,
		authorID:        authorID,
		orgID:           orgID,
		categoryID:      categoryID,
		subject:         subject,
		content:         content,
		html:            html,
		excerpt:         excerpt,
		tags:            append([]string{}, tags...),
		permalink:       permalink,
		status:          status,
		deleted:         deleted,
		commentsEnabled: commentsEnabled,
		subscribers:     shared.CopyIDs(subscribers),
		likers:          shared.CopyIDs(likers),
		history:         history,
		date:            date,
		modifiedDate:    modifiedDate,
	}
}

func (a *Article) ID() uint                 { return a.id }
func (a *Article) UID() int64               { return a.uid }
func (a *Article) AuthorID() uint           { return a.authorID }
func (a *Article) OrgID() uint              { return a.orgID }
func (a *Article) CategoryID() uint         { return a.categoryID }
func (a *Article) Subject() string          { return a.subject }
func (a *Article) Content() string          { return a.content }
func (a *Article) HTML() string             { return a.html }
func (a *Article) Excerpt() string          { return a.excerpt }
func (a *Article) Tags() []string           { return append([]string{}, a.tags...) }
func (a *Article) Permalink() string        { return a.permalink }
func (a *Article) Status() Status           { return a.status }
func (a *Article) IsDeleted() bool          { return a.deleted }
func (a *Article) CommentsEnabled() bool    { return a.commentsEnabled }
func (a *Article) Subscribers() []uint      { return shared.CopyIDs(a.subscribers) }
func (a *Article) Likers() []uint           { return shared.CopyIDs(a.likers) }
func (a *Article) LikeCount() int           { return len(a.likers) }
func (a *Article) Date() time.Time          { return a.date }
func (a *Article) ModifiedDate() time.Time  { return a.modifiedDate }
func (a *Article) History() []*HistoryEntry { return append([]*HistoryEntry(nil), a.history...) }

func (a *Article) SetID(id uint) {
	a.id = id
}

func (a *Article) record(actorID uint, action, description string) {
	a.history = append(a.history, &HistoryEntry{
		Action:      action,
		Description: description,
		OwnerID:     actorID,
		Date:        biztime.NowUTC(),
	})
}

// Update replaces the editable fields. The permalink follows the subject.
func (a *Article) Update(actorID uint, subject, content, html string, tags []string, categoryID uint, commentsEnabled bool) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	a.subject = subject
	a.content = content
	a.html = html
	a.excerpt = Excerpt(content)
	a.tags = normalizeTags(tags)
	a.permalink = Permalink(subject, a.uid)
	a.categoryID = categoryID
	a.commentsEnabled = commentsEnabled
	a.modifiedDate = biztime.NowUTC()
	a.record(actorID, ActionUpdated, "Article was updated.")
	return nil
}

func (a *Article) Publish(actorID uint) {
	a.status = StatusPublished
	a.record(actorID, ActionPublished, "Article was published.")
}

func (a *Article) Unpublish(actorID uint) {
	a.status = StatusDraft
	a.record(actorID, ActionUnpublished, "Article was unpublished.")
}

func (a *Article) SoftDelete(actorID uint) {
	a.deleted = true
	a.record(actorID, ActionDeleted, "Article was deleted.")
}

// Like and Unlike are idempotent per user.
func (a *Article) Like(userID uint) bool {
	var added bool
	a.likers, added = shared.AddID(a.likers, userID)
	return added
}

func (a *Article) Unlike(userID uint) bool {
	var removed bool
	a.likers, removed = shared.RemoveID(a.likers, userID)
	return removed
}

func (a *Article) Subscribe(userID uint) bool {
	var added bool
	a.subscribers, added = shared.AddID(a.subscribers, userID)
	return added
}

func (a *Article) Unsubscribe(userID uint) bool {
	var removed bool
	a.subscribers, removed = shared.RemoveID(a.subscribers, userID)
	return removed
}

// Permalink builds a url slug from subject and uid.
func Permalink(subject string, uid int64) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(subject), "-"), "-")
	if slug == "" {
		return strconv.FormatInt(uid, 10)
	}
	return slug + "-" + strconv.FormatInt(uid, 10)
}

// Excerpt returns the first characters of the source text on a word boundary.
func Excerpt(content string) string {
	plain := strings.Join(strings.Fields(content), " ")
	runes := []rune(plain)
	if len(runes) <= excerptLength {
		return plain
	}
	cut := string(runes[:excerptLength])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
