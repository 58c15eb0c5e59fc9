package usecases

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/orris-inc/helpdesk/internal/application/common"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/shared/events"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/query"
)

// =====================================================================
// Ticket repository
// =====================================================================

type mockTicketRepo struct {
	mu      sync.Mutex
	byUID   map[int64]*ticket.Ticket
	version map[int64]int
	nextID  uint

	SearchFunc       func(ctx context.Context, scope ticket.Scope, field ticket.SearchField, term string, limit int) ([]*ticket.Ticket, error)
	ListOverdueFunc  func(ctx context.Context, groupIDs []uint, cutoff time.Time) ([]*ticket.OverdueSummary, error)
	CountByTagFunc   func(ctx context.Context, since time.Time) ([]*ticket.Count, error)
	TopGroupsFunc    func(ctx context.Context, since time.Time, top int) ([]*ticket.Count, error)
	CreateErr        error
	listOverdueCalls int
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{
		byUID:   make(map[int64]*ticket.Ticket),
		version: make(map[int64]int),
	}
}

func (m *mockTicketRepo) Create(_ context.Context, t *ticket.Ticket) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := t.SetID(m.nextID); err != nil {
		return err
	}
	m.byUID[t.UID()] = t
	m.version[t.UID()] = t.Version()
	return nil
}

func (m *mockTicketRepo) Update(_ context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version[t.UID()] != t.Version() {
		return ticket.ErrVersionConflict
	}
	m.version[t.UID()]++
	m.byUID[t.UID()] = t
	t.BumpVersion()
	return nil
}

func (m *mockTicketRepo) GetByID(_ context.Context, id uint) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.byUID {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepo) GetByUID(_ context.Context, uid int64) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byUID[uid]
	if !ok {
		return nil, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (m *mockTicketRepo) visible(scope ticket.Scope, f ticket.Filter) []*ticket.Ticket {
	groups := scope.Effective(f.GroupIDs)
	out := []*ticket.Ticket{}
	if f.MatchNone {
		return out
	}
	for _, t := range m.byUID {
		if t.IsDeleted() || !slices.Contains(groups, t.GroupID()) {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, t.Status()) {
			continue
		}
		if len(f.AssigneeIDs) > 0 && (t.AssigneeID() == nil || !slices.Contains(f.AssigneeIDs, *t.AssigneeID())) {
			continue
		}
		if len(f.SystemIDs) > 0 && (t.SystemID() == nil || !slices.Contains(f.SystemIDs, *t.SystemID())) {
			continue
		}
		if len(f.OwnerIDs) > 0 && !slices.Contains(f.OwnerIDs, t.OwnerID()) {
			continue
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *ticket.Ticket) int {
		return int(b.UID() - a.UID())
	})
	return out
}

func (m *mockTicketRepo) List(_ context.Context, scope ticket.Scope, f ticket.Filter) ([]*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.visible(scope, f)
	if f.IsUnlimited() {
		return all, nil
	}
	start := min(f.Offset(), len(all))
	end := min(start+f.Limit, len(all))
	return all[start:end], nil
}

func (m *mockTicketRepo) Count(_ context.Context, scope ticket.Scope, f ticket.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.visible(scope, f))), nil
}

func (m *mockTicketRepo) ListAll(_ context.Context, scope ticket.Scope) ([]*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.visible(scope, ticket.Filter{PageFilter: query.PageFilter{Limit: query.Unlimited}})
	slices.SortStableFunc(all, func(a, b *ticket.Ticket) int {
		return a.Status().Int() - b.Status().Int()
	})
	return all, nil
}

func (m *mockTicketRepo) Search(ctx context.Context, scope ticket.Scope, field ticket.SearchField, term string, limit int) ([]*ticket.Ticket, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, scope, field, term, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*ticket.Ticket{}
	for _, t := range m.visible(scope, ticket.Filter{}) {
		var hit bool
		switch field {
		case ticket.SearchUID:
			hit = strings.HasPrefix(strconv.FormatInt(t.UID(), 10), term)
		case ticket.SearchSubject:
			hit = strings.Contains(strings.ToLower(t.Subject()), strings.ToLower(term))
		case ticket.SearchIssue:
			hit = strings.Contains(strings.ToLower(t.Issue()), strings.ToLower(term))
		}
		if hit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTicketRepo) ListOverdue(ctx context.Context, groupIDs []uint, cutoff time.Time) ([]*ticket.OverdueSummary, error) {
	m.mu.Lock()
	m.listOverdueCalls++
	m.mu.Unlock()
	if m.ListOverdueFunc != nil {
		return m.ListOverdueFunc(ctx, groupIDs, cutoff)
	}
	return []*ticket.OverdueSummary{}, nil
}

func (m *mockTicketRepo) ListForStats(context.Context, time.Time) ([]*ticket.StatsSource, error) {
	return nil, nil
}

func (m *mockTicketRepo) CountByTag(ctx context.Context, since time.Time) ([]*ticket.Count, error) {
	if m.CountByTagFunc != nil {
		return m.CountByTagFunc(ctx, since)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountByType(context.Context, time.Time) ([]*ticket.Count, error) {
	return nil, nil
}

func (m *mockTicketRepo) TopGroups(ctx context.Context, since time.Time, top int) ([]*ticket.Count, error) {
	if m.TopGroupsFunc != nil {
		return m.TopGroupsFunc(ctx, since, top)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountByGroup(context.Context, uint) (int64, error) {
	return 0, nil
}

func (m *mockTicketRepo) ReassignType(context.Context, uint, uint) (int64, error) {
	return 0, nil
}

// =====================================================================
// Reference repositories
// =====================================================================

type mockGroupRepo struct {
	groups map[uint]*group.Group
	public []uint

	MemberGroupIDsFunc func(ctx context.Context, userID uint) ([]uint, error)
}

func newMockGroupRepo(groups ...*group.Group) *mockGroupRepo {
	m := &mockGroupRepo{groups: make(map[uint]*group.Group)}
	for _, g := range groups {
		m.groups[g.ID()] = g
		if g.IsPublic() {
			m.public = append(m.public, g.ID())
		}
	}
	return m
}

func (m *mockGroupRepo) Create(_ context.Context, g *group.Group) error {
	m.groups[g.ID()] = g
	return nil
}

func (m *mockGroupRepo) Update(_ context.Context, g *group.Group) error {
	m.groups[g.ID()] = g
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id uint) error {
	delete(m.groups, id)
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id uint) (*group.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	return g, nil
}

func (m *mockGroupRepo) GetByIDs(_ context.Context, ids []uint) ([]*group.Group, error) {
	out := []*group.Group{}
	for _, id := range ids {
		if g, ok := m.groups[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGroupRepo) List(context.Context) ([]*group.Group, error) {
	out := []*group.Group{}
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out, nil
}

func (m *mockGroupRepo) MemberGroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	if m.MemberGroupIDsFunc != nil {
		return m.MemberGroupIDsFunc(ctx, userID)
	}
	ids := []uint{}
	for _, g := range m.groups {
		if g.IsMember(userID) {
			ids = append(ids, g.ID())
		}
	}
	return ids, nil
}

func (m *mockGroupRepo) PublicGroupIDs(context.Context) ([]uint, error) {
	return m.public, nil
}

type mockUserRepo struct {
	users map[uint]*user.User
}

func newMockUserRepo(users ...*user.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uint]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error {
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	out := []*user.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, roles []string) ([]*user.User, error) {
	out := []*user.User{}
	for _, u := range m.users {
		if slices.Contains(roles, u.Role()) {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockTypeRepo struct {
	types map[uint]*tickettype.TicketType
}

func newMockTypeRepo(types ...*tickettype.TicketType) *mockTypeRepo {
	m := &mockTypeRepo{types: make(map[uint]*tickettype.TicketType)}
	for _, t := range types {
		m.types[t.ID()] = t
	}
	return m
}

func (m *mockTypeRepo) Create(_ context.Context, t *tickettype.TicketType) error {
	m.types[t.ID()] = t
	return nil
}

func (m *mockTypeRepo) Update(_ context.Context, t *tickettype.TicketType) error {
	m.types[t.ID()] = t
	return nil
}

func (m *mockTypeRepo) Delete(_ context.Context, id uint) error {
	delete(m.types, id)
	return nil
}

func (m *mockTypeRepo) GetByID(_ context.Context, id uint) (*tickettype.TicketType, error) {
	t, ok := m.types[id]
	if !ok {
		return nil, tickettype.ErrTypeNotFound
	}
	return t, nil
}

func (m *mockTypeRepo) GetByIDs(_ context.Context, ids []uint) ([]*tickettype.TicketType, error) {
	out := []*tickettype.TicketType{}
	for _, id := range ids {
		if t, ok := m.types[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTypeRepo) List(context.Context) ([]*tickettype.TicketType, error) {
	out := []*tickettype.TicketType{}
	for _, t := range m.types {
		out = append(out, t)
	}
	return out, nil
}

type mockTagRepo struct {
	tags map[uint]*tag.Tag
}

func newMockTagRepo(tags ...*tag.Tag) *mockTagRepo {
	m := &mockTagRepo{tags: make(map[uint]*tag.Tag)}
	for _, t := range tags {
		m.tags[t.ID()] = t
	}
	return m
}

func (m *mockTagRepo) Create(_ context.Context, t *tag.Tag) error {
	for _, existing := range m.tags {
		if existing.Normalized() == t.Normalized() {
			return tag.ErrTagExists
		}
	}
	t.SetID(uint(len(m.tags) + 1))
	m.tags[t.ID()] = t
	return nil
}

func (m *mockTagRepo) GetByIDs(_ context.Context, ids []uint) ([]*tag.Tag, error) {
	out := []*tag.Tag{}
	for _, id := range ids {
		if t, ok := m.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTagRepo) GetByNormalized(_ context.Context, normalized string) (*tag.Tag, error) {
	for _, t := range m.tags {
		if t.Normalized() == normalized {
			return t, nil
		}
	}
	return nil, tag.ErrTagNotFound
}

func (m *mockTagRepo) List(context.Context) ([]*tag.Tag, error) {
	out := []*tag.Tag{}
	for _, t := range m.tags {
		out = append(out, t)
	}
	return out, nil
}

// mockSystemRepo serves lookups only; ticket use cases never write systems.
type mockSystemRepo struct {
	system.Repository
	systems map[uint]*system.System
}

func newMockSystemRepo(systems ...*system.System) *mockSystemRepo {
	m := &mockSystemRepo{systems: make(map[uint]*system.System)}
	for _, s := range systems {
		m.systems[s.ID()] = s
	}
	return m
}

func (m *mockSystemRepo) GetByID(_ context.Context, id uint) (*system.System, error) {
	s, ok := m.systems[id]
	if !ok {
		return nil, system.ErrSystemNotFound
	}
	return s, nil
}

// =====================================================================
// Infrastructure
// =====================================================================

type mockSequence struct {
	mu   sync.Mutex
	next map[string]int64

	NextFunc func(ctx context.Context, counter string) (int64, error)
}

func (m *mockSequence) Next(ctx context.Context, counter string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, counter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next == nil {
		m.next = make(map[string]int64)
	}
	m.next[counter]++
	return m.next[counter], nil
}

type mockTransactor struct {
	calls atomic.Int32
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls.Add(1)
	return fn(ctx)
}

// mockChecker grants capabilities per role. The admin role holds everything.
type mockChecker struct {
	grants map[string][]string
}

func (m mockChecker) CanDo(role, capability string) bool {
	if role == user.RoleAdmin {
		return true
	}
	return slices.Contains(m.grants[role], capability)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) PublishAll(list []events.DomainEvent) error {
	for _, e := range list {
		_ = m.Publish(e)
	}
	return nil
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

// mockCache stores JSON payloads and ignores TTLs unless a test expires keys
// itself.
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration

	GetErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if m.GetErr != nil {
		return false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) expire(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

func (m *mockCache) Close() error { return nil }

var _ common.PermissionChecker = mockChecker{}
