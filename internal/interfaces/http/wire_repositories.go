package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/article"
	"github.com/orris-inc/helpdesk/internal/domain/group"
	"github.com/orris-inc/helpdesk/internal/domain/organization"
	"github.com/orris-inc/helpdesk/internal/domain/sequence"
	"github.com/orris-inc/helpdesk/internal/domain/setting"
	"github.com/orris-inc/helpdesk/internal/domain/system"
	"github.com/orris-inc/helpdesk/internal/domain/tag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/domain/tickettype"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo     user.Repository
	groupRepo    group.Repository
	orgRepo      organization.Repository
	ticketRepo   ticket.Repository
	typeRepo     tickettype.Repository
	tagRepo      tag.Repository
	systemRepo   system.Repository
	articleRepo  article.Repository
	categoryRepo article.CategoryRepository
	settingRepo  setting.Repository
	counters     sequence.Allocator
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:     repository.NewUserRepository(db, log),
		groupRepo:    repository.NewGroupRepository(db, log),
		orgRepo:      repository.NewOrganizationRepository(db, log),
		ticketRepo:   repository.NewTicketRepository(db, log),
		typeRepo:     repository.NewTicketTypeRepository(db),
		tagRepo:      repository.NewTagRepository(db),
		systemRepo:   repository.NewSystemRepository(db, log),
		articleRepo:  repository.NewArticleRepository(db, log),
		categoryRepo: repository.NewArticleCategoryRepository(db),
		settingRepo:  repository.NewSettingRepository(db, log),
		counters:     repository.NewCounterRepository(db, log),
	}
}
