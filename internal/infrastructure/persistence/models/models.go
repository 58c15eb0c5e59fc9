package models

// All returns every persistence model, in creation order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&OrganizationModel{},
		&GroupModel{},
		&GroupMemberModel{},
		&TicketTypeModel{},
		&TagModel{},
		&SystemModel{},
		&CounterModel{},
		&TicketModel{},
		&CommentModel{},
		&AttachmentModel{},
		&HistoryModel{},
		&TicketTagModel{},
		&SettingModel{},
		&ArticleModel{},
		&ArticleHistoryModel{},
		&ArticleCategoryModel{},
	}
}
