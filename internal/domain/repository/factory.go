package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Documents() DocumentRepository
	Notifications() NotificationRepository
	StatusEvents() StatusEventRepository
	Users() UserRepository
	Clients() ClientRepository
	Comments() CommentRepository
	History() HistoryRepository
}
