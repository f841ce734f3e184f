package repository

// the full set of stores a running instance needs
type Repositories struct {
	Tasks         TaskRepository
	Completions   CompletionRepository
	Users         UserRepository
	Notifications NotificationRepository
	Statistics    StatisticsRepository
}
