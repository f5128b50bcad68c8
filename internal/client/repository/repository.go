package repository

// LocalRepository bundles the per-table repositories behind one handle, the
// client only ever holds this.
type LocalRepository struct {
	LocalUserRepository
	LocalConversationRepository
	LocalMessageRepository
}

func NewLocalRepository(db *DB) *LocalRepository {
	r := LocalRepository{
		LocalUserRepository:         newLocalUserRepository(db),
		LocalConversationRepository: NewLocalConversationRepository(db),
		LocalMessageRepository:      NewLocalMessageRepository(db),
	}
	return &r
}
