package repositories

import (
	"freshfold/internal/database"
)

type Repository struct {
	User         UserRepository
	Address      AddressRepository
	Request      RequestRepository
	Message      MessageRepository
	ItemCategory ItemCategoryRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:         NewUserRepository(db),
		Address:      NewAddressRepository(db),
		Request:      NewRequestRepository(db),
		Message:      NewMessageRepository(db),
		ItemCategory: NewItemCategoryRepository(db),
	}
}
