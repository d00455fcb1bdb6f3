package seed

import (
	"freshfold/config"
	. "freshfold/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     Role
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users := []seedUser{
		{
			FullName: "Admin User",
			Email:    "admin@example.com",
			Phone:    "555-0100",
			Password: "password",
			Role:     RoleAdmin,
		},
		{
			FullName: "Counter Staff",
			Email:    "staff@example.com",
			Phone:    "555-0101",
			Password: "password",
			Role:     RoleStaff,
		},
		{
			FullName: "Ada Lovelace",
			Email:    "ada.lovelace@example.com",
			Phone:    "555-0102",
			Password: "password",
			Role:     RoleCustomer,
		},
		{
			FullName: "Grace Hopper",
			Email:    "grace.hopper@example.com",
			Phone:    "555-0103",
			Password: "password",
			Role:     RoleCustomer,
		},
	}

	for _, seed := range users {
		var existingUser User
		if err := db.First(&existingUser, "email = ?", seed.Email).Error; err == nil {
			log.Info("User already exists", "email", seed.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			return log.Err("failed to hash seed password", err, "email", seed.Email)
		}

		user := User{
			FullName:     seed.FullName,
			Email:        seed.Email,
			Phone:        seed.Phone,
			PasswordHash: string(hash),
			Role:         seed.Role,
		}

		log.Info("Seeding user", "email", user.Email, "role", user.Role)
		if err := db.Create(&user).Error; err != nil {
			log.Er("failed to create user", err, "email", user.Email)
		}
	}

	return nil
}
