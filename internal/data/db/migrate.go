package db

import (
	"github.com/yungbote/eduadmin/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Content hierarchy
		&domain.EducationLevel{},
		&domain.Class{},
		&domain.Subject{},
		&domain.Chapter{},
		&domain.Topic{},

		// People
		&domain.User{},
		&domain.UserProgress{},
		&domain.Profile{},
	)
}
