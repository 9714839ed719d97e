package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/data/repos"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type Repos struct {
	Level        repos.EducationLevelRepo
	Class        repos.ClassRepo
	Subject      repos.SubjectRepo
	Chapter      repos.ChapterRepo
	Topic        repos.TopicRepo
	User         repos.UserRepo
	UserProgress repos.UserProgressRepo
	Profile      repos.ProfileRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Level:        repos.NewEducationLevelRepo(db, log),
		Class:        repos.NewClassRepo(db, log),
		Subject:      repos.NewSubjectRepo(db, log),
		Chapter:      repos.NewChapterRepo(db, log),
		Topic:        repos.NewTopicRepo(db, log),
		User:         repos.NewUserRepo(db, log),
		UserProgress: repos.NewUserProgressRepo(db, log),
		Profile:      repos.NewProfileRepo(db, log),
	}
}
