package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/eduadmin/internal/data/repos/content"
	"github.com/yungbote/eduadmin/internal/data/repos/profile"
	"github.com/yungbote/eduadmin/internal/data/repos/progress"
	"github.com/yungbote/eduadmin/internal/data/repos/user"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

type ListQuery = content.ListQuery

type EducationLevelRepo = content.Repo[domain.EducationLevel]
type ClassRepo = content.Repo[domain.Class]
type SubjectRepo = content.Repo[domain.Subject]
type ChapterRepo = content.Repo[domain.Chapter]
type TopicRepo = content.Repo[domain.Topic]

type UserRepo = user.UserRepo
type UserProgressRepo = progress.UserProgressRepo
type ProfileRepo = profile.ProfileRepo

func NewEducationLevelRepo(db *gorm.DB, baseLog *logger.Logger) EducationLevelRepo {
	return content.NewEducationLevelRepo(db, baseLog)
}
func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return content.NewClassRepo(db, baseLog)
}
func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return content.NewSubjectRepo(db, baseLog)
}
func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) ChapterRepo {
	return content.NewChapterRepo(db, baseLog)
}
func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return content.NewTopicRepo(db, baseLog)
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return progress.NewUserProgressRepo(db, baseLog)
}
func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return profile.NewProfileRepo(db, baseLog)
}
