package state

import (
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/platform/logger"
)

// Store bundles one container per entity type over a shared client.
type Store struct {
	Levels   *Container[domain.EducationLevel]
	Classes  *Container[domain.Class]
	Subjects *Container[domain.Subject]
	Chapters *Container[domain.Chapter]
	Topics   *Container[domain.Topic]
	Users    *Container[domain.User]
	Progress *Container[domain.UserProgress]
	Profiles *Container[domain.Profile]
}

func NewStore(client Doer, log *logger.Logger) *Store {
	return &Store{
		Levels:   NewContainer(EducationLevels, client, log),
		Classes:  NewContainer(Classes, client, log),
		Subjects: NewContainer(Subjects, client, log),
		Chapters: NewContainer(Chapters, client, log),
		Topics:   NewContainer(Topics, client, log),
		Users:    NewContainer(Users, client, log),
		Progress: NewContainer(UserProgress, client, log),
		Profiles: NewContainer(Profiles, client, log),
	}
}
