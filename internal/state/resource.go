package state

import (
	"net/url"
	"strings"

	"github.com/yungbote/eduadmin/internal/domain"
)

// Routes holds the endpoint templates for one resource. "{id}" is replaced
// with the path-escaped id. An empty route means the API has no such
// operation.
type Routes struct {
	List     string
	ByParent string
	Item     string
	Create   string
	Update   string
	Delete   string
}

func (r Routes) expand(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", url.PathEscape(id))
}

// Resource describes how one entity type is reached over the API.
type Resource[E domain.Entity] struct {
	Name       string
	Plural     string
	ParentName string
	Routes     Routes
	// ListQuery sends limit/name on the list endpoint.
	ListQuery bool
	// Bare resources answer with plain JSON instead of the envelope.
	Bare        bool
	CreateShape FailureKind
	UpdateShape FailureKind
}

func (r Resource[E]) fallbackFetch() string { return "Failed to fetch " + r.Plural + "." }

func (r Resource[E]) fallbackFetchByParent() string {
	if r.ParentName == "" {
		return r.fallbackFetch()
	}
	return "Failed to fetch " + r.Plural + " for the " + r.ParentName + "."
}

func (r Resource[E]) fallbackGet() string    { return "Failed to fetch " + r.Name + "." }
func (r Resource[E]) fallbackCreate() string { return "Failed to create " + r.Name + "." }
func (r Resource[E]) fallbackUpdate() string { return "Failed to update " + r.Name + "." }
func (r Resource[E]) fallbackDelete() string { return "Failed to delete " + r.Name + "." }

var EducationLevels = Resource[domain.EducationLevel]{
	Name:   "education level",
	Plural: "education levels",
	Routes: Routes{
		List:   "/level/read_list",
		Item:   "/level/{id}",
		Create: "/level/create/",
		Update: "/level/{id}",
		Delete: "/level/{id}",
	},
	ListQuery:   true,
	CreateShape: FailureMessage,
	UpdateShape: FailureMessage,
}

var Classes = Resource[domain.Class]{
	Name:       "class",
	Plural:     "classes",
	ParentName: "level",
	Routes: Routes{
		List:     "/classes/read_class_list",
		ByParent: "/classes/level/{id}",
		Item:     "/classes/{id}",
		Create:   "/classes/create/",
		Update:   "/classes/{id}",
		Delete:   "/classes/{id}",
	},
	ListQuery:   true,
	CreateShape: FailureFields,
	UpdateShape: FailureFields,
}

var Subjects = Resource[domain.Subject]{
	Name:       "subject",
	Plural:     "subjects",
	ParentName: "class",
	Routes: Routes{
		List:     "/subjects/read_subjects_list",
		ByParent: "/subjects/class/{id}",
		Item:     "/subjects/{id}",
		Create:   "/subjects/create/",
		Update:   "/subjects/{id}",
		Delete:   "/subjects/{id}/",
	},
	ListQuery:   true,
	CreateShape: FailureFields,
	UpdateShape: FailureFields,
}

var Chapters = Resource[domain.Chapter]{
	Name:       "chapter",
	Plural:     "chapters",
	ParentName: "subject",
	Routes: Routes{
		List:     "/chapter/read_all_chapter",
		ByParent: "/chapters/chapter/{id}",
		Item:     "/chapters/{id}",
		Create:   "/chapters/create",
		Update:   "/chapters/{id}",
		Delete:   "/chapters/{id}",
	},
	CreateShape: FailureFields,
	UpdateShape: FailureFields,
}

var Topics = Resource[domain.Topic]{
	Name:       "topic",
	Plural:     "topics",
	ParentName: "chapter",
	Routes: Routes{
		List:     "/topics/read_all_topic",
		ByParent: "/topics/chapter/{id}",
		Item:     "/topics/{id}",
		Create:   "/topics/create",
		Update:   "/topics/{id}",
		Delete:   "/topics/{id}",
	},
	CreateShape: FailureFields,
	UpdateShape: FailureFields,
}

var Users = Resource[domain.User]{
	Name:   "user",
	Plural: "users",
	Routes: Routes{
		List:   "/users/read_users_users__get",
		Create: "/users/create_user_users__post",
	},
	Bare:        true,
	CreateShape: FailureMessage,
}

var UserProgress = Resource[domain.UserProgress]{
	Name:   "user progress",
	Plural: "user progress records",
	Routes: Routes{
		List:   "/user_progress/read_user_progresses_user_progress__get",
		Create: "/user_progress/create_user_progress_user_progress__post",
	},
	Bare:        true,
	CreateShape: FailureMessage,
}

var Profiles = Resource[domain.Profile]{
	Name:   "profile",
	Plural: "profiles",
	Routes: Routes{
		List:   "/profiles/read_profiles_profiles__get",
		Create: "/profiles/create_profile_profiles__post",
	},
	Bare:        true,
	CreateShape: FailureMessage,
}
