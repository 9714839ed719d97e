package domain

// Entity is anything a state container can hold.
type Entity interface {
	GetID() string
}

// Named entities can be shown in selectors and breadcrumbs.
type Named interface {
	Entity
	GetName() string
}

// Child entities carry the id of their parent in the hierarchy.
type Child interface {
	Entity
	ParentID() string
}

// Level identifies a position in the content hierarchy.
type Level int

const (
	LevelEducation Level = iota
	LevelClass
	LevelSubject
	LevelChapter
	LevelTopic
)

func (l Level) String() string {
	switch l {
	case LevelEducation:
		return "education_level"
	case LevelClass:
		return "class"
	case LevelSubject:
		return "subject"
	case LevelChapter:
		return "chapter"
	case LevelTopic:
		return "topic"
	default:
		return "unknown"
	}
}

// ParentKey is the JSON field a child of this level uses to point at it.
func (l Level) ParentKey() string {
	switch l {
	case LevelEducation:
		return "level_id"
	case LevelClass:
		return "class_id"
	case LevelSubject:
		return "subject_id"
	case LevelChapter:
		return "chapter_id"
	default:
		return ""
	}
}
