package domain

// EducationLevel is the root of the content hierarchy.
type EducationLevel struct {
	ID          string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name        string `json:"name" gorm:"not null;index" validate:"notblank"`
	Description string `json:"description"`
}

type Class struct {
	ID        string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name" gorm:"not null;index" validate:"notblank"`
	Tagline   string `json:"tagline"`
	ImageLink string `json:"image_link"`
	LevelID   string `json:"level_id" gorm:"type:varchar(64);not null;index" validate:"notblank"`
}

type Subject struct {
	ID          string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name        string `json:"name" gorm:"not null;index" validate:"notblank"`
	Tagline     string `json:"tagline"`
	ImageLink   string `json:"image_link"`
	ImagePrompt string `json:"image_prompt"`
	ClassID     string `json:"class_id" gorm:"type:varchar(64);not null;index" validate:"notblank"`
}

type Chapter struct {
	ID        string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name" gorm:"not null;index" validate:"notblank"`
	Tagline   string `json:"tagline"`
	ImageLink string `json:"image_link"`
	SubjectID string `json:"subject_id" gorm:"type:varchar(64);not null;index" validate:"notblank"`
}

type Topic struct {
	ID        string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name" gorm:"not null;index" validate:"notblank"`
	Tagline   string `json:"tagline"`
	ImageLink string `json:"image_link"`
	Details   string `json:"details"`
	ChapterID string `json:"chapter_id" gorm:"type:varchar(64);not null;index" validate:"notblank"`
}

func (EducationLevel) TableName() string { return "education_levels" }
func (Class) TableName() string          { return "classes" }
func (Subject) TableName() string        { return "subjects" }
func (Chapter) TableName() string        { return "chapters" }
func (Topic) TableName() string          { return "topics" }

func (e EducationLevel) GetID() string { return e.ID }
func (c Class) GetID() string          { return c.ID }
func (s Subject) GetID() string        { return s.ID }
func (c Chapter) GetID() string        { return c.ID }
func (t Topic) GetID() string          { return t.ID }

func (e EducationLevel) GetName() string { return e.Name }
func (c Class) GetName() string          { return c.Name }
func (s Subject) GetName() string        { return s.Name }
func (c Chapter) GetName() string        { return c.Name }
func (t Topic) GetName() string          { return t.Name }

func (c Class) ParentID() string   { return c.LevelID }
func (s Subject) ParentID() string { return s.ClassID }
func (c Chapter) ParentID() string { return c.SubjectID }
func (t Topic) ParentID() string   { return t.ChapterID }
