package domain

// User.Password is only ever sent on create. Stored rows hold a bcrypt
// hash; Redacted drops it before a user leaves the server.
type User struct {
	ID       string `json:"id" gorm:"type:varchar(64);primaryKey"`
	Username string `json:"username" gorm:"not null;uniqueIndex" validate:"notblank"`
	Email    string `json:"email" gorm:"not null;uniqueIndex" validate:"notblank,email"`
	Password string `json:"password,omitempty" gorm:"not null" validate:"min=8"`
}

// UserProgress references either a chapter or a topic.
type UserProgress struct {
	ID        string `json:"id,omitempty" gorm:"type:varchar(64);primaryKey"`
	UserID    string `json:"user_id" gorm:"type:varchar(64);not null;index" validate:"notblank"`
	ChapterID string `json:"chapter_id,omitempty" gorm:"type:varchar(64);index"`
	TopicID   string `json:"topic_id,omitempty" gorm:"type:varchar(64);index"`
	Progress  string `json:"progress"`
}

// Profile is the display card of an admin account.
type Profile struct {
	ID     string `json:"id" gorm:"type:varchar(64);primaryKey"`
	UserID string `json:"user_id,omitempty" gorm:"type:varchar(64);index"`
	Name   string `json:"name" gorm:"not null" validate:"notblank"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

func (User) TableName() string         { return "users" }
func (UserProgress) TableName() string { return "user_progress" }
func (Profile) TableName() string      { return "profiles" }

func (u User) GetID() string         { return u.ID }
func (p UserProgress) GetID() string { return p.ID }
func (p Profile) GetID() string      { return p.ID }

func (u User) GetName() string    { return u.Username }
func (p Profile) GetName() string { return p.Name }

func (u User) Redacted() User {
	u.Password = ""
	return u
}
