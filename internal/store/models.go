package store

import (
	"time"

	"github.com/example/folio/internal/fields"
)

type PersonalInfo struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Location    string    `db:"location" json:"location"`
	GithubURL   string    `db:"github_url" json:"github_url"`
	LinkedinURL string    `db:"linkedin_url" json:"linkedin_url"`
	TwitterURL  string    `db:"twitter_url" json:"twitter_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type PersonalInfoUpdate struct {
	Name        *string
	Title       *string
	Description *string
	Email       *string
	Phone       *string
	Location    *string
	GithubURL   *string
	LinkedinURL *string
	TwitterURL  *string
}

type Skill struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Category   string    `db:"category" json:"category"`
	Level      int       `db:"level" json:"level"`
	Color      string    `db:"color" json:"color"`
	OrderIndex int       `db:"order_index" json:"order_index"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type SkillCreate struct {
	Name       string
	Category   string
	Level      int
	Color      string
	OrderIndex int
}

type SkillUpdate struct {
	Name       *string
	Category   *string
	Level      *int
	Color      *string
	OrderIndex *int
}

const DefaultProjectStatus = "in_progress"

type Project struct {
	ID           int64       `db:"id" json:"id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	Category     string      `db:"category" json:"category"`
	ImageURL     string      `db:"image_url" json:"image_url"`
	Technologies fields.List `db:"technologies" json:"technologies"`
	Features     fields.List `db:"features" json:"features"`
	Downloads    string      `db:"downloads" json:"downloads"`
	Rating       *float64    `db:"rating" json:"rating"`
	Users        string      `db:"users" json:"users"`
	Status       string      `db:"status" json:"status"`
	GithubURL    string      `db:"github_url" json:"github_url"`
	DemoURL      string      `db:"demo_url" json:"demo_url"`
	StoreURL     string      `db:"store_url" json:"store_url"`
	OrderIndex   int         `db:"order_index" json:"order_index"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

type ProjectCreate struct {
	Title        string
	Description  string
	Category     string
	ImageURL     string
	Technologies fields.List
	Features     fields.List
	Downloads    string
	Rating       *float64
	Users        string
	Status       string
	GithubURL    string
	DemoURL      string
	StoreURL     string
	OrderIndex   int
}

type ProjectUpdate struct {
	Title        *string
	Description  *string
	Category     *string
	ImageURL     *string
	Technologies *fields.List
	Features     *fields.List
	Downloads    *string
	Rating       *float64
	Users        *string
	Status       *string
	GithubURL    *string
	DemoURL      *string
	StoreURL     *string
	OrderIndex   *int
}

type Experience struct {
	ID             int64       `db:"id" json:"id"`
	Title          string      `db:"title" json:"title"`
	Company        string      `db:"company" json:"company"`
	Location       string      `db:"location" json:"location"`
	Period         string      `db:"period" json:"period"`
	EmploymentType string      `db:"employment_type" json:"employment_type"`
	Description    string      `db:"description" json:"description"`
	Achievements   fields.List `db:"achievements" json:"achievements"`
	Technologies   fields.List `db:"technologies" json:"technologies"`
	Color          string      `db:"color" json:"color"`
	OrderIndex     int         `db:"order_index" json:"order_index"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

type ExperienceCreate struct {
	Title          string
	Company        string
	Location       string
	Period         string
	EmploymentType string
	Description    string
	Achievements   fields.List
	Technologies   fields.List
	Color          string
	OrderIndex     int
}

type ExperienceUpdate struct {
	Title          *string
	Company        *string
	Location       *string
	Period         *string
	EmploymentType *string
	Description    *string
	Achievements   *fields.List
	Technologies   *fields.List
	Color          *string
	OrderIndex     *int
}

type Education struct {
	ID             int64     `db:"id" json:"id"`
	Degree         string    `db:"degree" json:"degree"`
	School         string    `db:"school" json:"school"`
	Location       string    `db:"location" json:"location"`
	Period         string    `db:"period" json:"period"`
	Specialization string    `db:"specialization" json:"specialization"`
	OrderIndex     int       `db:"order_index" json:"order_index"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type EducationCreate struct {
	Degree         string
	School         string
	Location       string
	Period         string
	Specialization string
	OrderIndex     int
}

type EducationUpdate struct {
	Degree         *string
	School         *string
	Location       *string
	Period         *string
	Specialization *string
	OrderIndex     *int
}

type BlogPost struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Slug        string    `db:"slug" json:"slug"`
	Content     string    `db:"content" json:"content"`
	AuthorID    *int64    `db:"author_id" json:"author_id"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type BlogPostCreate struct {
	Title       string
	Content     string
	AuthorID    *int64
	IsPublished bool
}

type BlogPostUpdate struct {
	Title       *string
	Content     *string
	IsPublished *bool
}

type AdminUser struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
