package httpapi

import (
	"time"

	"github.com/example/folio/internal/fields"
	"github.com/example/folio/internal/store"
)

type Health struct {
	Status string `json:"status"`
}

const Ok = "ok"

type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PersonalInfoRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Email       *string `json:"email" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=20"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	GithubURL   *string `json:"github_url" validate:"omitempty,max=200"`
	LinkedinURL *string `json:"linkedin_url" validate:"omitempty,max=200"`
	TwitterURL  *string `json:"twitter_url" validate:"omitempty,max=200"`
}

func (p PersonalInfoRequest) toStore() store.PersonalInfoUpdate {
	return store.PersonalInfoUpdate{
		Name:        p.Name,
		Title:       p.Title,
		Description: p.Description,
		Email:       p.Email,
		Phone:       p.Phone,
		Location:    p.Location,
		GithubURL:   p.GithubURL,
		LinkedinURL: p.LinkedinURL,
		TwitterURL:  p.TwitterURL,
	}
}

type SkillCreateRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Category   string `json:"category" validate:"required,max=100"`
	Level      int    `json:"level" validate:"min=0,max=100"`
	Color      string `json:"color" validate:"color"`
	OrderIndex int    `json:"order_index"`
}

func (p SkillCreateRequest) toStore() store.SkillCreate {
	return store.SkillCreate{Name: p.Name, Category: p.Category, Level: p.Level, Color: p.Color, OrderIndex: p.OrderIndex}
}

type SkillUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category   *string `json:"category" validate:"omitempty,min=1,max=100"`
	Level      *int    `json:"level" validate:"omitempty,min=0,max=100"`
	Color      *string `json:"color" validate:"omitempty,color"`
	OrderIndex *int    `json:"order_index"`
}

func (p SkillUpdateRequest) toStore() store.SkillUpdate {
	return store.SkillUpdate{Name: p.Name, Category: p.Category, Level: p.Level, Color: p.Color, OrderIndex: p.OrderIndex}
}

type ProjectCreateRequest struct {
	Title        string      `json:"title" validate:"required,max=200"`
	Description  string      `json:"description" validate:"required"`
	Category     string      `json:"category" validate:"required,max=100"`
	ImageURL     string      `json:"image_url" validate:"max=500"`
	Technologies fields.List `json:"technologies"`
	Features     fields.List `json:"features"`
	Downloads    string      `json:"downloads" validate:"max=20"`
	Rating       *float64    `json:"rating" validate:"omitempty,min=0,max=5"`
	Users        string      `json:"users" validate:"max=20"`
	Status       string      `json:"status" validate:"max=50"`
	GithubURL    string      `json:"github_url" validate:"max=500"`
	DemoURL      string      `json:"demo_url" validate:"max=500"`
	StoreURL     string      `json:"store_url" validate:"max=500"`
	OrderIndex   int         `json:"order_index"`
}

func (p ProjectCreateRequest) toStore() store.ProjectCreate {
	return store.ProjectCreate{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		Technologies: p.Technologies,
		Features:     p.Features,
		Downloads:    p.Downloads,
		Rating:       p.Rating,
		Users:        p.Users,
		Status:       p.Status,
		GithubURL:    p.GithubURL,
		DemoURL:      p.DemoURL,
		StoreURL:     p.StoreURL,
		OrderIndex:   p.OrderIndex,
	}
}

type ProjectUpdateRequest struct {
	Title        *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string      `json:"description"`
	Category     *string      `json:"category" validate:"omitempty,max=100"`
	ImageURL     *string      `json:"image_url" validate:"omitempty,max=500"`
	Technologies *fields.List `json:"technologies"`
	Features     *fields.List `json:"features"`
	Downloads    *string      `json:"downloads" validate:"omitempty,max=20"`
	Rating       *float64     `json:"rating" validate:"omitempty,min=0,max=5"`
	Users        *string      `json:"users" validate:"omitempty,max=20"`
	Status       *string      `json:"status" validate:"omitempty,max=50"`
	GithubURL    *string      `json:"github_url" validate:"omitempty,max=500"`
	DemoURL      *string      `json:"demo_url" validate:"omitempty,max=500"`
	StoreURL     *string      `json:"store_url" validate:"omitempty,max=500"`
	OrderIndex   *int         `json:"order_index"`
}

func (p ProjectUpdateRequest) toStore() store.ProjectUpdate {
	return store.ProjectUpdate{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		Technologies: p.Technologies,
		Features:     p.Features,
		Downloads:    p.Downloads,
		Rating:       p.Rating,
		Users:        p.Users,
		Status:       p.Status,
		GithubURL:    p.GithubURL,
		DemoURL:      p.DemoURL,
		StoreURL:     p.StoreURL,
		OrderIndex:   p.OrderIndex,
	}
}

type ExperienceCreateRequest struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Company        string      `json:"company" validate:"required,max=200"`
	Location       string      `json:"location" validate:"max=100"`
	Period         string      `json:"period" validate:"required,max=100"`
	EmploymentType string      `json:"employment_type" validate:"max=50"`
	Description    string      `json:"description" validate:"required"`
	Achievements   fields.List `json:"achievements"`
	Technologies   fields.List `json:"technologies"`
	Color          string      `json:"color" validate:"color"`
	OrderIndex     int         `json:"order_index"`
}

func (p ExperienceCreateRequest) toStore() store.ExperienceCreate {
	return store.ExperienceCreate{
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		Period:         p.Period,
		EmploymentType: p.EmploymentType,
		Description:    p.Description,
		Achievements:   p.Achievements,
		Technologies:   p.Technologies,
		Color:          p.Color,
		OrderIndex:     p.OrderIndex,
	}
}

type ExperienceUpdateRequest struct {
	Title          *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Company        *string      `json:"company" validate:"omitempty,min=1,max=200"`
	Location       *string      `json:"location" validate:"omitempty,max=100"`
	Period         *string      `json:"period" validate:"omitempty,max=100"`
	EmploymentType *string      `json:"employment_type" validate:"omitempty,max=50"`
	Description    *string      `json:"description"`
	Achievements   *fields.List `json:"achievements"`
	Technologies   *fields.List `json:"technologies"`
	Color          *string      `json:"color" validate:"omitempty,color"`
	OrderIndex     *int         `json:"order_index"`
}

func (p ExperienceUpdateRequest) toStore() store.ExperienceUpdate {
	return store.ExperienceUpdate{
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		Period:         p.Period,
		EmploymentType: p.EmploymentType,
		Description:    p.Description,
		Achievements:   p.Achievements,
		Technologies:   p.Technologies,
		Color:          p.Color,
		OrderIndex:     p.OrderIndex,
	}
}

type EducationCreateRequest struct {
	Degree         string `json:"degree" validate:"required,max=200"`
	School         string `json:"school" validate:"required,max=200"`
	Location       string `json:"location" validate:"max=100"`
	Period         string `json:"period" validate:"required,max=100"`
	Specialization string `json:"specialization"`
	OrderIndex     int    `json:"order_index"`
}

func (p EducationCreateRequest) toStore() store.EducationCreate {
	return store.EducationCreate{
		Degree:         p.Degree,
		School:         p.School,
		Location:       p.Location,
		Period:         p.Period,
		Specialization: p.Specialization,
		OrderIndex:     p.OrderIndex,
	}
}

type EducationUpdateRequest struct {
	Degree         *string `json:"degree" validate:"omitempty,min=1,max=200"`
	School         *string `json:"school" validate:"omitempty,min=1,max=200"`
	Location       *string `json:"location" validate:"omitempty,max=100"`
	Period         *string `json:"period" validate:"omitempty,max=100"`
	Specialization *string `json:"specialization"`
	OrderIndex     *int    `json:"order_index"`
}

func (p EducationUpdateRequest) toStore() store.EducationUpdate {
	return store.EducationUpdate{
		Degree:         p.Degree,
		School:         p.School,
		Location:       p.Location,
		Period:         p.Period,
		Specialization: p.Specialization,
		OrderIndex:     p.OrderIndex,
	}
}

type BlogPostCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsPublished bool   `json:"is_published"`
}

type BlogPostUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

func (p BlogPostUpdateRequest) toStore() store.BlogPostUpdate {
	return store.BlogPostUpdate{Title: p.Title, Content: p.Content, IsPublished: p.IsPublished}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *store.AdminUser `json:"user"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type MeResponse struct {
	ID          string           `json:"id"`
	Source      string           `json:"source"`
	Permissions []string         `json:"permissions"`
	User        *store.AdminUser `json:"user,omitempty"`
}
