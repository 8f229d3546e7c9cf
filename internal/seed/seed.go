// Package seed loads the sample portfolio used for demos and local
// development. Loading is idempotent: rows that already exist are skipped.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/example/folio/internal/fields"
	"github.com/example/folio/internal/store"
)

//go:embed data.yaml
var defaultData []byte

type Document struct {
	PersonalInfo *personalInfo `yaml:"personal_info"`
	Skills       []skill       `yaml:"skills"`
	Projects     []project     `yaml:"projects"`
	Experiences  []experience  `yaml:"experiences"`
	Education    []education   `yaml:"education"`
}

type personalInfo struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Location    string `yaml:"location"`
	GithubURL   string `yaml:"github_url"`
	LinkedinURL string `yaml:"linkedin_url"`
	TwitterURL  string `yaml:"twitter_url"`
}

type skill struct {
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Level      int    `yaml:"level"`
	Color      string `yaml:"color"`
	OrderIndex int    `yaml:"order_index"`
}

type project struct {
	Title        string   `yaml:"title"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	ImageURL     string   `yaml:"image_url"`
	Technologies []string `yaml:"technologies"`
	Features     []string `yaml:"features"`
	Downloads    string   `yaml:"downloads"`
	Rating       *float64 `yaml:"rating"`
	Users        string   `yaml:"users"`
	Status       string   `yaml:"status"`
	GithubURL    string   `yaml:"github_url"`
	DemoURL      string   `yaml:"demo_url"`
	StoreURL     string   `yaml:"store_url"`
	OrderIndex   int      `yaml:"order_index"`
}

type experience struct {
	Title          string   `yaml:"title"`
	Company        string   `yaml:"company"`
	Location       string   `yaml:"location"`
	Period         string   `yaml:"period"`
	EmploymentType string   `yaml:"employment_type"`
	Description    string   `yaml:"description"`
	Achievements   []string `yaml:"achievements"`
	Technologies   []string `yaml:"technologies"`
	Color          string   `yaml:"color"`
	OrderIndex     int      `yaml:"order_index"`
}

type education struct {
	Degree         string `yaml:"degree"`
	School         string `yaml:"school"`
	Location       string `yaml:"location"`
	Period         string `yaml:"period"`
	Specialization string `yaml:"specialization"`
	OrderIndex     int    `yaml:"order_index"`
}

// Result counts the rows a load inserted.
type Result struct {
	PersonalInfo int
	Skills       int
	Projects     int
	Experiences  int
	Education    int
}

func (r Result) Total() int {
	return r.PersonalInfo + r.Skills + r.Projects + r.Experiences + r.Education
}

// Parse decodes a seed document. An empty input yields the built-in sample.
func Parse(data []byte) (*Document, error) {
	if len(data) == 0 {
		data = defaultData
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &doc, nil
}

// Default returns the built-in sample portfolio.
func Default() *Document {
	doc, err := Parse(defaultData)
	if err != nil {
		panic(err)
	}
	return doc
}

// Load inserts every row of doc that is not already present. Skills match on
// name and category, projects on title, experiences on title and company,
// education on degree and school.
func Load(ctx context.Context, st *store.Store, doc *Document) (Result, error) {
	var res Result

	if doc.PersonalInfo != nil {
		_, err := st.GetPersonalInfo(ctx)
		switch {
		case errors.Is(err, store.ErrNotFound):
			p := doc.PersonalInfo
			if _, err := st.UpsertPersonalInfo(ctx, store.PersonalInfoUpdate{
				Name:        &p.Name,
				Title:       &p.Title,
				Description: &p.Description,
				Email:       &p.Email,
				Phone:       &p.Phone,
				Location:    &p.Location,
				GithubURL:   &p.GithubURL,
				LinkedinURL: &p.LinkedinURL,
				TwitterURL:  &p.TwitterURL,
			}); err != nil {
				return res, fmt.Errorf("seed personal info: %w", err)
			}
			res.PersonalInfo++
		case err != nil:
			return res, fmt.Errorf("seed personal info: %w", err)
		}
	}

	skills, err := st.ListSkills(ctx)
	if err != nil {
		return res, fmt.Errorf("list skills: %w", err)
	}
	haveSkill := make(map[[2]string]bool, len(skills))
	for _, s := range skills {
		haveSkill[[2]string{s.Name, s.Category}] = true
	}
	for _, s := range doc.Skills {
		if haveSkill[[2]string{s.Name, s.Category}] {
			continue
		}
		if _, err := st.CreateSkill(ctx, store.SkillCreate{
			Name: s.Name, Category: s.Category, Level: s.Level, Color: s.Color, OrderIndex: s.OrderIndex,
		}); err != nil {
			return res, fmt.Errorf("seed skill %q: %w", s.Name, err)
		}
		haveSkill[[2]string{s.Name, s.Category}] = true
		res.Skills++
	}

	projects, err := st.ListProjects(ctx)
	if err != nil {
		return res, fmt.Errorf("list projects: %w", err)
	}
	haveProject := make(map[string]bool, len(projects))
	for _, p := range projects {
		haveProject[p.Title] = true
	}
	for _, p := range doc.Projects {
		if haveProject[p.Title] {
			continue
		}
		if _, err := st.CreateProject(ctx, store.ProjectCreate{
			Title:        p.Title,
			Description:  p.Description,
			Category:     p.Category,
			ImageURL:     p.ImageURL,
			Technologies: fields.Normalize(p.Technologies),
			Features:     fields.Normalize(p.Features),
			Downloads:    p.Downloads,
			Rating:       p.Rating,
			Users:        p.Users,
			Status:       p.Status,
			GithubURL:    p.GithubURL,
			DemoURL:      p.DemoURL,
			StoreURL:     p.StoreURL,
			OrderIndex:   p.OrderIndex,
		}); err != nil {
			return res, fmt.Errorf("seed project %q: %w", p.Title, err)
		}
		haveProject[p.Title] = true
		res.Projects++
	}

	experiences, err := st.ListExperiences(ctx)
	if err != nil {
		return res, fmt.Errorf("list experiences: %w", err)
	}
	haveExperience := make(map[[2]string]bool, len(experiences))
	for _, e := range experiences {
		haveExperience[[2]string{e.Title, e.Company}] = true
	}
	for _, e := range doc.Experiences {
		if haveExperience[[2]string{e.Title, e.Company}] {
			continue
		}
		if _, err := st.CreateExperience(ctx, store.ExperienceCreate{
			Title:          e.Title,
			Company:        e.Company,
			Location:       e.Location,
			Period:         e.Period,
			EmploymentType: e.EmploymentType,
			Description:    e.Description,
			Achievements:   fields.Normalize(e.Achievements),
			Technologies:   fields.Normalize(e.Technologies),
			Color:          e.Color,
			OrderIndex:     e.OrderIndex,
		}); err != nil {
			return res, fmt.Errorf("seed experience %q: %w", e.Title, err)
		}
		haveExperience[[2]string{e.Title, e.Company}] = true
		res.Experiences++
	}

	entries, err := st.ListEducation(ctx)
	if err != nil {
		return res, fmt.Errorf("list education: %w", err)
	}
	haveEducation := make(map[[2]string]bool, len(entries))
	for _, e := range entries {
		haveEducation[[2]string{e.Degree, e.School}] = true
	}
	for _, e := range doc.Education {
		if haveEducation[[2]string{e.Degree, e.School}] {
			continue
		}
		if _, err := st.CreateEducation(ctx, store.EducationCreate{
			Degree:         e.Degree,
			School:         e.School,
			Location:       e.Location,
			Period:         e.Period,
			Specialization: e.Specialization,
			OrderIndex:     e.OrderIndex,
		}); err != nil {
			return res, fmt.Errorf("seed education %q: %w", e.Degree, err)
		}
		haveEducation[[2]string{e.Degree, e.School}] = true
		res.Education++
	}

	return res, nil
}
