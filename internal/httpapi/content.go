package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/folio/internal/events"
)

const (
	resPersonalInfo = "personal_info"
	resSkills       = "skills"
	resProjects     = "projects"
	resExperiences  = "experiences"
	resEducation    = "education"
	resBlogPosts    = "blog_posts"
	resAdmins       = "admin_users"
)

func (s *Server) GetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.GetPersonalInfo(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "personal info")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var payload PersonalInfoRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	info, err := s.store.UpsertPersonalInfo(r.Context(), payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "personal info")
		return
	}
	s.publish(r.Context(), events.Updated, resPersonalInfo, info.ID)
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.store.ListSkills(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "skills")
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var payload SkillCreateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	skill, err := s.store.CreateSkill(r.Context(), payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "skill")
		return
	}
	s.publish(r.Context(), events.Created, resSkills, skill.ID)
	writeJSON(w, http.StatusCreated, skill)
}

func (s *Server) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload SkillUpdateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	skill, err := s.store.UpdateSkill(r.Context(), id, payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "skill")
		return
	}
	s.publish(r.Context(), events.Updated, resSkills, id)
	writeJSON(w, http.StatusOK, skill)
}

func (s *Server) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	s.deleteResource(w, r, resSkills, "skill", s.store.DeleteSkill)
}

func (s *Server) ReorderSkills(w http.ResponseWriter, r *http.Request) {
	s.reorderResource(w, r, resSkills, "skill_ids", s.store.ReorderSkills)
}

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload ProjectCreateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	project, err := s.store.CreateProject(r.Context(), payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "project")
		return
	}
	s.publish(r.Context(), events.Created, resProjects, project.ID)
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload ProjectUpdateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	project, err := s.store.UpdateProject(r.Context(), id, payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "project")
		return
	}
	s.publish(r.Context(), events.Updated, resProjects, id)
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	s.deleteResource(w, r, resProjects, "project", s.store.DeleteProject)
}

func (s *Server) ReorderProjects(w http.ResponseWriter, r *http.Request) {
	s.reorderResource(w, r, resProjects, "project_ids", s.store.ReorderProjects)
}

func (s *Server) ListExperiences(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListExperiences(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "experiences")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var payload ExperienceCreateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	exp, err := s.store.CreateExperience(r.Context(), payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "experience")
		return
	}
	s.publish(r.Context(), events.Created, resExperiences, exp.ID)
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload ExperienceUpdateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	exp, err := s.store.UpdateExperience(r.Context(), id, payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "experience")
		return
	}
	s.publish(r.Context(), events.Updated, resExperiences, id)
	writeJSON(w, http.StatusOK, exp)
}

func (s *Server) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	s.deleteResource(w, r, resExperiences, "experience", s.store.DeleteExperience)
}

func (s *Server) ReorderExperiences(w http.ResponseWriter, r *http.Request) {
	s.reorderResource(w, r, resExperiences, "experience_ids", s.store.ReorderExperiences)
}

func (s *Server) ListEducation(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListEducation(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "education")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var payload EducationCreateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	edu, err := s.store.CreateEducation(r.Context(), payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "education")
		return
	}
	s.publish(r.Context(), events.Created, resEducation, edu.ID)
	writeJSON(w, http.StatusCreated, edu)
}

func (s *Server) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload EducationUpdateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	edu, err := s.store.UpdateEducation(r.Context(), id, payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "education")
		return
	}
	s.publish(r.Context(), events.Updated, resEducation, id)
	writeJSON(w, http.StatusOK, edu)
}

func (s *Server) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	s.deleteResource(w, r, resEducation, "education", s.store.DeleteEducation)
}

func (s *Server) ReorderEducation(w http.ResponseWriter, r *http.Request) {
	s.reorderResource(w, r, resEducation, "education_ids", s.store.ReorderEducation)
}

func (s *Server) deleteResource(w http.ResponseWriter, r *http.Request, resource, what string, del func(context.Context, int64) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := del(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, what)
		return
	}
	s.publish(r.Context(), events.Deleted, resource, id)
	writeJSON(w, http.StatusOK, MessageResponse{Message: what + " deleted"})
}

// reorderResource accepts {"<key>": [ids...]} or {"ids": [ids...]}.
func (s *Server) reorderResource(w http.ResponseWriter, r *http.Request, resource, key string, reorder func(context.Context, []int64) error) {
	var payload map[string]json.RawMessage
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	raw, ok := payload[key]
	if !ok {
		raw, ok = payload["ids"]
	}
	var ids []int64
	if ok {
		if err := json.Unmarshal(raw, &ids); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "ids must be an array of integers", map[string]any{key: err.Error()})
			return
		}
	}
	if err := reorder(r.Context(), ids); err != nil {
		s.writeStoreError(w, r, err, resource)
		return
	}
	s.publish(r.Context(), events.Reordered, resource, 0)
	writeJSON(w, http.StatusOK, MessageResponse{Message: resource + " reordered"})
}
