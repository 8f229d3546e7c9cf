package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/folio/internal/config"
	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/mailer"
	"github.com/example/folio/internal/media"
	"github.com/example/folio/internal/store"
	"github.com/example/folio/migrations"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct horse"
)

type testEnv struct {
	handler http.Handler
	store   *store.Store
	bus     *events.Bus
	mail    *recordingMailer
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Contact
}

func (m *recordingMailer) Send(_ context.Context, c mailer.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	return nil
}

func newTestEnv(t *testing.T, withMailer bool) *testEnv {
	t.Helper()
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "folio.db") + "?_pragma=foreign_keys(1)"
	if err := migrations.Up(store.DriverSQLite, dsn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	st, err := store.Open(store.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := st.CreateAdmin(context.Background(), testAdminUser, "admin@example.com", string(hash)); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	cfg := &config.Config{
		AuthMode:       config.AuthSession,
		SessionTTL:     time.Hour,
		MaxUploadBytes: 1 << 20,
		MaxPixels:      1_000_000,
		SwaggerUIPath:  "/swagger",
		OpenAPIPath:    "/openapi.yaml",
	}
	bus := events.NewBus()
	t.Cleanup(bus.Close)

	env := &testEnv{store: st, bus: bus}
	deps := Deps{
		Store: st,
		Media: media.NewManager(filepath.Join(dir, "uploads")),
		Bus:   bus,
	}
	if withMailer {
		env.mail = &recordingMailer{}
		deps.Mailer = env.mail
	}
	srv := NewServer(cfg, deps)
	srv.bcryptCost = bcrypt.MinCost
	env.handler = srv.Routes()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var h Health
	decodeBody(t, rec, &h)
	if h.Status != Ok {
		t.Fatalf("unexpected status %q", h.Status)
	}

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOpenAPIServed(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/openapi.yaml", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "openapi: 3.0.3") {
		t.Fatalf("unexpected openapi body")
	}
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var e Error
	decodeBody(t, rec, &e)
	if e.Code != "not_found" {
		t.Fatalf("unexpected error code %q", e.Code)
	}
}

func TestLoginMeLogout(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": testAdminUser, "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", rec.Code)
	}

	token := env.login(t)

	rec = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me struct {
		Source      string          `json:"source"`
		Permissions []string        `json:"permissions"`
		User        store.AdminUser `json:"user"`
	}
	decodeBody(t, rec, &me)
	if me.Source != SourceSession || me.User.Username != testAdminUser {
		t.Fatalf("unexpected me response: %+v", me)
	}
	if me.User.LastLogin == nil {
		t.Fatalf("expected last_login to be recorded")
	}
	if len(me.Permissions) != len(AllPermissions) {
		t.Fatalf("expected all permissions, got %v", me.Permissions)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", rec.Code)
	}
}

func TestRegisterAdmin(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	body := map[string]string{"username": "editor", "email": "editor@example.com", "password": "longenough"}
	rec := env.do(t, http.MethodPost, "/api/auth/register", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password hash: %s", rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/auth/register", token, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/auth/register", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
}

func TestWritesRequireAuth(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/api/skills", "", map[string]any{"name": "Go", "category": "Backend"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/api/skills/1", "bogus", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPersonalInfo(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	rec := env.do(t, http.MethodGet, "/api/personal-info", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty: expected 404, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/api/personal-info", token, map[string]string{"name": "Ada", "title": "Developer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPost, "/api/personal-info", token, map[string]string{"location": "Lyon"})
	if rec.Code != http.StatusOK {
		t.Fatalf("post: expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/personal-info", "", nil)
	var info store.PersonalInfo
	decodeBody(t, rec, &info)
	if info.Name != "Ada" || info.Location != "Lyon" {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestSkillsCRUD(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := env.bus.Subscribe(ctx)

	rec := env.do(t, http.MethodPost, "/api/skills", token, map[string]any{"name": "Go", "category": "Backend", "level": 90, "color": "#00ADD8"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var skill store.Skill
	decodeBody(t, rec, &skill)
	if skill.ID == 0 || skill.Name != "Go" || skill.Level != 90 {
		t.Fatalf("unexpected skill %+v", skill)
	}

	select {
	case ev := <-sub:
		if ev.Type != events.Created || ev.Resource != "skills" || ev.ResourceID != skill.ID {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a created event")
	}

	path := "/api/skills/" + strconv.FormatInt(skill.ID, 10)
	rec = env.do(t, http.MethodPut, path, token, map[string]any{"level": 95})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &skill)
	if skill.Level != 95 || skill.Name != "Go" {
		t.Fatalf("partial update lost fields: %+v", skill)
	}

	rec = env.do(t, http.MethodGet, "/api/skills", "", nil)
	var skills []store.Skill
	decodeBody(t, rec, &skills)
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(skills))
	}

	rec = env.do(t, http.MethodDelete, path, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	var msg MessageResponse
	decodeBody(t, rec, &msg)
	if msg.Message == "" {
		t.Fatalf("expected delete message")
	}

	rec = env.do(t, http.MethodDelete, path, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPut, "/api/skills/abc", token, map[string]any{"level": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", rec.Code)
	}
}

func TestSkillValidation(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/skills", token, map[string]any{"category": "Backend", "level": 150, "color": "blue"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var e Error
	decodeBody(t, rec, &e)
	if e.Code != "validation_failed" {
		t.Fatalf("unexpected code %q", e.Code)
	}
	for _, field := range []string{"name", "level", "color"} {
		if _, ok := e.Details[field]; !ok {
			t.Fatalf("expected details for %s, got %v", field, e.Details)
		}
	}

	rec = env.do(t, http.MethodPost, "/api/skills", token, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed: expected 400, got %d", rec.Code)
	}
}

func TestProjectListFieldsAcceptEveryEncoding(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	inputs := []any{
		[]string{"Flutter", "Firebase"},
		`["Flutter","Firebase"]`,
		"Flutter, Firebase",
	}
	for i, tech := range inputs {
		rec := env.do(t, http.MethodPost, "/api/projects", token, map[string]any{
			"title":        "App " + strconv.Itoa(i),
			"description":  "A mobile app",
			"category":     "mobile",
			"technologies": tech,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := env.do(t, http.MethodGet, "/api/projects", "", nil)
	var projects []struct {
		Technologies []string `json:"technologies"`
		Features     []string `json:"features"`
		Status       string   `json:"status"`
	}
	decodeBody(t, rec, &projects)
	if len(projects) != len(inputs) {
		t.Fatalf("expected %d projects, got %d", len(inputs), len(projects))
	}
	for i, p := range projects {
		if len(p.Technologies) != 2 || p.Technologies[0] != "Flutter" || p.Technologies[1] != "Firebase" {
			t.Fatalf("project %d technologies = %v", i, p.Technologies)
		}
		if p.Features == nil || len(p.Features) != 0 {
			t.Fatalf("project %d features = %v, want empty list", i, p.Features)
		}
		if p.Status != store.DefaultProjectStatus {
			t.Fatalf("project %d status = %q", i, p.Status)
		}
	}
}

func TestReorderSkills(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	var ids []int64
	for _, name := range []string{"Go", "Dart", "SQL"} {
		rec := env.do(t, http.MethodPost, "/api/skills", token, map[string]any{"name": name, "category": "Lang"})
		var sk store.Skill
		decodeBody(t, rec, &sk)
		ids = append(ids, sk.ID)
	}

	rec := env.do(t, http.MethodPost, "/api/skills/reorder", token, map[string]any{"skill_ids": []int64{ids[2], ids[0], ids[1]}})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/skills", "", nil)
	var skills []store.Skill
	decodeBody(t, rec, &skills)
	got := []string{skills[0].Name, skills[1].Name, skills[2].Name}
	if strings.Join(got, ",") != "SQL,Go,Dart" {
		t.Fatalf("unexpected order %v", got)
	}

	rec = env.do(t, http.MethodPost, "/api/skills/reorder", token, map[string]any{"skill_ids": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad ids: expected 400, got %d", rec.Code)
	}
}

func TestBlogVisibility(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/admin/blog/posts", token, map[string]any{"title": "Hello World", "content": "hi", "is_published": true})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var published store.BlogPost
	decodeBody(t, rec, &published)
	if published.Slug != "hello-world" {
		t.Fatalf("unexpected slug %q", published.Slug)
	}
	if published.AuthorID == nil {
		t.Fatalf("expected author to be set from session")
	}

	rec = env.do(t, http.MethodPost, "/api/admin/blog/posts", token, map[string]any{"title": "Draft", "content": "wip"})
	var draft store.BlogPost
	decodeBody(t, rec, &draft)

	rec = env.do(t, http.MethodGet, "/api/blog/posts", "", nil)
	var posts []store.BlogPost
	decodeBody(t, rec, &posts)
	if len(posts) != 1 || posts[0].ID != published.ID {
		t.Fatalf("public list should only show published posts: %+v", posts)
	}

	if rec := env.do(t, http.MethodGet, "/api/blog/posts/hello-world", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("get published: expected 200, got %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/blog/posts/"+draft.Slug, "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("get draft: expected 404, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/admin/blog/posts?published=false", token, nil)
	decodeBody(t, rec, &posts)
	if len(posts) != 1 || posts[0].ID != draft.ID {
		t.Fatalf("draft filter: %+v", posts)
	}
	rec = env.do(t, http.MethodGet, "/api/admin/blog/posts", token, nil)
	decodeBody(t, rec, &posts)
	if len(posts) != 2 {
		t.Fatalf("admin list: expected 2 posts, got %d", len(posts))
	}
	rec = env.do(t, http.MethodGet, "/api/admin/blog/posts?published=maybe", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad filter: expected 400, got %d", rec.Code)
	}
}

func TestContactNotConfigured(t *testing.T) {
	env := newTestEnv(t, false)
	rec := env.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "subject": "Hi", "message": "Hello",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestContactSends(t *testing.T) {
	env := newTestEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/contact", "", map[string]string{"name": "Bob", "email": "not-an-email", "subject": "Hi", "message": "Hello"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid email: expected 400, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "subject": "Hi", "message": "Hello",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(env.mail.sent) != 1 || env.mail.sent[0].Email != "bob@example.com" {
		t.Fatalf("unexpected sent messages %+v", env.mail.sent)
	}
}

func TestUploadAndServe(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fw.Write(pngBuf.Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var res media.SaveResult
	decodeBody(t, rec, &res)
	if !strings.HasPrefix(res.URL, media.URLPrefix) || res.Width != 4 || res.Height != 4 {
		t.Fatalf("unexpected upload result %+v", res)
	}

	rec = env.do(t, http.MethodGet, res.URL, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("serve: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), pngBuf.Bytes()) {
		t.Fatalf("served bytes differ from upload")
	}

	rec = env.do(t, http.MethodGet, "/uploads/../../etc/passwd", "", nil)
	if rec.Code == http.StatusOK {
		t.Fatalf("path traversal should not succeed")
	}
}

func TestStreamEvents(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.login(t)
	ts := httptest.NewServer(env.handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil || !strings.HasPrefix(line, ": connected") {
		t.Fatalf("expected connected comment, got %q (%v)", line, err)
	}

	if rec := env.do(t, http.MethodPost, "/api/education", token, map[string]any{"degree": "MSc", "school": "EPFL", "period": "2018-2020"}); rec.Code != http.StatusCreated {
		t.Fatalf("create education: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var sawEvent bool
	for !sawEvent {
		line, err = reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			var ev events.Event
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
				t.Fatalf("decode event: %v", err)
			}
			if ev.Type != events.Created || ev.Resource != "education" {
				t.Fatalf("unexpected event %+v", ev)
			}
			sawEvent = true
		}
	}
}
