package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/handler"
	"github.com/damoang/angple-press/internal/middleware"
	"github.com/damoang/angple-press/internal/migration"
	"github.com/damoang/angple-press/internal/repository"
	"github.com/damoang/angple-press/internal/service"
	"github.com/damoang/angple-press/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	adminID  = "a0000000-0000-4000-8000-000000000001"
	editorID = "e0000000-0000-4000-8000-000000000001"
	otherID  = "e0000000-0000-4000-8000-000000000002"
	viewerID = "b0000000-0000-4000-8000-000000000001"
)

// APISuite drives the full /api/v1 router against SQLite
type APISuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	jwtManager *jwt.Manager
	category   *domain.Category
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(migration.Run(db))
	s.db = db

	s.category = &domain.Category{Name: "News", Slug: "news", IsActive: true}
	s.Require().NoError(db.Create(s.category).Error)
	s.Require().NoError(db.Create(&domain.Tag{Name: "Go", Slug: "go"}).Error)

	s.jwtManager = jwt.NewManager("test-secret-key-for-integration-tests", 900)

	repos := repository.NewRepositories(db)
	uow := repository.NewUnitOfWork(db)
	categories := repository.NewCachedCategoryRepository(repos.Categories, nil, repository.DefaultCacheConfig())

	s.router = gin.New()
	s.router.Use(middleware.RequestLogger())
	Setup(s.router, Handlers{
		Post:     handler.NewPostHandler(service.NewPostService(repos, uow, nil)),
		Comment:  handler.NewCommentHandler(service.NewCommentService(repos, uow)),
		Taxonomy: handler.NewTaxonomyHandler(service.NewTaxonomyService(categories, repos.Tags)),
	}, Options{
		Verifier:   s.jwtManager,
		WriteLimit: middleware.WriteRateLimitConfig(30, 0),
	})
}

func (s *APISuite) token(id string, role domain.Role) string {
	tok, err := s.jwtManager.GenerateAccessToken(id, id[:1]+"@example.com", string(role))
	s.Require().NoError(err)
	return tok
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *APISuite) call(method, path, token string, body interface{}) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *APISuite) createDraft(token, title, content string, categoryIDs ...string) string {
	code, env := s.call(http.MethodPost, "/api/v1/posts", token, map[string]interface{}{
		"title": title, "content": content, "category_ids": categoryIDs,
	})
	s.Require().Equal(http.StatusCreated, code, string(env.Data))
	var post domain.PostResponse
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	return post.ID
}

// --- auth ---

func (s *APISuite) TestWriteRequiresToken() {
	code, env := s.call(http.MethodPost, "/api/v1/posts", "", map[string]string{"title": "Hello World"})
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("UNAUTHORIZED", env.Error.Code)
}

func (s *APISuite) TestViewerCannotCreatePost() {
	code, _ := s.call(http.MethodPost, "/api/v1/posts", s.token(viewerID, domain.RoleViewer),
		map[string]string{"title": "Hello World", "content": "x"})
	s.Equal(http.StatusForbidden, code)
}

// --- publish flow ---

func (s *APISuite) TestPublishFlow() {
	editor := s.token(editorID, domain.RoleEditor)
	id := s.createDraft(editor, "Hello World", "short")

	code, env := s.call(http.MethodGet, "/api/v1/posts/"+id, "", nil)
	s.Equal(http.StatusNotFound, code)
	code, _ = s.call(http.MethodGet, "/api/v1/posts/"+id, editor, nil)
	s.Equal(http.StatusNotFound, code)

	code, env = s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", editor, nil)
	s.Equal(http.StatusBadRequest, code)
	s.Contains(env.Error.Message, "100")

	code, _ = s.call(http.MethodPatch, "/api/v1/posts/"+id, editor, map[string]interface{}{
		"title": "Hello World", "content": strings.Repeat("x", 120), "category_ids": []string{s.category.ID},
	})
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", s.token(otherID, domain.RoleEditor), nil)
	s.Equal(http.StatusForbidden, code)

	code, env = s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", editor, nil)
	s.Require().Equal(http.StatusOK, code)
	var post domain.PostResponse
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	s.Equal(domain.PostStatusPublished, post.Status)
	s.Equal("hello-world", post.Slug)
	s.NotNil(post.PublishedAt)

	code, _ = s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", s.token(adminID, domain.RoleAdmin), nil)
	s.Equal(http.StatusConflict, code)

	code, _ = s.call(http.MethodGet, "/api/v1/posts/slug/hello-world", "", nil)
	s.Equal(http.StatusOK, code)

	code, env = s.call(http.MethodGet, "/api/v1/posts?category=news", "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal(int64(1), env.Meta.Total)
}

func (s *APISuite) TestPublishMissingPost() {
	code, env := s.call(http.MethodPost, "/api/v1/posts/does-not-exist/publish", s.token(adminID, domain.RoleAdmin), nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("NOT_FOUND", env.Error.Code)
}

func (s *APISuite) TestCreateDraftUnknownCategory() {
	code, env := s.call(http.MethodPost, "/api/v1/posts", s.token(editorID, domain.RoleEditor), map[string]interface{}{
		"title": "Hello World", "content": "x", "category_ids": []string{"6f1c1b5e-2a4d-4c4e-9b61-0d6f3a1e9a98"},
	})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("BAD_REQUEST", env.Error.Code)
}

// --- comment flow ---

func (s *APISuite) TestCommentFlow() {
	editor := s.token(editorID, domain.RoleEditor)
	viewer := s.token(viewerID, domain.RoleViewer)
	id := s.createDraft(editor, "Commented Post", strings.Repeat("y", 150), s.category.ID)

	code, _ := s.call(http.MethodPost, "/api/v1/posts/"+id+"/comments", viewer, map[string]string{"content": "early"})
	s.Equal(http.StatusNotFound, code)

	code, _ = s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", editor, nil)
	s.Require().Equal(http.StatusOK, code)

	code, env := s.call(http.MethodGet, "/api/v1/posts/"+id+"/comments", "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal(int64(0), env.Meta.TotalPages)

	code, env = s.call(http.MethodPost, "/api/v1/posts/"+id+"/comments", viewer, map[string]string{"content": "great read"})
	s.Require().Equal(http.StatusCreated, code)
	var comment domain.CommentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &comment))
	s.Equal(domain.CommentStatusPending, comment.Status)

	code, _ = s.call(http.MethodGet, "/api/v1/comments/pending", editor, nil)
	s.Equal(http.StatusForbidden, code)
	code, env = s.call(http.MethodGet, "/api/v1/comments/pending", s.token(adminID, domain.RoleAdmin), nil)
	s.Equal(http.StatusOK, code)
	var pending []domain.CommentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &pending))
	s.Len(pending, 1)

	code, _ = s.call(http.MethodPatch, "/api/v1/comments/"+comment.ID+"/moderate", viewer, map[string]string{"status": "approved"})
	s.Equal(http.StatusForbidden, code)

	code, env = s.call(http.MethodPatch, "/api/v1/comments/"+comment.ID+"/moderate", editor, map[string]string{"status": "approved"})
	s.Require().Equal(http.StatusOK, code)
	var approved map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &approved))
	s.NotEmpty(approved["approved_at"])
	s.Equal(map[string]interface{}{"id": viewerID, "email": "b@example.com"}, approved["author"])

	code, env = s.call(http.MethodPatch, "/api/v1/comments/"+comment.ID+"/moderate", editor, map[string]string{"status": "approved"})
	s.Equal(http.StatusConflict, code)
	s.Equal("CONFLICT", env.Error.Code)

	code, env = s.call(http.MethodGet, "/api/v1/posts/"+id+"/comments?sort=oldest", "", nil)
	s.Equal(http.StatusOK, code)
	s.Equal(int64(1), env.Meta.TotalPages)
}

func (s *APISuite) TestRejectedResponseIsMinimal() {
	editor := s.token(editorID, domain.RoleEditor)
	id := s.createDraft(editor, "Spam Target", strings.Repeat("z", 150), s.category.ID)
	code, _ := s.call(http.MethodPost, "/api/v1/posts/"+id+"/publish", editor, nil)
	s.Require().Equal(http.StatusOK, code)

	_, env := s.call(http.MethodPost, "/api/v1/posts/"+id+"/comments", s.token(viewerID, domain.RoleViewer), map[string]string{"content": "buy now"})
	var comment domain.CommentResponse
	s.Require().NoError(json.Unmarshal(env.Data, &comment))

	code, env = s.call(http.MethodPatch, "/api/v1/comments/"+comment.ID+"/moderate", s.token(adminID, domain.RoleAdmin), map[string]string{"status": "rejected"})
	s.Require().Equal(http.StatusOK, code)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &body))
	s.Equal(map[string]interface{}{"id": comment.ID, "post_id": id, "status": "rejected"}, body)
}

// --- taxonomy ---

func (s *APISuite) TestTaxonomy() {
	code, env := s.call(http.MethodGet, "/api/v1/categories", "", nil)
	s.Equal(http.StatusOK, code)
	var cats []domain.Category
	s.Require().NoError(json.Unmarshal(env.Data, &cats))
	s.Len(cats, 1)

	code, _ = s.call(http.MethodGet, "/api/v1/categories/missing", "", nil)
	s.Equal(http.StatusNotFound, code)

	code, env = s.call(http.MethodGet, "/api/v1/tags", "", nil)
	s.Equal(http.StatusOK, code)
}
