package handler

import (
	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/middleware"
	"github.com/damoang/angple-press/internal/service"
	"github.com/damoang/angple-press/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts godoc
// @Summary      공개 게시글 목록
// @Description  발행된 게시글을 최신순으로 조회합니다
// @Tags         posts
// @Produce      json
// @Param        page      query     int     false  "페이지 번호"  default(1)
// @Param        per_page  query     int     false  "페이지당 항목 수"  default(20)
// @Param        category  query     string  false  "카테고리 slug"
// @Param        tag       query     string  false  "태그 slug"
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Failure      500  {object}  common.APIResponse
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, perPage := ginutil.Pagination(c)
	filter := domain.PostListFilter{
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
	}

	data, meta, err := h.service.ListPublished(c.Request.Context(), filter, page, perPage)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessWithMeta(c, data, meta)
}

// GetPost godoc
// @Summary      게시글 상세 조회
// @Description  발행된 게시글만 조회됩니다. 초안은 작성자에게도 404입니다.
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "게시글 ID"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	data, err := h.service.GetPublished(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// GetPostBySlug godoc
// @Summary      slug로 게시글 조회
// @Tags         posts
// @Produce      json
// @Param        slug  path      string  true  "게시글 slug"
// @Success      200   {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      404   {object}  common.APIResponse
// @Router       /posts/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	data, err := h.service.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// CreatePost godoc
// @Summary      초안 작성
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CreatePostRequest  true  "초안 작성 요청"
// @Success      201  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	data, err := h.service.CreateDraft(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Created(c, data)
}

// UpdatePost godoc
// @Summary      초안 수정
// @Description  초안 상태에서만 수정할 수 있습니다 (작성자 또는 관리자)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "게시글 ID"
// @Param        request  body      domain.UpdatePostRequest  true  "초안 수정 요청"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	data, err := h.service.UpdateDraft(c.Request.Context(), middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// PublishPost godoc
// @Summary      게시글 발행
// @Description  초안을 발행합니다. 본문 100자 이상, 활성 카테고리 1개 이상이 필요합니다.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "게시글 ID"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /posts/{id}/publish [post]
func (h *PostHandler) PublishPost(c *gin.Context) {
	data, err := h.service.Publish(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// ListMyPosts godoc
// @Summary      내 게시글 목록
// @Description  초안을 포함한 본인 게시글 목록
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int  false  "페이지 번호"  default(1)
// @Param        per_page  query  int  false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Router       /me/posts [get]
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	page, perPage := ginutil.Pagination(c)

	data, meta, err := h.service.ListMine(c.Request.Context(), middleware.GetActor(c), page, perPage)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessWithMeta(c, data, meta)
}
