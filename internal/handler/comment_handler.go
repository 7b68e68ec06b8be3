package handler

import (
	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/domain"
	"github.com/damoang/angple-press/internal/middleware"
	"github.com/damoang/angple-press/internal/service"
	"github.com/damoang/angple-press/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListComments godoc
// @Summary      승인된 댓글 목록
// @Description  발행된 게시글의 승인된 최상위 댓글과 답글. 답글은 항상 오래된 순입니다.
// @Tags         comments
// @Produce      json
// @Param        id        path      string  true   "게시글 ID"
// @Param        sort      query     string  false  "oldest | newest"  default(newest)
// @Param        page      query     int     false  "페이지 번호"  default(1)
// @Param        per_page  query     int     false  "페이지당 항목 수"  default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.ThreadedComment}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	page, perPage := ginutil.Pagination(c)
	sort := domain.ParseCommentSort(c.Query("sort"))

	data, meta, err := h.service.ListApproved(c.Request.Context(), c.Param("id"), sort, page, perPage)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.SuccessWithMeta(c, data, meta)
}

// SubmitComment godoc
// @Summary      댓글 작성
// @Description  승인 대기(pending) 상태로 등록됩니다
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "게시글 ID"
// @Param        request  body      domain.SubmitCommentRequest  true  "댓글 작성 요청"
// @Success      201  {object}  common.APIResponse{data=domain.CommentResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	var req domain.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	data, err := h.service.Submit(c.Request.Context(), middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Created(c, data)
}

// ModerateComment godoc
// @Summary      댓글 검토
// @Description  pending 댓글을 approved, rejected, spam 중 하나로 변경합니다. 한 번만 가능합니다.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "댓글 ID"
// @Param        request  body      domain.ModerateCommentRequest  true  "검토 요청"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /comments/{id}/moderate [patch]
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	var req domain.ModerateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	result, err := h.service.Moderate(c.Request.Context(), middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, result.Body())
}

// ListPendingComments godoc
// @Summary      검토 대기 댓글 (관리자)
// @Description  오래된 순, 페이지네이션 없음
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.CommentResponse}
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Router       /comments/pending [get]
func (h *CommentHandler) ListPendingComments(c *gin.Context) {
	data, err := h.service.ListPending(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}
