package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

type FormSubmissionHandler struct {
	submissionService service.FormSubmissionService
	logger            *zap.Logger
}

func NewFormSubmissionHandler(submissionService service.FormSubmissionService, logger *zap.Logger) *FormSubmissionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormSubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// CreateSubmission godoc
// @Summary      폼 제출
// @Description  템플릿 하나에 대한 입력값을 검증하고 저장합니다. 검증 실패 시 요소별 메시지와 함께 422를 반환합니다
// @Tags         form-submissions
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFormSubmissionRequest true "폼 제출 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.FormSubmissionResponse} "제출 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "입력값 검증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-submissions [post]
func (h *FormSubmissionHandler) CreateSubmission(c *gin.Context) {
	var req dto.CreateFormSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	submission, err := h.submissionService.CreateSubmission(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, submission)
}

// ListSubmissions godoc
// @Summary      폼 제출 목록 조회
// @Description  템플릿, 주문 또는 고객으로 제출 내역을 조회합니다. 인증된 요청은 본인 제출만 조회합니다
// @Tags         form-submissions
// @Produce      json
// @Param        templateId query string false "Template ID (UUID)"
// @Param        orderId    query string false "Order ID (UUID)"
// @Param        customerId query string false "Customer ID (UUID)"
// @Param        page       query int    false "페이지 번호" default(1)
// @Param        limit      query int    false "페이지 크기 (최대 100)" default(20)
// @Success      200 {object} response.SuccessResponse{data=response.PaginatedResponse{items=[]dto.FormSubmissionResponse}} "제출 목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-submissions [get]
func (h *FormSubmissionHandler) ListSubmissions(c *gin.Context) {
	var filter dto.ListFormSubmissionsFilter
	var ok bool
	if filter.TemplateID, ok = queryUUID(c, "templateId"); !ok {
		return
	}
	if filter.OrderID, ok = queryUUID(c, "orderId"); !ok {
		return
	}
	if filter.CustomerID, ok = queryUUID(c, "customerId"); !ok {
		return
	}
	if user := currentUser(c); user != nil {
		filter.CustomerID = user
	}
	page, limit := pagination(c)

	submissions, total, err := h.submissionService.ListSubmissions(c.Request.Context(), filter, page, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, response.PaginatedResponse{
		Items:   submissions,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page*limit) < total,
	})
}

// GetSubmission godoc
// @Summary      폼 제출 조회
// @Description  제출 내역을 요소 순서대로 조회합니다
// @Tags         form-submissions
// @Produce      json
// @Param        submissionId path string true "Submission ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.FormSubmissionResponse} "제출 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Submission ID"
// @Failure      404 {object} response.ErrorResponse "제출 내역을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-submissions/{submissionId} [get]
func (h *FormSubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := pathUUID(c, "submissionId", "Invalid submission ID")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Request.Context(), submissionID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if user := currentUser(c); user != nil && *user != submission.CustomerID {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Form submission not found")
		return
	}

	response.SendSuccess(c, http.StatusOK, submission)
}
