package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

type FormSequenceHandler struct {
	sequenceService service.FormSequenceService
	logger          *zap.Logger
}

func NewFormSequenceHandler(sequenceService service.FormSequenceService, logger *zap.Logger) *FormSequenceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormSequenceHandler{
		sequenceService: sequenceService,
		logger:          logger,
	}
}

// StartSequence godoc
// @Summary      폼 작성 시작
// @Description  장바구니 또는 주문의 카테고리로 단계별 폼 작성을 시작합니다. 적용할 폼이 없으면 noApplicableForm이 true입니다
// @Tags         form-sequences
// @Accept       json
// @Produce      json
// @Param        request body dto.StartSequenceRequest true "폼 작성 시작 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.SequenceResponse} "시작 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences [post]
func (h *FormSequenceHandler) StartSequence(c *gin.Context) {
	var req dto.StartSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	seq, err := h.sequenceService.Start(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, seq)
}

// GetSequence godoc
// @Summary      폼 작성 상태 조회
// @Description  현재 단계의 폼을 입력값이 채워진 상태로 조회합니다
// @Tags         form-sequences
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.SequenceResponse} "조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Sequence ID"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId} [get]
func (h *FormSequenceHandler) GetSequence(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	seq, err := h.sequenceService.Get(c.Request.Context(), currentUser(c), sequenceID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, seq)
}

// Select godoc
// @Summary      날짜 또는 파일 선택
// @Description  현재 단계의 날짜 또는 파일 요소에 값을 임시로 지정합니다. date와 file 중 하나만 전달해야 합니다
// @Tags         form-sequences
// @Accept       json
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Param        request body dto.SelectionRequest true "선택 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SequenceResponse} "선택 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "파일 검증 실패"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId}/selections [put]
func (h *FormSequenceHandler) Select(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	seq, err := h.sequenceService.Select(c.Request.Context(), currentUser(c), sequenceID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, seq)
}

// SubmitStep godoc
// @Summary      단계 제출
// @Description  현재 단계의 입력값을 검증하고 다음 단계로 이동합니다. 마지막 단계에서는 모든 단계가 한 번에 제출됩니다
// @Tags         form-sequences
// @Accept       json
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Param        request body dto.SubmitStepRequest true "단계 입력값 (요소 ID별)"
// @Success      200 {object} response.SuccessResponse{data=dto.SequenceResponse} "제출 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "입력값 검증 실패 또는 진행 중이 아님"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId}/steps [post]
func (h *FormSequenceHandler) SubmitStep(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	var req dto.SubmitStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	seq, err := h.sequenceService.SubmitStep(c.Request.Context(), currentUser(c), sequenceID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, seq)
}

// GoBack godoc
// @Summary      이전 단계로 이동
// @Description  이전 단계로 돌아갑니다. 입력했던 값은 유지됩니다
// @Tags         form-sequences
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.SequenceResponse} "이동 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Sequence ID"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "첫 단계이거나 진행 중이 아님"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId}/back [post]
func (h *FormSequenceHandler) GoBack(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	seq, err := h.sequenceService.GoBack(c.Request.Context(), currentUser(c), sequenceID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, seq)
}

// UpdateCart godoc
// @Summary      장바구니 변경 반영
// @Description  변경된 카테고리 목록으로 단계를 다시 구성합니다. 적용되는 템플릿이 같으면 진행 상태가 유지됩니다
// @Tags         form-sequences
// @Accept       json
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Param        request body dto.UpdateCartRequest true "카테고리 목록"
// @Success      200 {object} response.SuccessResponse{data=dto.SequenceResponse} "반영 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "이미 완료된 폼 작성"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId}/cart [put]
func (h *FormSequenceHandler) UpdateCart(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	var req dto.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	seq, err := h.sequenceService.UpdateCart(c.Request.Context(), currentUser(c), sequenceID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, seq)
}

// CancelSequence godoc
// @Summary      폼 작성 취소
// @Description  진행 중인 폼 작성을 폐기합니다. 아무것도 제출되지 않습니다
// @Tags         form-sequences
// @Produce      json
// @Param        sequenceId path string true "Sequence ID (UUID)"
// @Success      200 {object} response.SuccessResponse "취소 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Sequence ID"
// @Failure      404 {object} response.ErrorResponse "폼 작성을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-sequences/{sequenceId} [delete]
func (h *FormSequenceHandler) CancelSequence(c *gin.Context) {
	sequenceID, ok := pathUUID(c, "sequenceId", "Invalid sequence ID")
	if !ok {
		return
	}

	if err := h.sequenceService.Cancel(c.Request.Context(), currentUser(c), sequenceID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Form sequence cancelled"})
}
