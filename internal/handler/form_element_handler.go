package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

type FormElementHandler struct {
	elementService service.FormElementService
	logger         *zap.Logger
}

func NewFormElementHandler(elementService service.FormElementService, logger *zap.Logger) *FormElementHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormElementHandler{
		elementService: elementService,
		logger:         logger,
	}
}

// ListElements godoc
// @Summary      폼 요소 목록 조회
// @Description  템플릿의 요소를 순서대로 조회합니다
// @Tags         form-elements
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FormElementResponse} "요소 목록 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Template ID"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId}/elements [get]
func (h *FormElementHandler) ListElements(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	elements, err := h.elementService.ListElements(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, elements)
}

// AddElement godoc
// @Summary      폼 요소 추가
// @Description  템플릿 마지막에 요소를 추가합니다. label이 비어 있으면 "Text Input 2" 형식으로 자동 생성됩니다
// @Tags         form-elements
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.CreateFormElementRequest true "요소 추가 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.FormElementResponse} "요소 추가 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId}/elements [post]
func (h *FormElementHandler) AddElement(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	var req dto.CreateFormElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	element, err := h.elementService.AddElement(c.Request.Context(), templateID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, element)
}

// ReorderElements godoc
// @Summary      폼 요소 순서 변경
// @Description  템플릿의 모든 요소 ID를 새 순서대로 전달합니다. 요소 집합이 일치하지 않으면 422를 반환합니다
// @Tags         form-elements
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.ReorderElementsRequest true "순서 변경 요청"
// @Success      200 {object} response.SuccessResponse{data=[]dto.FormElementResponse} "순서 변경 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "요소 집합 불일치"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId}/elements/reorder [put]
func (h *FormElementHandler) ReorderElements(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	var req dto.ReorderElementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	elements, err := h.elementService.ReorderElements(c.Request.Context(), templateID, req.IDs)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, elements)
}

// UpdateElement godoc
// @Summary      폼 요소 수정
// @Description  전달된 항목만 요소에 반영합니다
// @Tags         form-elements
// @Accept       json
// @Produce      json
// @Param        elementId path string true "Element ID (UUID)"
// @Param        request body dto.UpdateFormElementRequest true "요소 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.FormElementResponse} "요소 수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "요소를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-elements/{elementId} [put]
func (h *FormElementHandler) UpdateElement(c *gin.Context) {
	elementID, ok := pathUUID(c, "elementId", "Invalid element ID")
	if !ok {
		return
	}

	var req dto.UpdateFormElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	element, err := h.elementService.UpdateElement(c.Request.Context(), elementID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, element)
}

// DeleteElement godoc
// @Summary      폼 요소 삭제
// @Description  요소를 삭제하고 남은 요소의 순서를 1부터 다시 매깁니다
// @Tags         form-elements
// @Produce      json
// @Param        elementId path string true "Element ID (UUID)"
// @Success      200 {object} response.SuccessResponse "요소 삭제 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Element ID"
// @Failure      404 {object} response.ErrorResponse "요소를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-elements/{elementId} [delete]
func (h *FormElementHandler) DeleteElement(c *gin.Context) {
	elementID, ok := pathUUID(c, "elementId", "Invalid element ID")
	if !ok {
		return
	}

	if err := h.elementService.DeleteElement(c.Request.Context(), elementID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Form element deleted successfully"})
}
