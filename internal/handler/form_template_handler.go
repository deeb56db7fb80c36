package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

// maxImportSize bounds the YAML document accepted by ImportTemplate
const maxImportSize = 1 << 20

type FormTemplateHandler struct {
	templateService service.FormTemplateService
	logger          *zap.Logger
}

func NewFormTemplateHandler(templateService service.FormTemplateService, logger *zap.Logger) *FormTemplateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormTemplateHandler{
		templateService: templateService,
		logger:          logger,
	}
}

// ListTemplates godoc
// @Summary      폼 템플릿 목록 조회
// @Description  폼 템플릿 목록을 페이지 단위로 조회합니다. 요소는 포함되지 않고 요소 개수만 반환됩니다
// @Tags         form-templates
// @Produce      json
// @Param        page  query int false "페이지 번호" default(1)
// @Param        limit query int false "페이지 크기 (최대 100)" default(20)
// @Success      200 {object} response.SuccessResponse{data=dto.PaginatedFormTemplatesResponse} "템플릿 목록 조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates [get]
func (h *FormTemplateHandler) ListTemplates(c *gin.Context) {
	page, limit := pagination(c)

	templates, err := h.templateService.ListTemplates(c.Request.Context(), page, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary      폼 템플릿 조회
// @Description  요소를 순서대로 포함한 폼 템플릿을 조회합니다
// @Tags         form-templates
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.FormTemplateResponse} "템플릿 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Template ID"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId} [get]
func (h *FormTemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// RenderTemplate godoc
// @Summary      폼 템플릿 렌더링
// @Description  템플릿의 요소를 기본값이 채워진 입력 필드 목록으로 렌더링합니다
// @Tags         form-templates
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]render.Field} "렌더링 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Template ID"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId}/render [get]
func (h *FormTemplateHandler) RenderTemplate(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	fields, err := h.templateService.RenderTemplate(c.Request.Context(), templateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}

// CreateTemplate godoc
// @Summary      폼 템플릿 생성
// @Description  새로운 폼 템플릿을 생성합니다. category_id가 있으면 해당 카테고리에 연결됩니다
// @Tags         form-templates
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFormTemplateRequest true "템플릿 생성 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.FormTemplateResponse} "템플릿 생성 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "카테고리를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates [post]
func (h *FormTemplateHandler) CreateTemplate(c *gin.Context) {
	var req dto.CreateFormTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, template)
}

// ImportTemplate godoc
// @Summary      폼 템플릿 가져오기
// @Description  YAML 문서로 템플릿과 요소를 한 번에 생성합니다. validation은 "/pattern/flags" 형식을 지원합니다
// @Tags         form-templates
// @Accept       application/x-yaml
// @Produce      json
// @Param        request body dto.ImportFormTemplateRequest true "YAML 템플릿 문서"
// @Success      201 {object} response.SuccessResponse{data=dto.FormTemplateResponse} "가져오기 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 문서"
// @Failure      404 {object} response.ErrorResponse "카테고리를 찾을 수 없음"
// @Failure      413 {object} response.ErrorResponse "문서가 너무 큼"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/import [post]
func (h *FormTemplateHandler) ImportTemplate(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.SendError(c, http.StatusRequestEntityTooLarge, response.ErrCodeValidation, "Template document is too large")
			return
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	if len(body) == 0 {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Template document is empty")
		return
	}

	template, err := h.templateService.ImportTemplate(c.Request.Context(), body)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, template)
}

// UpdateTemplate godoc
// @Summary      폼 템플릿 수정
// @Description  템플릿의 이름, 설명, 카테고리만 수정합니다. 요소는 별도 API로 관리합니다
// @Tags         form-templates
// @Accept       json
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Param        request body dto.UpdateFormTemplateRequest true "템플릿 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.FormTemplateResponse} "템플릿 수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "템플릿 또는 카테고리를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId} [put]
func (h *FormTemplateHandler) UpdateTemplate(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	var req dto.UpdateFormTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), templateID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary      폼 템플릿 삭제
// @Description  템플릿과 모든 요소를 삭제하고 카테고리 연결을 해제합니다
// @Tags         form-templates
// @Produce      json
// @Param        templateId path string true "Template ID (UUID)"
// @Success      200 {object} response.SuccessResponse "템플릿 삭제 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Template ID"
// @Failure      404 {object} response.ErrorResponse "템플릿을 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-templates/{templateId} [delete]
func (h *FormTemplateHandler) DeleteTemplate(c *gin.Context) {
	templateID, ok := pathUUID(c, "templateId", "Invalid template ID")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), templateID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Form template deleted successfully"})
}
