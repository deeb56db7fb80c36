package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

type FormCategoryHandler struct {
	categoryService service.FormCategoryService
	logger          *zap.Logger
}

func NewFormCategoryHandler(categoryService service.FormCategoryService, logger *zap.Logger) *FormCategoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormCategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories godoc
// @Summary      폼 대상 카테고리 목록 조회
// @Description  폼을 연결할 수 있는 상품 카테고리와 연결된 템플릿을 이름순으로 조회합니다
// @Tags         form-categories
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.FormCategoryResponse} "카테고리 목록 조회 성공"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-categories [get]
func (h *FormCategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListEligible(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// UpsertCategory godoc
// @Summary      카테고리 등록
// @Description  상품 카테고리를 등록하거나 이름을 변경합니다. 기존 템플릿 연결은 유지됩니다
// @Tags         form-categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpsertCategoryRequest true "카테고리 등록 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.FormCategoryResponse} "카테고리 등록 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-categories/{categoryId} [put]
func (h *FormCategoryHandler) UpsertCategory(c *gin.Context) {
	categoryID, ok := pathUUID(c, "categoryId", "Invalid category ID")
	if !ok {
		return
	}

	var req dto.UpsertCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.UpsertCategory(c.Request.Context(), categoryID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// SetMapping godoc
// @Summary      카테고리 템플릿 연결
// @Description  카테고리에 폼 템플릿을 연결합니다. formTemplateId가 null이면 연결을 해제합니다
// @Tags         form-categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.SetMappingRequest true "템플릿 연결 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.FormCategoryResponse} "연결 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "카테고리 또는 템플릿을 찾을 수 없음"
// @Failure      422 {object} response.ErrorResponse "폼 대상이 아닌 카테고리"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-categories/{categoryId}/template [put]
func (h *FormCategoryHandler) SetMapping(c *gin.Context) {
	categoryID, ok := pathUUID(c, "categoryId", "Invalid category ID")
	if !ok {
		return
	}

	var req dto.SetMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	category, err := h.categoryService.SetMapping(c.Request.Context(), categoryID, req.FormTemplateID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// GetTemplate godoc
// @Summary      카테고리 템플릿 조회
// @Description  카테고리에 연결된 폼 템플릿을 조회합니다. 연결된 템플릿이 없으면 data는 null입니다
// @Tags         form-categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.FormTemplateResponse} "템플릿 조회 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 Category ID"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Router       /form-categories/{categoryId}/template [get]
func (h *FormCategoryHandler) GetTemplate(c *gin.Context) {
	categoryID, ok := pathUUID(c, "categoryId", "Invalid category ID")
	if !ok {
		return
	}

	template, err := h.categoryService.TemplateFor(c.Request.Context(), categoryID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if template == nil {
		response.SendSuccess(c, http.StatusOK, nil)
		return
	}

	response.SendSuccess(c, http.StatusOK, template)
}
