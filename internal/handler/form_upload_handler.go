package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"form-template-api/internal/dto"
	"form-template-api/internal/response"
	"form-template-api/internal/service"
)

type FormUploadHandler struct {
	uploadService service.FormUploadService
	logger        *zap.Logger
}

func NewFormUploadHandler(uploadService service.FormUploadService, logger *zap.Logger) *FormUploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormUploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// GeneratePresignedURL godoc
// @Summary      파일 업로드 URL 발급
// @Description  파일 요소에 업로드할 S3 Presigned URL을 발급합니다. 반환된 uploadId를 제출 시 사용합니다
// @Tags         form-uploads
// @Accept       json
// @Produce      json
// @Param        request body dto.PresignedURLRequest true "업로드 요청"
// @Success      201 {object} response.SuccessResponse{data=dto.PresignedURLResponse} "URL 발급 성공"
// @Failure      400 {object} response.ErrorResponse "허용되지 않는 파일"
// @Failure      404 {object} response.ErrorResponse "요소를 찾을 수 없음"
// @Failure      500 {object} response.ErrorResponse "서버 에러"
// @Failure      503 {object} response.ErrorResponse "파일 저장소 미설정"
// @Router       /form-uploads/presigned-url [post]
func (h *FormUploadHandler) GeneratePresignedURL(c *gin.Context) {
	var req dto.PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resp, err := h.uploadService.CreatePresignedUpload(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, resp)
}
