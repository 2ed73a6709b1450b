package validatepayload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medeiros-dev/notification-validator/internal/observability/tracing"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"go.uber.org/zap"
)

type ValidatePayloadHandler struct {
	useCase ValidatePayloadUseCase
}

func NewValidatePayloadHandler(useCase ValidatePayloadUseCase) *ValidatePayloadHandler {
	return &ValidatePayloadHandler{
		useCase: useCase,
	}
}

// Handle validates a single payload. An invalid payload is still a 200; only
// a malformed request body is rejected.
func (h *ValidatePayloadHandler) Handle(c *gin.Context) {
	var input ValidatePayloadInputDTO

	ctx, span := tracing.Tracer.Start(c.Request.Context(), "ValidatePayloadHandler.Handle")
	defer span.End()

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.Execute(ctx, input)
	if err != nil {
		logger.FromContext(ctx).Error("Error validating payload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate payload"})
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *ValidatePayloadHandler) HandleBatch(c *gin.Context) {
	var input ValidateBatchInputDTO

	ctx, span := tracing.Tracer.Start(c.Request.Context(), "ValidatePayloadHandler.HandleBatch")
	defer span.End()

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	output, err := h.useCase.ExecuteBatch(ctx, input)
	if err != nil {
		if errors.Is(err, ErrBatchTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		logger.FromContext(ctx).Error("Error validating payload batch",
			zap.Int("batchSize", len(input.Items)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate payload batch"})
		return
	}

	c.JSON(http.StatusOK, output)
}

// RegisterRoutes mounts the validation endpoints on r.
func (h *ValidatePayloadHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/validate", h.Handle)
	r.POST("/v1/validate/batch", h.HandleBatch)
}
