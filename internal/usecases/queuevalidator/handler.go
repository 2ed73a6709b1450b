package queuevalidator

import "context"

type QueueValidatorHandler struct {
	queueValidatorUseCase *QueueValidatorUseCase
}

func NewQueueValidatorHandler(queueValidatorUseCase *QueueValidatorUseCase) *QueueValidatorHandler {
	return &QueueValidatorHandler{queueValidatorUseCase: queueValidatorUseCase}
}

func (h *QueueValidatorHandler) Handle(ctx context.Context) error {
	return h.queueValidatorUseCase.Execute(ctx)
}
