package queuevalidator

import (
	"time"

	"github.com/medeiros-dev/notification-validator/configs"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/broker"
	"github.com/medeiros-dev/notification-validator/internal/interfaces"
)

func NewQueueValidator(messageBroker broker.MessageBroker, validator interfaces.PayloadValidator, cfg *configs.QueueValidatorConfig) *QueueValidatorHandler {
	semaphore := make(chan struct{}, cfg.WorkerPoolSize)
	baseDelay := time.Duration(cfg.BackoffBaseDelay) * time.Millisecond
	useCase := NewQueueValidatorUseCase(messageBroker, validator, cfg.MaxRetries, baseDelay, semaphore)
	return NewQueueValidatorHandler(useCase)
}
