package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/pizzeria-backend/internal/domain"
	"github.com/DRSN-tech/pizzeria-backend/pkg/e"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

// AvailabilityUseCase отвечает на вопрос, принимает ли магазин заказы, и хранит настройки расписания.
type AvailabilityUseCase struct {
	settingsRepo SettingsRepository
	clock        Clock
	location     *time.Location
	metrics      Metrics
	logger       logger.Logger
}

// NewAvailabilityUC создаёт use case. Время clock переводится в location магазина перед расчётом.
func NewAvailabilityUC(
	settingsRepo SettingsRepository,
	clock Clock,
	location *time.Location,
	metrics Metrics,
	logger logger.Logger,
) *AvailabilityUseCase {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &AvailabilityUseCase{
		settingsRepo: settingsRepo,
		clock:        clock,
		location:     location,
		metrics:      metrics,
		logger:       logger,
	}
}

// Check возвращает решение о приёме заказов на текущий момент.
// Если настройки получить не удалось, заказы принимаются.
func (a *AvailabilityUseCase) Check(ctx context.Context) domain.AvailabilityDecision {
	const op = "AvailabilityUseCase.Check"

	now := a.clock().In(a.location)

	values, err := a.settingsRepo.GetAll(ctx)
	if err != nil {
		a.logger.Errorf(e.Wrap(op, err), "Failed to load shop settings, accepting orders")
		decision := domain.Evaluate(domain.FallbackOpen(), now)
		a.metrics.AvailabilityEvaluated(decision.IsOpen, true)
		return decision
	}

	settings, err := domain.ParseShopSettings(values)
	if err != nil {
		a.logger.Warnf("Malformed shop settings, defaults applied: %v", e.Wrap(op, err))
	}

	decision := domain.Evaluate(settings, now)
	a.metrics.AvailabilityEvaluated(decision.IsOpen, false)

	return decision
}

// GetSettings возвращает сохранённые настройки с подставленными значениями по умолчанию.
func (a *AvailabilityUseCase) GetSettings(ctx context.Context) (*domain.ShopSettings, error) {
	const op = "AvailabilityUseCase.GetSettings"

	values, err := a.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	settings, err := domain.ParseShopSettings(values)
	if err != nil {
		a.logger.Warnf("Malformed shop settings, defaults applied: %v", e.Wrap(op, err))
	}

	return &settings, nil
}

// UpdateSettings проверяет и сохраняет настройки.
func (a *AvailabilityUseCase) UpdateSettings(ctx context.Context, settings domain.ShopSettings) (*domain.ShopSettings, error) {
	const op = "AvailabilityUseCase.UpdateSettings"

	if err := settings.Validate(); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := a.settingsRepo.Upsert(ctx, settings.ToMap()); err != nil {
		return nil, e.Wrap(op, err)
	}

	a.logger.Infof("Shop settings updated: status=%s window=%d %02d:00 - %d %02d:00",
		settings.Status, settings.OpenDay, settings.OpenHour, settings.CloseDay, settings.CloseHour)

	return &settings, nil
}
