package workers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	workerRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/worker"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
)

// Service сервис для работы с анкетами работников
// Надёжность пишет только reliability.Tracker, черный список - blacklist.Registry
type Service struct {
	workerRepo WorkerRepository
	blacklist  BlacklistHistory
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса работников
func NewService(
	workerRepo WorkerRepository,
	blacklist BlacklistHistory,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		workerRepo: workerRepo,
		blacklist:  blacklist,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает работника, по умолчанию доступного
func (s *Service) Create(ctx context.Context, req *models.CreateWorkerRequest) (*models.WorkerResponse, error) {
	s.logger.Info("Create: creating worker name=%q, standby=%t", req.Name, req.Standby)

	name, err := validateName(req.Name)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	worker := &domain.Worker{
		Name:      name,
		Role:      trimOptional(req.Role),
		Location:  trimOptional(req.Location),
		Email:     trimOptional(req.Email),
		Phone:     trimOptional(req.Phone),
		Available: available,
		Standby:   req.Standby,
	}

	created, err := s.workerRepo.Create(ctx, worker)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created worker id=%d", created.ID)
	return models.FromDomainWorker(created), nil
}

// GetByID возвращает работника вместе с историей черного списка
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WorkerDetailsResponse, error) {
	s.logger.Info("GetByID: fetching worker id=%d", id)

	worker, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workerRepo.ErrWorkerNotFound) {
			s.logger.Warn("GetByID: worker id=%d not found", id)
			return nil, ErrWorkerNotFound
		}
		s.logger.Error("GetByID: repository error for worker id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	history, err := s.blacklist.History(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load blacklist history for worker id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - blacklist history: %v", ErrInternal, err)
	}

	return models.FromDomainWorkerDetails(worker, history), nil
}

// List возвращает работников по фильтрам
// Черный список не скрывается: это запрос для отчётов
func (s *Service) List(ctx context.Context, req *models.ListWorkersRequest) (*models.WorkerListResponse, error) {
	s.logger.Info("List: standby=%v, available=%v, blacklisted=%v",
		formatBool(req.Standby), formatBool(req.Available), formatBool(req.Blacklisted))

	workers, err := s.workerRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d workers", len(workers))
	return models.FromDomainWorkerList(workers), nil
}

// Update частично обновляет анкету работника
// available=false - мягкое отключение, работник не удаляется
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateWorkerRequest) (*models.WorkerResponse, error) {
	s.logger.Info("Update: updating worker id=%d", id)

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update for worker id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var name string
	if req.Name != nil {
		validated, err := validateName(*req.Name)
		if err != nil {
			s.logger.Warn("Update: validation failed for worker id=%d: %v", id, err)
			return nil, err
		}
		name = validated
	}

	var result *domain.Worker

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		worker, err := s.workerRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, workerRepo.ErrWorkerNotFound) {
				s.logger.Warn("Update: worker id=%d not found", id)
				return ErrWorkerNotFound
			}
			s.logger.Error("Update: failed to get worker id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - get worker: %v", ErrInternal, err)
		}

		if req.Name != nil {
			worker.Name = name
		}
		if req.Role != nil {
			worker.Role = trimOptional(req.Role)
		}
		if req.Location != nil {
			worker.Location = trimOptional(req.Location)
		}
		if req.Phone != nil {
			worker.Phone = trimOptional(req.Phone)
		}
		if req.Available != nil {
			worker.Available = *req.Available
		}
		if req.Standby != nil {
			worker.Standby = *req.Standby
		}

		if err := s.workerRepo.UpdateProfile(txCtx, worker); err != nil {
			s.logger.Error("Update: failed to save worker id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = worker
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated worker id=%d", id)
	return models.FromDomainWorker(result), nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

// trimOptional обрезает пробелы, пустая строка превращается в nil
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func formatBool(v *bool) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprintf("%t", *v)
}
