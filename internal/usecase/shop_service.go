package usecase

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// ShopService — единственная запись статуса магазина.
type ShopService struct {
	repo  ports.ShopStatusRepository
	cache ports.Cache
	log   ports.Logger
}

func NewShopService(repo ports.ShopStatusRepository, cache ports.Cache, log ports.Logger) *ShopService {
	return &ShopService{repo: repo, cache: cache, log: log}
}

// Status — текущий статус; при отсутствии записи создаёт закрытый.
func (s *ShopService) Status(ctx context.Context) (*domain.ShopStatus, error) {
	return readThrough(ctx, s.cache, s.log, keyShopStatus, ttlShopStatus,
		func(ctx context.Context) (*domain.ShopStatus, error) {
			status, err := s.repo.First(ctx)
			if err != nil {
				s.log.Errorf(ctx, "shopStatus.First failed err=%v", err)
				return nil, err
			}
			if status != nil {
				return status, nil
			}
			status, err = s.repo.Create(ctx, false)
			if err != nil {
				s.log.Errorf(ctx, "shopStatus.Create failed err=%v", err)
				return nil, err
			}
			s.log.Infof(ctx, "shop status initialized id=%s is_open=false", status.ID)
			return status, nil
		})
}

// SetStatus обновляет (или создаёт) запись и удаляет ключ статуса из кэша.
func (s *ShopService) SetStatus(ctx context.Context, isOpen bool) (*domain.ShopStatus, error) {
	current, err := s.repo.First(ctx)
	if err != nil {
		s.log.Errorf(ctx, "shopStatus.First failed err=%v", err)
		return nil, err
	}

	if current == nil {
		created, err := s.repo.Create(ctx, isOpen)
		if err != nil {
			s.log.Errorf(ctx, "shopStatus.Create failed err=%v", err)
			return nil, err
		}
		// при гонке Create возвращает запись, созданную другим запросом
		if created.IsOpen == isOpen {
			return s.updated(ctx, created), nil
		}
		current = created
	}

	status, err := s.repo.Update(ctx, current.ID, isOpen)
	if err != nil {
		s.log.Errorf(ctx, "shopStatus.Update failed id=%s err=%v", current.ID, err)
		return nil, err
	}
	return s.updated(ctx, status), nil
}

func (s *ShopService) updated(ctx context.Context, status *domain.ShopStatus) *domain.ShopStatus {
	s.cache.Delete(ctx, keyShopStatus)
	s.log.Infof(ctx, "shop status set id=%s is_open=%t", status.ID, status.IsOpen)
	return status
}
