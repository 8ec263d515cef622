package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
)

// AuthService — вход пользователя Mini App: найти или создать User и определить isAdmin.
type AuthService struct {
	users  ports.UserRepository
	admins ports.AdminRepository
	cache  ports.Cache
	log    ports.Logger
}

func NewAuthService(
	users ports.UserRepository,
	admins ports.AdminRepository,
	cache ports.Cache,
	log ports.Logger,
) *AuthService {
	return &AuthService{users: users, admins: admins, cache: cache, log: log}
}

// Authenticate возвращает пользователя (создавая его при первом обращении) и флаг администратора.
func (s *AuthService) Authenticate(ctx context.Context, identity domain.TelegramIdentity) (*domain.User, bool, error) {
	if identity.ID == 0 {
		return nil, false, fmt.Errorf("%w: telegram id обязателен", ErrValidation)
	}
	telegramID := strconv.FormatInt(identity.ID, 10)

	user, err := readThrough(ctx, s.cache, s.log, userKey(telegramID), ttlUser,
		func(ctx context.Context) (*domain.User, error) {
			return s.findOrCreate(ctx, telegramID, identity)
		})
	if err != nil {
		return nil, false, err
	}

	isAdmin, err := readThrough(ctx, s.cache, s.log, adminKey(telegramID), ttlAdmin,
		func(ctx context.Context) (bool, error) {
			admin, err := s.admins.FindByTelegramID(ctx, telegramID)
			if err != nil {
				s.log.Errorf(ctx, "admins.FindByTelegramID failed telegram_id=%s err=%v", telegramID, err)
				return false, err
			}
			return admin != nil, nil
		})
	if err != nil {
		return nil, false, err
	}
	return user, isAdmin, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, telegramID string, identity domain.TelegramIdentity) (*domain.User, error) {
	user, err := s.users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		s.log.Errorf(ctx, "users.FindByTelegramID failed telegram_id=%s err=%v", telegramID, err)
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{
		TelegramID: telegramID,
		Username:   domain.OptionalString(identity.Username),
		FirstName:  domain.OptionalString(identity.FirstName),
		LastName:   domain.OptionalString(identity.LastName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.log.Errorf(ctx, "users.Create failed telegram_id=%s err=%v", telegramID, err)
		return nil, err
	}
	s.log.Infof(ctx, "user created id=%s telegram_id=%s", user.ID, telegramID)
	return user, nil
}

// InvalidateAdmin — сброс закэшированного флага администратора (после выдачи прав).
func (s *AuthService) InvalidateAdmin(ctx context.Context, telegramID string) {
	s.cache.Delete(ctx, adminKey(telegramID))
}
