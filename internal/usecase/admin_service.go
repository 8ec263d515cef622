package usecase

import (
	"context"

	"github.com/Gunvolt24/fiveka-shop/internal/domain"
	"github.com/Gunvolt24/fiveka-shop/internal/ports"
	"golang.org/x/sync/errgroup"
)

// recentOrdersLimit — сколько последних заказов показывает админ-панель.
const recentOrdersLimit = 10

// AdminService — сводка для админ-панели. Читает Store напрямую, без кэша.
type AdminService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	log      ports.Logger
}

func NewAdminService(
	users ports.UserRepository,
	products ports.ProductRepository,
	orders ports.OrderRepository,
	log ports.Logger,
) *AdminService {
	return &AdminService{users: users, products: products, orders: orders, log: log}
}

// Dashboard собирает счётчики, выручку по завершённым заказам,
// последние заказы и всех пользователей. Запросы идут параллельно.
func (s *AdminService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var dash domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dash.Stats.UsersCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.Stats.ProductsCount, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.Stats.OrdersCount, err = s.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.Stats.TotalRevenue, err = s.orders.CompletedRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		dash.RecentOrders, err = s.orders.Recent(gctx, recentOrdersLimit)
		return err
	})
	g.Go(func() (err error) {
		dash.Users, err = s.users.ListNewestFirst(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Errorf(ctx, "dashboard failed err=%v", err)
		return nil, err
	}
	return &dash, nil
}
