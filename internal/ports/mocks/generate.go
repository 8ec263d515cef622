//go:generate mockgen -source=../kv_store.go               -destination=./mock_kv_store.go               -package=mocks
//go:generate mockgen -source=../user_repository.go        -destination=./mock_user_repository.go        -package=mocks
//go:generate mockgen -source=../product_repository.go     -destination=./mock_product_repository.go     -package=mocks
//go:generate mockgen -source=../order_repository.go       -destination=./mock_order_repository.go       -package=mocks
//go:generate mockgen -source=../shop_status_repository.go -destination=./mock_shop_status_repository.go -package=mocks
//go:generate mockgen -source=../event_publisher.go        -destination=./mock_event_publisher.go        -package=mocks

package mocks
