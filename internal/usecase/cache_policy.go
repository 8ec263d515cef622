package usecase

import "time"

// Ключи и TTL кэшируемых ресурсов. Политика фиксирована и не настраивается.
const (
	keyCategories  = "categories"
	keyShopStatus  = "shop_status"
	keyProductsAll = "products:all"

	// patternProducts — все списки товаров (общий и по категориям).
	patternProducts = "products:*"

	ttlUser       = 3600 * time.Second
	ttlAdmin      = 3600 * time.Second
	ttlCategories = 3600 * time.Second
	ttlProducts   = 1800 * time.Second
	ttlShopStatus = 300 * time.Second
)

func userKey(telegramID string) string  { return "user:" + telegramID }
func adminKey(telegramID string) string { return "admin:" + telegramID }

// productsKey — "products:all" без фильтра, иначе "products:<category>".
// Категория с именем "all" делит ключ с общим списком.
func productsKey(category string) string {
	if category == "" {
		return keyProductsAll
	}
	return "products:" + category
}
