package pricing

import "github.com/pawcare/PC-BookingWizard/internal/domain"

// Границы весовых категорий в килограммах (верхняя граница включительно)
const (
	toyMaxWeightKg    = 4.0
	smallMaxWeightKg  = 10.0
	mediumMaxWeightKg = 25.0
	largeMaxWeightKg  = 45.0
)

// Resolver чистый резолвер цен: без состояния и побочных эффектов,
// безопасен для одновременного использования из нескольких сессий
type Resolver struct {
	fallbackSize domain.SizeCategory
}

// NewResolver создает резолвер цен.
// fallbackSize используется для питомцев без указанного веса.
func NewResolver(fallbackSize domain.SizeCategory) *Resolver {
	if !fallbackSize.IsValid() {
		fallbackSize = domain.DefaultFallbackSizeCategory
	}
	return &Resolver{fallbackSize: fallbackSize}
}

// ClassifySize возвращает весовую категорию питомца.
// Для питомца без веса возвращается категория по умолчанию.
func (r *Resolver) ClassifySize(weightKg *float64) domain.SizeCategory {
	if weightKg == nil {
		return r.fallbackSize
	}

	switch w := *weightKg; {
	case w <= toyMaxWeightKg:
		return domain.SizeToy
	case w <= smallMaxWeightKg:
		return domain.SizeSmall
	case w <= mediumMaxWeightKg:
		return domain.SizeMedium
	case w <= largeMaxWeightKg:
		return domain.SizeLarge
	default:
		return domain.SizeGiant
	}
}

// ResolvePrice возвращает цену услуги для указанной категории размера.
// Тотальная функция: при отсутствии таблицы размеров или записи для
// категории возвращается базовая цена, никогда не ошибка.
func (r *Resolver) ResolvePrice(service *domain.Service, size domain.SizeCategory) float64 {
	if !service.HasSizePricing() {
		return service.BasePrice
	}

	price, ok := service.SizePricing[size]
	if !ok {
		return service.BasePrice
	}
	return price
}

// ResolvePriceForPet возвращает цену услуги для конкретного питомца.
// nil питомец тарифицируется по категории по умолчанию.
func (r *Resolver) ResolvePriceForPet(service *domain.Service, pet *domain.Pet) float64 {
	if pet == nil {
		return r.ResolvePrice(service, r.fallbackSize)
	}
	return r.ResolvePrice(service, r.ClassifySize(pet.WeightKg))
}
