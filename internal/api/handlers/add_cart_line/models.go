package add_cart_line

// AddCartLineRequest запрос на фиксацию строки корзины.
// Цена разрешается на стороне сервера на момент добавления и далее
// не пересчитывается при смене питомца.
type AddCartLineRequest struct {
	ServiceID   int64  `json:"serviceId"`
	VariantName string `json:"variantName,omitempty"`
}
