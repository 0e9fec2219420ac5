// internal/models/views.go
package models

import "time"

// Views are the JSON shapes returned to clients. Rows that already serialize
// the way the client expects (Review, Poster, Shipping, Notification) are
// returned as-is.

type ProductView struct {
	ID          uint   `json:"id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Supplier    string `json:"supplier"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	IsFavourite Flag   `json:"isFavourite"`
	IsInCart    Flag   `json:"isInCart"`
}

func NewProductView(p *Product, favourite, inCart bool) ProductView {
	return ProductView{
		ID:          p.ID,
		ProductName: p.Name,
		Price:       p.Price.StringFixed(2),
		Quantity:    p.Quantity,
		Supplier:    p.Supplier,
		Category:    p.Category,
		Image:       p.Image,
		IsFavourite: Flag(favourite),
		IsInCart:    Flag(inCart),
	}
}

type OrderItemView struct {
	ProductID uint   `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type OrderView struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"userId"`
	ShippingID    uint            `json:"shippingId"`
	PaymentMethod string          `json:"payment_method"`
	TotalPrice    string          `json:"total_price"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItemView `json:"items"`
}

func NewOrderView(o *Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		})
	}

	return OrderView{
		ID:            o.ID,
		UserID:        o.UserID,
		ShippingID:    o.ShippingID,
		PaymentMethod: o.PaymentMethod,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func NewUserView(u *User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}

type OtpView struct {
	Email string `json:"email"`
	Otp   string `json:"otp,omitempty"`
}
