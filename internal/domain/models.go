package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Image       string  `db:"image" json:"image"`
	Stock       int     `db:"stock" json:"stock"`
	SellerID    string  `db:"seller_id" json:"seller"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Cart is the single per-user collection of line items. Items carry the
// resolved product so callers can render names/prices without a second fetch.
type Cart struct {
	ID     string     `db:"id" json:"id"`
	UserID string     `db:"user_id" json:"user"`
	Items  []CartLine `json:"products"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
