package repos

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mercadito/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// LineInput is an incoming (product, quantity) pair, before any merge.
type LineInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// ByUser returns the cart id for a user, or sql.ErrNoRows.
func (r *CartRepo) ByUser(userID string) (string, error) {
	var cartID string
	err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID)
	return cartID, err
}

// EnsureCart returns the user's cart id, creating an empty cart if needed.
// The insert ignores a conflicting row so that two concurrent first calls
// both converge on the single cart enforced by the user_id UNIQUE constraint.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	if cartID, err := r.ByUser(userID); err == nil {
		return cartID, nil
	} else if err != sql.ErrNoRows {
		return "", err
	}
	_, err := r.db.Exec(`
		INSERT INTO carts(id,user_id) VALUES(?,?)
		ON CONFLICT(user_id) DO NOTHING`,
		uuid.NewString(), userID)
	if err != nil {
		return "", err
	}
	return r.ByUser(userID)
}

type cartLineRow struct {
	domain.Product
	Qty int `db:"qty"`
}

// Lines returns the cart's items with the referenced products resolved.
func (r *CartRepo) Lines(cartID string) ([]domain.CartLine, error) {
	rows := []cartLineRow{}
	if err := r.db.Select(&rows, `
	  SELECT p.id, p.name, p.description, p.price, p.image, p.stock, p.seller_id,
	         p.created_at, COALESCE(p.updated_at,'') AS updated_at, ci.qty
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at, p.id
	`, cartID); err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartLine{Product: row.Product, Quantity: row.Qty})
	}
	return lines, nil
}

// MergeItems applies incoming items in one transaction: an existing line for
// the same product has its quantity incremented, a new product appends a line.
func (r *CartRepo) MergeItems(cartID string, items []LineInput) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO cart_items(cart_id,product_id,qty)
			VALUES(?,?,?)
			ON CONFLICT(cart_id,product_id) DO UPDATE
			SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
		`, cartID, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at=CURRENT_TIMESTAMP WHERE id=?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetQty overwrites a line's quantity. sql.ErrNoRows if the product has no
// line in this cart.
func (r *CartRepo) SetQty(cartID, productID string, qty int) error {
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty=?, updated_at=CURRENT_TIMESTAMP
		WHERE cart_id=? AND product_id=?`,
		qty, cartID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RemoveItem deletes a line if present. Removing an absent product is a
// no-op, not an error.
func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id=? AND product_id=?`, cartID, productID)
	return err
}
