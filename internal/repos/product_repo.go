package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"mercadito/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, image, stock, seller_id,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,name,description,price,image,stock,seller_id)
		VALUES(?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.Stock, p.SellerID)
	return err
}

func (r *ProductRepo) All() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY created_at DESC`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ByIDs resolves a batch of product ids in a single query. Missing ids are
// simply absent from the result; the caller compares counts.
func (r *ProductRepo) ByIDs(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	err = r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET name=?, description=?, price=?, image=?, stock=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`,
		p.Name, p.Description, p.Price, p.Image, p.Stock, p.ID)
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

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
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
