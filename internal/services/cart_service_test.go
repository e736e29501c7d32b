package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"mercadito/internal/repos"
	"mercadito/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	INSERT INTO users(id,name,email,password_hash,role) VALUES
	  ('u-buyer','Buyer','buyer@test.local','x','buyer'),
	  ('u-seller','Seller','seller@test.local','x','seller');
	INSERT INTO products(id,name,description,price,image,stock,seller_id) VALUES
	  ('p-mate','Mate','Mate de calabaza',35.0,'https://img/mate.jpg',10,'u-seller'),
	  ('p-bombilla','Bombilla','Bombilla de acero',12.5,'https://img/bombilla.jpg',30,'u-seller');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newCartService(db *sqlx.DB) *services.CartService {
	return services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
}

func TestGetOrCreateStableCartID(t *testing.T) {
	db := memdb(t)
	svc := newCartService(db)

	first, err := svc.GetOrCreate("u-buyer", "buyer")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || len(first.Items) != 0 {
		t.Fatalf("want fresh empty cart, got %+v", first)
	}

	second, err := svc.GetOrCreate("u-buyer", "buyer")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("second call created a different cart: %s != %s", second.ID, first.ID)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM carts WHERE user_id='u-buyer'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly one cart row, got %d", n)
	}
}

func TestGetOrCreateSurvivesCreationRace(t *testing.T) {
	db := memdb(t)
	svc := newCartService(db)

	// Another request won the insert between our read and write.
	db.MustExec(`INSERT INTO carts(id,user_id) VALUES('c-winner','u-buyer')`)

	cart, err := svc.GetOrCreate("u-buyer", "buyer")
	if err != nil {
		t.Fatal(err)
	}
	if cart.ID != "c-winner" {
		t.Fatalf("want the existing cart, got %s", cart.ID)
	}
}

func TestAddItemsMergesQuantities(t *testing.T) {
	svc := newCartService(memdb(t))

	if _, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{{ProductID: "p-mate", Quantity: 2}}); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{{ProductID: "p-mate", Quantity: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("want a single merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("want merged quantity 5, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Product.Name != "Mate" {
		t.Fatalf("product not expanded on line: %+v", cart.Items[0])
	}
}

func TestAddItemsMissingProductLeavesCartUnchanged(t *testing.T) {
	svc := newCartService(memdb(t))

	_, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{
		{ProductID: "p-mate", Quantity: 1},
		{ProductID: "p-nope", Quantity: 1},
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	cart, err := svc.GetOrCreate("u-buyer", "buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("partial mutation applied: %+v", cart.Items)
	}
}

func TestUpdateItemQuantityOverwrites(t *testing.T) {
	svc := newCartService(memdb(t))

	if _, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{{ProductID: "p-mate", Quantity: 5}}); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.UpdateItemQuantity("u-buyer", "buyer", "p-mate", 1)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("want absolute overwrite to 1, got %d", cart.Items[0].Quantity)
	}
}

func TestUpdateItemQuantityStrictNotFound(t *testing.T) {
	svc := newCartService(memdb(t))

	// No cart yet for this user.
	if _, err := svc.UpdateItemQuantity("u-buyer", "buyer", "p-mate", 2); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound without a cart, got %v", err)
	}

	if _, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{{ProductID: "p-mate", Quantity: 1}}); err != nil {
		t.Fatal(err)
	}
	// Product exists in catalog but not in the cart.
	if _, err := svc.UpdateItemQuantity("u-buyer", "buyer", "p-bombilla", 2); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound for product not in cart, got %v", err)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	svc := newCartService(memdb(t))

	if _, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{
		{ProductID: "p-mate", Quantity: 2},
		{ProductID: "p-bombilla", Quantity: 1},
	}); err != nil {
		t.Fatal(err)
	}

	// Removing an absent product succeeds and changes nothing.
	cart, err := svc.RemoveItem("u-buyer", "p-nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("absent removal changed cart: %+v", cart.Items)
	}

	// Removing a present product deletes only that line.
	cart, err = svc.RemoveItem("u-buyer", "p-mate")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Product.ID != "p-bombilla" {
		t.Fatalf("want only p-bombilla left, got %+v", cart.Items)
	}
}

func TestRemoveItemNoCartNotFound(t *testing.T) {
	svc := newCartService(memdb(t))
	if _, err := svc.RemoveItem("u-buyer", "p-mate"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound without a cart, got %v", err)
	}
}

func TestSellerForbiddenNoStateChange(t *testing.T) {
	db := memdb(t)
	svc := newCartService(db)

	if _, err := svc.GetOrCreate("u-seller", "seller"); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("want ErrForbidden on get, got %v", err)
	}
	if _, err := svc.AddItems("u-seller", "seller", []repos.LineInput{{ProductID: "p-mate", Quantity: 1}}); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("want ErrForbidden on add, got %v", err)
	}
	if _, err := svc.UpdateItemQuantity("u-seller", "seller", "p-mate", 1); !errors.Is(err, services.ErrForbidden) {
		t.Fatalf("want ErrForbidden on update, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM carts WHERE user_id='u-seller'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("forbidden call created a cart")
	}
}

func TestAddItemsRejectsBadQuantity(t *testing.T) {
	svc := newCartService(memdb(t))
	for _, qty := range []int{0, -3} {
		if _, err := svc.AddItems("u-buyer", "buyer", []repos.LineInput{{ProductID: "p-mate", Quantity: qty}}); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("want ErrValidation for qty=%d, got %v", qty, err)
		}
	}
}
