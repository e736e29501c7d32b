package services_test

import (
	"errors"
	"testing"

	"mercadito/internal/repos"
	"mercadito/internal/services"
)

func newCatalogService(t *testing.T) *services.CatalogService {
	t.Helper()
	db := memdb(t)
	return services.NewCatalogService(repos.NewProductRepo(db))
}

func TestCatalogCreateAndGet(t *testing.T) {
	svc := newCatalogService(t)

	p, err := svc.Create(services.ProductInput{
		Name: "Termo", Description: "Termo de acero 1L", Price: 48, Image: "https://img/termo.jpg", Stock: 7,
	}, "u-seller")
	if err != nil {
		t.Fatal(err)
	}
	if p.SellerID != "u-seller" {
		t.Fatalf("seller not recorded from caller: %+v", p)
	}

	got, err := svc.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Termo" || got.Price != 48 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := svc.Get("no-such-product"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := newCatalogService(t)
	cases := []services.ProductInput{
		// missing name
		{Description: "d", Image: "i", Price: 1, Stock: 1},
		// negative price
		{Name: "n", Description: "d", Image: "i", Price: -1, Stock: 1},
		// negative stock
		{Name: "n", Description: "d", Image: "i", Price: 1, Stock: -5},
		// missing description
		{Name: "n", Image: "i", Price: 1, Stock: 1},
	}
	for i, in := range cases {
		if _, err := svc.Create(in, "u-seller"); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("case %d: want ErrValidation, got %v", i, err)
		}
	}
}

func TestCatalogUpdatePartialAndDelete(t *testing.T) {
	svc := newCatalogService(t)

	price := 99.0
	p, err := svc.Update("p-mate", services.ProductUpdate{Price: &price})
	if err != nil {
		t.Fatal(err)
	}
	if p.Price != 99 || p.Name != "Mate" {
		t.Fatalf("partial update touched wrong fields: %+v", p)
	}

	if _, err := svc.Update("no-such-product", services.ProductUpdate{Price: &price}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	if err := svc.Delete("p-mate"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete("p-mate"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound on second delete, got %v", err)
	}
}

func TestCatalogFindByIDsBatch(t *testing.T) {
	svc := newCatalogService(t)

	found, err := svc.FindByIDs([]string{"p-mate", "p-bombilla", "p-nope"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 2 {
		t.Fatalf("want 2 found, got %d", len(found))
	}

	found, err = svc.FindByIDs(nil)
	if err != nil || len(found) != 0 {
		t.Fatalf("empty batch: found=%v err=%v", found, err)
	}
}
