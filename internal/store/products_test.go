package store

import (
	"context"
	"testing"

	"github.com/timberpunk/timberpunk/internal/db"
)

func TestCreateAndGetProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, err := CreateProduct(ctx, database, ProductParams{
		Name:        "Walnut Coaster Set",
		Description: "Set of 4 premium walnut coasters.",
		Price:       34.99,
		Category:    "coasters",
		Options:     `{"designs": ["Geometric", "Nature"]}`,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Name != "Walnut Coaster Set" {
		t.Errorf("expected name 'Walnut Coaster Set', got %q", product.Name)
	}
	if product.Price != 34.99 {
		t.Errorf("expected price 34.99, got %v", product.Price)
	}
	if product.UpdatedAt != nil {
		t.Error("expected nil updated_at on fresh product")
	}

	got, err := GetProduct(ctx, database, product.ID)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if got.Options != `{"designs": ["Geometric", "Nature"]}` {
		t.Errorf("unexpected options: %q", got.Options)
	}
	if got.ShortDescription != "" {
		t.Errorf("expected empty short description, got %q", got.ShortDescription)
	}
}

func TestGetProductNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	product, err := GetProduct(context.Background(), database, 9999)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product != nil {
		t.Error("expected nil for missing product")
	}
}

func TestListProductsFilterByCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateProduct(ctx, database, ProductParams{Name: "Sign A", Description: "d", Price: 10, Category: "signs"})
	CreateProduct(ctx, database, ProductParams{Name: "Coasters", Description: "d", Price: 20, Category: "coasters"})
	CreateProduct(ctx, database, ProductParams{Name: "Sign B", Description: "d", Price: 30, Category: "signs"})

	all, err := ListProducts(ctx, database, "")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 products, got %d", len(all))
	}

	signs, _ := ListProducts(ctx, database, "signs")
	if len(signs) != 2 {
		t.Errorf("expected 2 signs, got %d", len(signs))
	}

	none, _ := ListProducts(ctx, database, "furniture")
	if len(none) != 0 {
		t.Errorf("expected 0 products, got %d", len(none))
	}
}

func TestUpdateProductPartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := CreateProduct(ctx, database, ProductParams{
		Name:        "Cutting Board",
		Description: "Maple cutting board.",
		Price:       64.99,
		Category:    "gifts",
	})

	// Supplying only price must leave every other field untouched.
	price := 99.99
	if err := UpdateProduct(ctx, database, product.ID, ProductUpdate{Price: &price}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	got, _ := GetProduct(ctx, database, product.ID)
	if got.Price != 99.99 {
		t.Errorf("expected price 99.99, got %v", got.Price)
	}
	if got.Name != "Cutting Board" {
		t.Errorf("name changed unexpectedly: %q", got.Name)
	}
	if got.Description != "Maple cutting board." {
		t.Errorf("description changed unexpectedly: %q", got.Description)
	}
	if got.Category != "gifts" {
		t.Errorf("category changed unexpectedly: %q", got.Category)
	}
	if got.UpdatedAt == nil {
		t.Error("expected updated_at to be set after update")
	}
}

func TestUpdateProductNoFields(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := CreateProduct(ctx, database, ProductParams{
		Name: "Phone Stand", Description: "d", Price: 29.99, Category: "gifts",
	})

	if err := UpdateProduct(ctx, database, product.ID, ProductUpdate{}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	got, _ := GetProduct(ctx, database, product.ID)
	if got.UpdatedAt != nil {
		t.Error("empty update should not touch the row")
	}
}

func TestDeleteProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := CreateProduct(ctx, database, ProductParams{
		Name: "Sign", Description: "d", Price: 10, Category: "signs",
	})

	if err := DeleteProduct(ctx, database, product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	got, _ := GetProduct(ctx, database, product.ID)
	if got != nil {
		t.Error("expected product to be gone")
	}
}

func TestProductImageRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	product, _ := CreateProduct(ctx, database, ProductParams{
		Name: "Wall Art", Description: "d", Price: 89.99, Category: "wall art",
	})

	data, mime, err := GetProductImage(ctx, database, product.ID)
	if err != nil {
		t.Fatalf("GetProductImage: %v", err)
	}
	if data != nil || mime != "" {
		t.Error("expected no image on fresh product")
	}

	if err := SetProductImage(ctx, database, product.ID, []byte{0xff, 0xd8, 0x01}, "image/jpeg"); err != nil {
		t.Fatalf("SetProductImage: %v", err)
	}

	data, mime, err = GetProductImage(ctx, database, product.ID)
	if err != nil {
		t.Fatalf("GetProductImage: %v", err)
	}
	if len(data) != 3 || mime != "image/jpeg" {
		t.Errorf("unexpected image data: %d bytes, mime %q", len(data), mime)
	}
}
