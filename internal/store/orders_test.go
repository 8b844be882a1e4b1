package store

import (
	"context"
	"errors"
	"testing"

	"github.com/timberpunk/timberpunk/internal/db"
	"github.com/timberpunk/timberpunk/internal/model"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p1, _ := CreateProduct(ctx, database, ProductParams{Name: "A", Description: "d", Price: 10.00, Category: "gifts"})
	p2, _ := CreateProduct(ctx, database, ProductParams{Name: "B", Description: "d", Price: 5.00, Category: "gifts"})

	order, err := CreateOrder(ctx, database, OrderParams{
		FirstName:       "Jamie",
		LastName:        "Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items: []OrderItemParams{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.Total != 25.00 {
		t.Errorf("expected total 25.00, got %v", order.Total)
	}
	if order.Status != model.OrderStatusNew {
		t.Errorf("expected status NEW, got %q", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if order.Items[0].ProductPrice != 10.00 || order.Items[1].ProductPrice != 5.00 {
		t.Errorf("unexpected snapshot prices: %v, %v", order.Items[0].ProductPrice, order.Items[1].ProductPrice)
	}
	if order.Items[0].ProductName != "A" {
		t.Errorf("expected snapshot name 'A', got %q", order.Items[0].ProductName)
	}
}

func TestCreateOrderUnknownProductRollsBack(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreateProduct(ctx, database, ProductParams{Name: "A", Description: "d", Price: 10, Category: "gifts"})

	_, err := CreateOrder(ctx, database, OrderParams{
		FirstName:       "Jamie",
		LastName:        "Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items: []OrderItemParams{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})

	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ProductNotFoundError, got %v", err)
	}
	if notFound.ProductID != 9999 {
		t.Errorf("expected offending id 9999, got %d", notFound.ProductID)
	}

	// Nothing may have been persisted.
	orders, _ := ListOrders(ctx, database, "")
	if len(orders) != 0 {
		t.Errorf("expected 0 orders after rollback, got %d", len(orders))
	}
	var itemCount int
	database.QueryRow(`SELECT COUNT(*) FROM order_items`).Scan(&itemCount)
	if itemCount != 0 {
		t.Errorf("expected 0 order items after rollback, got %d", itemCount)
	}
}

func TestOrderSnapshotSurvivesProductChanges(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreateProduct(ctx, database, ProductParams{Name: "Original Name", Description: "d", Price: 50, Category: "gifts"})

	order, err := CreateOrder(ctx, database, OrderParams{
		FirstName:       "Jamie",
		LastName:        "Doe",
		Email:           "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items:           []OrderItemParams{{ProductID: p.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Mutate and then delete the product.
	name := "Renamed"
	price := 999.0
	UpdateProduct(ctx, database, p.ID, ProductUpdate{Name: &name, Price: &price})
	DeleteProduct(ctx, database, p.ID)

	got, err := GetOrder(ctx, database, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if got.Items[0].ProductName != "Original Name" {
		t.Errorf("snapshot name changed: %q", got.Items[0].ProductName)
	}
	if got.Items[0].ProductPrice != 50 {
		t.Errorf("snapshot price changed: %v", got.Items[0].ProductPrice)
	}
	if got.Total != 50 {
		t.Errorf("total changed: %v", got.Total)
	}
}

func TestUpdateOrderStatusIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreateProduct(ctx, database, ProductParams{Name: "A", Description: "d", Price: 10, Category: "gifts"})
	order, _ := CreateOrder(ctx, database, OrderParams{
		FirstName: "Jamie", LastName: "Doe", Email: "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items:           []OrderItemParams{{ProductID: p.ID, Quantity: 1}},
	})

	for i := 0; i < 2; i++ {
		if err := UpdateOrderStatus(ctx, database, order.ID, model.OrderStatusCompleted); err != nil {
			t.Fatalf("UpdateOrderStatus (attempt %d): %v", i+1, err)
		}
		got, _ := GetOrder(ctx, database, order.ID)
		if got.Status != model.OrderStatusCompleted {
			t.Errorf("expected COMPLETED, got %q", got.Status)
		}
	}

	// No transition graph: a terminal status may be overwritten.
	if err := UpdateOrderStatus(ctx, database, order.ID, model.OrderStatusNew); err != nil {
		t.Fatalf("UpdateOrderStatus back to NEW: %v", err)
	}
	got, _ := GetOrder(ctx, database, order.ID)
	if got.Status != model.OrderStatusNew {
		t.Errorf("expected NEW, got %q", got.Status)
	}
}

func TestListOrdersNewestFirstAndFiltered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreateProduct(ctx, database, ProductParams{Name: "A", Description: "d", Price: 10, Category: "gifts"})

	params := OrderParams{
		FirstName: "Jamie", LastName: "Doe", Email: "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items:           []OrderItemParams{{ProductID: p.ID, Quantity: 1}},
	}
	first, _ := CreateOrder(ctx, database, params)
	second, _ := CreateOrder(ctx, database, params)

	orders, err := ListOrders(ctx, database, "")
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Errorf("expected newest first: got %d, %d", orders[0].ID, orders[1].ID)
	}

	UpdateOrderStatus(ctx, database, first.ID, model.OrderStatusCanceled)

	canceled, _ := ListOrders(ctx, database, model.OrderStatusCanceled)
	if len(canceled) != 1 || canceled[0].ID != first.ID {
		t.Errorf("expected only the canceled order, got %d orders", len(canceled))
	}
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, _ := CreateProduct(ctx, database, ProductParams{Name: "A", Description: "d", Price: 10, Category: "gifts"})
	order, _ := CreateOrder(ctx, database, OrderParams{
		FirstName: "Jamie", LastName: "Doe", Email: "jamie@example.com",
		ShippingAddress: "1 Main St",
		Items:           []OrderItemParams{{ProductID: p.ID, Quantity: 2}},
	})

	if err := DeleteOrder(ctx, database, order.ID); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	got, _ := GetOrder(ctx, database, order.ID)
	if got != nil {
		t.Error("expected order to be gone")
	}
	var itemCount int
	database.QueryRow(`SELECT COUNT(*) FROM order_items WHERE order_id = ?`, order.ID).Scan(&itemCount)
	if itemCount != 0 {
		t.Errorf("expected 0 order items, got %d", itemCount)
	}
}
