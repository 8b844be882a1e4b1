package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/timberpunk/timberpunk/internal/model"
)

// ProductNotFoundError reports a cart line referencing a nonexistent product.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ProductID)
}

// OrderParams holds the customer fields and cart lines for checkout.
type OrderParams struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	ShippingAddress string
	Note            string
	Items           []OrderItemParams
}

// OrderItemParams is one cart line.
type OrderItemParams struct {
	ProductID       int64
	Quantity        int
	SelectedOptions string
	CustomEngraving string
}

// CreateOrder validates the cart, computes the total from live product prices,
// snapshots product name and price into each line and persists the order with
// all its items in a single transaction. If any referenced product does not
// exist the whole operation is rolled back and a *ProductNotFoundError names
// the offending id.
func CreateOrder(ctx context.Context, db *sql.DB, params OrderParams) (*model.Order, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Resolve every cart line against the live catalog before writing anything.
	type resolvedItem struct {
		OrderItemParams
		name  string
		price float64
	}
	var total float64
	resolved := make([]resolvedItem, 0, len(params.Items))

	for _, item := range params.Items {
		var name string
		var price float64
		err := tx.QueryRowContext(ctx,
			`SELECT name, price FROM products WHERE id = ?`, item.ProductID,
		).Scan(&name, &price)
		if err == sql.ErrNoRows {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if err != nil {
			return nil, fmt.Errorf("looking up product %d: %w", item.ProductID, err)
		}

		total += price * float64(item.Quantity)
		resolved = append(resolved, resolvedItem{OrderItemParams: item, name: name, price: price})
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (first_name, last_name, email, phone, shipping_address, note, status, total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		params.FirstName, params.LastName, params.Email, nullString(params.Phone),
		params.ShippingAddress, nullString(params.Note), model.OrderStatusNew, total,
	)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order id: %w", err)
	}

	for _, item := range resolved {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity,
			                          selected_options, custom_engraving)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.name, item.price, item.Quantity,
			nullString(item.SelectedOptions), nullString(item.CustomEngraving),
		)
		if err != nil {
			return nil, fmt.Errorf("creating order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return GetOrder(ctx, db, orderID)
}

// GetOrder returns an order with its items.
func GetOrder(ctx context.Context, db *sql.DB, id int64) (*model.Order, error) {
	o := &model.Order{}
	var phone, note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, phone, shipping_address, note, status, total,
		        created_at, updated_at
		 FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &phone, &o.ShippingAddress, &note,
		&o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	o.Phone = phone.String
	o.Note = note.String

	items, err := listOrderItems(ctx, db, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// ListOrders returns all orders with items, newest-created first, optionally
// filtered by exact status.
func ListOrders(ctx context.Context, db *sql.DB, status string) ([]model.Order, error) {
	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, first_name, last_name, email, phone, shipping_address, note, status, total,
			        created_at, updated_at
			 FROM orders WHERE status = ? ORDER BY created_at DESC, id DESC`, status,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, first_name, last_name, email, phone, shipping_address, note, status, total,
			        created_at, updated_at
			 FROM orders ORDER BY created_at DESC, id DESC`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var phone, note sql.NullString
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &phone, &o.ShippingAddress,
			&note, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		o.Phone = phone.String
		o.Note = note.String
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := listOrderItems(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateOrderStatus overwrites an order's status. Any valid status may replace
// any other; no transition graph is enforced.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	return nil
}

// DeleteOrder removes an order and its items in a single transaction.
func DeleteOrder(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return fmt.Errorf("deleting order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order deletion: %w", err)
	}
	return nil
}

func listOrderItems(ctx context.Context, db *sql.DB, orderID int64) ([]model.OrderItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, product_price, quantity,
		        selected_options, custom_engraving
		 FROM order_items WHERE order_id = ? ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		var options, engraving sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductPrice, &item.Quantity, &options, &engraving); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		item.SelectedOptions = options.String
		item.CustomEngraving = engraving.String
		items = append(items, item)
	}
	return items, rows.Err()
}
