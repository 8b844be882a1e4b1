package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/timberpunk/timberpunk/internal/model"
)

// ProductParams holds the fields for creating a product.
type ProductParams struct {
	Name             string
	Description      string
	ShortDescription string
	Price            float64
	Category         string
	ImageURL         string
	Options          string
}

// ProductUpdate holds a partial product update. Nil fields are left untouched.
type ProductUpdate struct {
	Name             *string
	Description      *string
	ShortDescription *string
	Price            *float64
	Category         *string
	ImageURL         *string
	Options          *string
}

// CreateProduct creates a new product.
func CreateProduct(ctx context.Context, db *sql.DB, p ProductParams) (*model.Product, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO products (name, description, short_description, price, category, image_url, options)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, nullString(p.ShortDescription), p.Price, p.Category,
		nullString(p.ImageURL), nullString(p.Options),
	)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	return GetProduct(ctx, db, id)
}

// GetProduct returns a product by ID.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	p := &model.Product{}
	var shortDesc, imageURL, options sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, short_description, price, category, image_url, options,
		        created_at, updated_at
		 FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &shortDesc, &p.Price, &p.Category, &imageURL,
		&options, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	p.ShortDescription = shortDesc.String
	p.ImageURL = imageURL.String
	p.Options = options.String
	return p, nil
}

// ListProducts returns all products, optionally filtered by exact category.
func ListProducts(ctx context.Context, db *sql.DB, category string) ([]model.Product, error) {
	var rows *sql.Rows
	var err error

	if category != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, description, short_description, price, category, image_url, options,
			        created_at, updated_at
			 FROM products WHERE category = ? ORDER BY id`, category,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, description, short_description, price, category, image_url, options,
			        created_at, updated_at
			 FROM products ORDER BY id`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var shortDesc, imageURL, options sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &shortDesc, &p.Price, &p.Category,
			&imageURL, &options, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.ShortDescription = shortDesc.String
		p.ImageURL = imageURL.String
		p.Options = options.String
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateProduct applies a partial update, touching only the supplied fields.
func UpdateProduct(ctx context.Context, db *sql.DB, id int64, upd ProductUpdate) error {
	var sets []string
	var args []any

	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.ShortDescription != nil {
		sets = append(sets, "short_description = ?")
		args = append(args, nullString(*upd.ShortDescription))
	}
	if upd.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *upd.Category)
	}
	if upd.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, nullString(*upd.ImageURL))
	}
	if upd.Options != nil {
		sets = append(sets, "options = ?")
		args = append(args, nullString(*upd.Options))
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := db.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product. Placed orders are unaffected because order
// items carry their own name/price snapshots.
func DeleteProduct(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

// SetProductImage sets a product's stored image data.
func SetProductImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE products SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting product image: %w", err)
	}
	return nil
}

// GetProductImage returns a product's stored image data and MIME type.
func GetProductImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM products WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting product image: %w", err)
	}
	return image, mime.String, nil
}

// nullString maps the empty string to NULL for optional text columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
