package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ostlund/vanir/internal/domain"
)

// SaleRepository implements domain.SaleRepository using PostgreSQL.
// Items are stored document-style: Update rewrites the full item set inside
// one transaction, which keeps the stored state an exact mirror of the
// aggregate.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// Compile-time check that SaleRepository implements domain.SaleRepository.
var _ domain.SaleRepository = (*SaleRepository)(nil)

// NewSaleRepository creates a new PostgreSQL-backed sale repository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (id, created_at, customer_id, customer_name, branch_id, branch_name, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sale.ID(), sale.CreatedAt(),
		sale.CustomerID(), sale.CustomerName(),
		sale.BranchID(), sale.BranchName(),
		string(sale.Status()),
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	if err := insertItems(ctx, tx, sale); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SaleRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, created_at, customer_id, customer_name, branch_id, branch_name, status
		 FROM sales WHERE id = $1`, id)

	var rec saleRecord
	if err := row.Scan(&rec.id, &rec.createdAt, &rec.customerID, &rec.customerName, &rec.branchID, &rec.branchName, &rec.status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("query sale: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}

	return rec.restore(items), nil
}

func (r *SaleRepository) List(ctx context.Context) ([]*domain.Sale, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, created_at, customer_id, customer_name, branch_id, branch_name, status
		 FROM sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var records []saleRecord
	for rows.Next() {
		var rec saleRecord
		if err := rows.Scan(&rec.id, &rec.createdAt, &rec.customerID, &rec.customerName, &rec.branchID, &rec.branchName, &rec.status); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}

	sales := make([]*domain.Sale, len(records))
	for i, rec := range records {
		items, err := r.loadItems(ctx, rec.id)
		if err != nil {
			return nil, err
		}
		sales[i] = rec.restore(items)
	}

	return sales, nil
}

func (r *SaleRepository) Update(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE sales SET status = $2 WHERE id = $1`,
		sale.ID(), string(sale.Status()),
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID()); err != nil {
		return fmt.Errorf("clear sale items: %w", err)
	}

	if err := insertItems(ctx, tx, sale); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *SaleRepository) loadItems(ctx context.Context, saleID uuid.UUID) ([]domain.SaleItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, product_name, quantity,
		        unit_price::text, discount_pct::text, total_amount::text
		 FROM sale_items WHERE sale_id = $1 ORDER BY position`, saleID)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var (
			id, productID              uuid.UUID
			productName                string
			quantity                   int
			unitPrice, discount, total string
		)
		if err := rows.Scan(&id, &productID, &productName, &quantity, &unitPrice, &discount, &total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}

		price, err := parseDecimal(unitPrice)
		if err != nil {
			return nil, err
		}
		pct, err := parseDecimal(discount)
		if err != nil {
			return nil, err
		}
		amount, err := parseDecimal(total)
		if err != nil {
			return nil, err
		}

		items = append(items, domain.RestoreSaleItem(id, productID, productName, quantity, price, pct, amount))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale items: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, sale *domain.Sale) error {
	for position, item := range sale.Items() {
		_, err := tx.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, position, product_id, product_name, quantity, unit_price, discount_pct, total_amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, sale.ID(), position,
			item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice.String(), item.DiscountPct.String(), item.Total.String(),
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// saleRecord is the flat row shape scanned from the sales table.
type saleRecord struct {
	id           uuid.UUID
	createdAt    time.Time
	customerID   uuid.UUID
	customerName string
	branchID     uuid.UUID
	branchName   string
	status       string
}

func (rec saleRecord) restore(items []domain.SaleItem) *domain.Sale {
	return domain.RestoreSale(
		rec.id, rec.createdAt,
		rec.customerID, rec.customerName,
		rec.branchID, rec.branchName,
		domain.SaleStatus(rec.status), items,
	)
}
