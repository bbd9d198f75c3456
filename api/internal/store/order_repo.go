package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"medassist/api/internal/shop"
)

type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// Save records a settled order. Reference doubles as the idempotency key so
// a replayed confirmation does not duplicate the row.
func (r *OrderRepo) Save(ctx context.Context, sessionID string, o shop.Order) error {
	items, _ := json.Marshal(o.Items)
	shipping, _ := json.Marshal(o.Shipping)
	const q = `
insert into orders(reference, session_id, total, currency, items_json, shipping_json)
values ($1,$2,$3,$4,$5,$6)
on conflict (reference) do nothing`
	_, err := r.DB.ExecContext(ctx, q, o.Receipt.Reference, sessionID, o.Total, string(o.Currency), items, shipping)
	return err
}

// Find returns a stored order by payment reference.
func (r *OrderRepo) Find(ctx context.Context, reference string) (shop.Order, time.Time, error) {
	const q = `select total, currency, items_json, shipping_json, created_at
	           from orders where reference=$1`
	var (
		o        shop.Order
		items    []byte
		shipping []byte
		ts       time.Time
		cur      string
	)
	if err := r.DB.QueryRowContext(ctx, q, reference).Scan(&o.Total, &cur, &items, &shipping, &ts); err != nil {
		return shop.Order{}, time.Time{}, err
	}
	o.Currency = shop.Currency(cur)
	o.Receipt.Reference = reference
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return shop.Order{}, time.Time{}, sql.ErrNoRows
	}
	if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
		return shop.Order{}, time.Time{}, sql.ErrNoRows
	}
	return o, ts, nil
}
