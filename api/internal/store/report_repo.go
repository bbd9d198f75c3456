package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"medassist/api/internal/ai"
)

// Report is one persisted analysis result.
type Report struct {
	ID        int64        `json:"id"`
	SessionID string       `json:"sessionId"`
	Kind      string       `json:"kind"` // "symptom" | "photo"
	Diagnosis ai.Diagnosis `json:"diagnosis"`
	CreatedAt time.Time    `json:"createdAt"`
}

type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

func (r *ReportRepo) Save(ctx context.Context, sessionID, kind string, d ai.Diagnosis) (int64, error) {
	js, _ := json.Marshal(d)
	const q = `
insert into reports(session_id, kind, diagnosis_json)
values ($1,$2,$3)
returning id`
	var id int64
	if err := r.DB.QueryRowContext(ctx, q, sessionID, kind, js).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns the most recent reports for a session, newest first.
func (r *ReportRepo) List(ctx context.Context, sessionID string, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `select id, session_id, kind, diagnosis_json, created_at
	           from reports
	           where session_id=$1
	           order by created_at desc
	           limit $2`
	rows, err := r.DB.QueryContext(ctx, q, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var (
			rep Report
			js  []byte
		)
		if err := rows.Scan(&rep.ID, &rep.SessionID, &rep.Kind, &js, &rep.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(js, &rep.Diagnosis); err != nil {
			// Skip rows with a schema the current build no longer reads.
			continue
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportRepo) Get(ctx context.Context, id int64) (Report, error) {
	const q = `select id, session_id, kind, diagnosis_json, created_at
	           from reports where id=$1`
	var (
		rep Report
		js  []byte
	)
	if err := r.DB.QueryRowContext(ctx, q, id).Scan(&rep.ID, &rep.SessionID, &rep.Kind, &js, &rep.CreatedAt); err != nil {
		return Report{}, err
	}
	if err := json.Unmarshal(js, &rep.Diagnosis); err != nil {
		return Report{}, sql.ErrNoRows
	}
	return rep, nil
}
