package verification

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Request statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusDeclined  = "declined"
)

// Request is an employment-verification request: a third party (lender,
// landlord) asks the company to confirm employment, optionally with salary.
type Request struct {
	ID              string           `json:"id"`
	EmployeeID      string           `json:"employeeId"`
	VerifierName    string           `json:"verifierName"`
	VerifierCompany string           `json:"verifierCompany,omitempty"`
	VerifierEmail   string           `json:"verifierEmail,omitempty"`
	Purpose         string           `json:"purpose"`
	IncludeSalary   bool             `json:"includeSalary"`
	SalaryAmount    *decimal.Decimal `json:"salaryAmount,omitempty"`
	Status          string           `json:"status"`
	DecidedBy       string           `json:"decidedBy,omitempty"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, req Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO verification_requests (
      employee_id, verifier_name, verifier_company, verifier_email,
      purpose, include_salary, salary_amount, status
    )
    VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5,$6,$7,$8)
    RETURNING id
  `, req.EmployeeID, req.VerifierName, req.VerifierCompany, req.VerifierEmail,
		req.Purpose, req.IncludeSalary, req.SalaryAmount, StatusPending).Scan(&id)
	return id, err
}

const requestColumns = `
  id, employee_id, verifier_name, COALESCE(verifier_company, ''), COALESCE(verifier_email, ''),
  purpose, include_salary, salary_amount, status, COALESCE(decided_by::text, ''), decided_at, created_at
`

func scanRequest(row interface{ Scan(...any) error }) (Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.EmployeeID, &r.VerifierName, &r.VerifierCompany, &r.VerifierEmail,
		&r.Purpose, &r.IncludeSalary, &r.SalaryAmount, &r.Status, &r.DecidedBy, &r.DecidedAt, &r.CreatedAt)
	return r, err
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM verification_requests WHERE id = $1", id)
	return scanRequest(row)
}

// List returns requests newest first; an empty employeeID lists all (admin).
func (s *Store) List(ctx context.Context, employeeID string) ([]Request, error) {
	query := "SELECT " + requestColumns + " FROM verification_requests"
	args := []any{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Decide(ctx context.Context, id, status, decidedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE verification_requests
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE id = $3 AND status = $4
  `, status, decidedBy, id, StatusPending)
	return err
}
