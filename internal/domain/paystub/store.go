package paystub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Record is one persisted paystub, keyed by employee and pay date.
type Record struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	PayDate         time.Time       `json:"payDate"`
	PeriodStart     time.Time       `json:"payPeriodStart"`
	PeriodEnd       time.Time       `json:"payPeriodEnd"`
	Earnings        []EarningsLine  `json:"earnings"`
	Deductions      []DeductionLine `json:"deductions"`
	GrossPay        decimal.Decimal `json:"grossPay"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
	FileName        string          `json:"fileName"`
	PDF             []byte          `json:"-"`
	Encrypted       bool            `json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Summary is the listing shape for the employee portal.
type Summary struct {
	ID          string    `json:"id"`
	PayDate     time.Time `json:"payDate"`
	PeriodStart time.Time `json:"payPeriodStart"`
	PeriodEnd   time.Time `json:"payPeriodEnd"`
	FileName    string    `json:"fileName"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, rec Record) (string, error) {
	earnings, err := json.Marshal(rec.Earnings)
	if err != nil {
		return "", err
	}
	deductions, err := json.Marshal(rec.Deductions)
	if err != nil {
		return "", err
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO paystubs (
      employee_id, employee_name, pay_date, pay_period_start, pay_period_end,
      earnings, deductions, gross_pay, total_deductions, net_pay,
      file_name, pdf, pdf_encrypted
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `, rec.EmployeeID, rec.EmployeeName, rec.PayDate, rec.PeriodStart, rec.PeriodEnd,
		earnings, deductions, rec.GrossPay, rec.TotalDeductions, rec.NetPay,
		rec.FileName, rec.PDF, rec.Encrypted).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByEmployee returns paystub summaries newest first, optionally scoped to
// one pay-date year.
func (s *Store) ListByEmployee(ctx context.Context, employeeID string, year int) ([]Summary, error) {
	query := `
    SELECT id, pay_date, pay_period_start, pay_period_end, file_name
    FROM paystubs
    WHERE employee_id = $1
  `
	args := []any{employeeID}
	if year > 0 {
		query += " AND EXTRACT(YEAR FROM pay_date) = $2"
		args = append(args, year)
	}
	query += " ORDER BY pay_date DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Summary
	for rows.Next() {
		var item Summary
		if err := rows.Scan(&item.ID, &item.PayDate, &item.PeriodStart, &item.PeriodEnd, &item.FileName); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AvailableYears lists the distinct pay-date years an employee has paystubs
// for, newest first.
func (s *Store) AvailableYears(ctx context.Context, employeeID string) ([]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT EXTRACT(YEAR FROM pay_date)::int AS year
    FROM paystubs
    WHERE employee_id = $1
    ORDER BY year DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	var earnings, deductions []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, employee_name, pay_date, pay_period_start, pay_period_end,
           earnings, deductions, gross_pay, total_deductions, net_pay,
           COALESCE(file_name, ''), pdf, pdf_encrypted, created_at
    FROM paystubs
    WHERE id = $1
  `, id).Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.PayDate, &rec.PeriodStart,
		&rec.PeriodEnd, &earnings, &deductions, &rec.GrossPay, &rec.TotalDeductions,
		&rec.NetPay, &rec.FileName, &rec.PDF, &rec.Encrypted, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(earnings, &rec.Earnings); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(deductions, &rec.Deductions); err != nil {
		return Record{}, err
	}
	return rec, nil
}
