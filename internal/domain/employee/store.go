package employee

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, email, legal_first_name, legal_last_name, COALESCE(preferred_name, ''),
  job_title, department, hire_date, COALESCE(phone, ''),
  role, employment_status, last_login, created_at
`

func scanEmployee(row interface{ Scan(...any) error }) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.Email, &e.LegalFirstName, &e.LegalLastName, &e.PreferredName,
		&e.JobTitle, &e.Department, &e.HireDate, &e.Phone,
		&e.Role, &e.EmploymentStatus, &e.LastLogin, &e.CreatedAt)
	return e, err
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+employeeColumns+" FROM users WHERE id = $1", id)
	return scanEmployee(row)
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM users ORDER BY legal_last_name, legal_first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, e Employee, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (
      email, password_hash, legal_first_name, legal_last_name, preferred_name,
      job_title, department, hire_date, phone, role, employment_status
    )
    VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,$7,$8,NULLIF($9,''),$10,$11)
    RETURNING id
  `, e.Email, passwordHash, e.LegalFirstName, e.LegalLastName, e.PreferredName,
		e.JobTitle, e.Department, e.HireDate, e.Phone, e.Role, e.EmploymentStatus).Scan(&id)
	return id, err
}

func (s *Store) Update(ctx context.Context, e Employee) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE users
    SET legal_first_name = $1, legal_last_name = $2, preferred_name = NULLIF($3,''),
        job_title = $4, department = $5, hire_date = $6, phone = NULLIF($7,''),
        role = $8, employment_status = $9
    WHERE id = $10
  `, e.LegalFirstName, e.LegalLastName, e.PreferredName, e.JobTitle, e.Department,
		e.HireDate, e.Phone, e.Role, e.EmploymentStatus, e.ID)
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}
