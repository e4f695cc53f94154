package document

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is uploaded-file metadata; the bytes live on disk under the
// configured document directory, optionally encrypted at rest.
type Document struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"-"`
	SizeBytes  int64     `json:"sizeBytes"`
	Encrypted  bool      `json:"-"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, doc Document) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO documents (employee_id, title, category, file_name, file_path, size_bytes, encrypted, uploaded_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, doc.EmployeeID, doc.Title, doc.Category, doc.FileName, doc.FilePath,
		doc.SizeBytes, doc.Encrypted, doc.UploadedBy).Scan(&id)
	return id, err
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Document, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, title, category, file_name, file_path, size_bytes, encrypted, uploaded_by, created_at
    FROM documents
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Title, &d.Category, &d.FileName,
			&d.FilePath, &d.SizeBytes, &d.Encrypted, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	var d Document
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, title, category, file_name, file_path, size_bytes, encrypted, uploaded_by, created_at
    FROM documents
    WHERE id = $1
  `, id).Scan(&d.ID, &d.EmployeeID, &d.Title, &d.Category, &d.FileName,
		&d.FilePath, &d.SizeBytes, &d.Encrypted, &d.UploadedBy, &d.CreatedAt)
	return d, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM documents WHERE id = $1", id)
	return err
}
