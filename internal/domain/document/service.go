package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	cryptoutil "kyronix/internal/platform/crypto"
)

// Service stores uploaded documents on disk and their metadata in Postgres.
type Service struct {
	store  *Store
	crypto *cryptoutil.Service
	dir    string
}

func NewService(store *Store, crypto *cryptoutil.Service, dir string) *Service {
	return &Service{store: store, crypto: crypto, dir: dir}
}

func (s *Service) Save(ctx context.Context, employeeID, uploadedBy, title, category, fileName string, data []byte) (Document, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Document{}, err
	}

	encrypted := false
	payload := data
	if s.crypto != nil && s.crypto.Configured() {
		sealed, err := s.crypto.Encrypt(data)
		if err != nil {
			return Document{}, err
		}
		payload = sealed
		encrypted = true
	}

	path := filepath.Join(s.dir, uuid.NewString()+".bin")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return Document{}, err
	}

	doc := Document{
		EmployeeID: employeeID,
		Title:      title,
		Category:   category,
		FileName:   fileName,
		FilePath:   path,
		SizeBytes:  int64(len(data)),
		Encrypted:  encrypted,
		UploadedBy: uploadedBy,
	}
	id, err := s.store.Insert(ctx, doc)
	if err != nil {
		_ = os.Remove(path)
		return Document{}, err
	}
	doc.ID = id
	return doc, nil
}

func (s *Service) Open(ctx context.Context, id string) (Document, []byte, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return Document{}, nil, fmt.Errorf("document %s unreadable: %w", id, err)
	}
	if doc.Encrypted {
		if data, err = s.crypto.Decrypt(data); err != nil {
			return Document{}, nil, err
		}
	}
	return doc, data, nil
}

func (s *Service) List(ctx context.Context, employeeID string) ([]Document, error) {
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_ = os.Remove(doc.FilePath)
	return nil
}
