package paystub

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cryptoutil "kyronix/internal/platform/crypto"
)

// RecordStore persists generated paystubs. Satisfied by *Store.
type RecordStore interface {
	Insert(ctx context.Context, rec Record) (string, error)
}

// DraftRenderer turns a draft into PDF bytes. Satisfied by *Renderer.
type DraftRenderer interface {
	Render(draft Draft, payment PaymentInfo, meta RenderMeta) ([]byte, error)
}

// PeriodFailure reports one period that could not be rendered or persisted.
// Completed periods in the same batch are unaffected.
type PeriodFailure struct {
	PayDate time.Time `json:"payDate"`
	Reason  string    `json:"reason"`
}

// BatchResult summarizes one generation request: completed vs total lets the
// caller distinguish full from partial success.
type BatchResult struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	Skipped    int             `json:"skipped"`
	Warnings   []string        `json:"warnings"`
	PaystubIDs []string        `json:"paystubIds"`
	Failures   []PeriodFailure `json:"failures"`
}

// Service drives the engine for one employee and hands each draft to the
// renderer and store in turn. A failure on one period does not roll back or
// stop previously completed periods.
type Service struct {
	engine   *Engine
	renderer DraftRenderer
	store    RecordStore
	crypto   *cryptoutil.Service
}

func NewService(engine *Engine, renderer DraftRenderer, store RecordStore, crypto *cryptoutil.Service) *Service {
	return &Service{engine: engine, renderer: renderer, store: store, crypto: crypto}
}

// Generate validates the profile, then renders and persists one paystub per
// scheduled period, sequentially. Validation failures abort before any
// computation; per-period collaborator failures are collected and the batch
// continues.
func (s *Service) Generate(ctx context.Context, profile CompensationProfile, payment PaymentInfo) (BatchResult, error) {
	run, err := s.engine.Plan(profile)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{
		Total:    run.Total(),
		Skipped:  run.Skipped(),
		Warnings: run.Warnings(),
	}

	for {
		if err := ctx.Err(); err != nil {
			// Drafts already persisted stay valid; just stop iterating.
			return result, err
		}
		draft, ok := run.Next()
		if !ok {
			break
		}

		meta := RenderMeta{PaystubID: uuid.NewString(), GeneratedAt: time.Now().UTC()}
		pdf, err := s.renderer.Render(*draft, payment, meta)
		if err != nil {
			result.Failures = append(result.Failures, PeriodFailure{PayDate: draft.Period.PayDate, Reason: err.Error()})
			slog.Warn("paystub render failed", "employee", profile.EmployeeID, "payDate", draft.Period.PayDate, "err", err)
			continue
		}

		encrypted := false
		if s.crypto != nil && s.crypto.Configured() {
			if pdf, err = s.crypto.Encrypt(pdf); err != nil {
				result.Failures = append(result.Failures, PeriodFailure{PayDate: draft.Period.PayDate, Reason: err.Error()})
				continue
			}
			encrypted = true
		}

		id, err := s.store.Insert(ctx, Record{
			EmployeeID:      draft.EmployeeID,
			EmployeeName:    draft.EmployeeName,
			PayDate:         draft.Period.PayDate,
			PeriodStart:     draft.Period.Start,
			PeriodEnd:       draft.Period.End,
			Earnings:        draft.Earnings,
			Deductions:      draft.Deductions,
			GrossPay:        draft.Totals.GrossCurrent,
			TotalDeductions: draft.Totals.DeductionsCurrent,
			NetPay:          draft.Totals.NetCurrent,
			FileName:        BuildFilename(draft.EmployeeName, draft.Period.PayDate),
			PDF:             pdf,
			Encrypted:       encrypted,
		})
		if err != nil {
			result.Failures = append(result.Failures, PeriodFailure{PayDate: draft.Period.PayDate, Reason: err.Error()})
			slog.Warn("paystub persist failed", "employee", profile.EmployeeID, "payDate", draft.Period.PayDate, "err", err)
			continue
		}

		result.Completed++
		result.PaystubIDs = append(result.PaystubIDs, id)
		slog.Info("paystub generated", "employee", profile.EmployeeID,
			"payDate", draft.Period.PayDate.Format("2006-01-02"),
			"progress", result.Completed, "total", result.Total)
	}

	return result, nil
}
