package paystubshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kyronix/internal/domain/audit"
	"kyronix/internal/domain/auth"
	"kyronix/internal/domain/employee"
	"kyronix/internal/domain/paystub"
	cryptoutil "kyronix/internal/platform/crypto"
	"kyronix/internal/platform/metrics"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
	"kyronix/internal/transport/http/shared"
)

type Handler struct {
	Service   *paystub.Service
	Store     *paystub.Store
	Employees *employee.Store
	Crypto    *cryptoutil.Service
	Audit     *audit.Recorder
	Metrics   *metrics.Collector
}

func NewHandler(db *pgxpool.Pool, service *paystub.Service, crypto *cryptoutil.Service, collector *metrics.Collector) *Handler {
	return &Handler{
		Service:   service,
		Store:     paystub.NewStore(db),
		Employees: employee.NewStore(db),
		Crypto:    crypto,
		Audit:     audit.New(db),
		Metrics:   collector,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/paystubs", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.With(middleware.RequireAdmin).Post("/generate", h.HandleGenerate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Get("/{id}/download", h.HandleDownload)
	})
}

type rateDeductionPayload struct {
	Enabled bool            `json:"enabled"`
	Rate    decimal.Decimal `json:"rate"`
}

type flatDeductionPayload struct {
	Enabled bool            `json:"enabled"`
	Amount  decimal.Decimal `json:"amount"`
}

type generatePayload struct {
	EmployeeID string `json:"employeeId"`

	PayType        string          `json:"payType"`
	AnnualSalary   decimal.Decimal `json:"annualSalary"`
	HourlyRate     decimal.Decimal `json:"hourlyRate"`
	HoursPerPeriod decimal.Decimal `json:"hoursPerPeriod"`

	MostRecentPayDate string          `json:"mostRecentPayDate"`
	PeriodCount       int             `json:"periodCount"`
	BonusRate         decimal.Decimal `json:"bonusRate"`

	Deductions struct {
		Retirement      rateDeductionPayload `json:"retirement"`
		HealthPlan      flatDeductionPayload `json:"healthPlan"`
		ContractorFee   rateDeductionPayload `json:"contractorFee"`
		FederalTax      rateDeductionPayload `json:"federalTax"`
		SocialSecurity  rateDeductionPayload `json:"socialSecurity"`
		Medicare        rateDeductionPayload `json:"medicare"`
		StateDisability rateDeductionPayload `json:"stateDisability"`
		StateIncomeTax  bool                 `json:"stateIncomeTax"`
	} `json:"deductions"`

	Payment struct {
		Method         string `json:"method"`
		BankNameMasked string `json:"bankNameMasked"`
		Status         string `json:"status"`
	} `json:"payment"`
}

// HandleGenerate runs one generation batch for an employee. Per-period
// failures are reported in the result without failing the batch.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Employees.Get(r.Context(), payload.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "generate_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	payDate, err := shared.ParseDate(payload.MostRecentPayDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "mostRecentPayDate must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
		return
	}

	profile := paystub.CompensationProfile{
		EmployeeID:        record.ID,
		EmployeeName:      record.FullName(),
		JobTitle:          record.JobTitle,
		Department:        record.Department,
		PayType:           paystub.PayType(payload.PayType),
		AnnualSalary:      payload.AnnualSalary,
		HourlyRate:        payload.HourlyRate,
		HoursPerPeriod:    payload.HoursPerPeriod,
		HireDate:          record.HireDate,
		MostRecentPayDate: payDate,
		PeriodCount:       payload.PeriodCount,
		BonusRate:         payload.BonusRate,
		Deductions: paystub.Deductions{
			Retirement:      paystub.RateDeduction(payload.Deductions.Retirement),
			HealthPlan:      paystub.FlatDeduction(payload.Deductions.HealthPlan),
			ContractorFee:   paystub.RateDeduction(payload.Deductions.ContractorFee),
			FederalTax:      paystub.RateDeduction(payload.Deductions.FederalTax),
			SocialSecurity:  paystub.RateDeduction(payload.Deductions.SocialSecurity),
			Medicare:        paystub.RateDeduction(payload.Deductions.Medicare),
			StateDisability: paystub.RateDeduction(payload.Deductions.StateDisability),
			StateIncomeTax:  payload.Deductions.StateIncomeTax,
		},
	}

	payment := paystub.PaymentInfo{
		Method:         payload.Payment.Method,
		BankNameMasked: payload.Payment.BankNameMasked,
		Status:         payload.Payment.Status,
	}
	if payment.Method == "" {
		payment.Method = "Direct Deposit"
	}
	if payment.Status == "" {
		payment.Status = "Paid"
	}

	result, err := h.Service.Generate(r.Context(), profile, payment)
	if err != nil {
		if errors.Is(err, paystub.ErrInvalidProfile) {
			api.Fail(w, http.StatusBadRequest, "invalid_profile", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "generate_failed", "paystub generation failed", middleware.GetRequestID(r.Context()))
		return
	}

	h.Metrics.RecordPaystubs(result.Completed)
	if err := h.Audit.Record(r.Context(), user.UserID, audit.EventPaystubGeneration, "employee", record.ID,
		middleware.GetRequestID(r.Context()), map[string]any{
			"completed": result.Completed,
			"total":     result.Total,
			"skipped":   result.Skipped,
		}); err != nil {
		slog.Warn("audit write failed", "event", audit.EventPaystubGeneration, "err", err)
	}

	api.SuccessWithWarnings(w, result, result.Warnings, middleware.GetRequestID(r.Context()))
}

type listResponse struct {
	Paystubs       []paystub.Summary `json:"paystubs"`
	AvailableYears []int             `json:"availableYears"`
}

// HandleList returns paystub summaries for the signed-in employee, or for any
// employee when an admin passes employeeId.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := user.UserID
	if requested := r.URL.Query().Get("employeeId"); requested != "" && user.Role == auth.RoleAdmin {
		employeeID = requested
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_year", "year must be a number", middleware.GetRequestID(r.Context()))
			return
		}
		year = parsed
	}

	items, err := h.Store.ListByEmployee(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list paystubs", middleware.GetRequestID(r.Context()))
		return
	}
	years, err := h.Store.AvailableYears(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list paystub years", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, listResponse{Paystubs: items, AvailableYears: years}, middleware.GetRequestID(r.Context()))
}

// HandleGet returns one paystub's line items without the PDF bytes.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

// HandleDownload streams the stored PDF, decrypting when the record was
// encrypted at rest. Every download is audited.
func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	pdf := rec.PDF
	if rec.Encrypted {
		decrypted, err := h.Crypto.Decrypt(pdf)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "download_failed", "failed to decrypt paystub", middleware.GetRequestID(r.Context()))
			return
		}
		pdf = decrypted
	}

	h.Metrics.RecordDownload()
	if err := h.Audit.Record(r.Context(), user.UserID, audit.EventPaystubAccess, "paystub", rec.ID,
		middleware.GetRequestID(r.Context()), map[string]any{"fileName": rec.FileName}); err != nil {
		slog.Warn("audit write failed", "event", audit.EventPaystubAccess, "err", err)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rec.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("paystub download write failed", "err", err)
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (paystub.Record, bool) {
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "paystub not found", middleware.GetRequestID(r.Context()))
			return paystub.Record{}, false
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load paystub", middleware.GetRequestID(r.Context()))
		return paystub.Record{}, false
	}
	if user.Role != auth.RoleAdmin && rec.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's paystub", middleware.GetRequestID(r.Context()))
		return paystub.Record{}, false
	}
	return rec, true
}
