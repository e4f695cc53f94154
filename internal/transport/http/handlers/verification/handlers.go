package verificationhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kyronix/internal/domain/audit"
	"kyronix/internal/domain/auth"
	"kyronix/internal/domain/employee"
	"kyronix/internal/domain/verification"
	"kyronix/internal/platform/config"
	"kyronix/internal/platform/email"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
)

type Handler struct {
	Store     *verification.Store
	Employees *employee.Store
	Cfg       config.Config
	Mailer    email.Mailer
	Audit     *audit.Recorder
}

func NewHandler(db *pgxpool.Pool, cfg config.Config, mailer email.Mailer) *Handler {
	return &Handler{
		Store:     verification.NewStore(db),
		Employees: employee.NewStore(db),
		Cfg:       cfg,
		Mailer:    mailer,
		Audit:     audit.New(db),
	}
}

type createPayload struct {
	VerifierName    string           `json:"verifierName"`
	VerifierCompany string           `json:"verifierCompany"`
	VerifierEmail   string           `json:"verifierEmail"`
	Purpose         string           `json:"purpose"`
	IncludeSalary   bool             `json:"includeSalary"`
	SalaryAmount    *decimal.Decimal `json:"salaryAmount"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/verifications", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.With(middleware.RequireAdmin).Post("/{id}/decide", h.HandleDecide)
		r.Get("/{id}/letter", h.HandleLetter)
	})
}

// HandleCreate files a verification request for the signed-in employee.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.ReadOnly() {
		api.Fail(w, http.StatusForbidden, "read_only", "read-only access", middleware.GetRequestID(r.Context()))
		return
	}

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.VerifierName = strings.TrimSpace(payload.VerifierName)
	payload.Purpose = strings.TrimSpace(payload.Purpose)
	if payload.VerifierName == "" || payload.Purpose == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "verifierName and purpose are required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.IncludeSalary && (payload.SalaryAmount == nil || !payload.SalaryAmount.GreaterThan(decimal.Zero)) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "salaryAmount must be positive when includeSalary is set", middleware.GetRequestID(r.Context()))
		return
	}

	req := verification.Request{
		EmployeeID:      user.UserID,
		VerifierName:    payload.VerifierName,
		VerifierCompany: strings.TrimSpace(payload.VerifierCompany),
		VerifierEmail:   strings.TrimSpace(payload.VerifierEmail),
		Purpose:         payload.Purpose,
		IncludeSalary:   payload.IncludeSalary,
		SalaryAmount:    payload.SalaryAmount,
	}
	id, err := h.Store.Insert(r.Context(), req)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to file verification request", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Store.Get(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to load verification request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

// HandleList shows the signed-in employee's requests; admins see all.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := user.UserID
	if user.Role == auth.RoleAdmin {
		employeeID = r.URL.Query().Get("employeeId")
	}

	requests, err := h.Store.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list verification requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

type decidePayload struct {
	Approve bool `json:"approve"`
}

// HandleDecide approves or declines a pending request. Approval renders the
// letter and notifies the verifier when an email is on file.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload decidePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	req, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "verification request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "decide_failed", "failed to load verification request", middleware.GetRequestID(r.Context()))
		return
	}
	if req.Status != verification.StatusPending {
		api.Fail(w, http.StatusConflict, "already_decided", "request has already been decided", middleware.GetRequestID(r.Context()))
		return
	}

	status := verification.StatusDeclined
	if payload.Approve {
		status = verification.StatusCompleted
	}
	if err := h.Store.Decide(r.Context(), req.ID, status, user.UserID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "decide_failed", "failed to record decision", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, audit.EventVerificationDecided, "verification_request", req.ID,
		middleware.GetRequestID(r.Context()), map[string]any{"status": status}); err != nil {
		slog.Warn("audit write failed", "event", audit.EventVerificationDecided, "err", err)
	}

	if payload.Approve && req.VerifierEmail != "" {
		body := "An employment verification you requested has been approved by " +
			h.Cfg.EmployerLegalName + ". Download the letter from the requester."
		if err := h.Mailer.Send(r.Context(), h.Cfg.EmailFrom, req.VerifierEmail, "Employment verification approved", body); err != nil {
			slog.Warn("verifier notice send failed", "err", err)
		}
	}

	decided, err := h.Store.Get(r.Context(), req.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "decide_failed", "failed to load verification request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, decided, middleware.GetRequestID(r.Context()))
}

// HandleLetter renders and streams the verification letter for a completed
// request. The employee who filed the request and admins may download it.
func (h *Handler) HandleLetter(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	req, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "verification request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to load verification request", middleware.GetRequestID(r.Context()))
		return
	}
	if user.Role != auth.RoleAdmin && req.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's verification letter", middleware.GetRequestID(r.Context()))
		return
	}
	if req.Status != verification.StatusCompleted {
		api.Fail(w, http.StatusConflict, "not_approved", "letter is only available for approved requests", middleware.GetRequestID(r.Context()))
		return
	}

	subject, err := h.Employees.Get(r.Context(), req.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to load employee record", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now().UTC()
	input := verification.LetterInput{
		EmployeeName:     subject.FullName(),
		JobTitle:         subject.JobTitle,
		Department:       subject.Department,
		EmploymentStatus: subject.EmploymentStatus,
		HireDate:         subject.HireDate,

		VerifierName:    req.VerifierName,
		VerifierCompany: req.VerifierCompany,
		Purpose:         req.Purpose,

		IncludeSalary: req.IncludeSalary,

		CompanyName:         h.Cfg.EmployerLegalName,
		CompanyAddress:      h.Cfg.CompanyAddress,
		PayrollContactEmail: h.Cfg.PayrollContactEmail,

		RequestID:   req.ID,
		GeneratedAt: now,
	}
	if req.IncludeSalary && req.SalaryAmount != nil {
		input.SalaryAmount = *req.SalaryAmount
	}

	pdf, err := verification.RenderLetter(input)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "letter_failed", "failed to render letter", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, audit.EventVerificationLetter, "verification_request", req.ID,
		middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit write failed", "event", audit.EventVerificationLetter, "err", err)
	}

	fileName := verification.LetterFilename(subject.LegalLastName, now)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Warn("letter download write failed", "err", err)
	}
}
