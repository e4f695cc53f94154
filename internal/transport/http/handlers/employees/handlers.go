package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/domain/auth"
	"kyronix/internal/domain/employee"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
	"kyronix/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{Store: employee.NewStore(db)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.With(middleware.RequireAdmin).Get("/", h.HandleList)
		r.With(middleware.RequireAdmin).Post("/", h.HandleCreate)
		r.Patch("/me/profile", h.HandleUpdateProfile)
		r.Get("/{id}", h.HandleGet)
		r.With(middleware.RequireAdmin).Put("/{id}", h.HandleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{id}", h.HandleDelete)
	})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")
	if id == "me" {
		id = user.UserID
	}
	if user.Role != auth.RoleAdmin && id != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's record", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

type employeePayload struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	LegalFirstName   string `json:"legalFirstName"`
	LegalLastName    string `json:"legalLastName"`
	PreferredName    string `json:"preferredName"`
	JobTitle         string `json:"jobTitle"`
	Department       string `json:"department"`
	HireDate         string `json:"hireDate"`
	Phone            string `json:"phone"`
	Role             string `json:"role"`
	EmploymentStatus string `json:"employmentStatus"`
}

func (p employeePayload) toEmployee() (employee.Employee, error) {
	hireDate, err := shared.ParseDate(p.HireDate)
	if err != nil {
		return employee.Employee{}, errors.New("hireDate must be YYYY-MM-DD")
	}
	role := p.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	status := p.EmploymentStatus
	if status == "" {
		status = auth.StatusActive
	}
	return employee.Employee{
		Email:            strings.TrimSpace(strings.ToLower(p.Email)),
		LegalFirstName:   strings.TrimSpace(p.LegalFirstName),
		LegalLastName:    strings.TrimSpace(p.LegalLastName),
		PreferredName:    strings.TrimSpace(p.PreferredName),
		JobTitle:         strings.TrimSpace(p.JobTitle),
		Department:       strings.TrimSpace(p.Department),
		HireDate:         hireDate,
		Phone:            strings.TrimSpace(p.Phone),
		Role:             role,
		EmploymentStatus: status,
	}, nil
}

func validateEmployee(e employee.Employee) string {
	switch {
	case e.Email == "":
		return "email is required"
	case e.LegalFirstName == "" || e.LegalLastName == "":
		return "legal first and last name are required"
	case e.HireDate.IsZero():
		return "hireDate is required"
	case e.Role != auth.RoleAdmin && e.Role != auth.RoleEmployee:
		return "role must be admin or employee"
	case e.EmploymentStatus != auth.StatusActive &&
		e.EmploymentStatus != auth.StatusOnLeave &&
		e.EmploymentStatus != auth.StatusFormerEmployee:
		return "unknown employment status"
	}
	return ""
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	record, err := payload.toEmployee()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if msg := validateEmployee(record); msg != "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", msg, middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.Password) < 8 {
		api.Fail(w, http.StatusBadRequest, "weak_password", "password must be at least 8 characters", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	id, err := h.Store.Create(r.Context(), record, hash)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	record.ID = id
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	record, err := payload.toEmployee()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	record.ID = existing.ID
	record.Email = existing.Email
	if msg := validateEmployee(record); msg != "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", msg, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Update(r.Context(), record); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	updated, err := h.Store.Get(r.Context(), record.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type profilePayload struct {
	PreferredName *string `json:"preferredName"`
	Phone         *string `json:"phone"`
}

// HandleUpdateProfile lets a signed-in employee change the fields they own.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.ReadOnly() {
		api.Fail(w, http.StatusForbidden, "read_only", "read-only access", middleware.GetRequestID(r.Context()))
		return
	}

	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	record, err := h.Store.Get(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to load profile", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.PreferredName != nil {
		record.PreferredName = strings.TrimSpace(*payload.PreferredName)
	}
	if payload.Phone != nil {
		record.Phone = strings.TrimSpace(*payload.Phone)
	}
	if err := h.Store.Update(r.Context(), record); err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update profile", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id := chi.URLParam(r, "id")
	if id == user.UserID {
		api.Fail(w, http.StatusBadRequest, "invalid_request", "cannot delete your own account", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
