package documentshandler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/domain/audit"
	"kyronix/internal/domain/auth"
	"kyronix/internal/domain/document"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
)

type Handler struct {
	Service *document.Service
	Audit   *audit.Recorder
}

func NewHandler(db *pgxpool.Pool, service *document.Service) *Handler {
	return &Handler{Service: service, Audit: audit.New(db)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", h.HandleUpload)
		r.Get("/", h.HandleList)
		r.Get("/{id}/download", h.HandleDownload)
		r.With(middleware.RequireAdmin).Delete("/{id}", h.HandleDelete)
	})
}

// HandleUpload accepts a multipart form with a "file" part plus title and
// category fields. Admins may upload to any employee; employees to themselves.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if user.ReadOnly() {
		api.Fail(w, http.StatusForbidden, "read_only", "read-only access", middleware.GetRequestID(r.Context()))
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "expected multipart form upload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.FormValue("employeeId")
	if employeeID == "" {
		employeeID = user.UserID
	}
	if user.Role != auth.RoleAdmin && employeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot upload to another employee's records", middleware.GetRequestID(r.Context()))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	category := strings.TrimSpace(r.FormValue("category"))
	if category == "" {
		category = "general"
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "file part is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "upload_failed", "failed to read upload", middleware.GetRequestID(r.Context()))
		return
	}
	if title == "" {
		title = header.Filename
	}

	doc, err := h.Service.Save(r.Context(), employeeID, user.UserID, title, category, header.Filename, data)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store document", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	employeeID := user.UserID
	if requested := r.URL.Query().Get("employeeId"); requested != "" && user.Role == auth.RoleAdmin {
		employeeID = requested
	}

	docs, err := h.Service.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list documents", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, docs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	doc, data, err := h.Service.Open(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "document not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "download_failed", "failed to open document", middleware.GetRequestID(r.Context()))
		return
	}
	if user.Role != auth.RoleAdmin && doc.EmployeeID != user.UserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot access another employee's document", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, audit.EventDocumentAccess, "document", doc.ID,
		middleware.GetRequestID(r.Context()), map[string]any{"fileName": doc.FileName}); err != nil {
		slog.Warn("audit write failed", "event", audit.EventDocumentAccess, "err", err)
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Warn("document download write failed", "err", err)
	}
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "not_found", "document not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "delete_failed", "failed to delete document", middleware.GetRequestID(r.Context()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
