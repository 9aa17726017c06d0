package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/emx/internal/models"
	"github.com/desertthunder/emx/internal/roster"
	"github.com/desertthunder/emx/internal/shared"
)

const (
	routeList   = "GET /api/Employees/getAllEmployees"
	routeGet    = "GET /api/Employees/getEmpByID/{id}"
	routeAdd    = "POST /api/Employees/addEmployee"
	routeEdit   = "POST /api/Employees/editEmployee"
	routeDelete = "GET /api/Employees/deleteEmpByID/{id}"
)

// EmployeeStore is the persistence the sandbox handler needs. [repositories.EmployeeRepository] implements it.
type EmployeeStore interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id int) (*models.Employee, error)
	Create(ctx context.Context, c models.Candidate) (*models.Employee, error)
	Update(ctx context.Context, c models.Candidate) error
	Delete(ctx context.Context, id int) error
}

// EmployeeHandler serves the roster routes the client expects from the remote service.
type EmployeeHandler struct {
	store  EmployeeStore
	logger *log.Logger
	mux    *http.ServeMux
}

// NewEmployeeHandler creates a handler backed by store.
func NewEmployeeHandler(store EmployeeStore, logger *log.Logger) *EmployeeHandler {
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	h := &EmployeeHandler{store: store, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc(routeList, h.list)
	h.mux.HandleFunc(routeGet, h.get)
	h.mux.HandleFunc(routeAdd, h.add)
	h.mux.HandleFunc(routeEdit, h.edit)
	h.mux.HandleFunc(routeDelete, h.remove)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *EmployeeHandler) Routes() []string {
	return []string{routeList, routeGet, routeAdd, routeEdit, routeDelete}
}

func (h *EmployeeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *EmployeeHandler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	employee, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) add(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}

	employee, err := h.store.Create(r.Context(), c.WithoutID())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("employee added", "id", employee.IDString(), "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) edit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.decode(w, r)
	if !ok {
		return
	}
	if !c.IsEdit() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "empId is required"})
		return
	}

	if err := h.store.Update(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("employee updated", "id", *c.ID, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, models.Employee{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone})
}

func (h *EmployeeHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info("employee deleted", "id", id, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, map[string]int{"empId": id})
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// decode reads a candidate body and rejects it with 400 when it does not pass the form rules.
func (h *EmployeeHandler) decode(w http.ResponseWriter, r *http.Request) (models.Candidate, bool) {
	var c models.Candidate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&c); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return c, false
	}

	if errs := roster.ValidateCandidate(c); len(errs) > 0 {
		fields := make(map[string]string, len(errs))
		for f, msg := range errs {
			fields[f.Label()] = msg
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fields})
		return c, false
	}
	return c, true
}

func (h *EmployeeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}

	h.logger.Error("store error", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "id must be an integer"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
