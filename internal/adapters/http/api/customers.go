package api

import (
	"bytes"
	"net/http"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// CustomersHandler serves the customers view and its mutations.
type CustomersHandler struct {
	deps Dependencies
}

// NewCustomersHandler creates a new customers handler.
func NewCustomersHandler(deps Dependencies) *CustomersHandler {
	return &CustomersHandler{deps: deps}
}

// HandleList handles GET /api/customers.
func (h *CustomersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_customers"
	list, err := h.deps.Customers(r.Context())
	writeView(w, op, orEmpty(list), err)
}

// HandleCreate handles POST /api/customers.
func (h *CustomersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_customer"
	var in model.CustomerInput
	if err := decodeBody(r, op, &in); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.AddCustomer(r.Context(), in); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
}

// HandleUpdate handles PUT /api/customers/{id} with a partial record.
func (h *CustomersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_customer"
	id, err := pathID(r, op)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	var patch model.CustomerPatch
	if err := decodeBody(r, op, &patch); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.UpdateCustomer(r.Context(), id, patch); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleDelete handles DELETE /api/customers/{id}.
func (h *CustomersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_customer"
	id, err := pathID(r, op)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.DeleteCustomer(r.Context(), id); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
}

// HandleExport handles GET /api/customers/export.csv.
func (h *CustomersHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_customers"
	var buf bytes.Buffer
	if err := h.deps.ExportCustomersCSV(r.Context(), &buf); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeCSV(w, "customers.csv", buf.Bytes())
}

func writeCSV(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
