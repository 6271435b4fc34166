package api

import (
	"bytes"
	"net/http"

	"github.com/okian/trainerdesk/internal/domain/model"
)

// TrainingsHandler serves the trainings view and its mutations.
type TrainingsHandler struct {
	deps Dependencies
}

// NewTrainingsHandler creates a new trainings handler.
func NewTrainingsHandler(deps Dependencies) *TrainingsHandler {
	return &TrainingsHandler{deps: deps}
}

// HandleList handles GET /api/trainings.
func (h *TrainingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_trainings"
	list, err := h.deps.Trainings(r.Context())
	writeView(w, op, orEmpty(list), err)
}

// HandleCreate handles POST /api/trainings.
func (h *TrainingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_training"
	var draft model.TrainingDraft
	if err := decodeBody(r, op, &draft); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.AddTraining(r.Context(), draft); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "created"})
}

// HandleEdit handles PUT /api/trainings/{id}. The training is replaced, so
// it gets a new id.
func (h *TrainingsHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	const op = "api.edit_training"
	id, err := pathID(r, op)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	var draft model.TrainingDraft
	if err := decodeBody(r, op, &draft); err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.EditTraining(r.Context(), id, draft); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "updated"})
}

// HandleDelete handles DELETE /api/trainings/{id}.
func (h *TrainingsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_training"
	id, err := pathID(r, op)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if err := h.deps.DeleteTraining(r.Context(), id); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
}

// HandleCustomer handles GET /api/trainings/{id}/customer.
func (h *TrainingsHandler) HandleCustomer(w http.ResponseWriter, r *http.Request) {
	const op = "api.training_customer"
	id, err := pathID(r, op)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	c, err := h.deps.TrainingCustomer(r.Context(), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleExport handles GET /api/trainings/export.csv.
func (h *TrainingsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_trainings"
	var buf bytes.Buffer
	if err := h.deps.ExportTrainingsCSV(r.Context(), &buf); err != nil {
		writeFailure(w, op, err)
		return
	}
	writeCSV(w, "trainings.csv", buf.Bytes())
}
