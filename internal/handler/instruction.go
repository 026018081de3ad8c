package handler

import (
	"encoding/json"
	"net/http"

	"payinstr/internal/domain"
	"payinstr/internal/instruction"
	"payinstr/internal/middleware"
	"payinstr/pkg/logger"
	"payinstr/pkg/validator"
)

// Default envelope messages per verdict status, used when the engine did
// not supply a status_reason.
var defaultMessages = map[domain.Status]string{
	domain.StatusSuccessful: "Transaction executed successfully",
	domain.StatusPending:    "Transaction is pending",
	domain.StatusFailed:     "Transaction failed",
}

// envelope is the HTTP response wrapper around an engine verdict.
type envelope struct {
	Status  int              `json:"status"`
	Message string           `json:"message"`
	Data    *domain.Response `json:"data,omitempty"`
}

type InstructionHandler struct {
	service   *instruction.Service
	validator *validator.Validator
	logger    logger.Logger
}

func NewInstructionHandler(service *instruction.Service, val *validator.Validator, log logger.Logger) *InstructionHandler {
	return &InstructionHandler{service: service, validator: val, logger: log}
}

// ProcessInstruction handles POST /payment-instructions. Only a malformed
// payload shape is rejected here; every instruction-level failure flows
// through the engine and comes back as a failed verdict.
func (h *InstructionHandler) ProcessInstruction(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.ValidateStructured(&req); errs != nil {
		h.respondValidationErrors(w, errs)
		return
	}

	resp := h.service.Process(&req)

	status := http.StatusOK
	if resp.Status == domain.StatusFailed {
		status = http.StatusBadRequest
		log := h.logger
		if reqID, ok := middleware.RequestIDFromContext(r.Context()); ok {
			log = h.logger.With(map[string]interface{}{"request_id": reqID})
		}
		log.Info("Instruction rejected", map[string]interface{}{
			"status_code": resp.StatusCode,
			"reason":      resp.StatusReason,
		})
	}

	message := defaultMessages[resp.Status]
	if resp.StatusReason != "" {
		message = resp.StatusReason
	}

	h.respondJSON(w, status, envelope{Status: status, Message: message, Data: resp})
}

// respondJSON responds with JSON.
func (h *InstructionHandler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError responds with an error message.
func (h *InstructionHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondValidationErrors responds with shape-validation errors.
func (h *InstructionHandler) respondValidationErrors(w http.ResponseWriter, errs map[string]string) {
	h.respondJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
