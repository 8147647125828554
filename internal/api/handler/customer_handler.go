package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service customer.Service
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.Service, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func (h *CustomerHandler) decodeCustomerRequest(r *http.Request) (dto.CustomerRequest, error) {
	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		return req, fmt.Errorf("%w: invalid request body: %v", apperrors.ErrInvalidArgument, err)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		return req, err
	}
	return req, nil
}

// FindAll handles GET /api/customers/all
// @Summary List active customers
// @Description Returns every customer whose status is ACTIVE.
// @Tags Customers
// @Produce json
// @Success 200 {object} customer.ListResponse "Active customers"
// @Failure 500 {object} customer.ListResponse "Lookup failed"
// @Failure 503 {object} customer.ListResponse "Customer store unavailable"
// @Failure 504 {object} customer.ListResponse "Customer store timeout"
// @Router /api/customers/all [get]
func (h *CustomerHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received list customers request")

	resp, err := h.service.FindAll(r.Context())
	if err != nil {
		status := respondListError(w, err)
		h.logger.Log(r.Context(), logLevelFor(status), "Service failed to list customers", slog.Any("error", err))
		return
	}

	h.logger.DebugContext(r.Context(), "Customers listed", slog.Int("count", len(resp.Data)))
	respondJSON(w, http.StatusOK, resp)
}

// FindByID handles GET /api/customers/{id}
// @Summary Retrieve a customer
// @Description Retrieves a customer by id regardless of status.
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} customer.ListResponse "Customer found"
// @Failure 400 {object} customer.ListResponse "Empty customer id"
// @Failure 404 {object} customer.ListResponse "Customer not found"
// @Failure 500 {object} customer.ListResponse "Lookup failed"
// @Router /api/customers/{id} [get]
func (h *CustomerHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logCtx := h.logger.With(slog.String("customerID", id))
	logCtx.DebugContext(r.Context(), "Received get customer request")

	resp, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		status := respondListError(w, err)
		logCtx.Log(r.Context(), logLevelFor(status), "Service failed to get customer", slog.Any("error", err))
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Save handles POST /api/customers/save
// @Summary Register a customer
// @Description Creates an ACTIVE customer. The (documentType, documentNumber) pair must not be registered yet.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer registration payload"
// @Success 201 {object} customer.OperationResponse "Customer registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 409 {object} customer.OperationResponse "Document already registered"
// @Failure 500 {object} customer.OperationResponse "Registration failed"
// @Router /api/customers/save [post]
func (h *CustomerHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received save customer request")

	req, err := h.decodeCustomerRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	resp, err := h.service.Save(r.Context(), req.ToDomain())
	if err != nil {
		status := respondOperationError(w, err)
		h.logger.Log(r.Context(), logLevelFor(status), "Service failed to save customer", slog.Any("error", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Customer saved", slog.String("customerID", resp.EntityID))
	respondJSON(w, http.StatusCreated, resp)
}

// Update handles PUT /api/customers/update
// @Summary Update a customer
// @Description Replaces the mutable fields of an existing customer and sets it ACTIVE.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer update payload, id required"
// @Success 200 {object} customer.OperationResponse "Customer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or empty id"
// @Failure 404 {object} customer.OperationResponse "Customer not found"
// @Failure 500 {object} customer.OperationResponse "Update failed"
// @Router /api/customers/update [put]
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received update customer request")

	req, err := h.decodeCustomerRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	logCtx := h.logger.With(slog.String("customerID", req.ID))
	resp, err := h.service.Update(r.Context(), req.ToDomain())
	if err != nil {
		status := respondOperationError(w, err)
		logCtx.Log(r.Context(), logLevelFor(status), "Service failed to update customer", slog.Any("error", err))
		return
	}

	logCtx.InfoContext(r.Context(), "Customer updated")
	respondJSON(w, http.StatusOK, resp)
}

// Deactivate handles DELETE /api/customers/delete/{id}
// @Summary Deactivate a customer
// @Description Soft-deletes a customer by switching its status to INACTIVE. The record is kept.
// @Tags Customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} customer.OperationResponse "Customer deactivated"
// @Failure 400 {object} customer.OperationResponse "Empty customer id"
// @Failure 404 {object} customer.OperationResponse "Customer not found"
// @Failure 409 {object} customer.OperationResponse "Customer already inactive"
// @Failure 500 {object} customer.OperationResponse "Deactivation failed"
// @Router /api/customers/delete/{id} [delete]
func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logCtx := h.logger.With(slog.String("customerID", id))
	logCtx.DebugContext(r.Context(), "Received deactivate customer request")

	resp, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		status := respondOperationError(w, err)
		logCtx.Log(r.Context(), logLevelFor(status), "Service failed to deactivate customer", slog.Any("error", err))
		return
	}

	logCtx.InfoContext(r.Context(), "Customer deactivated")
	respondJSON(w, http.StatusOK, resp)
}

// FindByDocument handles GET /api/customers/document?documentType=&documentNumber=
// @Summary Find a customer by document
// @Description Looks a customer up by document type and number.
// @Tags Customers
// @Produce json
// @Param documentType query string true "Document type" Enums(DNI, RUC, PASSPORT, CE)
// @Param documentNumber query string true "Document number"
// @Success 200 {object} customer.ListResponse "Customer found"
// @Failure 400 {object} customer.ListResponse "Missing or invalid document"
// @Failure 404 {object} customer.ListResponse "Customer not found"
// @Failure 500 {object} customer.ListResponse "Lookup failed"
// @Router /api/customers/document [get]
func (h *CustomerHandler) FindByDocument(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	docType, _ := customer.ParseDocumentType(query.Get("documentType"))
	number := query.Get("documentNumber")
	logCtx := h.logger.With(slog.String("documentType", query.Get("documentType")), slog.String("documentNumber", number))
	logCtx.DebugContext(r.Context(), "Received find customer by document request")

	resp, err := h.service.FindByDocumentTypeAndNumber(r.Context(), docType, number)
	if err != nil {
		status := respondListError(w, err)
		logCtx.Log(r.Context(), logLevelFor(status), "Service failed to find customer by document", slog.Any("error", err))
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// FindByDocumentNumber handles GET /api/customers/document/{documentNumber}
// @Summary Find a customer by document number
// @Description Looks a customer up by document number alone.
// @Tags Customers
// @Produce json
// @Param documentNumber path string true "Document number"
// @Success 200 {object} customer.ListResponse "Customer found"
// @Failure 400 {object} customer.ListResponse "Empty document number"
// @Failure 404 {object} customer.ListResponse "Customer not found"
// @Failure 500 {object} customer.ListResponse "Lookup failed"
// @Router /api/customers/document/{documentNumber} [get]
func (h *CustomerHandler) FindByDocumentNumber(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(chi.URLParam(r, "documentNumber"))
	logCtx := h.logger.With(slog.String("documentNumber", number))
	logCtx.DebugContext(r.Context(), "Received find customer by document number request")

	resp, err := h.service.FindByDocumentNumber(r.Context(), number)
	if err != nil {
		status := respondListError(w, err)
		logCtx.Log(r.Context(), logLevelFor(status), "Service failed to find customer by document number", slog.Any("error", err))
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
