package dto

import (
	"errors"
	"reflect"
	"strings"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CustomerRequest is the body of POST /save and PUT /update.
type CustomerRequest struct {
	ID             string `json:"id,omitempty" example:"65f1c0ffee65f1c0ffee65f1"`
	DocumentType   string `json:"documentType" validate:"required,oneof=DNI RUC PASSPORT CE" example:"DNI"`
	DocumentNumber string `json:"documentNumber" validate:"required,max=20" example:"12345678"`
	FullName       string `json:"fullName" validate:"required,max=100" example:"Juan Perez"`
	BusinessName   string `json:"businessName,omitempty" validate:"omitempty,max=100" example:"Perez EIRL"`
	Email          string `json:"email" validate:"required,email" example:"juan.perez@email.com"`
	PhoneNumber    string `json:"phoneNumber,omitempty" validate:"omitempty,max=20" example:"+51987654321"`
	Address        string `json:"address,omitempty" validate:"omitempty,max=200" example:"Av. Principal 123"`
	CustomerType   string `json:"customerType" validate:"required,oneof=PERSONAL BUSINESS" example:"PERSONAL"`
}

// Normalize trims every field and upper-cases the enumerated ones.
func (r *CustomerRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.DocumentType = strings.ToUpper(strings.TrimSpace(r.DocumentType))
	r.DocumentNumber = strings.TrimSpace(r.DocumentNumber)
	r.FullName = strings.TrimSpace(r.FullName)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.Email = strings.TrimSpace(r.Email)
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Address = strings.TrimSpace(r.Address)
	r.CustomerType = strings.ToUpper(strings.TrimSpace(r.CustomerType))
}

// Validate reports the first failing field as an apperrors validation error.
func (r *CustomerRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), validationMessage(fe))
	}
	return apperrors.NewValidationError("", err.Error())
}

func (r *CustomerRequest) ToDomain() customer.Request {
	return customer.Request{
		ID:             r.ID,
		DocumentType:   customer.DocumentType(r.DocumentType),
		DocumentNumber: r.DocumentNumber,
		FullName:       r.FullName,
		BusinessName:   r.BusinessName,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		Address:        r.Address,
		CustomerType:   customer.CustomerType(r.CustomerType),
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "invalid email format"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
