package dto

import (
	"errors"
	"strings"
	"testing"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRequest = "Valid request"

func baseRequest() CustomerRequest {
	return CustomerRequest{
		DocumentType:   "DNI",
		DocumentNumber: "12345678",
		FullName:       "Juan Perez",
		Email:          "juan.perez@email.com",
		CustomerType:   "PERSONAL",
	}
}

func TestCustomerRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CustomerRequest)
		wantField string
	}{
		{validRequest, func(r *CustomerRequest) {}, ""},
		{"Missing document type", func(r *CustomerRequest) { r.DocumentType = "" }, "documentType"},
		{"Unknown document type", func(r *CustomerRequest) { r.DocumentType = "LICENSE" }, "documentType"},
		{"Missing document number", func(r *CustomerRequest) { r.DocumentNumber = "" }, "documentNumber"},
		{"Document number too long", func(r *CustomerRequest) { r.DocumentNumber = strings.Repeat("9", 21) }, "documentNumber"},
		{"Missing full name", func(r *CustomerRequest) { r.FullName = "" }, "fullName"},
		{"Full name too long", func(r *CustomerRequest) { r.FullName = strings.Repeat("a", 101) }, "fullName"},
		{"Invalid email", func(r *CustomerRequest) { r.Email = "not-an-email" }, "email"},
		{"Missing customer type", func(r *CustomerRequest) { r.CustomerType = "" }, "customerType"},
		{"Unknown customer type", func(r *CustomerRequest) { r.CustomerType = "GOVERNMENT" }, "customerType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestCustomerRequestNormalize(t *testing.T) {
	req := CustomerRequest{
		ID:             " abc ",
		DocumentType:   " ruc ",
		DocumentNumber: " 20123456789 ",
		FullName:       "  Comercial SAC ",
		Email:          " ventas@comercial.pe",
		CustomerType:   "business",
	}

	req.Normalize()

	assert.Equal(t, "abc", req.ID)
	assert.Equal(t, "RUC", req.DocumentType)
	assert.Equal(t, "20123456789", req.DocumentNumber)
	assert.Equal(t, "Comercial SAC", req.FullName)
	assert.Equal(t, "BUSINESS", req.CustomerType)
	assert.NoError(t, req.Validate())
}

func TestCustomerRequestBlankFieldFailsAfterNormalize(t *testing.T) {
	req := baseRequest()
	req.FullName = "   "
	req.Normalize()

	err := req.Validate()

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "fullName", vErr.Field)
	assert.Equal(t, "must not be empty", vErr.Message)
}

func TestCustomerRequestToDomain(t *testing.T) {
	req := baseRequest()
	req.ID = "id-1"
	req.BusinessName = "Perez EIRL"

	got := req.ToDomain()

	assert.Equal(t, customer.Request{
		ID:             "id-1",
		DocumentType:   customer.DocumentTypeDNI,
		DocumentNumber: "12345678",
		FullName:       "Juan Perez",
		BusinessName:   "Perez EIRL",
		Email:          "juan.perez@email.com",
		CustomerType:   customer.CustomerTypePersonal,
	}, got)
}
