package customer_test

import (
	"testing"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	cases := []struct {
		in    string
		want  customer.DocumentType
		valid bool
	}{
		{"DNI", customer.DocumentTypeDNI, true},
		{" ruc ", customer.DocumentTypeRUC, true},
		{"passport", customer.DocumentTypePassport, true},
		{"Ce", customer.DocumentTypeCE, true},
		{"", "", false},
		{"LICENSE", "LICENSE", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := customer.ParseDocumentType(tc.in)
			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCustomerType_Valid(t *testing.T) {
	assert.True(t, customer.CustomerTypePersonal.Valid())
	assert.True(t, customer.CustomerTypeBusiness.Valid())
	assert.False(t, customer.CustomerType("GOVERNMENT").Valid())
	assert.False(t, customer.CustomerType("").Valid())
}

func TestCustomer_Deactivate(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cust := &customer.Customer{ID: "1", Status: customer.StatusActive, CreatedAt: created, UpdatedAt: created}
	assert.True(t, cust.IsActive())

	now := created.Add(time.Hour)
	cust.Deactivate(now)

	assert.False(t, cust.IsActive(), "Customer should be inactive after deactivation")
	assert.Equal(t, customer.StatusInactive, cust.Status)
	assert.Equal(t, now, cust.UpdatedAt, "UpdatedAt should be refreshed")
	assert.Equal(t, created, cust.CreatedAt, "CreatedAt must not change")
}

func TestCustomer_DeactivateInSameMillisecondAsCreate(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cust := &customer.Customer{ID: "1", Status: customer.StatusActive, CreatedAt: created, UpdatedAt: created}

	cust.Deactivate(created)

	assert.True(t, cust.UpdatedAt.After(cust.CreatedAt))
	assert.Equal(t, created.Add(time.Millisecond), cust.UpdatedAt)
}
