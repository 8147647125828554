package customer

import (
	"strings"
	"time"
)

type DocumentType string

const (
	DocumentTypeDNI      DocumentType = "DNI"
	DocumentTypeRUC      DocumentType = "RUC"
	DocumentTypePassport DocumentType = "PASSPORT"
	DocumentTypeCE       DocumentType = "CE"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTypeDNI, DocumentTypeRUC, DocumentTypePassport, DocumentTypeCE:
		return true
	}
	return false
}

// ParseDocumentType is case-insensitive and ignores surrounding blanks.
// It returns false for unknown values.
func ParseDocumentType(s string) (DocumentType, bool) {
	d := DocumentType(strings.ToUpper(strings.TrimSpace(s)))
	return d, d.Valid()
}

type CustomerType string

const (
	CustomerTypePersonal CustomerType = "PERSONAL"
	CustomerTypeBusiness CustomerType = "BUSINESS"
)

func (c CustomerType) Valid() bool {
	return c == CustomerTypePersonal || c == CustomerTypeBusiness
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

type Customer struct {
	ID             string       `json:"id"`
	DocumentType   DocumentType `json:"documentType"`
	DocumentNumber string       `json:"documentNumber"`
	FullName       string       `json:"fullName"`
	BusinessName   string       `json:"businessName,omitempty"`
	Email          string       `json:"email"`
	PhoneNumber    string       `json:"phoneNumber,omitempty"`
	Address        string       `json:"address,omitempty"`
	CustomerType   CustomerType `json:"customerType"`
	Status         Status       `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Deactivate flips the record to INACTIVE and stamps updatedAt.
func (c *Customer) Deactivate(now time.Time) {
	c.Status = StatusInactive
	c.UpdatedAt = advanceStamp(c.UpdatedAt, now)
}

// Request carries the caller-supplied fields for create and update. ID is
// only read by update.
type Request struct {
	ID             string
	DocumentType   DocumentType
	DocumentNumber string
	FullName       string
	BusinessName   string
	Email          string
	PhoneNumber    string
	Address        string
	CustomerType   CustomerType
}
