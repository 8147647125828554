package customer

import "time"

const (
	CodeSuccess = 0
	CodeError   = 1
)

type ListResponse struct {
	Data  []*Customer `json:"data"`
	Error string      `json:"error,omitempty"`
}

type OperationResponse struct {
	Code     int    `json:"codResponse"`
	Message  string `json:"messageResponse"`
	EntityID string `json:"codEntity,omitempty"`
}

// FromRequest builds a new ACTIVE record. The ID is left for the store.
func FromRequest(req Request, now time.Time) *Customer {
	return &Customer{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		FullName:       req.FullName,
		BusinessName:   req.BusinessName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		CustomerType:   req.CustomerType,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MergeForUpdate keeps ID and CreatedAt from existing and takes every other
// business field from req. Status is reset to ACTIVE. UpdatedAt always moves
// past the stored value, even when now falls in the same millisecond.
func MergeForUpdate(existing *Customer, req Request, now time.Time) *Customer {
	return &Customer{
		ID:             existing.ID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		FullName:       req.FullName,
		BusinessName:   req.BusinessName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		CustomerType:   req.CustomerType,
		Status:         StatusActive,
		CreatedAt:      existing.CreatedAt,
		UpdatedAt:      advanceStamp(existing.UpdatedAt, now),
	}
}

func advanceStamp(previous, now time.Time) time.Time {
	if next := previous.Add(time.Millisecond); now.Before(next) {
		return next
	}
	return now
}

func ToListResponse(customers []*Customer) ListResponse {
	data := make([]*Customer, 0, len(customers))
	data = append(data, customers...)
	return ListResponse{Data: data}
}

func ToSingleton(c *Customer) ListResponse {
	if c == nil {
		return ListResponse{Data: []*Customer{}}
	}
	return ListResponse{Data: []*Customer{c}}
}

func ToSuccess(id, message string) OperationResponse {
	return OperationResponse{Code: CodeSuccess, Message: message, EntityID: id}
}

func ToError(message string) OperationResponse {
	return OperationResponse{Code: CodeError, Message: message}
}

// ToErrorList carries a failure message next to an empty sequence.
func ToErrorList(message string) ListResponse {
	return ListResponse{Data: []*Customer{}, Error: message}
}
