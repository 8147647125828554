package customer

import "fmt"

type operation string

const (
	opFindAll              operation = "find_all"
	opFindByID             operation = "find_by_id"
	opSave                 operation = "save"
	opUpdate               operation = "update"
	opDeactivate           operation = "deactivate"
	opFindByDocument       operation = "find_by_document"
	opFindByDocumentNumber operation = "find_by_document_number"
)

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeEmptyID
	outcomeInvalidDocument
)

type messageKey struct {
	op      operation
	outcome outcome
}

func message(op operation, out outcome) string {
	switch (messageKey{op, out}) {
	case messageKey{opSave, outcomeSuccess}:
		return "Customer registered successfully"
	case messageKey{opSave, outcomeFailure}:
		return "Error registering customer"
	case messageKey{opUpdate, outcomeSuccess}:
		return "Customer updated successfully"
	case messageKey{opUpdate, outcomeFailure}:
		return "Error updating customer"
	case messageKey{opUpdate, outcomeEmptyID}:
		return "Customer id is required to update"
	case messageKey{opDeactivate, outcomeSuccess}:
		return "Customer deactivated successfully"
	case messageKey{opDeactivate, outcomeFailure}:
		return "Error deactivating customer"
	case messageKey{opDeactivate, outcomeEmptyID}:
		return "Customer id is required to deactivate"
	case messageKey{opFindByID, outcomeEmptyID}:
		return "Customer id cannot be empty"
	case messageKey{opFindByDocument, outcomeInvalidDocument}:
		return "Document type and number are required"
	case messageKey{opFindByDocumentNumber, outcomeInvalidDocument}:
		return "Document number is required"
	}
	return "Operation failed"
}

func notFoundByID(id string) string {
	return fmt.Sprintf("Customer not found with id: %s", id)
}

func notFoundByDocument(docType DocumentType, number string) string {
	return fmt.Sprintf("Customer not found with document type: %s and number: %s", docType, number)
}

func notFoundByDocumentNumber(number string) string {
	return fmt.Sprintf("Customer not found with document number: %s", number)
}
