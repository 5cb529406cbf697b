// Package status is the single source of truth for legal document status
// transitions. Every transition entry point consults these tables; no
// handler keeps its own copy.
package status

import "github.com/velikanov/docflow/internal/domain/model"

type transitionTable map[model.Status][]model.Status

var orderTransitions = transitionTable{
	model.StatusDraft:                {model.StatusSent, model.StatusNewPlanned, model.StatusCancelled},
	model.StatusSent:                 {model.StatusPaid, model.StatusCancelled},
	model.StatusPaid:                 {model.StatusUnderReview, model.StatusCancelled},
	model.StatusNewPlanned:           {model.StatusUnderReview, model.StatusCancelled},
	model.StatusUnderReview:          {model.StatusAwaitingMeasurement, model.StatusAwaitingInvoice, model.StatusCancelled},
	model.StatusAwaitingMeasurement:  {model.StatusAwaitingInvoice, model.StatusCancelled},
	model.StatusAwaitingInvoice:      {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted:            {},
	model.StatusCancelled:            {},
}

var supplierOrderTransitions = transitionTable{
	model.StatusPending:              {model.StatusOrdered, model.StatusCancelled},
	model.StatusOrdered:              {model.StatusReceivedFromSupplier, model.StatusCancelled},
	model.StatusReceivedFromSupplier: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted:            {},
	model.StatusCancelled:            {},
}

var tables = map[model.DocumentType]transitionTable{
	model.TypeOrder:         orderTransitions,
	model.TypeSupplierOrder: supplierOrderTransitions,
}

var initialStatuses = map[model.DocumentType]model.Status{
	model.TypeOrder:         model.StatusDraft,
	model.TypeSupplierOrder: model.StatusPending,
}

// HasStatus reports whether documents of type t carry a status at all.
// Quotes and invoices are status-free in the canonical model.
func HasStatus(t model.DocumentType) bool {
	_, ok := tables[t]
	return ok
}

// Initial returns the status assigned at creation for type t.
func Initial(t model.DocumentType) model.Status {
	return initialStatuses[t]
}

// Known reports whether s is a valid status value for type t.
func Known(t model.DocumentType, s model.Status) bool {
	table, ok := tables[t]
	if !ok {
		return false
	}
	_, ok = table[s]
	return ok
}

// CanTransition reports whether current -> target is in the table for t.
// Self-transitions are never legal.
func CanTransition(t model.DocumentType, current, target model.Status) bool {
	for _, s := range ValidTransitions(t, current) {
		if s == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the legal successor set of current for type t.
// Terminal and unknown statuses have no successors.
func ValidTransitions(t model.DocumentType, current model.Status) []model.Status {
	table, ok := tables[t]
	if !ok {
		return nil
	}
	return table[current]
}

// IsTerminal reports whether no transition leaves s for documents of type t.
func IsTerminal(t model.DocumentType, s model.Status) bool {
	return Known(t, s) && len(ValidTransitions(t, s)) == 0
}

// CanEdit reports whether document items may still be changed. Only the
// earliest status allows editing; status-free types are always editable.
func CanEdit(t model.DocumentType, s model.Status) bool {
	if !HasStatus(t) {
		return true
	}
	return s == Initial(t)
}

// CanDelete reports whether a document may be physically removed: only in
// its initial status or after cancellation. Status-free types are always
// deletable.
func CanDelete(t model.DocumentType, s model.Status) bool {
	if !HasStatus(t) {
		return true
	}
	return s == Initial(t) || s == model.StatusCancelled
}
