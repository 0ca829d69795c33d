// Package formstore persists accepted transaction forms. Three backends share
// the ports.FormStore contract: process memory, Postgres and MinIO.
package formstore

import (
	"sort"

	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"
)

const msgFormNotFound = "Form not found"

func errNotFound() error {
	return apperr.NotFound(msgFormNotFound)
}

// sortNewestFirst orders records by CreatedAt descending, keeping the input
// order for equal timestamps.
func sortNewestFirst(records []ports.FormRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
