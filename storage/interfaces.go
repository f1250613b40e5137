package storage

import "car-dashboard/models"

// TableWriter is the interface any export backend must satisfy.
type TableWriter interface {
	Write(t models.Table) error
}
