package models

import "time"

// Import statuses. The reconciler only ever writes "success"; partial and
// failed are reserved for records written by external ingestion paths.
const (
	ImportStatusSuccess = "success"
	ImportStatusPartial = "partial"
	ImportStatusFailed  = "failed"
)

// DbImport is one entry of the append-only import history.
type DbImport struct {
	ID               string    `bson:"_id" json:"id"`
	Filename         string    `bson:"filename" json:"filename"`
	ImportedAt       time.Time `bson:"imported_at" json:"importedAt"`
	ServicesCount    int       `bson:"services_count" json:"servicesCount"`
	ConnectionsCount int       `bson:"connections_count" json:"connectionsCount"`
	Status           string    `bson:"status" json:"status"`
	Errors           []string  `bson:"errors,omitempty" json:"errors,omitempty"`
}
