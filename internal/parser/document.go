// Package parser turns raw YAML text into a validated service map document.
// It is the only producer of Document, so downstream code can rely on every
// field being present, defaulted and cross-referenced.
package parser

// ServiceDefinition is one validated entry of the services list with
// defaults applied. Optional fields stay nil when absent on the wire.
type ServiceDefinition struct {
	ID            string
	Name          string
	Description   *string
	Owner         *string
	Tier          string
	Type          string
	Repository    *string
	Documentation *string
	Tags          []string
	Metadata      map[string]interface{}
}

// ConnectionDefinition is one validated entry of the connections list.
// Source and Target are guaranteed to reference services in the same
// document and to differ from each other.
type ConnectionDefinition struct {
	Source           string
	Target           string
	Label            *string
	Protocol         string
	Port             *int
	Description      *string
	Criticality      string
	SlaTargetMs      *float64
	SlaUptimePercent *float64
	AuthMethod       *string
	IsAsync          bool
	Metadata         map[string]interface{}
}

// Document is a fully validated service map.
type Document struct {
	Services    []ServiceDefinition
	Connections []ConnectionDefinition
}
