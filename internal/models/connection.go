package models

import "time"

// DbConnection is a directed edge: source depends on target (source calls
// or uses target). The id is a minted UUID, stable across re-imports of the
// same (source, target) pair.
type DbConnection struct {
	ID               string                 `bson:"_id" json:"id"`
	SourceID         string                 `bson:"source_id" json:"sourceId"`
	TargetID         string                 `bson:"target_id" json:"targetId"`
	Label            *string                `bson:"label,omitempty" json:"label"`
	Protocol         string                 `bson:"protocol" json:"protocol"`
	Port             *int                   `bson:"port,omitempty" json:"port"`
	Description      *string                `bson:"description,omitempty" json:"description"`
	Criticality      string                 `bson:"criticality" json:"criticality"`
	SlaTargetMs      *float64               `bson:"sla_target_ms,omitempty" json:"slaTargetMs"`
	SlaUptimePercent *float64               `bson:"sla_uptime_percent,omitempty" json:"slaUptimePercent"`
	AuthMethod       *string                `bson:"auth_method,omitempty" json:"authMethod"`
	IsAsync          bool                   `bson:"is_async" json:"isAsync"`
	Metadata         map[string]interface{} `bson:"metadata,omitempty" json:"metadata"`
	CreatedAt        time.Time              `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time              `bson:"updated_at" json:"updatedAt"`
}
