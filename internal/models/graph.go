package models

// GraphNode is the projection of a service consumed by the graph view and
// the impact analyzer. Optional fields are omitted from JSON when unset.
type GraphNode struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Tier          string   `json:"tier"`
	Owner         *string  `json:"owner,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Repository    *string  `json:"repository,omitempty"`
	Documentation *string  `json:"documentation,omitempty"`
	Tags          []string `json:"tags"`
}

// GraphEdge is the projection of a connection. Source depends on target.
type GraphEdge struct {
	ID               string   `json:"id"`
	Source           string   `json:"source"`
	Target           string   `json:"target"`
	Label            *string  `json:"label,omitempty"`
	Protocol         *string  `json:"protocol,omitempty"`
	Port             *int     `json:"port,omitempty"`
	Criticality      string   `json:"criticality"`
	SlaTargetMs      *float64 `json:"slaTargetMs,omitempty"`
	SlaUptimePercent *float64 `json:"slaUptimePercent,omitempty"`
	AuthMethod       *string  `json:"authMethod,omitempty"`
	IsAsync          bool     `json:"isAsync"`
}

// ServiceGraph is the full node/edge payload for rendering.
type ServiceGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ImpactResult is the blast radius of a service failure. Lists are in BFS
// discovery order; the source never appears in AllAffected or HopDistance.
type ImpactResult struct {
	SourceID         string              `json:"sourceId"`
	DirectDependents []string            `json:"directDependents"`
	AllAffected      []string            `json:"allAffected"`
	ImpactChain      map[string][]string `json:"impactChain"`
	MaxCriticality   string              `json:"maxCriticality"`
	HopDistance      map[string]int      `json:"hopDistance"`
}
