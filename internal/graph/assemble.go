package graph

import (
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

// NodesFromServices maps stored service rows to graph nodes. Nil optionals
// stay nil (omitted in JSON) and tags default to an empty list.
func NodesFromServices(services []models.DbService) []models.GraphNode {
	nodes := make([]models.GraphNode, 0, len(services))
	for _, s := range services {
		tags := s.Tags
		if tags == nil {
			tags = []string{}
		}
		nodes = append(nodes, models.GraphNode{
			ID:            s.ID,
			Name:          s.Name,
			Type:          s.Type,
			Tier:          s.Tier,
			Owner:         s.Owner,
			Description:   s.Description,
			Repository:    s.Repository,
			Documentation: s.Documentation,
			Tags:          tags,
		})
	}
	return nodes
}

// EdgesFromConnections maps stored connection rows to graph edges,
// renaming sourceId/targetId to source/target. Criticality falls back to
// medium for rows written without one.
func EdgesFromConnections(connections []models.DbConnection) []models.GraphEdge {
	edges := make([]models.GraphEdge, 0, len(connections))
	for _, c := range connections {
		criticality := c.Criticality
		if criticality == "" {
			criticality = models.CriticalityMedium
		}
		var protocol *string
		if c.Protocol != "" {
			p := c.Protocol
			protocol = &p
		}
		edges = append(edges, models.GraphEdge{
			ID:               c.ID,
			Source:           c.SourceID,
			Target:           c.TargetID,
			Label:            c.Label,
			Protocol:         protocol,
			Port:             c.Port,
			Criticality:      criticality,
			SlaTargetMs:      c.SlaTargetMs,
			SlaUptimePercent: c.SlaUptimePercent,
			AuthMethod:       c.AuthMethod,
			IsAsync:          c.IsAsync,
		})
	}
	return edges
}

// Assemble builds the full graph payload from stored rows.
func Assemble(services []models.DbService, connections []models.DbConnection) models.ServiceGraph {
	return models.ServiceGraph{
		Nodes: NodesFromServices(services),
		Edges: EdgesFromConnections(connections),
	}
}
