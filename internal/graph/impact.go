// Package graph computes service dependency projections and blast radius.
package graph

import (
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

// reverseDependent is one entry of the reverse adjacency map: a service
// with an edge pointing at the map key, i.e. a service that breaks when
// the key goes down.
type reverseDependent struct {
	source      string
	criticality string
}

// AnalyzeImpact computes which services are affected, directly and
// transitively, when sourceID fails. It is a pure function of its inputs:
// no I/O, no mutation of edges. An id that no edge touches yields an empty
// result rather than an error; existence checks belong to the API boundary.
//
// The traversal is a breadth-first search over reversed edges with an
// explicit queue and a visited set, so cyclic graphs terminate and every
// affected service is recorded at its minimum hop distance.
func AnalyzeImpact(sourceID string, edges []models.GraphEdge) models.ImpactResult {
	reverse := make(map[string][]reverseDependent)
	for _, edge := range edges {
		// Edge A -> B means A depends on B, so B failing impacts A.
		reverse[edge.Target] = append(reverse[edge.Target], reverseDependent{
			source:      edge.Source,
			criticality: edge.Criticality,
		})
	}

	visited := map[string]bool{sourceID: true}
	hops := map[string]int{sourceID: 0}
	directDependents := []string{}
	allAffected := []string{}
	impactChain := make(map[string][]string)
	maxCriticality := models.CriticalityLow

	queue := []string{sourceID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		var affected []string
		for _, dep := range reverse[current] {
			// Parallel edges all count toward criticality even though the
			// visited set allows only one traversal per node.
			if models.CriticalityRank(dep.criticality) > models.CriticalityRank(maxCriticality) {
				maxCriticality = dep.criticality
			}
			if visited[dep.source] {
				continue
			}
			visited[dep.source] = true
			hops[dep.source] = hops[current] + 1
			queue = append(queue, dep.source)
			affected = append(affected, dep.source)
			allAffected = append(allAffected, dep.source)
			if current == sourceID {
				directDependents = append(directDependents, dep.source)
			}
		}
		if len(affected) > 0 {
			impactChain[current] = affected
		}
	}

	// The source seeded the search but is the cause, not an effect.
	delete(hops, sourceID)

	return models.ImpactResult{
		SourceID:         sourceID,
		DirectDependents: directDependents,
		AllAffected:      allAffected,
		ImpactChain:      impactChain,
		MaxCriticality:   maxCriticality,
		HopDistance:      hops,
	}
}
