package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestNodesFromServices(t *testing.T) {
	owner := "platform-team"
	services := []models.DbService{
		{
			ID:    "auth",
			Name:  "Auth Service",
			Type:  "service",
			Tier:  "critical",
			Owner: &owner,
			Tags:  []string{"core"},
		},
		{
			ID:   "cache",
			Name: "Session Cache",
			Type: "cache",
			Tier: "medium",
		},
	}

	nodes := NodesFromServices(services)

	require.Len(t, nodes, 2)
	require.NotNil(t, nodes[0].Owner)
	assert.Equal(t, "platform-team", *nodes[0].Owner)
	assert.Equal(t, []string{"core"}, nodes[0].Tags)

	// Nil optionals stay nil; nil tags become an empty list.
	assert.Nil(t, nodes[1].Owner)
	assert.NotNil(t, nodes[1].Tags)
	assert.Empty(t, nodes[1].Tags)
}

func TestNodesFromServices_NilOwnerOmittedFromJSON(t *testing.T) {
	nodes := NodesFromServices([]models.DbService{
		{ID: "a", Name: "A", Type: "service", Tier: "medium"},
	})

	body, err := json.Marshal(nodes[0])
	require.NoError(t, err)
	assert.NotContains(t, string(body), "owner")
	assert.Contains(t, string(body), `"tags":[]`)
}

func TestEdgesFromConnections(t *testing.T) {
	port := 5432
	connections := []models.DbConnection{
		{
			ID:          "conn-1",
			SourceID:    "orders",
			TargetID:    "orders-db",
			Label:       strPtr("order reads"),
			Protocol:    "postgres",
			Port:        &port,
			Criticality: "critical",
			IsAsync:     false,
		},
	}

	edges := EdgesFromConnections(connections)

	require.Len(t, edges, 1)
	e := edges[0]
	assert.Equal(t, "conn-1", e.ID)
	assert.Equal(t, "orders", e.Source)
	assert.Equal(t, "orders-db", e.Target)
	require.NotNil(t, e.Protocol)
	assert.Equal(t, "postgres", *e.Protocol)
	require.NotNil(t, e.Port)
	assert.Equal(t, 5432, *e.Port)
	assert.Equal(t, "critical", e.Criticality)
}

func TestEdgesFromConnections_Defaults(t *testing.T) {
	edges := EdgesFromConnections([]models.DbConnection{
		{ID: "c1", SourceID: "a", TargetID: "b"},
	})

	require.Len(t, edges, 1)
	assert.Equal(t, "medium", edges[0].Criticality)
	assert.Nil(t, edges[0].Protocol)
	assert.Nil(t, edges[0].Label)
}

func TestEdgesFromConnections_JSONFieldNames(t *testing.T) {
	edges := EdgesFromConnections([]models.DbConnection{
		{ID: "c1", SourceID: "a", TargetID: "b", Criticality: "high"},
	})

	body, err := json.Marshal(edges[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"source":"a"`)
	assert.Contains(t, string(body), `"target":"b"`)
	assert.NotContains(t, string(body), "sourceId")
}

func TestAssemble(t *testing.T) {
	g := Assemble(
		[]models.DbService{{ID: "a", Name: "A", Type: "service", Tier: "medium"}},
		[]models.DbConnection{{ID: "c1", SourceID: "a", TargetID: "b", Criticality: "low"}},
	)

	assert.Len(t, g.Nodes, 1)
	assert.Len(t, g.Edges, 1)
}
