package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/graph"
)

const (
	graphCacheKey = "servicemap:graph"
	graphCacheTTL = 30 * time.Second
)

// ServiceGraph returns the assembled {nodes, edges} payload. The payload is
// cached in Redis; a cache miss or Redis outage falls back to a direct read.
func ServiceGraph(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cached, err := db.RedisClient.Get(ctx, graphCacheKey).Result(); err == nil {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	services, err := loadAllServices(ctx, bson.M{})
	if err != nil {
		internalError(c, err)
		return
	}
	connections, err := loadAllConnections(ctx, bson.M{})
	if err != nil {
		internalError(c, err)
		return
	}

	payload := graph.Assemble(services, connections)
	body, err := json.Marshal(payload)
	if err != nil {
		internalError(c, err)
		return
	}

	if err := db.RedisClient.Set(ctx, graphCacheKey, body, graphCacheTTL).Err(); err != nil {
		log.Printf("graph cache write failed: %v", err)
	}
	c.Data(http.StatusOK, "application/json", body)
}

// invalidateGraphCache drops the cached graph payload after any write to
// services or connections. Best effort: a Redis failure only logs.
func invalidateGraphCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := db.RedisClient.Del(ctx, graphCacheKey).Err(); err != nil {
		log.Printf("graph cache invalidation failed: %v", err)
	}
}
