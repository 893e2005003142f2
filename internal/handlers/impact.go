package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/graph"
)

// ImpactAnalysis computes the blast radius of a service failure. Unknown
// service ids get 404; the analyzer itself never errors.
func ImpactAnalysis(c *gin.Context) {
	serviceID := c.Param("serviceId")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := db.GetCollection(db.ServicesCollection).FindOne(ctx, bson.M{"_id": serviceID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		notFound(c, "Service", serviceID)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	connections, err := loadAllConnections(ctx, bson.M{})
	if err != nil {
		internalError(c, err)
		return
	}

	result := graph.AnalyzeImpact(serviceID, graph.EdgesFromConnections(connections))
	c.JSON(http.StatusOK, result)
}
