// Package handlers provides the gin request handlers for the service map
// API: service/connection CRUD, YAML import, graph assembly and impact
// analysis.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

const serviceIDMessage = "Service ID must be lowercase alphanumeric with hyphens, e.g. 'auth-service'"

func notFound(c *gin.Context, entity, id string) {
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s '%s' not found", entity, id)})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func invalidData(c *gin.Context, message string, details []string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": details})
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func loadAllServices(ctx context.Context, filter bson.M) ([]models.DbService, error) {
	cur, err := db.GetCollection(db.ServicesCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.DbService
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.DbService{}
	}
	return rows, nil
}

func loadAllConnections(ctx context.Context, filter bson.M) ([]models.DbConnection, error) {
	cur, err := db.GetCollection(db.ConnectionsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.DbConnection
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.DbConnection{}
	}
	return rows, nil
}
