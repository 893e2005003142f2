package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/importer"
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
	"github.com/ruby4mag/servicemap-go-backend/internal/parser"
)

type importRequest struct {
	Yaml     string `json:"yaml" binding:"required"`
	Filename string `json:"filename"`
}

// ImportYAML validates a YAML service map and merges it into the database.
// Validation failures return 422 with the full ordered error list.
func ImportYAML(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidData(c, "Invalid import request", []string{err.Error()})
		return
	}
	if len(req.Filename) > 256 {
		invalidData(c, "Invalid import request", []string{"filename: Must be at most 256 characters"})
		return
	}

	doc, parseErrs := parser.ParseServiceYAML(req.Yaml)
	if parseErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "YAML validation failed",
			"details": parseErrs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec, err := importer.Run(ctx, db.Store{}, doc, req.Filename)
	if err != nil {
		internalError(c, err)
		return
	}

	invalidateGraphCache()
	c.JSON(http.StatusCreated, gin.H{
		"importId":         rec.ID,
		"servicesCount":    rec.ServicesCount,
		"connectionsCount": rec.ConnectionsCount,
		"status":           rec.Status,
	})
}

// IndexImports lists the import history, newest first.
func IndexImports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "imported_at", Value: -1}})
	cur, err := db.GetCollection(db.ImportsCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		internalError(c, err)
		return
	}
	defer cur.Close(ctx)

	var rows []models.DbImport
	if err := cur.All(ctx, &rows); err != nil {
		internalError(c, err)
		return
	}
	if rows == nil {
		rows = []models.DbImport{}
	}
	c.JSON(http.StatusOK, rows)
}
