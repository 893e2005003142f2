package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
	"github.com/ruby4mag/servicemap-go-backend/internal/parser"
)

type connectionPayload struct {
	SourceID         string                 `json:"sourceId"`
	TargetID         string                 `json:"targetId"`
	Label            *string                `json:"label"`
	Protocol         string                 `json:"protocol"`
	Port             *int                   `json:"port"`
	Description      *string                `json:"description"`
	Criticality      string                 `json:"criticality"`
	SlaTargetMs      *float64               `json:"slaTargetMs"`
	SlaUptimePercent *float64               `json:"slaUptimePercent"`
	AuthMethod       *string                `json:"authMethod"`
	IsAsync          bool                   `json:"isAsync"`
	Metadata         map[string]interface{} `json:"metadata"`
}

func (p *connectionPayload) validate() []string {
	var errs []string

	if !parser.IsServiceID(p.SourceID) {
		errs = append(errs, "sourceId: "+serviceIDMessage)
	}
	if !parser.IsServiceID(p.TargetID) {
		errs = append(errs, "targetId: "+serviceIDMessage)
	}
	if p.Label != nil && len(*p.Label) > 128 {
		errs = append(errs, "label: Must be at most 128 characters")
	}
	if p.Protocol == "" {
		p.Protocol = models.DefaultProtocol
	} else if !models.IsProtocol(p.Protocol) {
		errs = append(errs, "protocol: Must be a valid protocol")
	}
	if p.Port != nil && (*p.Port < 1 || *p.Port > 65535) {
		errs = append(errs, "port: Must be an integer between 1 and 65535")
	}
	if p.Criticality == "" {
		p.Criticality = models.DefaultCriticality
	} else if !models.IsCriticality(p.Criticality) {
		errs = append(errs, "criticality: Must be a valid criticality")
	}
	if p.SlaTargetMs != nil && *p.SlaTargetMs <= 0 {
		errs = append(errs, "slaTargetMs: Must be greater than 0")
	}
	if p.SlaUptimePercent != nil && (*p.SlaUptimePercent < 0 || *p.SlaUptimePercent > 100) {
		errs = append(errs, "slaUptimePercent: Must be between 0 and 100")
	}
	if p.AuthMethod != nil && !models.IsAuthMethod(*p.AuthMethod) {
		errs = append(errs, "authMethod: Must be a valid auth method")
	}

	return errs
}

// IndexConnections lists connections, optionally filtered by endpoint,
// protocol or criticality.
func IndexConnections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if sourceID := c.Query("sourceId"); sourceID != "" {
		filter["source_id"] = sourceID
	}
	if targetID := c.Query("targetId"); targetID != "" {
		filter["target_id"] = targetID
	}
	if protocol := c.Query("protocol"); protocol != "" {
		filter["protocol"] = protocol
	}
	if criticality := c.Query("criticality"); criticality != "" {
		filter["criticality"] = criticality
	}

	rows, err := loadAllConnections(ctx, filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// NewConnection creates a connection between two existing services.
// Self-loops and dangling endpoints are rejected.
func NewConnection(c *gin.Context) {
	var payload connectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidData(c, "Invalid connection data", []string{err.Error()})
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		invalidData(c, "Invalid connection data", errs)
		return
	}
	if payload.SourceID == payload.TargetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A service cannot connect to itself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	services := db.GetCollection(db.ServicesCollection)
	for _, endpoint := range []struct{ role, id string }{
		{"Source", payload.SourceID},
		{"Target", payload.TargetID},
	} {
		err := services.FindOne(ctx, bson.M{"_id": endpoint.id}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("%s service '%s' does not exist", endpoint.role, endpoint.id),
			})
			return
		}
		if err != nil {
			internalError(c, err)
			return
		}
	}

	now := time.Now().UTC()
	row := models.DbConnection{
		ID:               uuid.NewString(),
		SourceID:         payload.SourceID,
		TargetID:         payload.TargetID,
		Label:            payload.Label,
		Protocol:         payload.Protocol,
		Port:             payload.Port,
		Description:      payload.Description,
		Criticality:      payload.Criticality,
		SlaTargetMs:      payload.SlaTargetMs,
		SlaUptimePercent: payload.SlaUptimePercent,
		AuthMethod:       payload.AuthMethod,
		IsAsync:          payload.IsAsync,
		Metadata:         payload.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := db.GetCollection(db.ConnectionsCollection).InsertOne(ctx, row); err != nil {
		internalError(c, err)
		return
	}

	invalidateGraphCache()
	c.JSON(http.StatusCreated, row)
}

// ShowConnection returns a single connection by id.
func ShowConnection(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var row models.DbConnection
	err := db.GetCollection(db.ConnectionsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		notFound(c, "Connection", id)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type updateConnectionPayload struct {
	Label            *string                `json:"label"`
	Protocol         *string                `json:"protocol"`
	Port             *int                   `json:"port"`
	Description      *string                `json:"description"`
	Criticality      *string                `json:"criticality"`
	SlaTargetMs      *float64               `json:"slaTargetMs"`
	SlaUptimePercent *float64               `json:"slaUptimePercent"`
	AuthMethod       *string                `json:"authMethod"`
	IsAsync          *bool                  `json:"isAsync"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// UpdateConnection applies a partial update; endpoints are immutable.
func UpdateConnection(c *gin.Context) {
	id := c.Param("id")

	var payload updateConnectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidData(c, "Invalid connection data", []string{err.Error()})
		return
	}

	var errs []string
	set := bson.M{"updated_at": time.Now().UTC()}
	if payload.Label != nil {
		if len(*payload.Label) > 128 {
			errs = append(errs, "label: Must be at most 128 characters")
		}
		set["label"] = *payload.Label
	}
	if payload.Protocol != nil {
		if !models.IsProtocol(*payload.Protocol) {
			errs = append(errs, "protocol: Must be a valid protocol")
		}
		set["protocol"] = *payload.Protocol
	}
	if payload.Port != nil {
		if *payload.Port < 1 || *payload.Port > 65535 {
			errs = append(errs, "port: Must be an integer between 1 and 65535")
		}
		set["port"] = *payload.Port
	}
	if payload.Description != nil {
		set["description"] = *payload.Description
	}
	if payload.Criticality != nil {
		if !models.IsCriticality(*payload.Criticality) {
			errs = append(errs, "criticality: Must be a valid criticality")
		}
		set["criticality"] = *payload.Criticality
	}
	if payload.SlaTargetMs != nil {
		if *payload.SlaTargetMs <= 0 {
			errs = append(errs, "slaTargetMs: Must be greater than 0")
		}
		set["sla_target_ms"] = *payload.SlaTargetMs
	}
	if payload.SlaUptimePercent != nil {
		if *payload.SlaUptimePercent < 0 || *payload.SlaUptimePercent > 100 {
			errs = append(errs, "slaUptimePercent: Must be between 0 and 100")
		}
		set["sla_uptime_percent"] = *payload.SlaUptimePercent
	}
	if payload.AuthMethod != nil {
		if !models.IsAuthMethod(*payload.AuthMethod) {
			errs = append(errs, "authMethod: Must be a valid auth method")
		}
		set["auth_method"] = *payload.AuthMethod
	}
	if payload.IsAsync != nil {
		set["is_async"] = *payload.IsAsync
	}
	if payload.Metadata != nil {
		set["metadata"] = payload.Metadata
	}
	if len(errs) > 0 {
		invalidData(c, "Invalid connection data", errs)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.GetCollection(db.ConnectionsCollection)
	res, err := collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		internalError(c, err)
		return
	}
	if res.MatchedCount == 0 {
		notFound(c, "Connection", id)
		return
	}

	var row models.DbConnection
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&row); err != nil {
		internalError(c, err)
		return
	}

	invalidateGraphCache()
	c.JSON(http.StatusOK, row)
}

// DeleteConnection removes a connection by id.
func DeleteConnection(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := db.GetCollection(db.ConnectionsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		internalError(c, err)
		return
	}
	if res.DeletedCount == 0 {
		notFound(c, "Connection", id)
		return
	}

	invalidateGraphCache()
	c.Status(http.StatusNoContent)
}
