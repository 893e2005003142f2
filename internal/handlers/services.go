package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ruby4mag/servicemap-go-backend/internal/db"
	"github.com/ruby4mag/servicemap-go-backend/internal/models"
	"github.com/ruby4mag/servicemap-go-backend/internal/parser"
)

type servicePayload struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   *string                `json:"description"`
	Owner         *string                `json:"owner"`
	Tier          string                 `json:"tier"`
	Type          string                 `json:"type"`
	Repository    *string                `json:"repository"`
	Documentation *string                `json:"documentation"`
	Tags          []string               `json:"tags"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// validate applies defaults and returns one error string per violated field.
func (p *servicePayload) validate() []string {
	var errs []string

	if !parser.IsServiceID(p.ID) {
		errs = append(errs, "id: "+serviceIDMessage)
	}
	if p.Name == "" || len(p.Name) > 128 {
		errs = append(errs, "name: Must be between 1 and 128 characters")
	}
	if p.Tier == "" {
		p.Tier = models.DefaultTier
	} else if !models.IsCriticality(p.Tier) {
		errs = append(errs, "tier: Must be a valid criticality")
	}
	if p.Type == "" {
		p.Type = models.DefaultServiceType
	} else if !models.IsServiceType(p.Type) {
		errs = append(errs, "type: Must be a valid service type")
	}
	if p.Repository != nil && !isValidURL(*p.Repository) {
		errs = append(errs, "repository: Must be a valid URL")
	}
	if p.Documentation != nil && !isValidURL(*p.Documentation) {
		errs = append(errs, "documentation: Must be a valid URL")
	}
	if len(p.Tags) > 20 {
		errs = append(errs, "tags: Must contain at most 20 items")
	}
	for i, tag := range p.Tags {
		if len(tag) > 64 {
			errs = append(errs, fmt.Sprintf("tags.%d: Must be at most 64 characters", i))
		}
	}

	return errs
}

// IndexServices lists services, optionally filtered by owner, tier, type
// or tag.
func IndexServices(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{}
	if owner := c.Query("owner"); owner != "" {
		filter["owner"] = owner
	}
	if tier := c.Query("tier"); tier != "" {
		filter["tier"] = tier
	}
	if serviceType := c.Query("type"); serviceType != "" {
		filter["type"] = serviceType
	}
	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}

	rows, err := loadAllServices(ctx, filter)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// NewService creates a service, rejecting duplicates with 409.
func NewService(c *gin.Context) {
	var payload servicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidData(c, "Invalid service data", []string{err.Error()})
		return
	}
	if errs := payload.validate(); len(errs) > 0 {
		invalidData(c, "Invalid service data", errs)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.GetCollection(db.ServicesCollection)
	err := collection.FindOne(ctx, bson.M{"_id": payload.ID}).Err()
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Service '%s' already exists", payload.ID)})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		internalError(c, err)
		return
	}

	now := time.Now().UTC()
	row := models.DbService{
		ID:            payload.ID,
		Name:          payload.Name,
		Description:   payload.Description,
		Owner:         payload.Owner,
		Tier:          payload.Tier,
		Type:          payload.Type,
		Repository:    payload.Repository,
		Documentation: payload.Documentation,
		Tags:          payload.Tags,
		Metadata:      payload.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := collection.InsertOne(ctx, row); err != nil {
		internalError(c, err)
		return
	}

	invalidateGraphCache()
	c.JSON(http.StatusCreated, row)
}

// ShowService returns a single service by id.
func ShowService(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var row models.DbService
	err := db.GetCollection(db.ServicesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&row)
	if errors.Is(err, mongo.ErrNoDocuments) {
		notFound(c, "Service", id)
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

type updateServicePayload struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Owner         *string                `json:"owner"`
	Tier          *string                `json:"tier"`
	Type          *string                `json:"type"`
	Repository    *string                `json:"repository"`
	Documentation *string                `json:"documentation"`
	Tags          *[]string              `json:"tags"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// UpdateService applies a partial update; absent fields are left untouched.
func UpdateService(c *gin.Context) {
	id := c.Param("id")

	var payload updateServicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		invalidData(c, "Invalid service data", []string{err.Error()})
		return
	}

	var errs []string
	set := bson.M{"updated_at": time.Now().UTC()}
	if payload.Name != nil {
		if *payload.Name == "" || len(*payload.Name) > 128 {
			errs = append(errs, "name: Must be between 1 and 128 characters")
		}
		set["name"] = *payload.Name
	}
	if payload.Description != nil {
		set["description"] = *payload.Description
	}
	if payload.Owner != nil {
		set["owner"] = *payload.Owner
	}
	if payload.Tier != nil {
		if !models.IsCriticality(*payload.Tier) {
			errs = append(errs, "tier: Must be a valid criticality")
		}
		set["tier"] = *payload.Tier
	}
	if payload.Type != nil {
		if !models.IsServiceType(*payload.Type) {
			errs = append(errs, "type: Must be a valid service type")
		}
		set["type"] = *payload.Type
	}
	if payload.Repository != nil {
		if !isValidURL(*payload.Repository) {
			errs = append(errs, "repository: Must be a valid URL")
		}
		set["repository"] = *payload.Repository
	}
	if payload.Documentation != nil {
		if !isValidURL(*payload.Documentation) {
			errs = append(errs, "documentation: Must be a valid URL")
		}
		set["documentation"] = *payload.Documentation
	}
	if payload.Tags != nil {
		if len(*payload.Tags) > 20 {
			errs = append(errs, "tags: Must contain at most 20 items")
		}
		set["tags"] = *payload.Tags
	}
	if payload.Metadata != nil {
		set["metadata"] = payload.Metadata
	}
	if len(errs) > 0 {
		invalidData(c, "Invalid service data", errs)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.GetCollection(db.ServicesCollection)
	res, err := collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		internalError(c, err)
		return
	}
	if res.MatchedCount == 0 {
		notFound(c, "Service", id)
		return
	}

	var row models.DbService
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&row); err != nil {
		internalError(c, err)
		return
	}

	invalidateGraphCache()
	c.JSON(http.StatusOK, row)
}

// DeleteService removes a service and cascades to its connections.
func DeleteService(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	found, err := db.Store{}.DeleteServiceCascade(ctx, id)
	if err != nil {
		internalError(c, err)
		return
	}
	if !found {
		notFound(c, "Service", id)
		return
	}

	invalidateGraphCache()
	c.Status(http.StatusNoContent)
}
