package models

import "time"

// DbService is a node in the dependency graph. The document id is the
// service slug, so identity is global and upserts key on it directly.
type DbService struct {
	ID            string                 `bson:"_id" json:"id"`
	Name          string                 `bson:"name" json:"name"`
	Description   *string                `bson:"description,omitempty" json:"description"`
	Owner         *string                `bson:"owner,omitempty" json:"owner"`
	Tier          string                 `bson:"tier" json:"tier"`
	Type          string                 `bson:"type" json:"type"`
	Repository    *string                `bson:"repository,omitempty" json:"repository"`
	Documentation *string                `bson:"documentation,omitempty" json:"documentation"`
	Tags          []string               `bson:"tags,omitempty" json:"tags"`
	Metadata      map[string]interface{} `bson:"metadata,omitempty" json:"metadata"`
	CreatedAt     time.Time              `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time              `bson:"updated_at" json:"updatedAt"`
}
