package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ruby4mag/servicemap-go-backend/internal/models"
)

// Collection names.
const (
	ServicesCollection    = "services"
	ConnectionsCollection = "connections"
	ImportsCollection     = "imports"
)

// Store implements importer.Store on the shared Mongo database.
type Store struct{}

func (Store) UpsertService(ctx context.Context, svc models.DbService) error {
	update := bson.M{
		"$set": bson.M{
			"name":          svc.Name,
			"description":   svc.Description,
			"owner":         svc.Owner,
			"tier":          svc.Tier,
			"type":          svc.Type,
			"repository":    svc.Repository,
			"documentation": svc.Documentation,
			"tags":          svc.Tags,
			"metadata":      svc.Metadata,
			"updated_at":    svc.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": svc.CreatedAt,
		},
	}
	_, err := GetCollection(ServicesCollection).UpdateOne(
		ctx,
		bson.M{"_id": svc.ID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (Store) FindConnectionID(ctx context.Context, sourceID, targetID string) (string, bool, error) {
	var conn models.DbConnection
	err := GetCollection(ConnectionsCollection).
		FindOne(ctx, bson.M{"source_id": sourceID, "target_id": targetID}).
		Decode(&conn)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return conn.ID, true, nil
}

func (Store) UpsertConnection(ctx context.Context, conn models.DbConnection) error {
	update := bson.M{
		"$set": bson.M{
			"source_id":          conn.SourceID,
			"target_id":          conn.TargetID,
			"label":              conn.Label,
			"protocol":           conn.Protocol,
			"port":               conn.Port,
			"description":        conn.Description,
			"criticality":        conn.Criticality,
			"sla_target_ms":      conn.SlaTargetMs,
			"sla_uptime_percent": conn.SlaUptimePercent,
			"auth_method":        conn.AuthMethod,
			"is_async":           conn.IsAsync,
			"metadata":           conn.Metadata,
			"updated_at":         conn.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": conn.CreatedAt,
		},
	}
	_, err := GetCollection(ConnectionsCollection).UpdateOne(
		ctx,
		bson.M{"_id": conn.ID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

func (Store) InsertImport(ctx context.Context, rec models.DbImport) error {
	_, err := GetCollection(ImportsCollection).InsertOne(ctx, rec)
	return err
}

// WithTransaction runs fn inside a Mongo session transaction. Every write
// issued through the returned context commits or aborts as a unit.
func (Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := DB.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// DeleteServiceCascade removes a service and every connection touching it
// in one transaction. It reports whether the service existed.
func (s Store) DeleteServiceCascade(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		res, err := GetCollection(ServicesCollection).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return nil
		}
		found = true
		_, err = GetCollection(ConnectionsCollection).DeleteMany(ctx, bson.M{
			"$or": []bson.M{
				{"source_id": id},
				{"target_id": id},
			},
		})
		return err
	})
	return found, err
}
