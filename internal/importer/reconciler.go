package importer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ruby4mag/servicemap-go-backend/internal/models"
	"github.com/ruby4mag/servicemap-go-backend/internal/parser"
)

// DefaultFilename labels imports submitted without a filename.
const DefaultFilename = "untitled.yaml"

// Run merges a validated document into the store inside one transaction and
// returns the import record it appended. Services upsert by id; connections
// upsert by their (source, target) pair, reusing the existing synthetic id
// so re-importing the same document is idempotent for rows while the import
// history grows by one record per call. Any failure rolls back everything.
func Run(ctx context.Context, store Store, doc *parser.Document, filename string) (*models.DbImport, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	now := time.Now().UTC()
	rec := models.DbImport{
		ID:               uuid.NewString(),
		Filename:         filename,
		ImportedAt:       now,
		ServicesCount:    len(doc.Services),
		ConnectionsCount: len(doc.Connections),
		Status:           models.ImportStatusSuccess,
	}

	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		for _, svc := range doc.Services {
			if err := store.UpsertService(ctx, serviceRow(svc, now)); err != nil {
				return err
			}
		}

		for _, conn := range doc.Connections {
			id, found, err := store.FindConnectionID(ctx, conn.Source, conn.Target)
			if err != nil {
				return err
			}
			if !found {
				id = uuid.NewString()
			}
			if err := store.UpsertConnection(ctx, connectionRow(id, conn, now)); err != nil {
				return err
			}
		}

		return store.InsertImport(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func serviceRow(svc parser.ServiceDefinition, now time.Time) models.DbService {
	return models.DbService{
		ID:            svc.ID,
		Name:          svc.Name,
		Description:   svc.Description,
		Owner:         svc.Owner,
		Tier:          svc.Tier,
		Type:          svc.Type,
		Repository:    svc.Repository,
		Documentation: svc.Documentation,
		Tags:          svc.Tags,
		Metadata:      svc.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func connectionRow(id string, conn parser.ConnectionDefinition, now time.Time) models.DbConnection {
	return models.DbConnection{
		ID:               id,
		SourceID:         conn.Source,
		TargetID:         conn.Target,
		Label:            conn.Label,
		Protocol:         conn.Protocol,
		Port:             conn.Port,
		Description:      conn.Description,
		Criticality:      conn.Criticality,
		SlaTargetMs:      conn.SlaTargetMs,
		SlaUptimePercent: conn.SlaUptimePercent,
		AuthMethod:       conn.AuthMethod,
		IsAsync:          conn.IsAsync,
		Metadata:         conn.Metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
