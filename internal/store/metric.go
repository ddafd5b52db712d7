package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
)

type metricStore struct {
	client *firestore.Client
}

func NewMetricStore(client *firestore.Client) *metricStore {
	return &metricStore{client: client}
}

func (s *metricStore) collection() *firestore.CollectionRef {
	return s.client.Collection("metrics")
}

// List returns metrics newest first.
func (s *metricStore) List(ctx context.Context, limit int) ([]*models.Metric, error) {
	query := s.collection().OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*models.Metric
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list metrics", err)
		}
		var m models.Metric
		if err := doc.DataTo(&m); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse metric data", err)
		}
		out = append(out, &m)
	}
	return out, nil
}

func (s *metricStore) Get(ctx context.Context, id string) (*models.Metric, error) {
	doc, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("metric not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get metric", err)
	}
	var m models.Metric
	if err := doc.DataTo(&m); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse metric data", err)
	}
	return &m, nil
}

// GetMany loads the given metrics in one round trip. Missing ids are
// skipped.
func (s *metricStore) GetMany(ctx context.Context, ids []string) ([]*models.Metric, error) {
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, s.collection().Doc(id))
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get metrics", err)
	}

	out := make([]*models.Metric, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var m models.Metric
		if err := doc.DataTo(&m); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse metric data", err)
		}
		out = append(out, &m)
	}
	return out, nil
}

func (s *metricStore) Update(ctx context.Context, m *models.Metric) error {
	m.UpdatedAt = time.Now()
	_, err := s.collection().Doc(m.ID).Set(ctx, m)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update metric", err)
	}
	return nil
}

// ReplaceAll deletes every stored metric and writes the given set.
func (s *metricStore) ReplaceAll(ctx context.Context, metrics []*models.Metric) error {
	docs := make(map[string]any, len(metrics))
	now := time.Now()
	for _, m := range metrics {
		m.UpdatedAt = now
		docs[m.ID] = m
	}
	return replaceCollection(ctx, s.client, s.collection(), docs)
}

func replaceCollection(ctx context.Context, client *firestore.Client, coll *firestore.CollectionRef, docs map[string]any) error {
	existing, err := coll.DocumentRefs(ctx).GetAll()
	if err != nil {
		return errs.NewDatabaseError("read", "failed to list "+coll.ID, err)
	}

	bw := client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for _, ref := range existing {
		if _, keep := docs[ref.ID]; keep {
			continue
		}
		j, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule delete in "+coll.ID, err)
		}
		jobs = append(jobs, j)
	}
	for id, data := range docs {
		j, err := bw.Set(coll.Doc(id), data)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule write in "+coll.ID, err)
		}
		jobs = append(jobs, j)
	}
	bw.End()

	for _, j := range jobs {
		if _, err := j.Results(); err != nil {
			return errs.NewDatabaseError("update", "failed to replace "+coll.ID, err)
		}
	}
	return nil
}
