package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
)

type insightStore struct {
	client *firestore.Client
}

func NewInsightStore(client *firestore.Client) *insightStore {
	return &insightStore{client: client}
}

func (s *insightStore) collection() *firestore.CollectionRef {
	return s.client.Collection("ml_insights")
}

func (s *insightStore) List(ctx context.Context, limit int) ([]*models.Insight, error) {
	query := s.collection().OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*models.Insight
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list insights", err)
		}
		var in models.Insight
		if err := doc.DataTo(&in); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse insight data", err)
		}
		out = append(out, &in)
	}
	return out, nil
}

func (s *insightStore) ReplaceAll(ctx context.Context, insights []*models.Insight) error {
	docs := make(map[string]any, len(insights))
	for _, in := range insights {
		docs[in.ID] = in
	}
	return replaceCollection(ctx, s.client, s.collection(), docs)
}
