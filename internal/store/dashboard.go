package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/insights-dashboard/internal/errs"
	"github.com/GregMSThompson/insights-dashboard/internal/models"
	"github.com/GregMSThompson/insights-dashboard/pkg/grid"
	"github.com/GregMSThompson/insights-dashboard/pkg/logger"
)

type dashboardStore struct {
	client *firestore.Client
}

func NewDashboardStore(client *firestore.Client) *dashboardStore {
	return &dashboardStore{client: client}
}

func (s *dashboardStore) collection(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("dashboard_widgets")
}

// List returns the user's widgets in creation order, which is the order the
// layout was built in.
func (s *dashboardStore) List(ctx context.Context, uid string) ([]*models.Widget, error) {
	iter := s.collection(uid).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var widgets []*models.Widget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list widgets", err)
		}
		var w models.Widget
		if err := doc.DataTo(&w); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse widget data", err)
		}
		w.DocID = doc.Ref.ID
		widgets = append(widgets, &w)
	}
	return widgets, nil
}

func (s *dashboardStore) Create(ctx context.Context, uid string, w *models.Widget) error {
	now := time.Now()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	_, err := s.collection(uid).Doc(w.WidgetID).Set(ctx, w)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create widget", err)
	}
	return nil
}

type bulkWidgetJob struct {
	widgetID string
	job      *firestore.BulkWriterJob
}

// CreateBatch writes a whole layout in one BulkWriter pass. Creation times
// are staggered by a microsecond so List returns them in slice order.
func (s *dashboardStore) CreateBatch(ctx context.Context, uid string, widgets []*models.Widget) error {
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]bulkWidgetJob, 0, len(widgets))
	for i, w := range widgets {
		w.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		w.UpdatedAt = now
		j, err := bw.Set(coll.Doc(w.WidgetID), w)
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("create", "failed to schedule widget create", err)
		}
		jobs = append(jobs, bulkWidgetJob{widgetID: w.WidgetID, job: j})
	}
	bw.End()

	return waitJobs(ctx, jobs, "create", "failed to create widget")
}

func (s *dashboardStore) UpdatePosition(ctx context.Context, uid, widgetID string, pos grid.Position) error {
	_, err := s.collection(uid).Doc(widgetID).Update(ctx, []firestore.Update{
		{Path: "x", Value: pos.X},
		{Path: "y", Value: pos.Y},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update widget position", err)
	}
	return nil
}

// BulkUpdatePositions writes several positions at once, used when a loaded
// layout had to be repaired.
func (s *dashboardStore) BulkUpdatePositions(ctx context.Context, uid string, positions map[string]grid.Position) error {
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)
	now := time.Now()

	jobs := make([]bulkWidgetJob, 0, len(positions))
	for widgetID, pos := range positions {
		j, err := bw.Update(coll.Doc(widgetID), []firestore.Update{
			{Path: "x", Value: pos.X},
			{Path: "y", Value: pos.Y},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("update", "failed to schedule position update", err)
		}
		jobs = append(jobs, bulkWidgetJob{widgetID: widgetID, job: j})
	}
	bw.End()

	return waitJobs(ctx, jobs, "update", "failed to update widget position")
}

func (s *dashboardStore) Delete(ctx context.Context, uid, widgetID string) error {
	_, err := s.collection(uid).Doc(widgetID).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete widget", err)
	}
	return nil
}

// DeleteMany removes widget documents, by document id, that could not be
// kept in a repaired layout.
func (s *dashboardStore) DeleteMany(ctx context.Context, uid string, docIDs []string) error {
	if len(docIDs) == 0 {
		return nil
	}
	bw := s.client.BulkWriter(ctx)
	coll := s.collection(uid)

	jobs := make([]bulkWidgetJob, 0, len(docIDs))
	for _, id := range docIDs {
		j, err := bw.Delete(coll.Doc(id))
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("delete", "failed to schedule widget delete", err)
		}
		jobs = append(jobs, bulkWidgetJob{widgetID: id, job: j})
	}
	bw.End()

	return waitJobs(ctx, jobs, "delete", "failed to delete widget")
}

func waitJobs(ctx context.Context, jobs []bulkWidgetJob, op, message string) error {
	log := logger.FromContext(ctx)
	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error(message, "widget_id", entry.widgetID, "error", err)
			return errs.NewDatabaseError(op, message, err)
		}
	}
	return nil
}
