package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"govmaturity/internal/model"
)

// ReportRepo handles MongoDB operations for finished reports
type ReportRepo interface {
	Save(ctx context.Context, report *model.Report) error
	GetByAssessment(ctx context.Context, assessmentID string) (*model.Report, error)
}

type reportRepo struct {
	collection *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		collection: db.Collection("reports"),
	}
}

func (r *reportRepo) Save(ctx context.Context, report *model.Report) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"assessmentId": report.AssessmentID}, report, opts)
	return err
}

func (r *reportRepo) GetByAssessment(ctx context.Context, assessmentID string) (*model.Report, error) {
	var report model.Report
	err := r.collection.FindOne(ctx, bson.M{"assessmentId": assessmentID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
