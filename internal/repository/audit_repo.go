package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"govmaturity/internal/model"
)

// AuditRepo persists rule-decision traces so operators can review why a
// report came out the way it did
type AuditRepo interface {
	Append(ctx context.Context, record *model.AuditRecord) error
	GetByAssessment(ctx context.Context, assessmentID string) (*model.AuditRecord, error)
}

type auditRepo struct {
	collection *mongo.Collection
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *mongo.Database) AuditRepo {
	return &auditRepo{
		collection: db.Collection("audit_traces"),
	}
}

func (r *auditRepo) Append(ctx context.Context, record *model.AuditRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	record.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *auditRepo) GetByAssessment(ctx context.Context, assessmentID string) (*model.AuditRecord, error) {
	var record model.AuditRecord
	err := r.collection.FindOne(ctx, bson.M{"assessmentId": assessmentID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
