package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"govmaturity/internal/model"
)

// RuleRepo handles MongoDB operations for business rules
type RuleRepo interface {
	Create(ctx context.Context, rule *model.Rule) (string, error)
	GetByID(ctx context.Context, id string) (*model.Rule, error)
	Update(ctx context.Context, rule *model.Rule) error
	Delete(ctx context.Context, id string) error
	GetByQuestionnaire(ctx context.Context, questionnaireID string) ([]model.Rule, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type ruleRepo struct {
	collection *mongo.Collection
}

// NewRuleRepo creates a new rule repository
func NewRuleRepo(db *mongo.Database) RuleRepo {
	return &ruleRepo{
		collection: db.Collection("rules"),
	}
}

func (r *ruleRepo) Create(ctx context.Context, rule *model.Rule) (string, error) {
	if rule.ID == "" {
		rule.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, rule)
	if err != nil {
		return "", err
	}
	return rule.ID, nil
}

func (r *ruleRepo) GetByID(ctx context.Context, id string) (*model.Rule, error) {
	var rule model.Rule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepo) Update(ctx context.Context, rule *model.Rule) error {
	rule.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rule.ID}, rule)
	return err
}

func (r *ruleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetByQuestionnaire returns the rule set in stored configuration order.
// Priority sorting happens inside the engine, not in the query, so that the
// stable tie-break over configuration order is preserved.
func (r *ruleRepo) GetByQuestionnaire(ctx context.Context, questionnaireID string) ([]model.Rule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"questionnaireId": questionnaireID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []model.Rule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"active": active, "updatedAt": time.Now()},
	})
	return err
}
