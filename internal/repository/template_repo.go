package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"govmaturity/internal/model"
)

// TemplateRepo handles MongoDB operations for recommendation templates
type TemplateRepo interface {
	Create(ctx context.Context, tpl *model.Template) (string, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	Update(ctx context.Context, tpl *model.Template) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]model.Template, error)
	// Library returns the full template set keyed by id, the snapshot shape
	// the composer consumes.
	Library(ctx context.Context) (map[string]model.Template, error)
}

type templateRepo struct {
	collection *mongo.Collection
}

// NewTemplateRepo creates a new template repository
func NewTemplateRepo(db *mongo.Database) TemplateRepo {
	return &templateRepo{
		collection: db.Collection("templates"),
	}
}

func (r *templateRepo) Create(ctx context.Context, tpl *model.Template) (string, error) {
	if tpl.ID == "" {
		tpl.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, tpl)
	if err != nil {
		return "", err
	}
	return tpl.ID, nil
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	var tpl model.Template
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tpl)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepo) Update(ctx context.Context, tpl *model.Template) error {
	tpl.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tpl.ID}, tpl)
	return err
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *templateRepo) GetAll(ctx context.Context) ([]model.Template, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []model.Template
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepo) Library(ctx context.Context) (map[string]model.Template, error) {
	templates, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	library := make(map[string]model.Template, len(templates))
	for _, tpl := range templates {
		library[tpl.ID] = tpl
	}
	return library, nil
}
