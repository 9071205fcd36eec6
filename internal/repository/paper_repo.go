package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"paperdeck/internal/model"
)

// PaperRepo handles MongoDB operations for papers
type PaperRepo interface {
	Create(ctx context.Context, paper *model.Paper) (string, error)
	GetByID(ctx context.Context, id string) (*model.Paper, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]*model.Paper, error)
	Update(ctx context.Context, paper *model.Paper) error
	Delete(ctx context.Context, id string) error
}

type paperRepo struct {
	collection *mongo.Collection
}

// NewPaperRepo creates a new paper repository
func NewPaperRepo(db *mongo.Database) PaperRepo {
	return &paperRepo{
		collection: db.Collection("papers"),
	}
}

func (r *paperRepo) Create(ctx context.Context, paper *model.Paper) (string, error) {
	paper.CreatedAt = time.Now()
	paper.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, paper)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}

func (r *paperRepo) GetByID(ctx context.Context, id string) (*model.Paper, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var paper model.Paper
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&paper)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	paper.ID = id
	return &paper, nil
}

func (r *paperRepo) GetByAuthorID(ctx context.Context, authorID string) ([]*model.Paper, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var papers []*model.Paper
	if err := cursor.All(ctx, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *paperRepo) Update(ctx context.Context, paper *model.Paper) error {
	oid, err := primitive.ObjectIDFromHex(paper.ID)
	if err != nil {
		return err
	}

	paper.UpdatedAt = time.Now()
	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, paper)
	return err
}

func (r *paperRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
