package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paperdeck/internal/model"
)

// QuestionRepo handles MongoDB operations for questions
type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) (string, error)
	GetByID(ctx context.Context, id string) (*model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error

	// GetByPaperID returns the full snapshot for one paper, ordered by
	// position. This is the engine's sole data source.
	GetByPaperID(ctx context.Context, paperID string) ([]*model.Question, error)

	// UpdateCondition persists a validated condition tree verbatim.
	UpdateCondition(ctx context.Context, id string, cond *model.Condition) error

	DeleteByPaperID(ctx context.Context, paperID string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) (string, error) {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, question)
	if err != nil {
		return "", err
	}
	return question.ID, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	question.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	return err
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *questionRepo) GetByPaperID(ctx context.Context, paperID string) ([]*model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"paperId": paperID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) UpdateCondition(ctx context.Context, id string, cond *model.Condition) error {
	update := bson.M{
		"$set": bson.M{
			"condition": cond,
			"updatedAt": time.Now(),
		},
	}
	if cond == nil {
		update = bson.M{
			"$unset": bson.M{"condition": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *questionRepo) DeleteByPaperID(ctx context.Context, paperID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"paperId": paperID})
	return err
}
