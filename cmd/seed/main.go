package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paperdeck/internal/model"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("paperdeck")
	paperColl := db.Collection("papers")
	questionColl := db.Collection("questions")

	authorID := "author_3f91aa20"

	paper := model.Paper{
		ID:          primitive.NewObjectID().Hex(),
		AuthorID:    authorID,
		Title:       "Device Usage Survey",
		Description: "Branching survey about device ownership and daily usage.",
		Settings: model.PaperSettings{
			AllowBacktrack: true,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	qOwns := model.Question{
		ID:       primitive.NewObjectID().Hex(),
		PaperID:  paper.ID,
		Title:    "Do you own a smartphone?",
		Type:     model.QuestionTypeChoice,
		Options:  []string{"Yes", "No"},
		Position: 1,
	}
	qBrand := model.Question{
		ID:       primitive.NewObjectID().Hex(),
		PaperID:  paper.ID,
		Title:    "Which brand is it?",
		Type:     model.QuestionTypeChoice,
		Options:  []string{"Apple", "Samsung", "Other"},
		Position: 2,
		Condition: &model.Condition{
			Type:           model.ConditionSimple,
			QuestionID:     qOwns.ID,
			SelectedOption: "Yes",
		},
	}
	qHours := model.Question{
		ID:       primitive.NewObjectID().Hex(),
		PaperID:  paper.ID,
		Title:    "How many hours per day do you use it?",
		Type:     model.QuestionTypeScale,
		Position: 3,
		Condition: &model.Condition{
			Type:           model.ConditionSimple,
			QuestionID:     qOwns.ID,
			SelectedOption: "Yes",
		},
	}
	qEcosystem := model.Question{
		ID:       primitive.NewObjectID().Hex(),
		PaperID:  paper.ID,
		Title:    "Do you use other devices from the same ecosystem?",
		Type:     model.QuestionTypeChoice,
		Options:  []string{"Yes", "No"},
		Position: 4,
		Condition: &model.Condition{
			Type:     model.ConditionComposite,
			Operator: model.OperatorAnd,
			Conditions: []model.Condition{
				{Type: model.ConditionSimple, QuestionID: qOwns.ID, SelectedOption: "Yes"},
				{
					Type:     model.ConditionComposite,
					Operator: model.OperatorOr,
					Conditions: []model.Condition{
						{Type: model.ConditionSimple, QuestionID: qBrand.ID, SelectedOption: "Apple"},
						{Type: model.ConditionSimple, QuestionID: qBrand.ID, SelectedOption: "Samsung"},
					},
				},
			},
		},
	}
	qWhyNot := model.Question{
		ID:       primitive.NewObjectID().Hex(),
		PaperID:  paper.ID,
		Title:    "What keeps you from getting one?",
		Type:     model.QuestionTypeText,
		Position: 5,
		Condition: &model.Condition{
			Type:           model.ConditionSimple,
			QuestionID:     qOwns.ID,
			SelectedOption: "No",
		},
	}

	questions := []interface{}{qOwns, qBrand, qHours, qEcosystem, qWhyNot}
	for i := range questions {
		q := questions[i].(model.Question)
		q.CreatedAt = time.Now()
		q.UpdatedAt = time.Now()
		questions[i] = q
	}

	if _, err := paperColl.InsertOne(ctx, paper); err != nil {
		log.Fatalf("Failed to insert paper: %v", err)
	}
	if _, err := questionColl.InsertMany(ctx, questions); err != nil {
		log.Fatalf("Failed to insert questions: %v", err)
	}

	fmt.Printf("Successfully created paper '%s' with %d questions for author '%s'\n", paper.Title, len(questions), authorID)
}
