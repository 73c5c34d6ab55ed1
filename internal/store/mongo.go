package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/mentor-sessions/backend/internal/models"
)

// sessionDoc is the MongoDB shape of a mentor session.
type sessionDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Duration    string             `bson:"duration"`
	Date        string             `bson:"date"`
	Mentor      string             `bson:"mentor"`
	Status      models.Status      `bson:"status"`
	UserID      string             `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d sessionDoc) model() models.Session {
	return models.Session{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Duration:    d.Duration,
		Date:        d.Date,
		Mentor:      d.Mentor,
		Status:      d.Status,
		UserID:      d.UserID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoStore handles mentor session CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("sessions")}
}

// Create inserts s, filling in its id and timestamps.
func (s *MongoStore) Create(ctx context.Context, sess *models.Session) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := sessionDoc{
		ID:          primitive.NewObjectID(),
		Title:       sess.Title,
		Description: sess.Description,
		Duration:    sess.Duration,
		Date:        sess.Date,
		Mentor:      sess.Mentor,
		Status:      sess.Status,
		UserID:      sess.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo insert session: %w", err)
	}
	*sess = doc.model()
	return nil
}

func (s *MongoStore) ListByOwner(ctx context.Context, userID string) ([]models.Session, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *MongoStore) ListPublished(ctx context.Context) ([]models.Session, error) {
	return s.find(ctx, bson.M{"status": models.StatusPublished})
}

func (s *MongoStore) find(ctx context.Context, filter bson.M) ([]models.Session, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo find sessions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []sessionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode sessions: %w", err)
	}
	out := make([]models.Session, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

// Update writes the provided fields of the session matching both id and
// userID and returns the updated record.
func (s *MongoStore) Update(ctx context.Context, userID, id string, u models.SessionUpdate) (*models.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.Mentor != nil {
		set["mentor"] = *u.Mentor
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sessionDoc
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "user_id": userID}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo update session: %w", err)
	}
	sess := doc.model()
	return &sess, nil
}

// Delete removes the session matching both id and userID.
func (s *MongoStore) Delete(ctx context.Context, userID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("mongo delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
