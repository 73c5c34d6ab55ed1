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

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d userDoc) model() *models.User {
	return &models.User{ID: d.ID.Hex(), Email: d.Email, Password: d.Password, CreatedAt: d.CreatedAt}
}

// MongoUserStore handles user persistence in MongoDB.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection("users")}
}

// Migrate creates the unique index on email.
func (s *MongoUserStore) Migrate(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo users index: %w", err)
	}
	return nil
}

func (s *MongoUserStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("mongo insert user: %w", err)
	}
	return doc.model(), nil
}

func (s *MongoUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return doc.model(), nil
}
