package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

const messageCollection = "messages"

type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messageCollection)}
}

type mongoMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SenderID    string             `bson:"sender_id"`
	SenderName  string             `bson:"sender_name"`
	SenderRole  string             `bson:"sender_role"`
	Content     string             `bson:"content"`
	Type        string             `bson:"type"`
	ProjectID   string             `bson:"project_id,omitempty"`
	ProjectName string             `bson:"project_name,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (mm *mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:          mm.ID.Hex(),
		SenderID:    mm.SenderID,
		SenderName:  mm.SenderName,
		SenderRole:  mm.SenderRole,
		Content:     mm.Content,
		Type:        domain.MessageType(mm.Type),
		ProjectID:   mm.ProjectID,
		ProjectName: mm.ProjectName,
		CreatedAt:   unixToTime(mm.CreatedAt),
	}
}

func (r *MongoMessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	doc := mongoMessage{
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		SenderRole:  m.SenderRole,
		Content:     m.Content,
		Type:        string(m.Type),
		ProjectID:   m.ProjectID,
		ProjectName: m.ProjectName,
		CreatedAt:   m.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	created := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoMessageRepository) FindAll(ctx context.Context) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoMessageRepository) FindByProject(ctx context.Context, projectID string) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{"project_id": projectID})
}

func (r *MongoMessageRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// find returns messages newest first.
func (r *MongoMessageRepository) find(ctx context.Context, filter bson.M) ([]*domain.Message, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cur.Close(ctx)

	var messages []*domain.Message
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, mm.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
