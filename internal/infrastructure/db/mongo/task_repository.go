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

const taskCollection = "tasks"

type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(taskCollection)}
}

type mongoTask struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID    string             `bson:"project_id"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Status       string             `bson:"status"`
	Priority     string             `bson:"priority"`
	AssigneeID   string             `bson:"assignee_id,omitempty"`
	AssigneeName string             `bson:"assignee_name"`
	DueDate      int64              `bson:"due_date,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
}

func (mt *mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:           mt.ID.Hex(),
		ProjectID:    mt.ProjectID,
		Title:        mt.Title,
		Description:  mt.Description,
		Status:       domain.TaskStatus(mt.Status),
		Priority:     domain.TaskPriority(mt.Priority),
		AssigneeID:   mt.AssigneeID,
		AssigneeName: mt.AssigneeName,
		DueDate:      unixToTime(mt.DueDate),
		CreatedAt:    unixToTime(mt.CreatedAt),
	}
}

func taskToDoc(t *domain.Task) mongoTask {
	return mongoTask{
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		DueDate:      timeToUnix(t.DueDate),
		CreatedAt:    t.CreatedAt.Unix(),
	}
}

func (r *MongoTaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	res, err := r.coll.InsertOne(ctx, taskToDoc(t))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	var mt mongoTask
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTaskRepository) FindByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.find(ctx, bson.M{"project_id": projectID})
}

func (r *MongoTaskRepository) FindByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	return r.find(ctx, bson.M{"assignee_id": userID})
}

func (r *MongoTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoTaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	doc := taskToDoc(t)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) find(ctx context.Context, filter bson.M) ([]*domain.Task, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
