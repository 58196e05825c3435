package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexaboard/nexaboard/internal/core/domain"
)

const projectCollection = "projects"

type MongoProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectCollection)}
}

type mongoProject struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	TotalProgress int                `bson:"total_progress"`
	Status        string             `bson:"status"`
	ManagerID     string             `bson:"manager_id"`
	ManagerName   string             `bson:"manager_name"`
	TeamIDs       []string           `bson:"team_ids"`
	Deadline      int64              `bson:"deadline,omitempty"`
	CreatedAt     int64              `bson:"created_at"`
}

func (mp *mongoProject) toDomain() *domain.Project {
	return &domain.Project{
		ID:            mp.ID.Hex(),
		Name:          mp.Name,
		Description:   mp.Description,
		TotalProgress: mp.TotalProgress,
		Status:        domain.ProjectStatus(mp.Status),
		ManagerID:     mp.ManagerID,
		ManagerName:   mp.ManagerName,
		TeamIDs:       mp.TeamIDs,
		Deadline:      unixToTime(mp.Deadline),
		CreatedAt:     unixToTime(mp.CreatedAt),
	}
}

func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func (r *MongoProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	doc := mongoProject{
		Name:          p.Name,
		Description:   p.Description,
		TotalProgress: p.TotalProgress,
		Status:        string(p.Status),
		ManagerID:     p.ManagerID,
		ManagerName:   p.ManagerName,
		TeamIDs:       p.TeamIDs,
		Deadline:      timeToUnix(p.Deadline),
		CreatedAt:     p.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProjectNotFound
	}

	var mp mongoProject
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoProjectRepository) FindAll(ctx context.Context) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProjectRepository) FindByManager(ctx context.Context, managerID string) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{"manager_id": managerID})
}

func (r *MongoProjectRepository) FindByTeamMember(ctx context.Context, userID string) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{"team_ids": userID})
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrProjectNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func (r *MongoProjectRepository) find(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []*domain.Project
	for cur.Next(ctx) {
		var mp mongoProject
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}
