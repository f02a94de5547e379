package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
)

const collectionGoals = "goals"

// GoalRepository implements ports.GoalRepository, mirroring the budget
// repository's unscoped FindByID for the service-level ownership check.
type GoalRepository struct {
	col *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{col: db.Collection(collectionGoals)}
}

type goalDoc struct {
	ID            string `bson:"_id"`
	OwnerID       string `bson:"owner_id"`
	Name          string `bson:"name"`
	TargetAmount  string `bson:"target_amount"`
	CurrentAmount string `bson:"current_amount"`
	Deadline      string `bson:"deadline"`
}

func newGoalDoc(g *domain.Goal) goalDoc {
	return goalDoc{
		ID:            g.ID,
		OwnerID:       g.OwnerID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		Deadline:      g.Deadline,
	}
}

func (d goalDoc) toDomain() (*domain.Goal, error) {
	target, err := decimal.NewFromString(d.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("goal %s: bad target amount %q: %w", d.ID, d.TargetAmount, err)
	}
	current, err := decimal.NewFromString(d.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("goal %s: bad current amount %q: %w", d.ID, d.CurrentAmount, err)
	}
	return &domain.Goal{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		Name:          d.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      d.Deadline,
	}, nil
}

func (r *GoalRepository) Insert(ctx context.Context, g *domain.Goal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, newGoalDoc(g))
	return err
}

func (r *GoalRepository) FindByID(ctx context.Context, id string) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc goalDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *GoalRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}

	var docs []goalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(docs))
	for _, d := range docs {
		g, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, nil
}

func (r *GoalRepository) Replace(ctx context.Context, g *domain.Goal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": g.ID}, newGoalDoc(g))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
