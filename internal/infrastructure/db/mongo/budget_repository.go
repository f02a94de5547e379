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

const collectionBudgets = "budgets"

// BudgetRepository implements ports.BudgetRepository. FindByID is unscoped
// so the service layer can perform the ownership comparison as the
// first half of its read-then-mutate two-step.
type BudgetRepository struct {
	col *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{col: db.Collection(collectionBudgets)}
}

type budgetDoc struct {
	ID       string `bson:"_id"`
	OwnerID  string `bson:"owner_id"`
	Category string `bson:"category"`
	Amount   string `bson:"amount"`
	Period   string `bson:"period"`
}

func newBudgetDoc(b *domain.Budget) budgetDoc {
	return budgetDoc{
		ID:       b.ID,
		OwnerID:  b.OwnerID,
		Category: b.Category,
		Amount:   b.Amount.String(),
		Period:   string(b.Period),
	}
}

func (d budgetDoc) toDomain() (*domain.Budget, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("budget %s: bad amount %q: %w", d.ID, d.Amount, err)
	}
	return &domain.Budget{
		ID:       d.ID,
		OwnerID:  d.OwnerID,
		Category: d.Category,
		Amount:   amount,
		Period:   domain.BudgetPeriod(d.Period),
	}, nil
}

func (r *BudgetRepository) Insert(ctx context.Context, b *domain.Budget) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, newBudgetDoc(b))
	return err
}

func (r *BudgetRepository) FindByID(ctx context.Context, id string) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc budgetDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *BudgetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}

	var docs []budgetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	budgets := make([]domain.Budget, 0, len(docs))
	for _, d := range docs {
		b, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	return budgets, nil
}

func (r *BudgetRepository) Replace(ctx context.Context, b *domain.Budget) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, newBudgetDoc(b))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
