package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerly/bookkeeping-api/internal/core/domain"
	"github.com/ledgerly/bookkeeping-api/internal/core/ports"
)

const collectionAccounts = "accounts"

// AccountRepository implements ports.AccountRepository on a MongoDB
// collection. The version-conditioned writes rely on filtered
// FindOneAndUpdate: mongo.ErrNoDocuments is the store's only
// "condition failed" signal and is not broken down further.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

// accountDoc is the persisted shape. Monetary values are stored as exact
// decimal strings, never floats.
type accountDoc struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Name      string    `bson:"name"`
	Balance   string    `bson:"balance"`
	Type      string    `bson:"type"`
	Active    bool      `bson:"active"`
	Version   int64     `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Name:      a.Name,
		Balance:   a.Balance.String(),
		Type:      string(a.Type),
		Active:    a.Active,
		Version:   a.Version,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func (d accountDoc) toDomain() (*domain.Account, error) {
	balance, err := decimal.NewFromString(d.Balance)
	if err != nil {
		return nil, fmt.Errorf("account %s: bad balance %q: %w", d.ID, d.Balance, err)
	}
	return &domain.Account{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Name:      d.Name,
		Balance:   balance,
		Type:      domain.AccountType(d.Type),
		Active:    d.Active,
		Version:   d.Version,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *AccountRepository) Insert(ctx context.Context, a *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, newAccountDoc(a))
	return err
}

// FindByID returns the account only when active and owned by ownerID.
func (r *AccountRepository) FindByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": accountID, "owner_id": ownerID, "active": true}

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// List returns up to limit active accounts ordered by id, starting after
// afterID. The returned token is the id to resume from, or empty on the last
// page. One extra document is fetched to detect whether more results remain.
func (r *AccountRepository) List(ctx context.Context, ownerID, afterID string, limit int) ([]domain.Account, string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner_id": ownerID, "active": true}
	if afterID != "" {
		filter["_id"] = bson.M{"$gt": afterID}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit) + 1)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", err
	}

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, "", err
	}

	next := ""
	if len(docs) > limit {
		docs = docs[:limit]
		next = docs[limit-1].ID
	}

	accounts := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		a, err := d.toDomain()
		if err != nil {
			return nil, "", err
		}
		accounts = append(accounts, *a)
	}
	return accounts, next, nil
}

// UpdateVersioned applies the update if and only if the stored record is
// active, owned by the caller, and at the expected version. The write
// increments version by exactly 1 and returns the post-image.
func (r *AccountRepository) UpdateVersioned(ctx context.Context, in ports.UpdateAccountInput, now time.Time) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":      in.AccountID,
		"owner_id": in.OwnerID,
		"active":   true,
		"version":  in.ExpectedVersion,
	}
	update := bson.M{
		"$set": bson.M{
			"name":       in.Name,
			"balance":    in.Balance.String(),
			"type":       string(in.Type),
			"updated_at": now.UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVersionConflict
		}
		return nil, err
	}
	return doc.toDomain()
}

// Deactivate flips the active flag. Already-inactive, missing, and foreign
// records all match nothing and collapse to not-found.
func (r *AccountRepository) Deactivate(ctx context.Context, ownerID, accountID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": accountID, "owner_id": ownerID, "active": true}
	update := bson.M{"$set": bson.M{"active": false, "updated_at": now.UTC()}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the owner-scoped reads.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "active", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
