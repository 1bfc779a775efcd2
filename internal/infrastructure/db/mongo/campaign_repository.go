package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

const campaignsCollection = "campaigns"

// CampaignRepository implements ports.CampaignRepository. Ownership-gated
// mutations use a combined {_id, created_by} filter so the caller cannot
// tell a missing campaign from a foreign one. RaisedAmount is only written
// through IncrementRaised's $inc.
type CampaignRepository struct {
	coll *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{coll: db.Collection(campaignsCollection)}
}

type campaignDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Category     string             `bson:"category,omitempty"`
	GoalAmount   float64            `bson:"goal_amount"`
	RaisedAmount float64            `bson:"raised_amount"`
	CreatedBy    primitive.ObjectID `bson:"created_by"`
	Deadline     time.Time          `bson:"deadline"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d campaignDoc) toDomain() *domain.Campaign {
	return &domain.Campaign{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		GoalAmount:   d.GoalAmount,
		RaisedAmount: d.RaisedAmount,
		CreatedBy:    d.CreatedBy.Hex(),
		Deadline:     d.Deadline,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *CampaignRepository) Insert(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	owner, err := primitive.ObjectIDFromHex(c.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: bad owner id: %w", err)
	}

	doc := campaignDoc{
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		GoalAmount:   c.GoalAmount,
		RaisedAmount: c.RaisedAmount,
		CreatedBy:    owner,
		Deadline:     c.Deadline,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampaignNotFound
	}
	var doc campaignDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CampaignRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Campaign, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	out := make(map[string]*domain.Campaign, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find campaigns: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc campaignDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode campaign: %w", err)
		}
		c := doc.toDomain()
		out[c.ID] = c
	}
	return out, cur.Err()
}

func (r *CampaignRepository) List(ctx context.Context) ([]*domain.Campaign, error) {
	return r.list(ctx, bson.M{})
}

func (r *CampaignRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Campaign, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []*domain.Campaign{}, nil
	}
	return r.list(ctx, bson.M{"created_by": owner})
}

func (r *CampaignRepository) list(ctx context.Context, filter bson.M) ([]*domain.Campaign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Campaign{}
	for cur.Next(ctx) {
		var doc campaignDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode campaign: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *CampaignRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch ports.CampaignPatch) (*domain.Campaign, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampaignNotOwned
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrCampaignNotOwned
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.GoalAmount != nil {
		set["goal_amount"] = *patch.GoalAmount
	}
	if patch.Deadline != nil {
		set["deadline"] = patch.Deadline.UTC()
	}

	filter := bson.M{"_id": oid, "created_by": owner}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc campaignDoc
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotOwned
		}
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CampaignRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCampaignNotOwned
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrCampaignNotOwned
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "created_by": owner})
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCampaignNotOwned
	}
	return nil
}

// IncrementRaised applies the raised-amount delta as a single atomic
// update. Concurrent donations to the same campaign serialize here; there
// is no read-modify-write round trip to race.
func (r *CampaignRepository) IncrementRaised(ctx context.Context, id string, amount float64) (*domain.Campaign, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCampaignNotFound
	}

	update := bson.M{
		"$inc": bson.M{"raised_amount": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc campaignDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("increment raised amount: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the owner lookup index.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_by", Value: 1}},
	})
	return err
}
