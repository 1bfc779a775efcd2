package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/donatehub/platform-api/internal/core/domain"
)

const donationsCollection = "donations"

// DonationRepository implements ports.DonationRepository. The collection is
// append-only: there are no update or delete operations.
type DonationRepository struct {
	coll *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{coll: db.Collection(donationsCollection)}
}

type donationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Donor     primitive.ObjectID `bson:"donor"`
	Campaign  primitive.ObjectID `bson:"campaign"`
	Amount    float64            `bson:"amount"`
	Message   string             `bson:"message,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d donationDoc) toDomain() *domain.Donation {
	return &domain.Donation{
		ID:        d.ID.Hex(),
		Donor:     d.Donor.Hex(),
		Campaign:  d.Campaign.Hex(),
		Amount:    d.Amount,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
}

func (r *DonationRepository) Insert(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	donor, err := primitive.ObjectIDFromHex(d.Donor)
	if err != nil {
		return nil, fmt.Errorf("insert donation: bad donor id: %w", err)
	}
	campaign, err := primitive.ObjectIDFromHex(d.Campaign)
	if err != nil {
		return nil, fmt.Errorf("insert donation: bad campaign id: %w", err)
	}

	doc := donationDoc{
		Donor:     donor,
		Campaign:  campaign,
		Amount:    d.Amount,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	created := *d
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DonationRepository) ListByDonor(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	donor, err := primitive.ObjectIDFromHex(donorID)
	if err != nil {
		return []*domain.Donation{}, nil
	}
	return r.list(ctx, bson.M{"donor": donor})
}

func (r *DonationRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*domain.Donation, error) {
	campaign, err := primitive.ObjectIDFromHex(campaignID)
	if err != nil {
		return []*domain.Donation{}, nil
	}
	return r.list(ctx, bson.M{"campaign": campaign})
}

func (r *DonationRepository) ListByCampaigns(ctx context.Context, campaignIDs []string) ([]*domain.Donation, error) {
	oids := make([]primitive.ObjectID, 0, len(campaignIDs))
	for _, id := range campaignIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*domain.Donation{}, nil
	}
	return r.list(ctx, bson.M{"campaign": bson.M{"$in": oids}})
}

func (r *DonationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.Donation{}
	for cur.Next(ctx) {
		var doc donationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode donation: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the donor and campaign lookup indexes.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "donor", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "campaign", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
