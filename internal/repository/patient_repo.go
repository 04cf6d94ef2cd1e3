package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/RP1999/healthcare-application/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrPatientNotFound = errors.New("patient not found")

// ListQuery describes a paginated patient listing. Search, when non-empty,
// matches case-insensitively as a substring of name, nic or phone.
type ListQuery struct {
	Search    string
	Skip      int64
	Limit     int64
	SortField string
	SortAsc   bool
}

type PatientRepository interface {
	Insert(ctx context.Context, p *models.Patient) error
	FindByID(ctx context.Context, id string) (*models.Patient, error)
	FindByNIC(ctx context.Context, nic string) (*models.Patient, error)
	Replace(ctx context.Context, p *models.Patient) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q ListQuery) ([]*models.Patient, int64, error)
}

type mongoPatientRepo struct {
	col *mongo.Collection
}

func NewMongoPatientRepo(db *mongo.Database, collection string) PatientRepository {
	col := db.Collection(collection)
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "nic", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return &mongoPatientRepo{col: col}
}

func (r *mongoPatientRepo) Insert(ctx context.Context, p *models.Patient) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *mongoPatientRepo) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	var p models.Patient
	err = r.col.FindOne(ctx, bson.M{"_id": objID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPatientRepo) FindByNIC(ctx context.Context, nic string) (*models.Patient, error) {
	var p models.Patient
	err := r.col.FindOne(ctx, bson.M{"nic": nic}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoPatientRepo) Replace(ctx context.Context, p *models.Patient) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *mongoPatientRepo) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPatientNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *mongoPatientRepo) Find(ctx context.Context, q ListQuery) ([]*models.Patient, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		// QuoteMeta keeps user input a literal substring match.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"nic": re},
			bson.M{"phone": re},
		}
	}

	order := -1
	if q.SortAsc {
		order = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: order}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	patients := make([]*models.Patient, 0)
	if err := cur.All(ctx, &patients); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}
