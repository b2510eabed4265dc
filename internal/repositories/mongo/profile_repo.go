package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type profileRepo struct {
	col *mongo.Collection
}

func NewProfileRepo(db *mongo.Database) repositories.ProfileRepository {
	return &profileRepo{col: db.Collection(ProfilesCollection)}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, utils.ErrNotFound
	}

	var d profileDoc
	err = r.col.FindOne(ctx, bson.M{"user": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *profileRepo) GetWithUser(ctx context.Context, userID string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, utils.ErrNotFound
	}

	out, err := r.aggregate(ctx, bson.M{"user": oid})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, utils.ErrNotFound
	}
	return &out[0], nil
}

func (r *profileRepo) ListWithUser(ctx context.Context) ([]models.Profile, error) {
	return r.aggregate(ctx, bson.M{})
}

// aggregate joins each matching profile with its owner's name and avatar.
func (r *profileRepo) aggregate(ctx context.Context, match bson.M) ([]models.Profile, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner.email", Value: 0},
			{Key: "owner.password", Value: 0},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Profile{}
	for cur.Next(ctx) {
		p, err := decodeJoined(cur.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	oid, err := primitive.ObjectIDFromHex(p.User.ID)
	if err != nil {
		return utils.ErrNotFound
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	res, err := r.col.InsertOne(ctx, newProfileDoc(p, oid))
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrConflict
	}
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *profileRepo) Update(ctx context.Context, userID string, f models.ProfileFields) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, utils.ErrNotFound
	}

	set := setDocument(f)
	if len(set) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	var d profileDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"user": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

// setDocument builds a $set body from the supplied fields only. Social links use
// dotted paths so links that were not supplied survive the update.
func setDocument(f models.ProfileFields) bson.M {
	set := bson.M{}
	for k, v := range f.Scalars() {
		set[k] = v
	}
	if skills := f.SkillList(); skills != nil {
		set["skills"] = skills
	}
	for k, v := range f.SocialLinks() {
		set["social."+k] = v
	}
	return set
}

func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return utils.ErrNotFound
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"user": oid})
	return err
}
