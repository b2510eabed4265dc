package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) repositories.UserRepository {
	return &userRepo{col: db.Collection(UsersCollection)}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	doc := userDoc{
		Name:     u.Name,
		Email:    strings.ToLower(u.Email),
		Password: u.Password,
		Avatar:   u.Avatar,
		Date:     u.Date,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrConflict
	}
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID).Hex()
	u.Email = doc.Email
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var d userDoc
	err := r.col.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d.model(), nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.ErrNotFound
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
