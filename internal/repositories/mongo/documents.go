package mongo

import (
	"time"

	"github.com/yoockh/devconnector/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UsersCollection    = "users"
	ProfilesCollection = "profiles"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Avatar   string             `bson:"avatar,omitempty"`
	Date     time.Time          `bson:"date"`
}

func (d userDoc) model() *models.User {
	return &models.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Avatar:   d.Avatar,
		Date:     d.Date,
	}
}

type socialDoc struct {
	Youtube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type profileDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	User           primitive.ObjectID `bson:"user"`
	Company        string             `bson:"company,omitempty"`
	Website        string             `bson:"website,omitempty"`
	Location       string             `bson:"location,omitempty"`
	Status         string             `bson:"status"`
	Skills         []string           `bson:"skills"`
	Bio            string             `bson:"bio,omitempty"`
	GithubUsername string             `bson:"githubusername,omitempty"`
	Social         socialDoc          `bson:"social"`
	Date           time.Time          `bson:"date"`
}

// ownerDoc is the subset of a user document joined into profile reads.
type ownerDoc struct {
	ID     primitive.ObjectID `bson:"_id"`
	Name   string             `bson:"name"`
	Avatar string             `bson:"avatar"`
}

// ownersDoc picks the $lookup array out of a joined profile document.
type ownersDoc struct {
	Owner []ownerDoc `bson:"owner"`
}

func newProfileDoc(p *models.Profile, owner primitive.ObjectID) profileDoc {
	return profileDoc{
		User:           owner,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         p.Skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Social: socialDoc{
			Youtube:   p.Social.Youtube,
			Twitter:   p.Social.Twitter,
			Facebook:  p.Social.Facebook,
			Linkedin:  p.Social.Linkedin,
			Instagram: p.Social.Instagram,
		},
		Date: p.Date,
	}
}

func (d profileDoc) model() *models.Profile {
	return &models.Profile{
		ID:             d.ID.Hex(),
		User:           models.UserRef{ID: d.User.Hex()},
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Status:         d.Status,
		Skills:         d.Skills,
		Bio:            d.Bio,
		GithubUsername: d.GithubUsername,
		Social: models.Social{
			Youtube:   d.Social.Youtube,
			Twitter:   d.Social.Twitter,
			Facebook:  d.Social.Facebook,
			Linkedin:  d.Social.Linkedin,
			Instagram: d.Social.Instagram,
		},
		Date: d.Date,
	}
}

// decodeJoined reads a profile document carrying its $lookup owner array. The
// profile fields and the owner array decode in two passes over the same bytes.
func decodeJoined(raw bson.Raw) (models.Profile, error) {
	var d profileDoc
	if err := bson.Unmarshal(raw, &d); err != nil {
		return models.Profile{}, err
	}
	var o ownersDoc
	if err := bson.Unmarshal(raw, &o); err != nil {
		return models.Profile{}, err
	}

	p := d.model()
	if len(o.Owner) > 0 {
		p.User.Name = o.Owner[0].Name
		p.User.Avatar = o.Owner[0].Avatar
	}
	return *p, nil
}
