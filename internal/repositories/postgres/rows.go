package postgres

import (
	"encoding/json"
	"time"

	"github.com/yoockh/devconnector/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type userRow struct {
	ID       string    `gorm:"column:id;primaryKey;size:36"`
	Name     string    `gorm:"column:name;not null"`
	Email    string    `gorm:"column:email;size:320;uniqueIndex;not null"`
	Password string    `gorm:"column:password;not null"`
	Avatar   string    `gorm:"column:avatar"`
	Date     time.Time `gorm:"column:date"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) model() *models.User {
	return &models.User{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Avatar:   r.Avatar,
		Date:     r.Date,
	}
}

type profileRow struct {
	ID             string         `gorm:"column:id;primaryKey;size:36"`
	UserID         string         `gorm:"column:user_id;size:36;uniqueIndex;not null"`
	User           *userRow       `gorm:"foreignKey:UserID"`
	Company        string         `gorm:"column:company"`
	Website        string         `gorm:"column:website"`
	Location       string         `gorm:"column:location"`
	Status         string         `gorm:"column:status;not null"`
	Skills         datatypes.JSON `gorm:"column:skills"`
	Bio            string         `gorm:"column:bio"`
	GithubUsername string         `gorm:"column:githubusername"`
	Social         datatypes.JSON `gorm:"column:social"`
	Date           time.Time      `gorm:"column:date"`
}

func (profileRow) TableName() string { return "profiles" }

// AutoMigrate creates or updates the users and profiles tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userRow{}, &profileRow{})
}

func encodeJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func newProfileRow(p *models.Profile) (*profileRow, error) {
	skills, err := encodeJSON(p.Skills)
	if err != nil {
		return nil, err
	}
	social, err := encodeJSON(p.Social)
	if err != nil {
		return nil, err
	}
	return &profileRow{
		ID:             p.ID,
		UserID:         p.User.ID,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         skills,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Social:         social,
		Date:           p.Date,
	}, nil
}

func (r profileRow) model() (*models.Profile, error) {
	p := &models.Profile{
		ID:             r.ID,
		User:           models.UserRef{ID: r.UserID},
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Status:         r.Status,
		Bio:            r.Bio,
		GithubUsername: r.GithubUsername,
		Date:           r.Date,
	}
	if len(r.Skills) > 0 {
		if err := json.Unmarshal(r.Skills, &p.Skills); err != nil {
			return nil, err
		}
	}
	if len(r.Social) > 0 {
		if err := json.Unmarshal(r.Social, &p.Social); err != nil {
			return nil, err
		}
	}
	if r.User != nil {
		p.User.Name = r.User.Name
		p.User.Avatar = r.User.Avatar
	}
	return p, nil
}
