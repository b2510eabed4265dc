package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/devconnector/internal/cache"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/utils"
)

const userID = "64b7f0c2a1b2c3d4e5f60718"

func str(s string) *string { return &s }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestProfileService(profiles *mockProfileRepo, users *mockUserRepo, c cache.Cache) ProfileService {
	return NewProfileService(profiles, users, c, time.Minute, quietLogger())
}

func TestUpsertCreatesWhenAbsent(t *testing.T) {
	profiles := new(mockProfileRepo)
	users := new(mockUserRepo)
	c := newMemCache()
	c.data[cache.ProfileListKey] = []byte(`[]`)
	svc := newTestProfileService(profiles, users, c)

	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, utils.ErrNotFound)
	profiles.On("Create", mock.Anything, mock.AnythingOfType("*models.Profile")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Profile).ID = "p1" }).
		Return(nil)

	p, err := svc.Upsert(context.Background(), userID, models.ProfileFields{
		Status: str("Developer"),
		Skills: str("js, node, react"),
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, userID, p.User.ID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"js", "node", "react"}, p.Skills)
	assert.False(t, p.Date.IsZero())
	profiles.AssertNumberOfCalls(t, "Create", 1)
	profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	_, listCached := c.data[cache.ProfileListKey]
	assert.False(t, listCached, "list cache must be invalidated")
}

func TestUpsertUpdatesOnlySuppliedFields(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newTestProfileService(profiles, new(mockUserRepo), nil)

	existing := &models.Profile{ID: "p1", User: models.UserRef{ID: userID}, Status: "Developer", Skills: []string{"js", "node", "react"}}
	fields := models.ProfileFields{Bio: str("hi")}
	updated := *existing
	updated.Bio = "hi"

	profiles.On("GetByUserID", mock.Anything, userID).Return(existing, nil)
	profiles.On("Update", mock.Anything, userID, fields).Return(&updated, nil)

	p, err := svc.Upsert(context.Background(), userID, fields)
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Bio)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"js", "node", "react"}, p.Skills)
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsertWithoutChangesReturnsExisting(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newTestProfileService(profiles, new(mockUserRepo), nil)

	existing := &models.Profile{ID: "p1", Status: "Developer"}
	profiles.On("GetByUserID", mock.Anything, userID).Return(existing, nil)

	p, err := svc.Upsert(context.Background(), userID, models.ProfileFields{Bio: str("")})
	require.NoError(t, err)
	assert.Same(t, existing, p)
	profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertRejectsMissingRequiredFields(t *testing.T) {
	cases := map[string]struct {
		fields models.ProfileFields
		want   []string
	}{
		"both missing":   {models.ProfileFields{Bio: str("hi")}, []string{"status", "skills"}},
		"empty status":   {models.ProfileFields{Status: str(""), Skills: str("go")}, []string{"status"}},
		"skills missing": {models.ProfileFields{Status: str("Developer")}, []string{"skills"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			profiles := new(mockProfileRepo)
			users := new(mockUserRepo)
			svc := newTestProfileService(profiles, users, nil)
			profiles.On("GetByUserID", mock.Anything, userID).Return(nil, utils.ErrNotFound)

			_, err := svc.Upsert(context.Background(), userID, tc.fields)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

			var ae *utils.AppError
			require.True(t, errors.As(err, &ae))
			var got []string
			for _, f := range ae.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Msg)
			}
			assert.Equal(t, tc.want, got)

			profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestUpsertFallsBackToUpdateOnCreateRace(t *testing.T) {
	profiles := new(mockProfileRepo)
	users := new(mockUserRepo)
	svc := newTestProfileService(profiles, users, nil)

	users.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID}, nil)
	fields := models.ProfileFields{Status: str("Developer"), Skills: str("go")}
	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, utils.ErrNotFound)
	profiles.On("Create", mock.Anything, mock.Anything).Return(utils.ErrConflict)
	profiles.On("Update", mock.Anything, userID, fields).Return(&models.Profile{ID: "p1", Status: "Developer"}, nil)

	p, err := svc.Upsert(context.Background(), userID, fields)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	profiles.AssertExpectations(t)
}

func TestUpsertCreateForDeletedAccount(t *testing.T) {
	profiles := new(mockProfileRepo)
	users := new(mockUserRepo)
	svc := newTestProfileService(profiles, users, nil)

	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, utils.ErrNotFound)
	users.On("GetByID", mock.Anything, userID).Return(nil, utils.ErrNotFound)

	_, err := svc.Upsert(context.Background(), userID, models.ProfileFields{Status: str("Developer"), Skills: str("go")})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	assert.Equal(t, 400, utils.HTTPStatus(err))
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsertStorageFailure(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newTestProfileService(profiles, new(mockUserRepo), nil)
	profiles.On("GetByUserID", mock.Anything, userID).Return(nil, errors.New("connection reset"))

	_, err := svc.Upsert(context.Background(), userID, models.ProfileFields{Status: str("x"), Skills: str("y")})
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestGetMe(t *testing.T) {
	profiles := new(mockProfileRepo)
	svc := newTestProfileService(profiles, new(mockUserRepo), nil)

	want := &models.Profile{ID: "p1", User: models.UserRef{ID: userID, Name: "Jane", Avatar: "a"}}
	profiles.On("GetWithUser", mock.Anything, userID).Return(want, nil).Once()
	got, err := svc.GetMe(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	profiles.On("GetWithUser", mock.Anything, userID).Return(nil, utils.ErrNotFound).Once()
	_, err = svc.GetMe(context.Background(), userID)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	profiles.On("GetWithUser", mock.Anything, userID).Return(nil, errors.New("boom")).Once()
	_, err = svc.GetMe(context.Background(), userID)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestGetByUserID(t *testing.T) {
	profiles := new(mockProfileRepo)
	c := newMemCache()
	svc := newTestProfileService(profiles, new(mockUserRepo), c)

	profiles.On("GetWithUser", mock.Anything, "not-an-id").Return(nil, utils.ErrNotFound)
	_, err := svc.GetByUserID(context.Background(), "not-an-id")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = svc.GetByUserID(context.Background(), "")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	want := &models.Profile{ID: "p1", User: models.UserRef{ID: userID, Name: "Jane"}, Status: "Developer"}
	profiles.On("GetWithUser", mock.Anything, userID).Return(want, nil).Once()

	got, err := svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// second read is served from cache
	got, err = svc.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Developer", got.Status)
	profiles.AssertNumberOfCalls(t, "GetWithUser", 2)
}

func TestList(t *testing.T) {
	profiles := new(mockProfileRepo)
	c := newMemCache()
	svc := newTestProfileService(profiles, new(mockUserRepo), c)

	profiles.On("ListWithUser", mock.Anything).Return(nil, nil).Once()
	out, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	delete(c.data, cache.ProfileListKey)
	profiles.On("ListWithUser", mock.Anything).Return(nil, errors.New("boom")).Once()
	_, err = svc.List(context.Background())
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}

func TestDeleteMeRemovesProfileThenUser(t *testing.T) {
	profiles := new(mockProfileRepo)
	users := new(mockUserRepo)
	c := newMemCache()
	svc := newTestProfileService(profiles, users, c)

	var order []string
	profiles.On("DeleteByUserID", mock.Anything, userID).
		Run(func(mock.Arguments) { order = append(order, "profile") }).Return(nil)
	users.On("Delete", mock.Anything, userID).
		Run(func(mock.Arguments) { order = append(order, "user") }).Return(nil)

	require.NoError(t, svc.DeleteMe(context.Background(), userID))
	assert.Equal(t, []string{"profile", "user"}, order)
	assert.ElementsMatch(t, []string{cache.ProfileListKey, cache.ProfileKey(userID)}, c.deleted)
}

func TestDeleteMeSecondStepFailure(t *testing.T) {
	profiles := new(mockProfileRepo)
	users := new(mockUserRepo)
	svc := newTestProfileService(profiles, users, nil)

	profiles.On("DeleteByUserID", mock.Anything, userID).Return(nil)
	users.On("Delete", mock.Anything, userID).Return(errors.New("timeout"))

	err := svc.DeleteMe(context.Background(), userID)
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
	profiles.AssertCalled(t, "DeleteByUserID", mock.Anything, userID)
}
