package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/identity"
	"github.com/judn/backend/internal/infrastructure/auth"
)

func newTestUserService(repo *MockUserRepository) (*UserService, auth.TokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	return NewUserService(repo, blacklist, zap.NewNop()), blacklist
}

func TestUserService_Create(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo)
	actorID := uuid.New()

	repo.On("ExistsByEmail", mock.Anything, "new@judn.store").Return(false, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.Email == "new@judn.store" &&
			u.Role == identity.RoleProductManager &&
			u.Active &&
			u.CreatedBy != nil && *u.CreatedBy == actorID
	})).Return(nil)

	resp, err := svc.Create(context.Background(), actorID, CreateUserRequest{
		Name:     "New Staff",
		Email:    "new@judn.store",
		Password: "password123",
		Role:     "product_manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "product_manager", resp.Role)
	assert.Contains(t, resp.Permissions, string(identity.PermProductsWrite))
	repo.AssertExpectations(t)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo)

	repo.On("ExistsByEmail", mock.Anything, "taken@judn.store").Return(true, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateUserRequest{
		Name:     "New Staff",
		Email:    "taken@judn.store",
		Password: "password123",
		Role:     "admin",
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update_RoleChangeRevokesSessions(t *testing.T) {
	repo := new(MockUserRepository)
	svc, blacklist := newTestUserService(repo)
	user := newActiveUser(t)
	actorID := uuid.New()

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	newRole := "marketing_team"
	resp, err := svc.Update(context.Background(), user.ID, actorID, UpdateUserRequest{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, "marketing_team", resp.Role)

	pastIssue := user.CreatedAt
	revoked, err := blacklist.IsRevokedForUser(context.Background(), user.ID.String(), pastIssue)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_Update_DeactivateRevokesSessions(t *testing.T) {
	repo := new(MockUserRepository)
	svc, blacklist := newTestUserService(repo)
	user := newActiveUser(t)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	inactive := false
	resp, err := svc.Update(context.Background(), user.ID, uuid.New(), UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.Active)

	revoked, err := blacklist.IsRevokedForUser(context.Background(), user.ID.String(), user.CreatedAt)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestUserService_Update_ProfileOnlyKeepsSessions(t *testing.T) {
	repo := new(MockUserRepository)
	svc, blacklist := newTestUserService(repo)
	user := newActiveUser(t)

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	name := "Renamed Staff"
	_, err := svc.Update(context.Background(), user.ID, uuid.New(), UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	revoked, err := blacklist.IsRevokedForUser(context.Background(), user.ID.String(), user.CreatedAt)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestUserService_Unlock(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo)
	user := newActiveUser(t)
	for i := 0; i < 5; i++ {
		user.RecordLoginFailure()
	}
	require.True(t, user.IsLocked())

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Unlock(context.Background(), user.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, resp.Locked)
	assert.False(t, user.IsLocked())
}

func TestUserService_Delete_RejectsSelf(t *testing.T) {
	repo := new(MockUserRepository)
	svc, _ := newTestUserService(repo)
	actorID := uuid.New()

	err := svc.Delete(context.Background(), actorID, actorID)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
