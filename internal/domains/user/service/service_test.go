package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kost/config"
	"kost/infras/otel/mocks"
	userMocks "kost/internal/domains/user/mocks"
	"kost/internal/domains/user/model"
	"kost/internal/domains/user/model/dto"
	"kost/internal/domains/user/service"
	cacheMocks "kost/shared/cache/mocks"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/failure"
)

func newService(t *testing.T) (service.Tenant, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func withRole(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func ptr[T any](v T) *T {
	return &v
}

func TestTenantService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.User{
		{ID: "a", Email: "a@example.com", Level: constant.RoleUser, Active: true},
		{ID: "b", Email: "b@example.com", Level: constant.RoleAdmin},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res.Tenants, 2)
	assert.Equal(t, "a@example.com", res.Tenants[0].Email)
	assert.Equal(t, 1, res.TotalPage)
}

func TestTenantService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "a", Email: "a@example.com"}, nil)

		res, err := svc.Get(context.Background(), "a")

		require.NoError(t, err)
		assert.Equal(t, "a", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "a")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestTenantService_Update(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.UpdateTenantRequest
		setup    func(repo *userMocks.MockUser)
		wantCode int
	}{
		{
			name: "admin deactivates a tenant",
			ctx:  withRole(constant.RoleAdmin),
			req:  dto.UpdateTenantRequest{Active: ptr(false)},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldActive])
						assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "superadmin changes a level",
			ctx:  withRole(constant.RoleSuperAdmin),
			req:  dto.UpdateTenantRequest{Level: ptr(constant.RoleAdmin)},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "admin cannot change a level",
			ctx:      withRole(constant.RoleAdmin),
			req:      dto.UpdateTenantRequest{Level: ptr(constant.RoleAdmin)},
			setup:    func(*userMocks.MockUser) {},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "empty request",
			ctx:      withRole(constant.RoleAdmin),
			req:      dto.UpdateTenantRequest{},
			setup:    func(*userMocks.MockUser) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown tenant",
			ctx:  withRole(constant.RoleAdmin),
			req:  dto.UpdateTenantRequest{FullName: ptr("Budi")},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setup(repo)

			err := svc.Update(tt.ctx, tt.req, "tenant-1")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
