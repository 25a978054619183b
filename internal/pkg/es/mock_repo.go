package es

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) SearchPosts(ctx context.Context, q SearchQuery) ([]*PostES, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]*PostES), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepo) IndexPost(ctx context.Context, post *PostES, version int64) error {
	return m.Called(ctx, post, version).Error(0)
}

func (m *MockPostRepo) DeletePost(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostRepo) DeletePostsByAuthor(ctx context.Context, authorID uint64) error {
	return m.Called(ctx, authorID).Error(0)
}

func (m *MockPostRepo) UpdateAuthorName(ctx context.Context, authorID uint64, name string) error {
	return m.Called(ctx, authorID, name).Error(0)
}
