package mocks

import (
	"context"

	"seq-metadata/core/obstore"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of obstore.Client
type Client struct {
	mock.Mock
}

func (m *Client) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *Client) IterContents(ctx context.Context, path string) <-chan obstore.Item {
	args := m.Called(ctx, path)
	if ch, ok := args.Get(0).(<-chan obstore.Item); ok {
		return ch
	}
	ch := make(chan obstore.Item)
	close(ch)
	return ch
}

func (m *Client) Metadata(ctx context.Context, path string) ([]obstore.AVU, error) {
	args := m.Called(ctx, path)
	if avus, ok := args.Get(0).([]obstore.AVU); ok {
		return avus, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) AddMetadata(ctx context.Context, path string, avus []obstore.AVU) (int, error) {
	args := m.Called(ctx, path, avus)
	return args.Int(0), args.Error(1)
}

func (m *Client) SupersedeMetadata(ctx context.Context, path string, avus []obstore.AVU) (int, int, error) {
	args := m.Called(ctx, path, avus)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *Client) Permissions(ctx context.Context, path string) ([]obstore.AC, error) {
	args := m.Called(ctx, path)
	if acl, ok := args.Get(0).([]obstore.AC); ok {
		return acl, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SupersedePermissions(ctx context.Context, path string, acl []obstore.AC) (int, int, error) {
	args := m.Called(ctx, path, acl)
	return args.Int(0), args.Int(1), args.Error(2)
}
