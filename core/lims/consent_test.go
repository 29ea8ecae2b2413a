package lims

import (
	"context"
	"testing"

	"seq-metadata/core/obstore"
	"seq-metadata/core/obstore/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHasConsentWithdrawn(t *testing.T) {
	path := "/seq/24338/24338_1#5.cram"

	client := new(mocks.Client)
	client.On("Metadata", context.Background(), path).Return([]obstore.AVU{
		{Attr: SampleIDAttr, Value: "sample1"},
		{Attr: SampleConsentWithdrawnAttr, Value: "1"},
	}, nil)

	withdrawn, err := HasConsentWithdrawn(context.Background(), client, path)
	require.NoError(t, err)
	assert.True(t, withdrawn)

	client = new(mocks.Client)
	client.On("Metadata", context.Background(), path).Return([]obstore.AVU{
		{Attr: SampleIDAttr, Value: "sample1"},
	}, nil)

	withdrawn, err = HasConsentWithdrawn(context.Background(), client, path)
	require.NoError(t, err)
	assert.False(t, withdrawn)
}

func TestEnsureConsentWithdrawn(t *testing.T) {
	path := "/seq/24338/24338_1#5.cram"

	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}
	managed := obstore.AC{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead}

	client := new(mocks.Client)
	client.On("AddMetadata", context.Background(), path,
		[]obstore.AVU{{Attr: SampleConsentWithdrawnAttr, Value: "1"}}).Return(1, nil)
	client.On("Permissions", context.Background(), path).
		Return([]obstore.AC{srv, managed}, nil)
	client.On("SupersedePermissions", context.Background(), path, []obstore.AC{srv}).
		Return(0, 1, nil)

	changed, err := EnsureConsentWithdrawn(context.Background(), client, zap.NewNop(), path)
	require.NoError(t, err)
	assert.True(t, changed)
	client.AssertExpectations(t)
}

func TestEnsureConsentWithdrawn_Idempotent(t *testing.T) {
	path := "/seq/24338/24338_1#5.cram"

	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}

	client := new(mocks.Client)
	client.On("AddMetadata", context.Background(), path,
		[]obstore.AVU{{Attr: SampleConsentWithdrawnAttr, Value: "1"}}).Return(0, nil)
	client.On("Permissions", context.Background(), path).Return([]obstore.AC{srv}, nil)
	client.On("SupersedePermissions", context.Background(), path, []obstore.AC{srv}).
		Return(0, 0, nil)

	changed, err := EnsureConsentWithdrawn(context.Background(), client, zap.NewNop(), path)
	require.NoError(t, err)
	assert.False(t, changed)
}
