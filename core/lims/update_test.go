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

func TestUpdateMetadata(t *testing.T) {
	client := new(mocks.Client)
	path := "/seq/24338/24338_1#5.cram"

	component := obstore.AVU{Attr: ComponentAttr, Value: `{"position":1,"run_id":24338}`}
	stale := obstore.AVU{Attr: SampleIDAttr, Value: "old_sample"}
	client.On("Metadata", context.Background(), path).
		Return([]obstore.AVU{component, stale}, nil)

	// The component AVU is preserved, the stale sample AVU is not
	client.On("SupersedeMetadata", context.Background(), path, []obstore.AVU{
		component,
		{Attr: SampleIDAttr, Value: "sample1"},
		{Attr: StudyIDAttr, Value: "5000"},
	}).Return(1, 1, nil)

	changed, err := UpdateMetadata(context.Background(), client, zap.NewNop(), path, []obstore.AVU{
		{Attr: StudyIDAttr, Value: "5000"},
		{Attr: SampleIDAttr, Value: "sample1"},
	})
	require.NoError(t, err)
	assert.True(t, changed)
	client.AssertExpectations(t)
}

func TestUpdateMetadata_NoChange(t *testing.T) {
	client := new(mocks.Client)
	path := "/seq/24338/24338_1#5.cram"

	avu := obstore.AVU{Attr: SampleIDAttr, Value: "sample1"}
	client.On("Metadata", context.Background(), path).Return([]obstore.AVU{avu}, nil)
	client.On("SupersedeMetadata", context.Background(), path, []obstore.AVU{avu}).
		Return(0, 0, nil)

	changed, err := UpdateMetadata(context.Background(), client, zap.NewNop(), path, []obstore.AVU{avu})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdatePermissions(t *testing.T) {
	client := new(mocks.Client)
	path := "/seq/24338/24338_1#5.cram"

	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}
	stale := obstore.AC{User: "ss_4000", Zone: "seq", Perm: obstore.PermissionRead}
	granted := obstore.AC{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead}

	client.On("Permissions", context.Background(), path).
		Return([]obstore.AC{srv, stale}, nil)
	client.On("SupersedePermissions", context.Background(), path, []obstore.AC{srv, granted}).
		Return(1, 1, nil)

	changed, err := UpdatePermissions(context.Background(), client, zap.NewNop(), path,
		[]obstore.AC{granted})
	require.NoError(t, err)
	assert.True(t, changed)
	client.AssertExpectations(t)
}

func TestUpdatePermissions_NullGrantsNothing(t *testing.T) {
	client := new(mocks.Client)
	path := "/seq/24338/24338_1#5.cram"

	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}
	client.On("Permissions", context.Background(), path).Return([]obstore.AC{srv}, nil)
	client.On("SupersedePermissions", context.Background(), path, []obstore.AC{srv}).
		Return(0, 0, nil)

	changed, err := UpdatePermissions(context.Background(), client, zap.NewNop(), path,
		[]obstore.AC{{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionNull}})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestUpdatePermissions_MixedStudiesWithheld(t *testing.T) {
	client := new(mocks.Client)
	path := "/seq/24338/24338_1#5.cram"

	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}
	client.On("Permissions", context.Background(), path).Return([]obstore.AC{srv}, nil)
	client.On("SupersedePermissions", context.Background(), path, []obstore.AC{srv}).
		Return(0, 0, nil)

	changed, err := UpdatePermissions(context.Background(), client, zap.NewNop(), path,
		[]obstore.AC{
			{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead},
			{User: "ss_6000", Zone: "seq", Perm: obstore.PermissionRead},
		})
	require.NoError(t, err)
	assert.False(t, changed)
	client.AssertExpectations(t)
}
