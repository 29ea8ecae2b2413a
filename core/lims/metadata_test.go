package lims

import (
	"testing"

	"seq-metadata/core/mlwh"
	"seq-metadata/core/obstore"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string {
	return &s
}

func TestMakeSampleMetadata(t *testing.T) {
	sample := mlwh.Sample{
		SangerSampleID:  strptr("sample1"),
		Name:            strptr("sample1"),
		AccessionNumber: strptr("ACC1"),
		DonorID:         strptr("D1"),
		SupplierName:    strptr("supplier1"),
	}

	assert.Equal(t, []obstore.AVU{
		{Attr: SampleIDAttr, Value: "sample1"},
		{Attr: SampleNameAttr, Value: "sample1"},
		{Attr: SampleAccessionNumberAttr, Value: "ACC1"},
		{Attr: SampleDonorIDAttr, Value: "D1"},
		{Attr: SampleSupplierNameAttr, Value: "supplier1"},
	}, MakeSampleMetadata(sample))
}

func TestMakeSampleMetadata_SparseSample(t *testing.T) {
	sample := mlwh.Sample{
		SangerSampleID:  strptr("sample1"),
		AccessionNumber: strptr(""),
	}

	// Absent and empty warehouse values yield no AVUs
	assert.Equal(t, []obstore.AVU{
		{Attr: SampleIDAttr, Value: "sample1"},
	}, MakeSampleMetadata(sample))
}

func TestMakeSampleMetadata_ConsentWithdrawn(t *testing.T) {
	sample := mlwh.Sample{
		SangerSampleID:   strptr("sample1"),
		ConsentWithdrawn: true,
	}

	assert.Contains(t, MakeSampleMetadata(sample),
		obstore.AVU{Attr: SampleConsentWithdrawnAttr, Value: "1"})
}

func TestMakeStudyMetadata(t *testing.T) {
	study := mlwh.Study{
		IDStudyLims:     "5000",
		Name:            strptr("study1"),
		AccessionNumber: strptr("PRJ1"),
	}

	assert.Equal(t, []obstore.AVU{
		{Attr: StudyIDAttr, Value: "5000"},
		{Attr: StudyNameAttr, Value: "study1"},
		{Attr: StudyAccessionNumberAttr, Value: "PRJ1"},
	}, MakeStudyMetadata(study))
}

func TestMakeSampleACL(t *testing.T) {
	study := mlwh.Study{IDStudyLims: "5000"}

	acl := MakeSampleACL(mlwh.Sample{}, study, "seq")
	assert.Equal(t, []obstore.AC{
		{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead},
	}, acl)

	acl = MakeSampleACL(mlwh.Sample{ConsentWithdrawn: true}, study, "seq")
	assert.Equal(t, []obstore.AC{
		{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionNull},
	}, acl)
}

func TestIsManagedAccess(t *testing.T) {
	assert.True(t, IsManagedAccess(obstore.AC{User: "ss_5000", Perm: obstore.PermissionRead}))
	assert.False(t, IsManagedAccess(obstore.AC{User: "srv", Perm: obstore.PermissionOwn}))
	assert.False(t, IsManagedAccess(obstore.AC{User: "public", Perm: obstore.PermissionRead}))
}

func TestIsManagedMetadata(t *testing.T) {
	assert.True(t, IsManagedMetadata(obstore.AVU{Attr: SampleIDAttr, Value: "sample1"}))
	assert.True(t, IsManagedMetadata(obstore.AVU{Attr: StudyIDAttr, Value: "5000"}))
	assert.False(t, IsManagedMetadata(obstore.AVU{Attr: ComponentAttr, Value: "{}"}))
	assert.False(t, IsManagedMetadata(obstore.AVU{Attr: IDProductAttr, Value: "abcde"}))
}

func TestHasMixedOwnership(t *testing.T) {
	srv := obstore.AC{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn}
	s5000 := obstore.AC{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead}
	s6000 := obstore.AC{User: "ss_6000", Zone: "seq", Perm: obstore.PermissionRead}

	assert.False(t, HasMixedOwnership([]obstore.AC{srv, s5000}))
	assert.False(t, HasMixedOwnership([]obstore.AC{s5000, s5000}))
	assert.True(t, HasMixedOwnership([]obstore.AC{srv, s5000, s6000}))
}
