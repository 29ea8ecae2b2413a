package illumina

import (
	"context"
	"testing"

	"seq-metadata/core/lims"
	"seq-metadata/core/obstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory store holding metadata and ACLs per path, with
// the same supersede semantics as the real client.
type fakeStore struct {
	metadata map[string][]obstore.AVU
	acl      map[string][]obstore.AC
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		metadata: make(map[string][]obstore.AVU),
		acl:      make(map[string][]obstore.AC),
	}
}

func (s *fakeStore) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.metadata[path]
	return ok, nil
}

func (s *fakeStore) IterContents(ctx context.Context, path string) <-chan obstore.Item {
	items := make(chan obstore.Item)
	close(items)
	return items
}

func (s *fakeStore) Metadata(ctx context.Context, path string) ([]obstore.AVU, error) {
	return s.metadata[path], nil
}

func (s *fakeStore) AddMetadata(ctx context.Context, path string, avus []obstore.AVU) (int, error) {
	current := make(map[obstore.AVU]struct{})
	for _, avu := range s.metadata[path] {
		current[avu] = struct{}{}
	}
	added := 0
	for _, avu := range avus {
		if _, ok := current[avu]; !ok {
			s.metadata[path] = append(s.metadata[path], avu)
			added++
		}
	}
	return added, nil
}

func (s *fakeStore) SupersedeMetadata(ctx context.Context, path string, avus []obstore.AVU) (int, int, error) {
	target := obstore.SortedUniqueAVUs(avus)
	have := make(map[obstore.AVU]struct{})
	for _, avu := range s.metadata[path] {
		have[avu] = struct{}{}
	}
	want := make(map[obstore.AVU]struct{})
	added := 0
	for _, avu := range target {
		want[avu] = struct{}{}
		if _, ok := have[avu]; !ok {
			added++
		}
	}
	removed := 0
	for avu := range have {
		if _, ok := want[avu]; !ok {
			removed++
		}
	}
	s.metadata[path] = target
	return added, removed, nil
}

func (s *fakeStore) Permissions(ctx context.Context, path string) ([]obstore.AC, error) {
	return s.acl[path], nil
}

func (s *fakeStore) SupersedePermissions(ctx context.Context, path string, acl []obstore.AC) (int, int, error) {
	target := obstore.SortedUniqueACs(acl)
	have := make(map[obstore.AC]struct{})
	for _, ac := range s.acl[path] {
		have[ac] = struct{}{}
	}
	want := make(map[obstore.AC]struct{})
	added := 0
	for _, ac := range target {
		want[ac] = struct{}{}
		if _, ok := have[ac]; !ok {
			added++
		}
	}
	removed := 0
	for ac := range have {
		if _, ok := want[ac]; !ok {
			removed++
		}
	}
	s.acl[path] = target
	return added, removed, nil
}

const testPath = "/seq/24338/24338_1#5.cram"

func expectFlowcellQuery(mock sqlmock.Sqlmock, sample sampleRow, study studyRow) {
	rows := sqlmock.NewRows(flowcellColumns()).AddRow(10, sample.id, study.id, 1, 5)
	mock.ExpectQuery("SELECT DISTINCT").WillReturnRows(rows)

	sampleRows := sqlmock.NewRows([]string{
		"id_sample_tmp", "sanger_sample_id", "name", "accession_number", "consent_withdrawn",
	}).AddRow(sample.id, sample.sangerID, sample.sangerID, sample.accession, sample.withdrawn)
	mock.ExpectQuery("SELECT \\* FROM `sample`").WillReturnRows(sampleRows)

	studyRows := sqlmock.NewRows([]string{"id_study_tmp", "id_study_lims", "name"}).
		AddRow(study.id, study.lims, study.name)
	mock.ExpectQuery("SELECT \\* FROM `study`").WillReturnRows(studyRows)
}

type sampleRow struct {
	id        int
	sangerID  string
	accession string
	withdrawn bool
}

type studyRow struct {
	id   int
	lims string
	name string
}

func TestEnsureSecondaryMetadataUpdated(t *testing.T) {
	db, mock := setupMockDB(t)
	store := newFakeStore()
	log := zap.NewNop()

	tag := 5
	component := Component{RunID: 24338, Position: 1, TagIndex: &tag}
	store.metadata[testPath] = []obstore.AVU{
		component.AVU(),
		{Attr: lims.IDProductAttr, Value: "abcde12345"},
	}
	store.acl[testPath] = []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
	}

	expectFlowcellQuery(mock,
		sampleRow{id: 1, sangerID: "sample1", accession: "ACC1"},
		studyRow{id: 1, lims: "5000", name: "study1"})

	changed, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.ElementsMatch(t, []obstore.AVU{
		component.AVU(),
		{Attr: lims.IDProductAttr, Value: "abcde12345"},
		{Attr: lims.SampleIDAttr, Value: "sample1"},
		{Attr: lims.SampleNameAttr, Value: "sample1"},
		{Attr: lims.SampleAccessionNumberAttr, Value: "ACC1"},
		{Attr: lims.StudyIDAttr, Value: "5000"},
		{Attr: lims.StudyNameAttr, Value: "study1"},
	}, store.metadata[testPath])

	assert.ElementsMatch(t, []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
		{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead},
	}, store.acl[testPath])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSecondaryMetadataUpdated_Idempotent(t *testing.T) {
	db, mock := setupMockDB(t)
	store := newFakeStore()
	log := zap.NewNop()

	tag := 5
	component := Component{RunID: 24338, Position: 1, TagIndex: &tag}
	store.metadata[testPath] = []obstore.AVU{component.AVU()}

	sample := sampleRow{id: 1, sangerID: "sample1", accession: "ACC1"}
	study := studyRow{id: 1, lims: "5000", name: "study1"}

	expectFlowcellQuery(mock, sample, study)
	changed, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	require.True(t, changed)

	// A second run against the same warehouse state finds nothing to do.
	expectFlowcellQuery(mock, sample, study)
	changed, err = EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestEnsureSecondaryMetadataUpdated_ConsentWithdrawn(t *testing.T) {
	db, mock := setupMockDB(t)
	store := newFakeStore()
	log := zap.NewNop()

	tag := 5
	component := Component{RunID: 24338, Position: 1, TagIndex: &tag}
	store.metadata[testPath] = []obstore.AVU{component.AVU()}
	store.acl[testPath] = []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
		{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead},
	}

	expectFlowcellQuery(mock,
		sampleRow{id: 1, sangerID: "sample1", withdrawn: true},
		studyRow{id: 1, lims: "5000", name: "study1"})

	changed, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Contains(t, store.metadata[testPath],
		obstore.AVU{Attr: lims.SampleConsentWithdrawnAttr, Value: "1"})

	// Managed access revoked, service user untouched
	assert.Equal(t, []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
	}, store.acl[testPath])
}

func TestEnsureSecondaryMetadataUpdated_NonconsentedHuman(t *testing.T) {
	db, mock := setupMockDB(t)
	store := newFakeStore()
	log := zap.NewNop()

	component := Component{RunID: 24338, Position: 1, Subset: SubsetHuman}
	store.metadata[testPath] = []obstore.AVU{component.AVU()}
	store.acl[testPath] = []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
		{User: "ss_5000", Zone: "seq", Perm: obstore.PermissionRead},
	}

	expectFlowcellQuery(mock,
		sampleRow{id: 1, sangerID: "sample1"},
		studyRow{id: 1, lims: "5000", name: "study1"})

	changed, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	assert.True(t, changed)

	// Human-subset data is locked down even though consent stands
	assert.Equal(t, []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
	}, store.acl[testPath])
}

func TestEnsureSecondaryMetadataUpdated_MixedStudies(t *testing.T) {
	db, mock := setupMockDB(t)
	store := newFakeStore()
	log := zap.NewNop()

	tag := 5
	component := Component{RunID: 24338, Position: 1, TagIndex: &tag}
	store.metadata[testPath] = []obstore.AVU{component.AVU()}
	store.acl[testPath] = []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
	}

	rows := sqlmock.NewRows(flowcellColumns()).
		AddRow(10, 1, 1, 1, 5).
		AddRow(11, 2, 2, 1, 5)
	mock.ExpectQuery("SELECT DISTINCT").WillReturnRows(rows)

	sampleRows := sqlmock.NewRows([]string{"id_sample_tmp", "sanger_sample_id", "consent_withdrawn"}).
		AddRow(1, "sample1", false).
		AddRow(2, "sample2", false)
	mock.ExpectQuery("SELECT \\* FROM `sample`").WillReturnRows(sampleRows)

	studyRows := sqlmock.NewRows([]string{"id_study_tmp", "id_study_lims", "name"}).
		AddRow(1, "5000", "study1").
		AddRow(2, "6000", "study2")
	mock.ExpectQuery("SELECT \\* FROM `study`").WillReturnRows(studyRows)

	changed, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, log, testPath, false)
	require.NoError(t, err)
	assert.True(t, changed)

	// No study group is granted access to data merged across studies
	assert.Equal(t, []obstore.AC{
		{User: "srv", Zone: "seq", Perm: obstore.PermissionOwn},
	}, store.acl[testPath])
}

func TestEnsureSecondaryMetadataUpdated_BadPath(t *testing.T) {
	db, _ := setupMockDB(t)
	store := newFakeStore()

	_, err := EnsureSecondaryMetadataUpdated(context.Background(), store, db, zap.NewNop(), "relative/path", false)
	assert.Error(t, err)
}
