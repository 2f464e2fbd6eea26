package operation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/text"
)

// 🔧 MockStore is a mock implementation of the store.Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	result := m.Called(ctx)
	names, _ := result.Get(0).([]string)
	return names, result.Error(1)
}

func (m *MockStore) Read(ctx context.Context, name string) (string, error) {
	result := m.Called(ctx, name)
	return result.String(0), result.Error(1)
}

func (m *MockStore) Exists(ctx context.Context, name string) (bool, error) {
	result := m.Called(ctx, name)
	return result.Bool(0), result.Error(1)
}

func (m *MockStore) Write(ctx context.Context, name, content string) error {
	return m.Called(ctx, name, content).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func TestReplaceOperation(t *testing.T) {
	tests := []struct {
		name        string
		seed        map[string]string
		source      string
		destination string
		rule        text.ReplacementRule
		wantKind    store.Kind
		wantContent string
		wantOutcome Outcome
	}{
		{
			name:        "articles",
			seed:        map[string]string{"in.txt": "the cat sat on the mat"},
			source:      "in.txt",
			destination: "out.txt",
			rule:        text.ReplacementRule{FromText: "the", ToText: "a"},
			wantContent: "a cat sat on a mat",
			wantOutcome: Outcome{Source: "in.txt", Destination: "out.txt", Replacements: 2, Modified: true, Created: true},
		},
		{
			name:        "overwrite_existing_destination",
			seed:        map[string]string{"in.txt": "aaaa", "out.txt": "old"},
			source:      "in.txt",
			destination: "out.txt",
			rule:        text.ReplacementRule{FromText: "aa", ToText: "b"},
			wantContent: "bb",
			wantOutcome: Outcome{Source: "in.txt", Destination: "out.txt", Replacements: 2, Modified: true, Created: false},
		},
		{
			name:        "in_place",
			seed:        map[string]string{"in.txt": "hello"},
			source:      "in.txt",
			destination: "in.txt",
			rule:        text.ReplacementRule{FromText: "l", ToText: "L"},
			wantContent: "heLLo",
			wantOutcome: Outcome{Source: "in.txt", Destination: "in.txt", Replacements: 2, Modified: true},
		},
		{
			name:        "empty_from_text_copies",
			seed:        map[string]string{"in.txt": "hello"},
			source:      "in.txt",
			destination: "copy.txt",
			rule:        text.ReplacementRule{FromText: "", ToText: "x"},
			wantContent: "hello",
			wantOutcome: Outcome{Source: "in.txt", Destination: "copy.txt", Created: true},
		},
		{
			name:        "missing_source",
			source:      "missing.txt",
			destination: "out.txt",
			rule:        text.ReplacementRule{FromText: "a", ToText: "b"},
			wantKind:    store.KindNotFound,
		},
		{
			name:        "invalid_destination",
			seed:        map[string]string{"in.txt": "hello"},
			source:      "in.txt",
			destination: "../out.txt",
			rule:        text.ReplacementRule{FromText: "a", ToText: "b"},
			wantKind:    store.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			st := store.NewMemoryStore()
			for name, content := range tt.seed {
				require.NoError(t, st.Write(ctx, name, content))
			}

			op := NewReplaceOperation(Options{Store: st}, tt.source, tt.destination, tt.rule)
			err := op.Execute(ctx)

			if tt.wantKind != store.KindUnknown {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, store.KindOf(err))
				_, readErr := st.Read(ctx, "out.txt")
				assert.True(t, store.IsNotFound(readErr), "destination must not be created")
				return
			}

			require.NoError(t, err)
			got, err := st.Read(ctx, tt.destination)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, got)
			assert.Equal(t, tt.wantOutcome, op.Outcome())
		})
	}
}

func TestReplaceOperation_FailedReadNeverWrites(t *testing.T) {
	ctx := testContext()
	st := &MockStore{}
	st.On("Read", mock.Anything, "in.txt").Return("", errors.WithStack(store.ErrUnavailable))

	op := NewReplaceOperation(Options{Store: st}, "in.txt", "out.txt", text.ReplacementRule{FromText: "a", ToText: "b"})
	err := op.Execute(ctx)

	require.Error(t, err)
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))
	assert.Contains(t, err.Error(), "reading in.txt")
	st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
	st.AssertExpectations(t)
}

func TestReplaceOperation_WriteFailure(t *testing.T) {
	ctx := testContext()
	st := &MockStore{}
	st.On("Read", mock.Anything, "in.txt").Return("abc", nil)
	st.On("Exists", mock.Anything, "out.txt").Return(false, nil)
	st.On("Write", mock.Anything, "out.txt", "xbc").Return(errors.WithStack(store.ErrUnavailable))

	op := NewReplaceOperation(Options{Store: st}, "in.txt", "out.txt", text.ReplacementRule{FromText: "a", ToText: "x"})
	err := op.Execute(ctx)

	require.Error(t, err)
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))
	assert.Contains(t, err.Error(), "writing out.txt")
	st.AssertExpectations(t)
}

func TestReplaceOperation_DestinationIsNeverRead(t *testing.T) {
	ctx := testContext()
	st := &MockStore{}
	st.On("Read", mock.Anything, "in.txt").Return("abc", nil)
	st.On("Exists", mock.Anything, "out.txt").Return(true, nil)
	st.On("Write", mock.Anything, "out.txt", "xbc").Return(nil)

	op := NewReplaceOperation(Options{Store: st}, "in.txt", "out.txt", text.ReplacementRule{FromText: "a", ToText: "x"})
	require.NoError(t, op.Execute(ctx))

	assert.False(t, op.Outcome().Created)
	st.AssertNotCalled(t, "Read", mock.Anything, "out.txt")
	st.AssertExpectations(t)
}

func TestReplaceOperation_ExistsFailure(t *testing.T) {
	ctx := testContext()
	st := &MockStore{}
	st.On("Read", mock.Anything, "in.txt").Return("abc", nil)
	st.On("Exists", mock.Anything, "out.txt").Return(false, errors.WithStack(store.ErrUnavailable))

	op := NewReplaceOperation(Options{Store: st}, "in.txt", "out.txt", text.ReplacementRule{FromText: "a", ToText: "x"})
	err := op.Execute(ctx)

	require.Error(t, err)
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))
	st.AssertNotCalled(t, "Write", mock.Anything, mock.Anything, mock.Anything)
}

func TestWriteOperation(t *testing.T) {
	ctx := testContext()
	st := store.NewMemoryStore()

	op := NewWriteOperation(Options{Store: st}, "report.txt", "hello")
	require.NoError(t, op.Execute(ctx))
	assert.True(t, op.Outcome().Created)

	op = NewWriteOperation(Options{Store: st}, "report.txt", "hello again")
	require.NoError(t, op.Execute(ctx))
	assert.False(t, op.Outcome().Created)

	got, err := st.Read(ctx, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello again", got)
}

func TestListOperation(t *testing.T) {
	ctx := testContext()
	st := store.NewMemoryStore()
	for _, name := range []string{"a.txt", "b.txt", "notes.md"} {
		require.NoError(t, st.Write(ctx, name, "x"))
	}

	all := NewListOperation(Options{Store: st}, "")
	require.NoError(t, all.Execute(ctx))
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "notes.md"}, all.Names())

	txt := NewListOperation(Options{Store: st}, "*.txt")
	require.NoError(t, txt.Execute(ctx))
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, txt.Names())

	bad := NewListOperation(Options{Store: st}, "[")
	err := bad.Execute(ctx)
	require.Error(t, err)
	assert.Equal(t, store.KindValidation, store.KindOf(err))
}

func TestListOperation_StoreFailure(t *testing.T) {
	st := &MockStore{}
	st.On("List", mock.Anything).Return(nil, errors.WithStack(store.ErrUnavailable))

	err := NewListOperation(Options{Store: st}, "").Execute(testContext())
	require.Error(t, err)
	assert.Equal(t, store.KindUnavailable, store.KindOf(err))
	assert.Contains(t, err.Error(), "listing files")
}

func TestOptions_RequireStore(t *testing.T) {
	ops := []Operation{
		NewListOperation(Options{}, ""),
		NewWriteOperation(Options{}, "a.txt", "x"),
		NewReplaceOperation(Options{}, "a.txt", "b.txt", text.ReplacementRule{}),
	}
	for _, op := range ops {
		t.Run(op.Name(), func(t *testing.T) {
			err := op.Execute(testContext())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "store is required")
		})
	}
}
