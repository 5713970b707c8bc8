package notice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campushub/internal/model"
)

type fakeStore struct {
	notices map[primitive.ObjectID]model.Notice
	names   map[primitive.ObjectID]string
	order   []primitive.ObjectID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notices: map[primitive.ObjectID]model.Notice{},
		names:   map[primitive.ObjectID]string{},
	}
}

func (f *fakeStore) Insert(_ context.Context, n model.Notice) (model.Notice, error) {
	n.ID = primitive.NewObjectID()
	f.notices[n.ID] = n
	f.order = append([]primitive.ObjectID{n.ID}, f.order...)
	return n, nil
}

func (f *fakeStore) List(context.Context) ([]model.Notice, error) {
	out := make([]model.Notice, 0, len(f.order))
	for _, id := range f.order {
		if n, ok := f.notices[id]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Notice, error) {
	n, ok := f.notices[id]
	if !ok {
		return model.Notice{}, ErrNotFound
	}
	return n, nil
}

func (f *fakeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.notices[id]; !ok {
		return ErrNotFound
	}
	delete(f.notices, id)
	return nil
}

func (f *fakeStore) AuthorNames(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := map[primitive.ObjectID]string{}
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func TestCreateAndListPopulateAuthor(t *testing.T) {
	store := newFakeStore()
	author := primitive.NewObjectID()
	store.names[author] = "Mr. Hill"
	svc := NewService(store)

	created, err := svc.Create(context.Background(), author.Hex(), "Exams", "Schedule posted")
	require.NoError(t, err)
	assert.Equal(t, "Mr. Hill", created.AuthorName)

	_, err = svc.Create(context.Background(), author.Hex(), "Holiday", "Closed Friday")
	require.NoError(t, err)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, "Holiday", entries[0].Title)
	assert.Equal(t, "Mr. Hill", entries[0].AuthorName)
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	store := newFakeStore()
	author := primitive.NewObjectID()
	other := primitive.NewObjectID()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), author.Hex(), "Exams", "Schedule posted")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID.Hex(), other.Hex())
	assert.ErrorIs(t, err, ErrNotAuthor)

	err = svc.Delete(context.Background(), created.ID.Hex(), author.Hex())
	require.NoError(t, err)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInvalidID(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Delete(context.Background(), "nope", primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrInvalidID)
}
