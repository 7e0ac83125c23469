package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/testutil"
)

func TestObraCreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")

	lat, lng := -23.5505, -46.6333
	s := NewObraStore(db)
	created, err := s.Create(gestor.ID, ObraInput{
		Name:      "Obra Centro",
		Address:   "Av. Paulista, 1000",
		Latitude:  &lat,
		Longitude: &lng,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive, "new obras start active")
	assert.Equal(t, gestor.ID, created.GestorID)

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Obra Centro", got.Name)
	require.NotNil(t, got.Latitude)
	assert.Equal(t, lat, *got.Latitude)

	_, err = s.Get(created.ID + 999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestObraUpdateKeepsOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Nome antigo")

	name := "Nome novo"
	inactive := false
	s := NewObraStore(db)
	updated, err := s.Update(obra, ObraUpdate{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Nome novo", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Equal(t, gestor.ID, updated.GestorID)

	// untouched fields survive a partial update
	got, err := s.Get(obra.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nome novo", got.Name)
	assert.Equal(t, gestor.ID, got.GestorID)
}

func TestObraDeactivateKeepsRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra pausada")

	s := NewObraStore(db)
	require.NoError(t, s.Deactivate(obra))

	got, err := s.Get(obra.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestObraListByGestorAndEngineer(t *testing.T) {
	db := testutil.NewTestDB(t)
	mine := testutil.Gestor(t, db, "mine@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	engineer := testutil.Engineer(t, db, "e@example.com")

	a := testutil.Obra(t, db, mine.ID, "Obra A")
	testutil.Obra(t, db, mine.ID, "Obra B")
	testutil.Obra(t, db, other.ID, "Obra alheia")
	testutil.Assign(t, db, a.ID, engineer.ID)

	s := NewObraStore(db)

	owned, err := s.ListByGestor(mine.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	assigned, err := s.ListByEngineer(engineer.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Obra A", assigned[0].Name)
}

func TestObraDeleteRemovesRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	gestor := testutil.Gestor(t, db, "g@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra temporária")

	s := NewObraStore(db)
	require.NoError(t, s.Delete(obra.ID))

	_, err := s.Get(obra.ID)
	assert.True(t, apperr.IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.Obra{}).Count(&count).Error)
	assert.Zero(t, count)
}
