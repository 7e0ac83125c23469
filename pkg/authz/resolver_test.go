package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obraseguro/backend/models"
	"github.com/obraseguro/backend/pkg/apperr"
	"github.com/obraseguro/backend/pkg/testutil"
)

func TestCanManageSite(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewResolver(db)

	owner := testutil.Gestor(t, db, "owner@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	engineer := testutil.Engineer(t, db, "eng@example.com")
	obra := testutil.Obra(t, db, owner.ID, "Obra Central")

	assert.True(t, r.CanManageSite(owner, obra))
	assert.False(t, r.CanManageSite(other, obra), "a different gestor never manages the obra")
	assert.False(t, r.CanManageSite(engineer, obra), "an engineer never manages an obra")
}

func TestCanActOnSiteAsEngineer(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewResolver(db)

	gestor := testutil.Gestor(t, db, "g@example.com")
	assigned := testutil.Engineer(t, db, "in@example.com")
	unassigned := testutil.Engineer(t, db, "out@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra Norte")
	testutil.Assign(t, db, obra.ID, assigned.ID)

	ok, err := r.CanActOnSiteAsEngineer(assigned, obra)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CanActOnSiteAsEngineer(unassigned, obra)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.CanActOnSiteAsEngineer(gestor, obra)
	require.NoError(t, err)
	assert.False(t, ok, "role check comes before assignment lookup")
}

func TestResolveOwnedObra(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewResolver(db)

	owner := testutil.Gestor(t, db, "owner@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	obra := testutil.Obra(t, db, owner.ID, "Obra Sul")

	got, err := r.ResolveOwnedObra(owner, obra.ID)
	require.NoError(t, err)
	assert.Equal(t, obra.ID, got.ID)

	_, err = r.ResolveOwnedObra(owner, obra.ID+999)
	assert.True(t, apperr.IsNotFound(err), "missing obra is not-found")

	// a foreign obra reads exactly like a missing one
	_, err = r.ResolveOwnedObra(other, obra.ID)
	assert.True(t, apperr.IsNotFound(err), "foreign obra must not leak existence")
}

func TestResolveAssignedObra(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewResolver(db)

	gestor := testutil.Gestor(t, db, "g@example.com")
	assigned := testutil.Engineer(t, db, "in@example.com")
	unassigned := testutil.Engineer(t, db, "out@example.com")
	obra := testutil.Obra(t, db, gestor.ID, "Obra Leste")
	testutil.Assign(t, db, obra.ID, assigned.ID)

	got, err := r.ResolveAssignedObra(assigned, obra.ID)
	require.NoError(t, err)
	assert.Equal(t, obra.ID, got.ID)

	_, err = r.ResolveAssignedObra(unassigned, obra.ID)
	assert.True(t, apperr.IsForbidden(err), "existing but unassigned obra is forbidden")

	_, err = r.ResolveAssignedObra(assigned, obra.ID+999)
	assert.True(t, apperr.IsNotFound(err), "missing obra is not-found")
}

func TestResolveTemplateChain(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := NewResolver(db)

	owner := testutil.Gestor(t, db, "owner@example.com")
	other := testutil.Gestor(t, db, "other@example.com")
	engineer := testutil.Engineer(t, db, "eng@example.com")
	obra := testutil.Obra(t, db, owner.ID, "Obra Oeste")
	testutil.Assign(t, db, obra.ID, engineer.ID)

	tpl := models.ChecklistTemplate{ObraID: obra.ID, Name: "Inspeção diária", IsActive: true}
	require.NoError(t, db.Create(&tpl).Error)

	got, err := r.ResolveManagedTemplate(owner, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, got.ID)

	_, err = r.ResolveManagedTemplate(other, tpl.ID)
	assert.True(t, apperr.IsNotFound(err), "foreign template reads as not-found")

	_, err = r.ResolveManagedTemplate(owner, tpl.ID+999)
	assert.True(t, apperr.IsNotFound(err))

	sub, err := r.ResolveSubmittableTemplate(engineer, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, sub.ID)

	stranger := testutil.Engineer(t, db, "stranger@example.com")
	_, err = r.ResolveSubmittableTemplate(stranger, tpl.ID)
	assert.True(t, apperr.IsForbidden(err))
}
