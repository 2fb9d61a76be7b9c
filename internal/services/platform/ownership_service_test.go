package platform

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

func newOwnershipFixture() (*fakeState, *OwnershipService, *MigracaoService, *LicencaService) {
	state := newFakeState()
	licencas := &fakeLicencaStore{s: state}
	empresas := &fakeEmpresaStore{s: state}
	planos := &fakePlanoStore{s: state}

	log := zap.NewNop()
	ownership := NewOwnershipService(empresas, licencas, planos, nil, log)
	migracao := NewMigracaoService(empresas, licencas, nil, log)
	lifecycle := NewLicencaService(licencas, planos, nil, log)
	return state, ownership, migracao, lifecycle
}

func empresaIDs(empresas []platformModels.Empresa) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool, len(empresas))
	for _, e := range empresas {
		ids[e.ID] = true
	}
	return ids
}

func TestListOrphans(t *testing.T) {
	state, ownership, _, _ := newOwnershipFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)
	orfa := state.addEmpresa(nil)
	vinculada := state.addEmpresa(&l.ID)

	orphans, err := ownership.ListOrphans(context.Background())
	require.NoError(t, err)

	ids := empresaIDs(orphans)
	assert.True(t, ids[orfa.ID])
	assert.False(t, ids[vinculada.ID])
}

func TestListAtRiskNuncaIncluiOrfas(t *testing.T) {
	state, ownership, _, _ := newOwnershipFixture()
	suspensa := state.addLicenca(shared.LicencaStatusSuspensa)
	ativa := state.addLicenca(shared.LicencaStatusAtiva)

	emRisco := state.addEmpresa(&suspensa.ID)
	segura := state.addEmpresa(&ativa.ID)
	orfa := state.addEmpresa(nil)

	atRisk, err := ownership.ListAtRisk(context.Background())
	require.NoError(t, err)

	ids := empresaIDs(atRisk)
	assert.True(t, ids[emRisco.ID])
	assert.False(t, ids[segura.ID])
	assert.False(t, ids[orfa.ID], "órfã nunca está em risco")

	for _, e := range atRisk {
		assert.NotNil(t, e.LicencaID)
	}
}

// Cenário de ponta a ponta do ciclo suspensão → risco → migração
func TestSuspensaoRiscoMigracao(t *testing.T) {
	state, ownership, migracao, lifecycle := newOwnershipFixture()
	ctx := context.Background()

	licencaL := state.addLicenca(shared.LicencaStatusAtiva)
	licencaM := state.addLicenca(shared.LicencaStatusAtiva)
	empresaT := state.addEmpresa(&licencaL.ID)

	// suspende L: T entra em risco
	_, err := lifecycle.Suspender(ctx, licencaL.ID, "inadimplente")
	require.NoError(t, err)

	atRisk, err := ownership.ListAtRisk(ctx)
	require.NoError(t, err)
	assert.True(t, empresaIDs(atRisk)[empresaT.ID])

	// migra T para M (ATIVA): sai do risco
	migrated, err := migracao.Migrate(ctx, empresaT.ID, &licencaM.ID, "cliente solicitou troca")
	require.NoError(t, err)
	require.NotNil(t, migrated.LicencaID)
	assert.Equal(t, licencaM.ID, *migrated.LicencaID)

	atRisk, err = ownership.ListAtRisk(ctx)
	require.NoError(t, err)
	assert.False(t, empresaIDs(atRisk)[empresaT.ID])
}

func TestToggleStatus(t *testing.T) {
	state, ownership, _, _ := newOwnershipFixture()
	e := state.addEmpresa(nil)

	toggled, err := ownership.ToggleStatus(context.Background(), e.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Ativo)

	toggled, err = ownership.ToggleStatus(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Ativo)
}

func TestOnboardEmpresaLicencaInexistente(t *testing.T) {
	_, ownership, _, _ := newOwnershipFixture()
	inexistente := uuid.New()

	_, err := ownership.OnboardEmpresa(context.Background(), platformModels.CreateEmpresaRequest{
		Nome:      "Oficina Nova",
		CNPJ:      "12.345.678/0001-90",
		Plano:     shared.PlanoTierPrata,
		LicencaID: &inexistente,
	})
	require.Error(t, err)
}

func TestOnboardEmpresaDiretaEhOrfa(t *testing.T) {
	_, ownership, _, _ := newOwnershipFixture()

	e, err := ownership.OnboardEmpresa(context.Background(), platformModels.CreateEmpresaRequest{
		Nome:  "Oficina Direta",
		CNPJ:  "98.765.432/0001-10",
		Plano: shared.PlanoTierBronze,
	})
	require.NoError(t, err)
	assert.True(t, e.Orfa())
	assert.True(t, e.Ativo)
}

func TestOnboardEmpresaPlanoInvalido(t *testing.T) {
	_, ownership, _, _ := newOwnershipFixture()

	_, err := ownership.OnboardEmpresa(context.Background(), platformModels.CreateEmpresaRequest{
		Nome:  "Oficina Nova",
		CNPJ:  "12.345.678/0001-90",
		Plano: shared.PlanoTier("DIAMANTE"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestListEmpresasByLicenca(t *testing.T) {
	state, ownership, _, _ := newOwnershipFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)
	outra := state.addLicenca(shared.LicencaStatusAtiva)

	vinculada := state.addEmpresa(&l.ID)
	state.addEmpresa(&outra.ID)
	state.addEmpresa(nil)

	empresas, err := ownership.ListEmpresasByLicenca(context.Background(), l.ID)
	require.NoError(t, err)
	require.Len(t, empresas, 1)
	assert.Equal(t, vinculada.ID, empresas[0].ID)
}

func TestListEmpresasByLicencaInexistente(t *testing.T) {
	_, ownership, _, _ := newOwnershipFixture()

	_, err := ownership.ListEmpresasByLicenca(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestFeatureCatalog(t *testing.T) {
	_, ownership, _, _ := newOwnershipFixture()

	features := ownership.FeatureCatalog()
	require.NotEmpty(t, features)
	assert.Contains(t, features, shared.FeatureDashboardView)
}

func TestPlatformStats(t *testing.T) {
	state, ownership, _, _ := newOwnershipFixture()
	suspensa := state.addLicenca(shared.LicencaStatusSuspensa)
	state.addLicenca(shared.LicencaStatusAtiva)
	state.addEmpresa(&suspensa.ID)
	state.addEmpresa(nil)

	stats, err := ownership.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmpresas)
	assert.Equal(t, 1, stats.EmpresasOrfas)
	assert.Equal(t, 1, stats.EmpresasEmRisco)
	assert.Equal(t, 2, stats.TotalLicencas)
	assert.Equal(t, 1, stats.LicencasSuspensas)
}
