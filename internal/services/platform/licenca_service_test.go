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

func newLicencaFixture() (*fakeState, *LicencaService, *fakeEmpresaStore) {
	state := newFakeState()
	licencas := &fakeLicencaStore{s: state}
	empresas := &fakeEmpresaStore{s: state}
	planos := &fakePlanoStore{s: state}
	svc := NewLicencaService(licencas, planos, nil, zap.NewNop())
	return state, svc, empresas
}

func TestOnboardLicenca(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	plano := state.addPlano(shared.PlanoTierOuro)

	l, err := svc.Onboard(context.Background(), platformModels.CreateLicencaRequest{
		RazaoSocial: "Revenda Norte LTDA",
		PlanoID:     plano.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, shared.LicencaStatusAtiva, l.Status)
	assert.Equal(t, "Revenda Norte LTDA", l.RazaoSocial)
}

func TestOnboardLicencaPlanoInexistente(t *testing.T) {
	_, svc, _ := newLicencaFixture()

	_, err := svc.Onboard(context.Background(), platformModels.CreateLicencaRequest{
		RazaoSocial: "Revenda Sem Plano",
		PlanoID:     uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestSuspenderExigeMotivo(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)

	_, err := svc.Suspender(context.Background(), l.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	// estado inalterado
	assert.Equal(t, shared.LicencaStatusAtiva, state.licencas[l.ID].Status)
}

func TestSuspenderEReativar(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)

	suspensa, err := svc.Suspender(context.Background(), l.ID, "inadimplente")
	require.NoError(t, err)
	assert.Equal(t, shared.LicencaStatusSuspensa, suspensa.Status)
	assert.Equal(t, "inadimplente", suspensa.MotivoSuspensao)

	reativada, err := svc.Reativar(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.LicencaStatusAtiva, reativada.Status)
	assert.Empty(t, reativada.MotivoSuspensao)
}

func TestSuspenderNaoDesvinculaEmpresas(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)
	e := state.addEmpresa(&l.ID)

	_, err := svc.Suspender(context.Background(), l.ID, "inadimplente")
	require.NoError(t, err)

	// suspensão mantém o vínculo (a licença pode ser reativada)
	require.NotNil(t, state.empresas[e.ID].LicencaID)
	assert.Equal(t, l.ID, *state.empresas[e.ID].LicencaID)
}

func TestRescindirDesvinculaTodasAsEmpresas(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusAtiva)
	outra := state.addLicenca(shared.LicencaStatusAtiva)

	e1 := state.addEmpresa(&l.ID)
	e2 := state.addEmpresa(&l.ID)
	e3 := state.addEmpresa(&outra.ID)

	cancelled, err := svc.Rescindir(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.LicencaStatusCancelada, cancelled.Status)

	// nenhuma empresa referencia a licença cancelada; posse degrada para
	// direta, nunca para referência pendente
	assert.Nil(t, state.empresas[e1.ID].LicencaID)
	assert.Nil(t, state.empresas[e2.ID].LicencaID)

	// empresas de outras licenças não são afetadas
	require.NotNil(t, state.empresas[e3.ID].LicencaID)
	assert.Equal(t, outra.ID, *state.empresas[e3.ID].LicencaID)
}

func TestCanceladaETerminal(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusCancelada)

	ctx := context.Background()

	_, err := svc.Suspender(ctx, l.ID, "qualquer motivo")
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))

	_, err = svc.Reativar(ctx, l.ID)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))

	_, err = svc.Rescindir(ctx, l.ID)
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

func TestListByStatus(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	state.addLicenca(shared.LicencaStatusAtiva)
	suspensa := state.addLicenca(shared.LicencaStatusSuspensa)

	licencas, err := svc.ListByStatus(context.Background(), shared.LicencaStatusSuspensa)
	require.NoError(t, err)
	require.Len(t, licencas, 1)
	assert.Equal(t, suspensa.ID, licencas[0].ID)
}

func TestListByStatusDesconhecido(t *testing.T) {
	_, svc, _ := newLicencaFixture()

	_, err := svc.ListByStatus(context.Background(), shared.LicencaStatus("PENDENTE"))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestStatsDisponivelParaSuspensa(t *testing.T) {
	state, svc, _ := newLicencaFixture()
	l := state.addLicenca(shared.LicencaStatusSuspensa)
	state.addEmpresa(&l.ID)
	state.addEmpresa(&l.ID)

	stats, err := svc.Stats(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmpresas)
}
