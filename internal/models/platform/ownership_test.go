package platform

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

func TestAtRiskIgnoraOrfasELicencasDesconhecidas(t *testing.T) {
	suspensa := Licenca{ID: uuid.New(), Status: shared.LicencaStatusSuspensa}
	cancelada := Licenca{ID: uuid.New(), Status: shared.LicencaStatusCancelada}
	ativa := Licenca{ID: uuid.New(), Status: shared.LicencaStatusAtiva}
	desconhecida := uuid.New()

	empresas := []Empresa{
		{ID: uuid.New(), LicencaID: &suspensa.ID},
		{ID: uuid.New(), LicencaID: &cancelada.ID},
		{ID: uuid.New(), LicencaID: &ativa.ID},
		{ID: uuid.New(), LicencaID: nil},
		{ID: uuid.New(), LicencaID: &desconhecida},
	}

	atRisk := AtRisk(empresas, []Licenca{suspensa, cancelada, ativa})
	assert.Len(t, atRisk, 2)
	for _, e := range atRisk {
		assert.NotNil(t, e.LicencaID)
	}
}

func TestByLicenca(t *testing.T) {
	l := uuid.New()
	outra := uuid.New()

	vinculada := Empresa{ID: uuid.New(), LicencaID: &l}
	empresas := []Empresa{
		vinculada,
		{ID: uuid.New(), LicencaID: &outra},
		{ID: uuid.New(), LicencaID: nil},
	}

	out := ByLicenca(empresas, l)
	assert.Len(t, out, 1)
	assert.Equal(t, vinculada.ID, out[0].ID)
}

func TestOrphans(t *testing.T) {
	l := uuid.New()
	empresas := []Empresa{
		{ID: uuid.New(), LicencaID: nil},
		{ID: uuid.New(), LicencaID: &l},
	}

	orphans := Orphans(empresas)
	assert.Len(t, orphans, 1)
	assert.True(t, orphans[0].Orfa())
}

func TestLicencaStatusTransicoes(t *testing.T) {
	cases := []struct {
		from, to shared.LicencaStatus
		ok       bool
	}{
		{shared.LicencaStatusAtiva, shared.LicencaStatusSuspensa, true},
		{shared.LicencaStatusAtiva, shared.LicencaStatusCancelada, true},
		{shared.LicencaStatusAtiva, shared.LicencaStatusAtiva, false},
		{shared.LicencaStatusSuspensa, shared.LicencaStatusAtiva, true},
		{shared.LicencaStatusSuspensa, shared.LicencaStatusCancelada, true},
		{shared.LicencaStatusCancelada, shared.LicencaStatusAtiva, false},
		{shared.LicencaStatusCancelada, shared.LicencaStatusSuspensa, false},
		{shared.LicencaStatusCancelada, shared.LicencaStatusCancelada, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
