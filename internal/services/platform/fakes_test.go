package platform

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// fakeState é o store em memória compartilhado pelos fakes: mesmo grafo de
// posse visto pelos três stores, como no Master DB real.
type fakeState struct {
	licencas map[uuid.UUID]platformModels.Licenca
	empresas map[uuid.UUID]platformModels.Empresa
	planos   map[uuid.UUID]platformModels.Plano
}

func newFakeState() *fakeState {
	return &fakeState{
		licencas: make(map[uuid.UUID]platformModels.Licenca),
		empresas: make(map[uuid.UUID]platformModels.Empresa),
		planos:   make(map[uuid.UUID]platformModels.Plano),
	}
}

func (s *fakeState) addLicenca(status shared.LicencaStatus) platformModels.Licenca {
	l := platformModels.Licenca{
		ID:          uuid.New(),
		RazaoSocial: "Revenda Teste",
		Status:      status,
		PlanoID:     uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.licencas[l.ID] = l
	return l
}

func (s *fakeState) addEmpresa(licencaID *uuid.UUID) platformModels.Empresa {
	e := platformModels.Empresa{
		ID:        uuid.New(),
		Nome:      "Empresa Teste",
		CNPJ:      "12.345.678/0001-90",
		Plano:     shared.PlanoTierBronze,
		Ativo:     true,
		LicencaID: licencaID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.empresas[e.ID] = e
	return e
}

func (s *fakeState) addPlano(tier shared.PlanoTier) platformModels.Plano {
	p := platformModels.Plano{
		ID:    uuid.New(),
		Nome:  "Plano " + string(tier),
		Tier:  tier,
		Preco: 99.90,
	}
	s.planos[p.ID] = p
	return p
}

type fakeLicencaStore struct {
	s *fakeState
}

func (f *fakeLicencaStore) GetByID(_ context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	l, ok := f.s.licencas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
	}
	return &l, nil
}

func (f *fakeLicencaStore) List(_ context.Context) ([]platformModels.Licenca, error) {
	var out []platformModels.Licenca
	for _, l := range f.s.licencas {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLicencaStore) Create(_ context.Context, razaoSocial string, planoID uuid.UUID) (*platformModels.Licenca, error) {
	l := platformModels.Licenca{
		ID:          uuid.New(),
		RazaoSocial: razaoSocial,
		Status:      shared.LicencaStatusAtiva,
		PlanoID:     planoID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.s.licencas[l.ID] = l
	return &l, nil
}

func (f *fakeLicencaStore) UpdateStatus(_ context.Context, id uuid.UUID, status shared.LicencaStatus, motivo string) (*platformModels.Licenca, error) {
	l, ok := f.s.licencas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
	}
	l.Status = status
	l.MotivoSuspensao = motivo
	l.UpdatedAt = time.Now()
	f.s.licencas[id] = l
	return &l, nil
}

func (f *fakeLicencaStore) Rescindir(_ context.Context, id uuid.UUID) (*platformModels.Licenca, error) {
	l, ok := f.s.licencas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "licença %s não encontrada", id)
	}
	l.Status = shared.LicencaStatusCancelada
	l.UpdatedAt = time.Now()
	f.s.licencas[id] = l
	for eid, e := range f.s.empresas {
		if e.LicencaID != nil && *e.LicencaID == id {
			e.LicencaID = nil
			f.s.empresas[eid] = e
		}
	}
	return &l, nil
}

func (f *fakeLicencaStore) Stats(_ context.Context, id uuid.UUID) (*platformModels.LicencaStats, error) {
	stats := &platformModels.LicencaStats{LicencaID: id}
	for _, e := range f.s.empresas {
		if e.LicencaID != nil && *e.LicencaID == id {
			stats.TotalEmpresas++
			if e.Ativo {
				stats.EmpresasAtivas++
			} else {
				stats.EmpresasInativas++
			}
		}
	}
	return stats, nil
}

type fakeEmpresaStore struct {
	s *fakeState
}

func (f *fakeEmpresaStore) GetByID(_ context.Context, id uuid.UUID) (*platformModels.Empresa, error) {
	e, ok := f.s.empresas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
	}
	return &e, nil
}

func (f *fakeEmpresaStore) List(_ context.Context) ([]platformModels.Empresa, error) {
	var out []platformModels.Empresa
	for _, e := range f.s.empresas {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmpresaStore) ListByLicenca(_ context.Context, licencaID uuid.UUID) ([]platformModels.Empresa, error) {
	var all []platformModels.Empresa
	for _, e := range f.s.empresas {
		all = append(all, e)
	}
	return platformModels.ByLicenca(all, licencaID), nil
}

func (f *fakeEmpresaStore) Create(_ context.Context, req platformModels.CreateEmpresaRequest) (*platformModels.Empresa, error) {
	e := platformModels.Empresa{
		ID:         uuid.New(),
		Nome:       req.Nome,
		CNPJ:       req.CNPJ,
		Plano:      req.Plano,
		Ativo:      true,
		LicencaID:  req.LicencaID,
		AdminEmail: req.AdminEmail,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	f.s.empresas[e.ID] = e
	return &e, nil
}

func (f *fakeEmpresaStore) Update(_ context.Context, id uuid.UUID, req platformModels.UpdateEmpresaRequest) (*platformModels.Empresa, error) {
	e, ok := f.s.empresas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
	}
	e.Nome = req.Nome
	e.CNPJ = req.CNPJ
	e.Plano = req.Plano
	e.AdminEmail = req.AdminEmail
	e.UpdatedAt = time.Now()
	f.s.empresas[id] = e
	return &e, nil
}

func (f *fakeEmpresaStore) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) (*platformModels.Empresa, error) {
	e, ok := f.s.empresas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
	}
	e.Ativo = ativo
	e.UpdatedAt = time.Now()
	f.s.empresas[id] = e
	return &e, nil
}

func (f *fakeEmpresaStore) SetLicenca(_ context.Context, id uuid.UUID, licencaID *uuid.UUID) (*platformModels.Empresa, error) {
	e, ok := f.s.empresas[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "empresa %s não encontrada", id)
	}
	e.LicencaID = licencaID
	e.UpdatedAt = time.Now()
	f.s.empresas[id] = e
	return &e, nil
}

func (f *fakeEmpresaStore) PlatformStats(_ context.Context) (*platformModels.PlatformStats, error) {
	stats := &platformModels.PlatformStats{}
	for _, e := range f.s.empresas {
		stats.TotalEmpresas++
		if e.Ativo {
			stats.EmpresasAtivas++
		}
		if e.LicencaID == nil {
			stats.EmpresasOrfas++
		} else if l, ok := f.s.licencas[*e.LicencaID]; ok && l.Status != shared.LicencaStatusAtiva {
			stats.EmpresasEmRisco++
		}
	}
	for _, l := range f.s.licencas {
		stats.TotalLicencas++
		switch l.Status {
		case shared.LicencaStatusAtiva:
			stats.LicencasAtivas++
		case shared.LicencaStatusSuspensa:
			stats.LicencasSuspensas++
		case shared.LicencaStatusCancelada:
			stats.LicencasCanceladas++
		}
	}
	return stats, nil
}

type fakePlanoStore struct {
	s *fakeState
}

func (f *fakePlanoStore) List(_ context.Context) ([]platformModels.Plano, error) {
	var out []platformModels.Plano
	for _, p := range f.s.planos {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlanoStore) GetByID(_ context.Context, id uuid.UUID) (*platformModels.Plano, error) {
	p, ok := f.s.planos[id]
	if !ok {
		return nil, apperr.Newf(apperr.CodeNotFound, "plano %s não encontrado", id)
	}
	return &p, nil
}
