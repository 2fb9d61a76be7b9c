package platform

import (
	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
)

// Funções puras sobre um snapshot do grafo de posse (Owner → Licença → Empresa).
// São recomputadas sob demanda a partir do estado corrente; não há estado
// derivado persistido.

// Orphans retorna as empresas de posse direta da plataforma (licenca_id nulo).
func Orphans(empresas []Empresa) []Empresa {
	var out []Empresa
	for _, e := range empresas {
		if e.Orfa() {
			out = append(out, e)
		}
	}
	return out
}

// AtRisk retorna as empresas "em risco": vinculadas a uma licença cujo status
// não é ATIVA. Empresas órfãs nunca estão em risco: posse direta pela
// plataforma é o estado seguro por definição.
func AtRisk(empresas []Empresa, licencas []Licenca) []Empresa {
	status := make(map[uuid.UUID]shared.LicencaStatus, len(licencas))
	for _, l := range licencas {
		status[l.ID] = l.Status
	}

	var out []Empresa
	for _, e := range empresas {
		if e.LicencaID == nil {
			continue
		}
		if s, ok := status[*e.LicencaID]; ok && s != shared.LicencaStatusAtiva {
			out = append(out, e)
		}
	}
	return out
}

// ByLicenca retorna as empresas vinculadas a uma licença específica.
func ByLicenca(empresas []Empresa, licencaID uuid.UUID) []Empresa {
	var out []Empresa
	for _, e := range empresas {
		if e.LicencaID != nil && *e.LicencaID == licencaID {
			out = append(out, e)
		}
	}
	return out
}
