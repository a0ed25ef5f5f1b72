package models

import "strings"

// SupplierRecord represents a supplier row or a supplier payload for the
// registry.
type SupplierRecord struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	Email        string `json:"email"`
	Telefone     string `json:"telefone"`
	CEP          string `json:"cep"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Bairro       string `json:"bairro"`
	Complemento  string `json:"complemento"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
	Observacoes  string `json:"observacoes,omitempty"`
}

// CleanCNPJ strips every non-digit character from s.
func CleanCNPJ(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FillFrom copies fallback values into every empty field of s. Fields
// already set on s are kept.
func (s *SupplierRecord) FillFrom(fallback SupplierRecord) {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&s.RazaoSocial, fallback.RazaoSocial)
	fill(&s.NomeFantasia, fallback.NomeFantasia)
	fill(&s.Telefone, fallback.Telefone)
	fill(&s.Email, fallback.Email)
	fill(&s.CEP, fallback.CEP)
	fill(&s.Logradouro, fallback.Logradouro)
	fill(&s.Numero, fallback.Numero)
	fill(&s.Bairro, fallback.Bairro)
	fill(&s.Complemento, fallback.Complemento)
	fill(&s.Municipio, fallback.Municipio)
	fill(&s.UF, fallback.UF)
}
