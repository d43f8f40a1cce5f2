// Package models defines the response payloads. JSON keys stay in Portuguese:
// they are the contract the existing frontend consumes.
package models

import "github.com/paulmach/orb/geojson"

// Summary is the aggregate result for a parcel selection.
// InformacoesAdicionais is either map[string][]string or the literal string
// "Não disponível" when no bookkeeping columns exist.
type Summary struct {
	TotalLotes            int            `json:"total_lotes"`
	AreaTotalM2           float64        `json:"area_total_m2"`
	AreaTotalHectares     float64        `json:"area_total_hectares"`
	PerimetroM            float64        `json:"perimetro_m"`
	Zoneamento            map[string]any `json:"zoneamento,omitempty"`
	InformacoesAdicionais any            `json:"informacoes_adicionais,omitempty"`
	Erro                  string         `json:"erro,omitempty"`
}

// Potencial is the buildable-area estimate derived from zoning parameters.
// Nil fields mean the parameter value could not be parsed.
type Potencial struct {
	AreaEdificavelM2 *float64 `json:"area_edificavel_m2"`
	ProjecaoSoloM2   *float64 `json:"projecao_solo_m2"`
}

type ErrorResponse struct {
	Success          bool     `json:"success"`
	Error            string   `json:"error"`
	AvailableColumns []string `json:"available_columns,omitempty"`
}

type StatusResponse struct {
	Success    bool     `json:"success"`
	Carregado  bool     `json:"dados_carregados"`
	TotalLotes int      `json:"total_lotes"`
	Colunas    []string `json:"colunas,omitempty"`
}

type MapBoundsResponse struct {
	Success bool          `json:"success"`
	Center  [2]float64    `json:"center"` // [lat, lon]
	Bounds  [2][2]float64 `json:"bounds"` // [[southwest lat,lon], [northeast lat,lon]]
}

type BairrosResponse struct {
	Success bool     `json:"success"`
	Bairros []string `json:"bairros"`
	Total   int      `json:"total"`
}

type LotesResponse struct {
	Success    bool                       `json:"success"`
	Bairro     string                     `json:"bairro"`
	TotalLotes int                        `json:"total_lotes"`
	GeoJSON    *geojson.FeatureCollection `json:"geojson"`
}

type UnifyRequest struct {
	Indices []int `json:"indices"`
}

type UnifyResponse struct {
	Success          bool              `json:"success"`
	TotalLotesUnidos int               `json:"total_lotes_unidos"`
	Geometry         *geojson.Geometry `json:"geometry"`
	Info             Summary           `json:"info"`
	Potencial        *Potencial        `json:"potencial_construtivo,omitempty"`
}

type InfoResponse struct {
	Success   bool       `json:"success"`
	Info      Summary    `json:"info"`
	Potencial *Potencial `json:"potencial_construtivo,omitempty"`
}
