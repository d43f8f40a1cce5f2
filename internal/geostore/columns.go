package geostore

// Source datasets come from different municipal systems and never agree on
// column names, so every semantic attribute is read through an ordered
// candidate list: the first name present in the schema wins, and if none is
// present the operation fails instead of guessing.

// NeighborhoodColumns resolve the district/neighborhood name of a parcel.
var NeighborhoodColumns = []string{
	"bairro", "BAIRRO", "Bairro", "nome", "NOME", "Nome", "neighborhood",
}

// ZoningColumns carry the zoning/use category of a parcel.
var ZoningColumns = []string{
	"zona", "zoneamento", "zone", "ZONA", "ZONEAMENTO",
	"uso", "uso_solo", "tipo_zona", "categoria",
}

// ParamColumns carry numeric urbanistic parameters (coefficients, rates,
// height limits, setbacks).
var ParamColumns = []string{
	"coeficiente", "ca", "coef_aproveitamento", "taxa_ocupacao",
	"to", "gabarito", "altura_max", "recuo", "testada_min",
}

// InfoColumns are bookkeeping fields worth surfacing when present.
var InfoColumns = []string{
	"matricula", "inscricao", "proprietario", "endereco",
	"logradouro", "numero", "quadra", "lote",
}
