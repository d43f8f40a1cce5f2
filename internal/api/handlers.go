// Package api exposes the parcel store and terrain analysis over HTTP. The
// handler starts with a nil store and answers 503 until the background load
// swaps the loaded dataset in.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb/geojson"

	"terrenos/internal/geostore"
	"terrenos/internal/models"
	"terrenos/internal/terrain"
)

type Handler struct {
	store atomic.Pointer[geostore.Store]
}

func NewHandler(store *geostore.Store) *Handler {
	h := &Handler{}
	if store != nil {
		h.store.Store(store)
	}
	return h
}

// SetStore publishes a freshly loaded dataset to the live API.
func (h *Handler) SetStore(store *geostore.Store) {
	h.store.Store(store)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/status", h.Status)
	api.GET("/map-bounds", h.MapBounds)
	api.GET("/bairros", h.Bairros)
	api.GET("/lotes/:bairro", h.LotesByBairro)
	api.POST("/unir-lotes", h.UnirLotes)
	api.GET("/info-lote/:index", h.InfoLote)
}

func notLoaded(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error: "Dados não carregados",
	})
}

func (h *Handler) Status(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return c.JSON(http.StatusOK, models.StatusResponse{Success: true})
	}
	return c.JSON(http.StatusOK, models.StatusResponse{
		Success:    true,
		Carregado:  true,
		TotalLotes: store.Count(),
		Colunas:    store.Columns(),
	})
}

func (h *Handler) MapBounds(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return notLoaded(c)
	}
	b := store.TotalBounds()
	return c.JSON(http.StatusOK, models.MapBoundsResponse{
		Success: true,
		Center:  [2]float64{(b.Min.Lat() + b.Max.Lat()) / 2, (b.Min.Lon() + b.Max.Lon()) / 2},
		Bounds: [2][2]float64{
			{b.Min.Lat(), b.Min.Lon()}, // southwest
			{b.Max.Lat(), b.Max.Lon()}, // northeast
		},
	})
}

func (h *Handler) Bairros(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return notLoaded(c)
	}
	bairros, err := store.ListDistinct(geostore.NeighborhoodColumns)
	if err != nil {
		var cnf *geostore.ColumnNotFoundError
		if errors.As(err, &cnf) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:            "Coluna de bairro não encontrada no dataset",
				AvailableColumns: cnf.Available,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, models.BairrosResponse{
		Success: true,
		Bairros: bairros,
		Total:   len(bairros),
	})
}

func (h *Handler) LotesByBairro(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return notLoaded(c)
	}
	bairro := c.Param("bairro")
	parcels, err := store.FilterByColumnValue(geostore.NeighborhoodColumns, bairro)
	if err != nil {
		var cnf *geostore.ColumnNotFoundError
		if errors.As(err, &cnf) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:            "Coluna de bairro não encontrada no dataset",
				AvailableColumns: cnf.Available,
			})
		}
		var nm *geostore.NoMatchError
		if errors.As(err, &nm) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: fmt.Sprintf("Nenhum lote encontrado para o bairro %s", bairro),
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}

	fc := geojson.NewFeatureCollection()
	for _, p := range parcels {
		f := geojson.NewFeature(p.Geographic)
		f.ID = p.Index
		f.Properties = geojson.Properties{"index": p.Index}
		for k, v := range p.Attrs {
			f.Properties[k] = v
		}
		fc.Append(f)
	}

	slog.Info("neighborhood parcels served", "bairro", bairro, "parcels", len(parcels))
	return c.JSON(http.StatusOK, models.LotesResponse{
		Success:    true,
		Bairro:     bairro,
		TotalLotes: len(parcels),
		GeoJSON:    fc,
	})
}

func (h *Handler) UnirLotes(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return notLoaded(c)
	}
	var req models.UnifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Requisição inválida"})
	}
	if len(req.Indices) == 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Nenhum lote selecionado"})
	}

	parcels := make([]geostore.Parcel, 0, len(req.Indices))
	for _, idx := range req.Indices {
		p, err := store.Get(idx)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Índice de lote inválido"})
		}
		parcels = append(parcels, p)
	}

	analyzer := terrain.NewAnalyzer(parcels)
	unified, err := analyzer.Unify()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
	info := analyzer.Summary()

	slog.Info("parcels unified", "parcels", len(parcels), "area_m2", info.AreaTotalM2)
	return c.JSON(http.StatusOK, models.UnifyResponse{
		Success:          true,
		TotalLotesUnidos: len(parcels),
		Geometry:         geojson.NewGeometry(unified),
		Info:             info,
		Potencial:        buildPotencial(info),
	})
}

func (h *Handler) InfoLote(c echo.Context) error {
	store := h.store.Load()
	if store == nil {
		return notLoaded(c)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Índice de lote inválido"})
	}
	p, err := store.Get(index)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Índice de lote inválido"})
	}

	info := terrain.NewAnalyzer([]geostore.Parcel{p}).Summary()
	return c.JSON(http.StatusOK, models.InfoResponse{
		Success:   true,
		Info:      info,
		Potencial: buildPotencial(info),
	})
}

// buildPotencial derives the buildable estimate from a computed summary. A
// summary that failed (Erro set) yields no estimate.
func buildPotencial(info models.Summary) *models.Potencial {
	if info.Erro != "" {
		return nil
	}
	zc := terrain.NewZoningCalculator(info.AreaTotalM2, info.Zoneamento)
	p := &models.Potencial{}
	if v, ok := zc.BuildableArea(); ok {
		p.AreaEdificavelM2 = &v
	}
	if v, ok := zc.FootprintArea(); ok {
		p.ProjecaoSoloM2 = &v
	}
	return p
}
