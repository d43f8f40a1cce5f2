package geostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"

	"terrenos/internal/crs"
)

// GeometryColumn is the parquet column holding WKB-encoded parcel boundaries.
const GeometryColumn = "geometry"

// Load reads the parcel dataset from a parquet file. Geometries arrive as WKB
// in EPSG:31984; the loader keeps the projected geometry and derives the
// lon/lat one, so later measurements never round-trip through degrees.
//
// A missing or unreadable file returns an error, not a panic: callers keep
// running with a nil store and report the degraded state per request.
func Load(path string) (*Store, error) {
	start := time.Now()

	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	defer tbl.Release()

	store, err := fromTable(tbl)
	if err != nil {
		return nil, err
	}

	slog.Info("dataset loaded",
		"path", path,
		"parcels", store.Count(),
		"columns", store.Columns(),
		"took", time.Since(start))
	return store, nil
}

func fromTable(tbl arrow.Table) (*Store, error) {
	rows := int(tbl.NumRows())
	store := &Store{cols: make(map[string]*column)}

	var wkbBlobs [][]byte
	for i := 0; i < int(tbl.NumCols()); i++ {
		name := tbl.Schema().Field(i).Name
		chunks := tbl.Column(i).Data().Chunks()

		if name == GeometryColumn {
			blobs, err := binaryValues(chunks)
			if err != nil {
				return nil, err
			}
			wkbBlobs = blobs
			continue
		}

		col := &column{
			values: make([]string, 0, rows),
			valid:  make([]bool, 0, rows),
		}
		for _, chunk := range chunks {
			for j := 0; j < chunk.Len(); j++ {
				if chunk.IsNull(j) {
					col.values = append(col.values, "")
					col.valid = append(col.valid, false)
					continue
				}
				col.values = append(col.values, chunk.ValueStr(j))
				col.valid = append(col.valid, true)
			}
		}
		store.names = append(store.names, name)
		store.cols[name] = col
	}

	if wkbBlobs == nil {
		return nil, fmt.Errorf("dataset has no %q column", GeometryColumn)
	}

	store.projected = make([]orb.Geometry, len(wkbBlobs))
	store.geographic = make([]orb.Geometry, len(wkbBlobs))
	for i, blob := range wkbBlobs {
		g, err := wkb.Unmarshal(blob)
		if err != nil {
			return nil, fmt.Errorf("decode geometry at row %d: %w", i, err)
		}
		geo, err := crs.ToGeographic(g)
		if err != nil {
			return nil, fmt.Errorf("reproject geometry at row %d: %w", i, err)
		}
		store.projected[i] = g
		store.geographic[i] = geo
	}
	return store, nil
}

func binaryValues(chunks []arrow.Array) ([][]byte, error) {
	var out [][]byte
	for _, chunk := range chunks {
		switch arr := chunk.(type) {
		case *array.Binary:
			for j := 0; j < arr.Len(); j++ {
				out = append(out, arr.Value(j))
			}
		case *array.LargeBinary:
			for j := 0; j < arr.Len(); j++ {
				out = append(out, arr.Value(j))
			}
		default:
			return nil, fmt.Errorf("column %q is %s, expected binary WKB", GeometryColumn, chunk.DataType())
		}
	}
	return out, nil
}
