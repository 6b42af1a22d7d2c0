// Package radar maps world-space coordinates onto a calibrated 2D canvas.
package radar

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCalibrationMissing is returned (alongside the default bounds) when a map
// has no calibration record. It is never fatal.
var ErrCalibrationMissing = errors.New("no calibration for map")

// Bounds is an immutable per-map calibration rectangle in world units.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// RadarMeta is the alternate official-radar calibration form: the world
// coordinate of the radar image's top-left corner plus world units per pixel.
type RadarMeta struct {
	PosX  float64
	PosY  float64
	Scale float64
}

// BoundsFromRadar converts an official radar record to a bounds rectangle for
// a square radar image of the given pixel size (1024 for stock radars).
func BoundsFromRadar(meta RadarMeta, imageSize float64) Bounds {
	return Bounds{
		MinX: meta.PosX,
		MaxX: meta.PosX + meta.Scale*imageSize,
		MinY: meta.PosY - meta.Scale*imageSize,
		MaxY: meta.PosY,
	}
}

// DefaultBounds is the symmetric fallback rectangle used for unknown maps.
var DefaultBounds = Bounds{MinX: -2500, MaxX: 2500, MinY: -2500, MaxY: 2500}

// builtinBounds holds the shipped calibration table, keyed by lowercase map
// name. Values follow the SimpleRadar / official radar metadata.
var builtinBounds = map[string]Bounds{
	"de_ancient":  {MinX: -2953, MaxX: 1344, MinY: -1319, MaxY: 2164},
	"de_dust2":    {MinX: -2476, MaxX: 1894, MinY: -668, MaxY: 3239},
	"de_inferno":  {MinX: -2087, MaxX: 2048, MinY: -770, MaxY: 3870},
	"de_mirage":   {MinX: -3230, MaxX: 1770, MinY: -2738, MaxY: 1713},
	"de_nuke":     {MinX: -3453, MaxX: 2560, MinY: -2887, MaxY: 2887},
	"de_overpass": {MinX: -3168, MaxX: 1024, MinY: -1698, MaxY: 1762},
	"de_train":    {MinX: -2796, MaxX: 1332, MinY: -676, MaxY: 3328},
}

// Table is a map-name → Bounds calibration table. Tables are immutable after
// construction: recalibration produces a new table, never a mutation of a
// shared one.
type Table map[string]Bounds

// Builtin returns a fresh copy of the shipped calibration table.
func Builtin() Table {
	t := make(Table, len(builtinBounds))
	for k, v := range builtinBounds {
		t[k] = v
	}
	return t
}

// Lookup returns the bounds for a map name. Unknown maps fall back to
// DefaultBounds with a wrapped ErrCalibrationMissing the caller may log.
func (t Table) Lookup(mapName string) (Bounds, error) {
	name := strings.ToLower(strings.TrimSpace(mapName))
	if b, ok := t[name]; ok {
		return b, nil
	}
	return DefaultBounds, fmt.Errorf("%w: %q", ErrCalibrationMissing, mapName)
}

// Names returns the calibrated map names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
