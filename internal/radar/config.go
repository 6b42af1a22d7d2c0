package radar

import (
	"fmt"

	"github.com/spf13/viper"
)

// boundsEntry is one override record in the calibration file. Either the
// min/max rectangle or the official-radar pos/scale form may be given; the
// rectangle wins when both are present.
type boundsEntry struct {
	MinX *float64 `mapstructure:"min_x"`
	MaxX *float64 `mapstructure:"max_x"`
	MinY *float64 `mapstructure:"min_y"`
	MaxY *float64 `mapstructure:"max_y"`

	PosX  *float64 `mapstructure:"pos_x"`
	PosY  *float64 `mapstructure:"pos_y"`
	Scale *float64 `mapstructure:"scale"`
}

// LoadOverrides reads a calibration file and returns a new table: the builtin
// records with the file's entries layered on top. The builtin table is never
// touched, so tables handed out earlier keep their values.
//
// File format (yaml):
//
//	maps:
//	  de_dust2:
//	    min_x: -2476
//	    max_x: 1894
//	    min_y: -668
//	    max_y: 3239
//	  de_vertigo:
//	    pos_x: -3168
//	    pos_y: 1762
//	    scale: 4.0
func LoadOverrides(path string) (Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	entries := make(map[string]boundsEntry)
	if err := v.UnmarshalKey("maps", &entries); err != nil {
		return nil, fmt.Errorf("parse calibration file: %w", err)
	}

	table := Builtin()
	for name, e := range entries {
		switch {
		case e.MinX != nil && e.MaxX != nil && e.MinY != nil && e.MaxY != nil:
			b := Bounds{MinX: *e.MinX, MaxX: *e.MaxX, MinY: *e.MinY, MaxY: *e.MaxY}
			if b.Width() <= 0 || b.Height() <= 0 {
				return nil, fmt.Errorf("calibration for %q has an empty rectangle (min must be below max)", name)
			}
			table[name] = b
		case e.PosX != nil && e.PosY != nil && e.Scale != nil:
			if *e.Scale <= 0 {
				return nil, fmt.Errorf("calibration for %q needs a positive scale, got %v", name, *e.Scale)
			}
			table[name] = BoundsFromRadar(RadarMeta{PosX: *e.PosX, PosY: *e.PosY, Scale: *e.Scale}, 1024)
		default:
			return nil, fmt.Errorf("calibration for %q needs min/max or pos/scale fields", name)
		}
	}
	return table, nil
}
