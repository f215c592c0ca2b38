package effects

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/polyfx/internal/config"
	"github.com/Faultbox/polyfx/pkg/polygon"
)

// ErrUnknownEffect is returned by New for names not in the catalogue.
var ErrUnknownEffect = errors.New("unknown effect")

type constructor func(cfg config.EffectsConfig) (polygon.Effect, error)

var registry = map[string]constructor{
	"airplane": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewAirplane(cfg.Airplane), nil
	},
	"domino": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewDomino(cfg.Domino)
	},
	"explode": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewExplode(cfg.Explode)
	},
	"fold": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewFold(cfg.Fold)
	},
	"glide": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewGlide(cfg.Glide), nil
	},
	"leafspread": func(config.EffectsConfig) (polygon.Effect, error) {
		return LeafSpread{}, nil
	},
	"razr": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewRazr(cfg.Razr)
	},
	"skewer": func(cfg config.EffectsConfig) (polygon.Effect, error) {
		return NewSkewer(cfg.Skewer)
	},
}

// New returns the effect registered under name, configured from cfg.
func New(name string, cfg config.EffectsConfig) (polygon.Effect, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEffect, name)
	}
	e, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", name, err)
	}
	return e, nil
}

// Names lists the registered effects in alphabetical order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
