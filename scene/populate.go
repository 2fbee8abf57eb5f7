package scene

import (
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/starfield"
)

// Populate validates cfg and spawns it into storage: one entity per body,
// moon and orbit outline, plus the Sky singleton generated from rng.
// Nothing is spawned when cfg is invalid.
func Populate(storage *ecs.Storage, cfg Config, rng *rand.Rand, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ids := make(map[string]ecs.EntityId, len(cfg.Bodies)+1)
	for _, spec := range append([]BodySpec{cfg.Sun}, cfg.Bodies...) {
		body, _ := orbit.NewBody(spec.Distance, spec.Speed, spec.Inclination)
		color, _ := parseColor(spec.Color)

		ids[spec.Name] = storage.Spawn(
			Name(spec.Name),
			Appearance{Kind: spec.Kind, Radius: spec.Radius, Color: color},
			*body,
		)
		logger.Debug("spawned body", "name", spec.Name, "kind", spec.Kind, "distance", spec.Distance)
	}

	for _, spec := range cfg.Moons {
		parentId := ids[spec.Parent]
		parent := ecs.ReadComponent[orbit.Body](storage, parentId)

		moon, _ := orbit.NewMoon(spec.Distance, spec.Speed, parent)
		world := moon.World()
		moon.Parent = nil
		color, _ := parseColor(spec.Color)

		storage.Spawn(
			Name(spec.Name),
			Appearance{Kind: KindMoon, Radius: spec.Radius, Color: color},
			Satellite{Moon: *moon, Parent: storage.CreateEntityRef(parentId), World: world},
		)
		logger.Debug("spawned moon", "name", spec.Name, "parent", spec.Parent)
	}

	for _, spec := range cfg.Paths {
		storage.Spawn(
			Name(spec.Name),
			Path{Points: orbit.EllipsePath(spec.Distance, spec.Distance, orbit.PathSegments, spec.Tilt)},
		)
	}

	field := starfield.Generate(rng, cfg.Starfield)
	storage.AddSingleton(Sky{Field: field})

	logger.Info("scene populated",
		"bodies", len(cfg.Bodies)+1,
		"moons", len(cfg.Moons),
		"paths", len(cfg.Paths),
		"stars", field.Len(),
	)
	return nil
}
