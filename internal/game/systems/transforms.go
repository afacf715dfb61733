// Package systems holds the per-tick passes run between the physics step
// and frame submission.
package systems

import (
	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
)

// SyncTransforms copies the simulation's authoritative poses into the
// renderable transforms, once per tick after the physics step. Orientations
// are re-normalized on copy since integration drifts them off unit length.
//
// A failed body lookup is logged and that entity skipped for the tick; the
// pass continues so one bad handle cannot stall the rest of the scene.
// Returns the number of entities synced.
func SyncTransforms(world *physics.World, entities []*entity.Entity, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}

	synced := 0
	for _, e := range entities {
		if !e.HasBody {
			continue
		}
		body, err := world.Body(e.Body)
		if err != nil {
			log.Warn("skipping transform sync for entity",
				zap.String("entity", e.Name),
				zap.Error(err),
			)
			continue
		}
		e.Transform.Translation = body.Position
		e.Transform.Rotation = body.Rotation.Normalize()
		synced++
	}
	return synced
}
