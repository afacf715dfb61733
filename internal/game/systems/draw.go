package systems

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/engine/arena"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

// BuildDrawData appends one draw record and one indirect command per visible
// mesh into the frame's buffers. The draw record's slot index doubles as the
// GPU draw-call index, so records and commands are pushed strictly in step.
//
// A stale mesh handle is logged and skipped for the tick. Capacity errors
// are returned as-is: the scene exceeds its provisioned buffers and
// retrying cannot help. Returns the number of draws emitted.
func BuildDrawData(res *arena.Resources, entities []*entity.Entity, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	draws := 0
	for _, e := range entities {
		if !e.HasMesh {
			continue
		}
		mesh, ok := res.Meshes.Get(e.Mesh)
		if !ok {
			log.Warn("skipping entity with stale mesh handle",
				zap.String("entity", e.Name),
				zap.Uint32("index", e.Mesh.Index),
			)
			continue
		}

		baseVertex, err := res.Vertices.PushSlice(mesh.Vertices)
		if err != nil {
			return draws, fmt.Errorf("systems: staging vertices for %s: %w", e.Name, err)
		}
		firstIndex, err := res.Indices.PushSlice(mesh.Indices)
		if err != nil {
			return draws, fmt.Errorf("systems: staging indices for %s: %w", e.Name, err)
		}

		world := e.Transform.Matrix().Mul(mesh.Transform)
		slot, err := res.PushDrawData(arena.DrawData{
			Transform:        world,
			InverseTranspose: world.InverseTranspose(),
			BoundingSphere:   worldBoundingSphere(world, mesh.BoundingSphere, e.Transform.Scale),
			MaterialID:       mesh.MaterialID,
			SkinID:           mesh.SkinID,
		})
		if err != nil {
			return draws, fmt.Errorf("systems: pushing draw record for %s: %w", e.Name, err)
		}

		if _, err := res.PushIndirect(arena.IndirectCommand{
			Count:         uint32(len(mesh.Indices)),
			InstanceCount: 1,
			FirstIndex:    uint32(firstIndex),
			BaseVertex:    uint32(baseVertex),
			BaseInstance:  uint32(slot),
		}); err != nil {
			return draws, fmt.Errorf("systems: pushing indirect command for %s: %w", e.Name, err)
		}
		draws++
	}
	return draws, nil
}

// worldBoundingSphere moves a local bounding sphere into world space. The
// radius scales by the largest axis so the sphere stays conservative under
// non-uniform scale.
func worldBoundingSphere(world math.Mat4, sphere math.Vec4, scale math.Vec3) math.Vec4 {
	center := world.TransformPoint(sphere.XYZ())
	maxScale := scale.X
	if scale.Y > maxScale {
		maxScale = scale.Y
	}
	if scale.Z > maxScale {
		maxScale = scale.Z
	}
	return math.Vec3W(center, sphere[3]*maxScale)
}
