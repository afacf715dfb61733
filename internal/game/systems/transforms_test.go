package systems

import (
	"testing"

	"github.com/frostbyte-gg/aurora/internal/engine/physics"
	"github.com/frostbyte-gg/aurora/internal/game/entity"
	"github.com/frostbyte-gg/aurora/pkg/math"
)

func TestSyncCopiesSimulatedPose(t *testing.T) {
	world := physics.NewWorld()
	// Deliberately off unit length; the sync must re-normalize.
	orientation := math.Quat{X: 0, Y: 0.6, Z: 0, W: 0.9}
	body := world.AddBody(physics.Body{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: orientation,
	})
	e := entity.New("crate").WithBody(body)

	// A stable simulation must produce the identical pose every tick.
	for tick := 0; tick < 4; tick++ {
		if n := SyncTransforms(world, []*entity.Entity{e}, nil); n != 1 {
			t.Fatalf("tick %d: synced %d entities", tick, n)
		}

		want := math.Vec3{X: 1, Y: 2, Z: 3}
		if e.Transform.Translation.Distance(want) > 1e-6 {
			t.Errorf("tick %d: translation = %v, want %v", tick, e.Transform.Translation, want)
		}
		if got := e.Transform.Rotation; !quatNear(got, orientation.Normalize()) {
			t.Errorf("tick %d: rotation = %v", tick, got)
		}
		if sq := quatLengthSq(e.Transform.Rotation); sq < 0.9999 || sq > 1.0001 {
			t.Errorf("tick %d: rotation not unit length, len² = %v", tick, sq)
		}
	}
}

func TestSyncSkipsEntitiesWithoutBody(t *testing.T) {
	world := physics.NewWorld()
	e := entity.New("static")
	e.Transform.Translation = math.Vec3{X: 9}

	if n := SyncTransforms(world, []*entity.Entity{e}, nil); n != 0 {
		t.Errorf("synced %d entities, want 0", n)
	}
	if e.Transform.Translation != (math.Vec3{X: 9}) {
		t.Errorf("bodiless entity was mutated: %v", e.Transform.Translation)
	}
}

func TestBadBodyHandleIsRecoverable(t *testing.T) {
	world := physics.NewWorld()
	good := world.AddBody(physics.Body{Position: math.Vec3{Z: 5}})

	broken := entity.New("broken").WithBody(physics.BodyHandle(42))
	healthy := entity.New("healthy").WithBody(good)

	if n := SyncTransforms(world, []*entity.Entity{broken, healthy}, nil); n != 1 {
		t.Errorf("synced %d entities, want 1", n)
	}
	if healthy.Transform.Translation != (math.Vec3{Z: 5}) {
		t.Error("healthy entity must still sync after a bad handle")
	}
}

func quatNear(a, b math.Quat) bool {
	d := a.Dot(b)
	if d < 0 {
		d = -d
	}
	return d > 0.9999
}

func quatLengthSq(q math.Quat) float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}
