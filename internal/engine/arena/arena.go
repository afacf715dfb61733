package arena

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/frostbyte-gg/aurora/internal/engine/gpu"
)

// Config holds the provisioned buffer capacities. Buffers are sized once at
// startup and never grown at runtime.
type Config struct {
	VertexCapacity   int
	IndexCapacity    int
	DrawCapacity     int
	MaterialCapacity int
	SkinCapacity     int
	BufferingDepth   int
}

// DefaultConfig returns the capacities used when none are configured.
func DefaultConfig() Config {
	return Config{
		VertexCapacity:   1_000_000,
		IndexCapacity:    1_000_000,
		DrawCapacity:     10_000,
		MaterialCapacity: 10_000,
		SkinCapacity:     100,
		BufferingDepth:   2,
	}
}

// Resources owns every GPU-resident buffer a frame is built from. It is
// owned exclusively by the frame-building thread for the duration of a tick;
// no concurrent mutation is permitted.
type Resources struct {
	backend gpu.Backend
	log     *zap.Logger
	depth   int
	slot    int

	// Per-frame linear buffers, rewound by BeginFrame.
	Vertices *Buffer[Vertex]
	Indices  *Buffer[uint32]
	DrawData *Buffer[DrawData]
	Indirect *Buffer[IndirectCommand]

	// Load-time stores with stable indices across frames.
	Materials *Buffer[Material]
	Skins     *Buffer[JointMatrices]

	// Shared per-frame uniform block.
	scene *Buffer[SceneData]

	// Stable-identity stores referenced by index from GPU-visible records.
	Meshes   *MeshArena
	Textures *TextureTable
}

// New allocates every device buffer and seeds the reserved default material
// into slot 0.
func New(backend gpu.Backend, cfg Config, log *zap.Logger) (*Resources, error) {
	if log == nil {
		log = zap.NewNop()
	}
	depth := cfg.BufferingDepth
	if depth < 1 {
		depth = 1
	}

	r := &Resources{
		backend:  backend,
		log:      log,
		depth:    depth,
		Meshes:   NewMeshArena(),
		Textures: NewTextureTable(backend),
	}

	var err error
	if r.Vertices, err = newBuffer(backend, "vertex", gpu.BufferVertex, -1, cfg.VertexCapacity, depth, VertexStride, encodeVertex); err != nil {
		return nil, err
	}
	if r.Indices, err = newBuffer(backend, "index", gpu.BufferIndex, -1, cfg.IndexCapacity, depth, 4, encodeIndex); err != nil {
		return nil, err
	}
	if r.DrawData, err = newBuffer(backend, "draw-data", gpu.BufferStorage, BindingDrawData, cfg.DrawCapacity, depth, DrawDataStride, encodeDrawData); err != nil {
		return nil, err
	}
	if r.Indirect, err = newBuffer(backend, "indirect", gpu.BufferIndirect, BindingIndirect, cfg.DrawCapacity, depth, IndirectStride, encodeIndirect); err != nil {
		return nil, err
	}
	if r.Materials, err = newBuffer(backend, "material", gpu.BufferStorage, BindingMaterials, cfg.MaterialCapacity, 1, MaterialStride, encodeMaterial); err != nil {
		return nil, err
	}
	if r.Skins, err = newBuffer(backend, "skins", gpu.BufferStorage, BindingSkins, cfg.SkinCapacity, 1, SkinStride, encodeSkin); err != nil {
		return nil, err
	}
	if r.scene, err = newBuffer(backend, "scene-data", gpu.BufferUniform, BindingSceneData, 1, depth, SceneDataStride, encodeSceneData); err != nil {
		return nil, err
	}

	// Slot 0 is reserved for the default material, available as NoMaterial.
	if _, err := r.Materials.Push(DefaultMaterial()); err != nil {
		return nil, fmt.Errorf("arena: seeding default material: %w", err)
	}

	log.Info("resource arena allocated",
		zap.Int("vertex_capacity", cfg.VertexCapacity),
		zap.Int("draw_capacity", cfg.DrawCapacity),
		zap.Int("skin_capacity", cfg.SkinCapacity),
		zap.Int("buffering_depth", depth),
	)
	return r, nil
}

// BeginFrame rewinds every per-frame buffer for the given frame index. The
// frame slot cycles round-robin through the buffering depth; waiting on the
// slot's fence guarantees the device finished reading the region before the
// CPU rewrites it.
func (r *Resources) BeginFrame(frameIndex uint64) {
	r.slot = int(frameIndex % uint64(r.depth))
	r.backend.WaitFrameSlot(r.slot)

	r.Vertices.Reset(r.slot)
	r.Indices.Reset(r.slot)
	r.DrawData.Reset(r.slot)
	r.Indirect.Reset(r.slot)
	r.scene.Reset(r.slot)
}

// PushDrawData appends one draw record and returns its slot index, which
// equals the GPU draw-call index dereferencing it in the shading stage.
func (r *Resources) PushDrawData(d DrawData) (int, error) {
	return r.DrawData.Push(d)
}

// PushIndirect appends the indirect command matching a previously pushed
// draw record. Indices are frame-local; EndFrame translates them into the
// active device region.
func (r *Resources) PushIndirect(cmd IndirectCommand) (int, error) {
	return r.Indirect.Push(cmd)
}

// WriteSceneData stages the frame's shared uniform block.
func (r *Resources) WriteSceneData(s SceneData) error {
	if r.scene.Len() > 0 {
		r.scene.Reset(r.slot)
	}
	_, err := r.scene.Push(s)
	return err
}

// AllocateMesh inserts mesh metadata into the stable arena. The handle is
// valid across frames without re-validation.
func (r *Resources) AllocateMesh(data MeshData) MeshHandle {
	return r.Meshes.Allocate(data)
}

// AllocateMaterial appends a material and returns its stable id.
func (r *Resources) AllocateMaterial(m Material) (uint32, error) {
	index, err := r.Materials.Push(m)
	if err != nil {
		return 0, err
	}
	return uint32(index), nil
}

// AllocateSkin appends a joint matrix set and returns its stable id.
func (r *Resources) AllocateSkin(s JointMatrices) (uint32, error) {
	index, err := r.Skins.Push(s)
	if err != nil {
		return 0, err
	}
	return uint32(index), nil
}

// EndFrame uploads the frame's buffers, submits the indirect draws and
// fences the frame slot. It returns the number of draws submitted.
func (r *Resources) EndFrame() (int, error) {
	// Geometry indices were staged frame-local; shift them into the
	// active region before upload.
	vertexBase := uint32(r.slot * r.Vertices.Cap())
	indexBase := uint32(r.slot * r.Indices.Cap())
	for i := range r.Indirect.elems {
		cmd := &r.Indirect.elems[i]
		cmd.BaseVertex += vertexBase
		cmd.FirstIndex += indexBase
	}

	for _, flush := range []func() error{
		r.Vertices.Flush,
		r.Indices.Flush,
		r.DrawData.Flush,
		r.Indirect.Flush,
		r.scene.Flush,
	} {
		if err := flush(); err != nil {
			return 0, err
		}
	}

	drawCount := r.Indirect.Len()
	if drawCount != r.DrawData.Len() {
		// A mismatch silently shades draws with the wrong records.
		r.log.Warn("draw record / indirect command count mismatch",
			zap.Int("draw_data", r.DrawData.Len()),
			zap.Int("indirect", drawCount),
		)
	}
	if err := r.backend.SubmitDraws(
		r.Vertices.ID(), r.Indices.ID(), r.Indirect.ID(),
		r.Indirect.RegionOffset(), drawCount,
	); err != nil {
		return 0, fmt.Errorf("arena: submitting draws: %w", err)
	}
	r.backend.SignalFrameSlot(r.slot)

	return drawCount, nil
}

// Slot returns the active frame slot, for diagnostics.
func (r *Resources) Slot() int {
	return r.slot
}
