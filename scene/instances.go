package scene

import (
	"math/rand/v2"

	"github.com/oliverbestmann/cubes/glm"
)

type GridOptions struct {
	// number of instances per row and column
	PerRow int

	// distance between two neighbouring instances on the x and z axis
	Spacing float32

	// rotation speed of every instance in degrees per frame
	RotationSpeed float32
}

func DefaultGridOptions() GridOptions {
	return GridOptions{
		PerRow:        10,
		Spacing:       2.0,
		RotationSpeed: 20,
	}
}

// Displacement is subtracted from each grid position to center the grid.
func (o GridOptions) Displacement() glm.Vec3f {
	offset := float32(o.PerRow) * o.Spacing * 0.5
	return glm.Vec3f{offset, 0, offset}
}

type Instance struct {
	Position glm.Vec3f
	Rotation glm.Quatf

	// unit axis the instance spins around
	Axis glm.Vec3f

	// degrees per frame
	Speed float32
}

// Delta returns the rotation applied to the instance on each update.
func (i Instance) Delta() glm.Quatf {
	return glm.QuaternionFromAxisAngle(i.Axis, glm.DegToRad(i.Speed))
}

func (i Instance) Model() glm.Mat4f {
	x, y, z := i.Position.XYZ()
	return glm.TranslationMat4(x, y, z).Mul(glm.Mat4FromQuaternion(i.Rotation))
}

// InstanceRaw is the per instance input of the shader, a column major
// model matrix split over four vertex attributes.
type InstanceRaw struct {
	Model glm.Mat4f
}

// InstanceTable owns the transforms of all instances. The number of
// instances never changes after construction.
type InstanceTable struct {
	instances []Instance
	raw       []InstanceRaw
}

// NewInstanceTable arranges PerRow x PerRow instances on a grid. Rotation axes
// are drawn from source; a nil source uses a randomly seeded one.
func NewInstanceTable(opts GridOptions, source rand.Source) *InstanceTable {
	if source == nil {
		source = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	rng := rand.New(source)

	displacement := opts.Displacement()

	perRow := max(opts.PerRow, 0)

	count := perRow * perRow
	table := &InstanceTable{
		instances: make([]Instance, 0, count),
		raw:       make([]InstanceRaw, count),
	}

	for z := range perRow {
		for x := range perRow {
			position := glm.Vec3f{
				float32(x) * opts.Spacing,
				0,
				float32(z) * opts.Spacing,
			}.Sub(displacement)

			rotation := glm.IdentityQuaternion[float32]()
			if !position.IsZero() {
				rotation = glm.QuaternionFromAxisAngle(position.Normalize(), glm.DegToRad[float32](45))
			}

			table.instances = append(table.instances, Instance{
				Position: position,
				Rotation: rotation,
				Axis:     randomAxis(rng),
				Speed:    opts.RotationSpeed,
			})
		}
	}

	table.updateRaw()

	return table
}

// Update advances the rotation of every instance by one frame. The delta is
// applied in world space, on the left of the accumulated rotation.
func (t *InstanceTable) Update() {
	for idx := range t.instances {
		instance := &t.instances[idx]
		instance.Rotation = instance.Delta().Mul(instance.Rotation).Normalize()
	}

	t.updateRaw()
}

func (t *InstanceTable) Len() int {
	return len(t.instances)
}

// Instances returns the instances. The slice must not be modified.
func (t *InstanceTable) Instances() []Instance {
	return t.instances
}

// Raw returns the model matrices of all instances in instance order. The
// returned slice is reused by the next call to Update.
func (t *InstanceTable) Raw() []InstanceRaw {
	return t.raw
}

func (t *InstanceTable) updateRaw() {
	for idx, instance := range t.instances {
		t.raw[idx] = InstanceRaw{Model: instance.Model()}
	}
}

func randomAxis(rng *rand.Rand) glm.Vec3f {
	for {
		axis := glm.Vec3f{
			randf(rng, -1, 1),
			randf(rng, -1, 1),
			randf(rng, -1, 1),
		}

		// reject tiny vectors, normalizing them is numerically unstable
		if axis.Length() > 1e-3 {
			return axis.Normalize()
		}
	}
}

func randf(rng *rand.Rand, lower, upper float32) float32 {
	return lower + rng.Float32()*(upper-lower)
}
