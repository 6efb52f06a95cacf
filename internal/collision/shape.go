package collision

import (
	"fmt"
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LayerDefault is the group new shapes belong to.
const LayerDefault LayerMask = 1

// CollidingShapeRegistry is the persisted data for one touching pair, held by
// the shape that detected the touch.
type CollidingShapeRegistry struct {
	SolutionVector      SolutionVector
	FrictionCoefficient float32
	IsImpenetrable      bool
}

// Shape is one collidable volume. Geometry is derived from the declared size
// in Transform and is not mutated any other way.
type Shape struct {
	pool   *Pool
	handle Handle
	kind   Kind
	owner  Owner

	position rl.Vector3
	rotation rl.Vector3
	scale    rl.Vector3
	size     rl.Vector3
	volume   Volume
	rightBox AABB

	layers         LayerMask
	layersToIgnore LayerMask
	friction       float32

	enabled            bool
	checkForCollisions bool
	registerCollisions bool

	// colliding holds an entry for a key iff the last test against that
	// shape overlapped.
	colliding map[Handle]CollidingShapeRegistry
}

func newShape(p *Pool, h Handle, kind Kind, owner Owner) *Shape {
	s := &Shape{
		pool:               p,
		handle:             h,
		kind:               kind,
		owner:              owner,
		scale:              rl.Vector3{X: 1, Y: 1, Z: 1},
		layers:             LayerDefault,
		enabled:            true,
		checkForCollisions: true,
		registerCollisions: true,
		colliding:          make(map[Handle]CollidingShapeRegistry),
	}
	s.volume = newVolume(kind, s.position, s.rotation, s.scale, s.size)
	s.rightBox = s.volume.Bounds()
	return s
}

func (s *Shape) Handle() Handle { return s.handle }

func (s *Shape) Kind() Kind { return s.kind }

func (s *Shape) Owner() Owner { return s.owner }

func (s *Shape) Position() rl.Vector3 { return s.position }

func (s *Shape) Rotation() rl.Vector3 { return s.rotation }

func (s *Shape) Scale() rl.Vector3 { return s.scale }

func (s *Shape) Size() rl.Vector3 { return s.size }

func (s *Shape) Volume() Volume { return s.volume }

// RightBox is the enclosing box used for coarse rejection only.
func (s *Shape) RightBox() AABB { return s.rightBox }

func (s *Shape) Layers() LayerMask { return s.layers }

func (s *Shape) LayersToIgnore() LayerMask { return s.layersToIgnore }

func (s *Shape) FrictionCoefficient() float32 { return s.friction }

func (s *Shape) Enabled() bool { return s.enabled }

func (s *Shape) ChecksForCollisions() bool { return s.checkForCollisions }

func (s *Shape) RegistersCollisions() bool { return s.registerCollisions }

// Alive reports whether the shape has not been destroyed.
func (s *Shape) Alive() bool {
	return s.pool != nil && s.pool.Alive(s.handle)
}

// Setup assigns the filter masks. They apply from the next test on.
func (s *Shape) Setup(layers, layersToIgnore LayerMask) {
	s.layers = layers
	s.layersToIgnore = layersToIgnore
}

// Ignores reports whether the pair is filtered out by layer masks. The filter
// is symmetric.
func (s *Shape) Ignores(other *Shape) bool {
	return filtered(s.layers, s.layersToIgnore, other.layers, other.layersToIgnore)
}

// SetFrictionCoefficient sets the friction other shapes record when they
// touch this one.
func (s *Shape) SetFrictionCoefficient(f float32) {
	s.friction = f
}

// Transform recomputes the geometry and rightBox from a pose and declared
// size.
func (s *Shape) Transform(position, rotation, scale, size rl.Vector3) {
	s.position = position
	s.rotation = rotation
	s.scale = scale
	s.size = size
	s.volume = newVolume(s.kind, position, rotation, scale, size)
	s.rightBox = s.volume.Bounds()
}

// Sync pulls the pose from the owner.
func (s *Shape) Sync() {
	if s.owner == nil {
		return
	}
	rotation, scale := s.rotation, s.scale
	if o, ok := s.owner.(Oriented); ok {
		rotation, scale = o.Rotation(), o.Scale()
	}
	s.Transform(s.owner.Position(), rotation, scale, s.owner.Size())
}

func (s *Shape) RegisterCollisions(register bool) {
	s.registerCollisions = register
}

func (s *Shape) SetCheckForCollisions(check bool) {
	s.checkForCollisions = check
}

// Enable toggles participation. Disabling keeps the registry as it is; it is
// only cleared by later tests or Reset.
func (s *Shape) Enable(enabled bool) {
	s.enabled = enabled
}

// Reset clears the registry without exit events.
func (s *Shape) Reset() {
	clear(s.colliding)
}

func (s *Shape) mustBeAlive(op string) {
	if !s.Alive() {
		panic(fmt.Sprintf("collision: %s on destroyed shape %v", op, s.handle))
	}
}

func (s *Shape) mustBeCounterpart(op string, other *Shape) {
	if other == nil {
		panic(fmt.Sprintf("collision: %s with nil shape", op))
	}
	if other.pool != s.pool || !other.Alive() {
		panic(fmt.Sprintf("collision: %s with destroyed shape %v", op, other.handle))
	}
}

// TestForCollision runs the narrow phase against other as if this shape were
// moved by displacement and grown by sizeIncrement. Neither shape changes.
func (s *Shape) TestForCollision(other *Shape, displacement rl.Vector3, sizeIncrement float32) CollisionInformation {
	s.mustBeAlive("test")
	s.mustBeCounterpart("test", other)

	v := s.volume
	if displacement != (rl.Vector3{}) {
		v = v.translated(displacement)
	}
	if sizeIncrement != 0 {
		v = v.grown(sizeIncrement)
	}
	return checkVolumes(s.handle, v, other.handle, other.volume)
}

// Collides tests other and updates the registry entry for it. The returned
// information is the fresh test result; it is meaningful for enter and
// update. Both shapes must be alive.
func (s *Shape) Collides(other *Shape) (CollisionResult, CollisionInformation) {
	s.mustBeAlive("collides")
	s.mustBeCounterpart("collides", other)

	none := CollisionInformation{Shape: s.handle}
	if other == s || !s.enabled || !other.enabled {
		return NoCollision, none
	}
	if s.Ignores(other) {
		delete(s.colliding, other.handle)
		return NoCollision, none
	}

	entry, registered := s.colliding[other.handle]
	var sizeIncrement float32
	if registered && entry.IsImpenetrable {
		sizeIncrement = s.pool.ContactMargin
	}

	info := s.TestForCollision(other, rl.Vector3{}, sizeIncrement)
	result := classify(registered, info.Collided())

	switch result {
	case EnterCollision:
		if s.registerCollisions {
			s.colliding[other.handle] = CollidingShapeRegistry{
				SolutionVector:      info.SolutionVector,
				FrictionCoefficient: other.friction,
			}
		}
	case UpdateCollision:
		entry.SolutionVector = info.SolutionVector
		entry.FrictionCoefficient = other.friction
		s.colliding[other.handle] = entry
	case ExitCollision:
		delete(s.colliding, other.handle)
	}
	return result, info
}

// ResolveCollision moves the shape out of the counterpart by the solution
// vector, tells a Displacer owner to follow, and when registerCollidingShape
// is set records the counterpart as an impenetrable contact. Shapes that do
// not register collisions are only moved.
func (s *Shape) ResolveCollision(info CollisionInformation, registerCollidingShape bool) {
	s.mustBeAlive("resolve")
	if info.Shape != s.handle {
		panic(fmt.Sprintf("collision: resolving information of %v on shape %v", info.Shape, s.handle))
	}
	if !info.Collided() {
		return
	}
	other, ok := s.pool.Get(info.CollidingShape)
	if !ok {
		panic(fmt.Sprintf("collision: resolve with destroyed shape %v", info.CollidingShape))
	}

	if info.SolutionVector.Magnitude > 0 {
		offset := info.SolutionVector.Separation()
		s.Transform(rl.Vector3Add(s.position, offset), s.rotation, s.scale, s.size)
		if d, ok := s.owner.(Displacer); ok {
			d.Displace(offset)
		}
	}

	if registerCollidingShape && s.registerCollisions {
		s.colliding[other.handle] = CollidingShapeRegistry{
			SolutionVector:      info.SolutionVector,
			FrictionCoefficient: other.friction,
			IsImpenetrable:      true,
		}
	}
}

// CollidingFrictionCoefficient returns the highest friction among current
// contacts, or 0 with none.
func (s *Shape) CollidingFrictionCoefficient() float32 {
	var friction float32
	for h, entry := range s.colliding {
		if !s.pool.Alive(h) {
			continue
		}
		friction = max(friction, entry.FrictionCoefficient)
	}
	return friction
}

// CanMoveTowards reports whether moving by displacement (grown by
// sizeIncrement) stays clear of every registered contact that lies in the
// direction of motion. The registry is not modified.
func (s *Shape) CanMoveTowards(displacement rl.Vector3, sizeIncrement float32) bool {
	if rl.Vector3Length(displacement) < minAxisLength {
		return true
	}
	direction := rl.Vector3Normalize(displacement)

	for h := range s.colliding {
		other, ok := s.pool.Get(h)
		if !ok || !other.enabled {
			continue
		}
		info := s.TestForCollision(other, displacement, sizeIncrement)
		if !info.Collided() {
			continue
		}
		if rl.Vector3DotProduct(info.SolutionVector.Direction, direction) > 0 {
			return false
		}
	}
	return true
}

// CollidingShapes returns the handles in the registry in ascending order.
func (s *Shape) CollidingShapes() []Handle {
	out := make([]Handle, 0, len(s.colliding))
	for h := range s.colliding {
		if s.pool.Alive(h) {
			out = append(out, h)
		}
	}
	slices.Sort(out)
	return out
}

// CollidingShape returns the registry entry for h.
func (s *Shape) CollidingShape(h Handle) (CollidingShapeRegistry, bool) {
	if !s.pool.Alive(h) {
		return CollidingShapeRegistry{}, false
	}
	entry, ok := s.colliding[h]
	return entry, ok
}

// IsCollidingWith reports whether other has a registry entry.
func (s *Shape) IsCollidingWith(other *Shape) bool {
	_, ok := s.CollidingShape(other.handle)
	return ok
}

// ImpenetrableCount returns how many current contacts were resolved as
// impenetrable.
func (s *Shape) ImpenetrableCount() int {
	n := 0
	for h, entry := range s.colliding {
		if entry.IsImpenetrable && s.pool.Alive(h) {
			n++
		}
	}
	return n
}

func (s *Shape) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v %v pos(%.2f, %.2f, %.2f)", s.kind, s.handle, s.position.X, s.position.Y, s.position.Z)
	fmt.Fprintf(&b, " box[(%.2f, %.2f, %.2f) (%.2f, %.2f, %.2f)]",
		s.rightBox.Min.X, s.rightBox.Min.Y, s.rightBox.Min.Z,
		s.rightBox.Max.X, s.rightBox.Max.Y, s.rightBox.Max.Z)
	if ball, ok := s.volume.(Ball); ok {
		fmt.Fprintf(&b, " radius %.2f", ball.Radius)
	}
	fmt.Fprintf(&b, " layers %#x ignore %#x enabled=%t checking=%t", uint32(s.layers), uint32(s.layersToIgnore), s.enabled, s.checkForCollisions)
	fmt.Fprintf(&b, " contacts %d (impenetrable %d)", len(s.CollidingShapes()), s.ImpenetrableCount())
	return b.String()
}
