// Stress test comparing the grid broad phase against all-pairs testing
package main

import (
	"fmt"
	"math/rand"
	"time"

	"collide3d/internal/collision"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// Test various shape counts
	testCounts := []int{100, 500, 1000, 2000, 5000}

	for _, count := range testCounts {
		testBroadPhase(count)
	}
}

func populate(w *physics.World, count int) []*collision.Shape {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	shapes := make([]*collision.Shape, count)
	for i := range shapes {
		pos := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		d := 1 + rng.Float32() // 1 to 2 across
		size := rl.Vector3{X: d, Y: d, Z: d}

		var rotation rl.Vector3
		kind := collision.KindBall
		if i%2 == 1 {
			kind = collision.KindBox
			if i%4 == 3 {
				rotation = rl.Vector3{X: rng.Float32() * 90, Y: rng.Float32() * 90}
			}
		}

		s := w.AddShape(kind, nil)
		s.Transform(pos, rotation, rl.Vector3{X: 1, Y: 1, Z: 1}, size)
		shapes[i] = s
	}
	return shapes
}

func testBroadPhase(count int) {
	w := physics.NewWorld(physics.DefaultOptions())
	shapes := populate(w, count)

	// Warm up: the first tick enters every contact
	w.Update()

	// Time grid broad phase
	gridStart := time.Now()
	const gridIterations = 10
	for i := 0; i < gridIterations; i++ {
		w.Update()
	}
	gridTime := time.Since(gridStart) / gridIterations
	st := w.Stats()

	// Time all pairs (naive O(n²))
	naiveStart := time.Now()
	const naiveIterations = 3
	var naivePairs int
	for iter := 0; iter < naiveIterations; iter++ {
		naivePairs = 0
		for i := 0; i < len(shapes); i++ {
			for j := i + 1; j < len(shapes); j++ {
				if collision.CheckIfOverlap(shapes[i], shapes[j]).Collided() {
					naivePairs++
				}
			}
		}
	}
	naiveTime := time.Since(naiveStart) / naiveIterations

	speedup := float64(naiveTime) / float64(gridTime)

	fmt.Printf("%5d shapes: grid %9v (%6d products, %6d checks, %5d collisions) | all pairs %10v (%5d pairs) | %.1fx\n",
		count, gridTime.Round(time.Microsecond), st.Products, st.Checks, st.Collisions,
		naiveTime.Round(time.Microsecond), naivePairs, speedup)
}
