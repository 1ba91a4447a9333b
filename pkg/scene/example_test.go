package scene_test

import (
	"fmt"

	"github.com/placardlabs/placard/pkg/geom"
	"github.com/placardlabs/placard/pkg/scene"
)

func ExampleSolve() {
	s := &scene.Scene{
		Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Points: []scene.Point{
			{ID: "station", X: 0, Y: 0, Label: "Central Station"},
		},
	}

	result, _ := scene.Solve(s, nil, 0)
	l := result.Label("station")
	fmt.Println("text:", l.Text)
	fmt.Printf("box center: (%.2f, %.2f)\n", l.Box.Center().X, l.Box.Center().Y)
	fmt.Println("direction:", l.Direction)
	// Output:
	// text: Central Station
	// box center: (1.35, 0.40)
	// direction: 0
}

func ExampleScene_Validate() {
	s := &scene.Scene{
		Canvas: geom.Box{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10},
		Points: []scene.Point{
			{ID: "a", X: 1, Y: 1},
			{ID: "a", X: 2, Y: 2},
		},
	}
	err := s.Validate()
	fmt.Println("valid:", err == nil)
	// Output:
	// valid: false
}
