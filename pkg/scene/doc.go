// Package scene defines the serialization formats of the placement
// pipeline: the Scene input (canvas, anchor points, exclusion sectors) and
// the Layout output (placed label boxes with connector geometry), plus the
// Solve function that turns one into the other.
//
// Scenes and layouts are plain JSON documents. The same structs carry bson
// tags so the server can store them unmodified.
//
// # Usage
//
//	s, err := scene.ReadSceneFile("input.json")
//	if err != nil {
//	    return err
//	}
//	result, err := scene.Solve(s, nil, 0)
//	if err != nil {
//	    return err
//	}
//	return scene.WriteLayoutFile(result, "layout.json")
package scene
