// Package projection turns small 3D molecular geometries into depth-ordered
// 2D drawing lists.
//
// # Pipeline
//
// A [Shape] holds atom positions tagged by [Role]. A [Rotation] (pitch and yaw
// in degrees) is applied yaw first, then pitch, using mgl64 rotation
// matrices. [Project] returns atoms sorted back to front with radius and
// opacity scaled by depth; [Connect] returns the bonds to draw.
//
// # Interaction
//
// A [Viewer] owns the rotation of one session. While the pointer is not
// dragging, every [Viewer.Tick] advances yaw by a fixed step.
package projection
