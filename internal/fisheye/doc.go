// Package fisheye owns the camera model used to gate object placements.
//
// Responsibilities: camera pose (look-at construction and validation),
// perspective frustum, triple-sphere style fisheye intrinsics, the forward
// projection from world points to distorted viewport coordinates and the
// numerically inverted mapping used by render-time post-processing.
// Key types: Camera, Pose, Frustum, Intrinsics, Viewport.
//
// Camera space follows the OpenGL convention: +X right, +Y up, the camera
// looks down -Z. A point with camera-space Z >= 0 is behind the camera.
//
// Forward (Project) and inverse (Undistort) share one Intrinsics value on the
// Camera so the two directions cannot drift apart.
package fisheye
