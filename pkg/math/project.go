package math

// Viewport is an output region in window coordinates, as passed to glViewport.
type Viewport struct {
	X, Y, W, H int
}

// Project maps an object-space point to window coordinates through
// modelView and projection, matching gluProject. It returns false when the
// point has a zero clip-space w.
func Project(obj Vec3, modelView, projection Mat4, vp Viewport) (Vec3, bool) {
	eye := modelView.MulVec4(Vec4{obj.X, obj.Y, obj.Z, 1})
	clip := projection.MulVec4(eye)
	if clip[3] == 0 {
		return Vec3{}, false
	}

	nx := clip[0]/clip[3]*0.5 + 0.5
	ny := clip[1]/clip[3]*0.5 + 0.5
	nz := clip[2]/clip[3]*0.5 + 0.5

	return Vec3{
		X: nx*float32(vp.W) + float32(vp.X),
		Y: ny*float32(vp.H) + float32(vp.Y),
		Z: nz,
	}, true
}
