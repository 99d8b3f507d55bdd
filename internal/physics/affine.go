package physics

import "github.com/go-gl/mathgl/mgl64"

// Affine is a rigid 2D transform in homogeneous coordinates. It can only be
// built from rotations and translations, so every value preserves lengths
// and winding. The zero value is the identity.
type Affine struct {
	m   mgl64.Mat3
	set bool
}

func Identity() Affine {
	return Affine{m: mgl64.Ident3(), set: true}
}

func Translate(d Vec2) Affine {
	return Affine{m: mgl64.Translate2D(d.X, d.Y), set: true}
}

// Rotate rotates counter-clockwise about the origin by theta radians.
func Rotate(theta float64) Affine {
	return Affine{m: mgl64.HomogRotate2D(theta), set: true}
}

// RotateAbout rotates counter-clockwise about pivot by theta radians.
func RotateAbout(pivot Vec2, theta float64) Affine {
	return Translate(pivot.Invert()).Then(Rotate(theta)).Then(Translate(pivot))
}

func (a Affine) mat() mgl64.Mat3 {
	if !a.set {
		return mgl64.Ident3()
	}
	return a.m
}

// Then returns the transform that applies a first and b second.
func (a Affine) Then(b Affine) Affine {
	return Affine{m: b.mat().Mul3(a.mat()), set: true}
}

// Apply maps the point p through a.
func (a Affine) Apply(p Vec2) Vec2 {
	r := a.mat().Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Vec2{X: r[0], Y: r[1]}
}

// ApplyAll maps every point in ps, returning a new slice.
func (a Affine) ApplyAll(ps []Vec2) []Vec2 {
	out := make([]Vec2, len(ps))
	for i, p := range ps {
		out[i] = a.Apply(p)
	}
	return out
}
