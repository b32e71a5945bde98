package game

// HeadTracker exposes the position a camera centres on.
type HeadTracker interface {
	HeadPosition() Vec2
}

// Offset is the scene translation that puts head at the centre of a w x h
// viewport.
func Offset(head Vec2, w, h float64) Vec2 {
	return Vec2{X: w/2 - head.X, Y: h/2 - head.Y}
}

// CameraFollow recomputes Offset from its target every time it is asked.
type CameraFollow struct {
	target HeadTracker
}

func NewCameraFollow(target HeadTracker) CameraFollow {
	return CameraFollow{target: target}
}

func (c CameraFollow) Offset(w, h float64) Vec2 {
	return Offset(c.target.HeadPosition(), w, h)
}
