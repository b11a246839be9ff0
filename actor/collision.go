package actor

import "github.com/lixenwraith/tuzbolin/physics"

// BounceCallback wraps a contact response and reports ball-penguin contacts to the ball
func BounceCallback(stage Stage, response physics.NearCallback) physics.NearCallback {
	return func(g1, g2 *physics.Geom) {
		if response != nil {
			response(g1, g2)
		}
		ball, bar := ballAndBar(g1, g2)
		if ball == nil || bar == nil {
			return
		}
		if len(physics.Collide(g1, g2)) > 0 {
			ball.Bounce(stage.Now())
		}
	}
}

func ballAndBar(g1, g2 *physics.Geom) (*Ball, *PenguinBar) {
	ball, _ := g1.Owner.(*Ball)
	if ball == nil {
		ball, _ = g2.Owner.(*Ball)
	}
	bar, _ := g1.Owner.(*PenguinBar)
	if bar == nil {
		bar, _ = g2.Owner.(*PenguinBar)
	}
	return ball, bar
}
