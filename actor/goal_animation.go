package actor

import (
	"log"
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// GoalAnimation grows a banner at the display center, shrinks it at the end
// of its lifetime and then brings a new ball into play
type GoalAnimation struct {
	stage   Stage
	advance float64
	scale   float64
	shown   float64
	expires time.Time
	alive   bool
}

func NewGoalAnimation(stage Stage) *GoalAnimation {
	return NewGoalAnimationWith(stage, parameter.GoalAnimationSteps, parameter.GoalAnimationTTL)
}

// NewGoalAnimationWith sets the growth steps and lifetime, floored at 1 step and 500ms
func NewGoalAnimationWith(stage Stage, steps int, ttl time.Duration) *GoalAnimation {
	steps = max(steps, 1)
	ttl = max(ttl, parameter.GoalAnimationMinTTL)
	return &GoalAnimation{
		stage:   stage,
		advance: 1 / float64(steps),
		expires: stage.Now().Add(ttl),
		alive:   true,
	}
}

func (g *GoalAnimation) Update(time.Duration) {
	if !g.alive {
		return
	}
	if g.scale <= 1 {
		g.shown = g.scale
		g.scale += g.advance
	}

	now := g.stage.Now()
	if now.After(g.expires.Add(-parameter.GoalAnimationShrink)) {
		g.scale *= 0.5
		g.shown = g.scale
	}

	if now.After(g.expires) {
		g.alive = false
		if _, err := SpawnExtraBall(g.stage); err != nil {
			log.Printf("extra ball: %v", err)
		}
	}
}

// Scale is the banner scale drawn this frame
func (g *GoalAnimation) Scale() float64 { return g.shown }
func (g *GoalAnimation) Alive() bool    { return g.alive }

func (g *GoalAnimation) Bounds() vmath.Rect {
	return vmath.RectFromCenter(parameter.DisplayWidth/2, parameter.DisplayHeight/2,
		parameter.GoalBannerWidth*g.shown, parameter.GoalBannerHeight*g.shown)
}

func (g *GoalAnimation) Visual() Visual {
	return Visual{Kind: VisualBanner, Text: "GOAL", Scale: g.shown}
}
