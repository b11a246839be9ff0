package actor

import (
	"fmt"
	"time"

	"github.com/lixenwraith/tuzbolin/parameter"
	"github.com/lixenwraith/tuzbolin/vmath"
)

// ScoreBoard shows the score above the field center, team 1 first
type ScoreBoard struct {
	stage  Stage
	score  [2]int
	text   string
	bounds vmath.Rect
}

func NewScoreBoard(stage Stage) *ScoreBoard {
	s := &ScoreBoard{stage: stage}
	s.render(stage.Score())
	return s
}

func (s *ScoreBoard) render(score [2]int) {
	s.score = score
	s.text = fmt.Sprintf("%d  -  %d", score[1], score[0])
	w := float64(len(s.text)) * parameter.CharWidth
	s.bounds = vmath.Rect{
		X: parameter.DisplayWidth/2 - w/2,
		Y: parameter.FieldTop - parameter.LineHeight,
		W: w,
		H: parameter.LineHeight,
	}
}

// Update re-renders only when the score changed
func (s *ScoreBoard) Update(time.Duration) {
	if sc := s.stage.Score(); sc != s.score {
		s.render(sc)
	}
}

func (s *ScoreBoard) Text() string       { return s.text }
func (s *ScoreBoard) Alive() bool        { return true }
func (s *ScoreBoard) Bounds() vmath.Rect { return s.bounds }
func (s *ScoreBoard) Visual() Visual     { return Visual{Kind: VisualText, Text: s.text, Scale: 1} }
