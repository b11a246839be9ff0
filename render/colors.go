package render

// Palette
var (
	RgbBackground = RGB{26, 27, 38} // Tokyo Night background
	RgbField      = RGB{24, 92, 48}
	RgbFieldLine  = RGB{170, 210, 170}
	RgbGoal       = RGB{220, 220, 220}
	RgbBall       = RGB{255, 255, 255}
	RgbText       = RGB{255, 255, 255}
	RgbOverlayBg  = RGB{10, 10, 16}
	RgbBanner     = RGB{255, 215, 0}
	RgbBannerText = RGB{0, 0, 0}
	RgbSpectator  = RGB{200, 200, 230}
	RgbIRPoint    = RGB{255, 60, 60}
	RgbDebugText  = RGB{180, 180, 180}

	// RgbTeam is indexed by team: purple, orange
	RgbTeam = [2]RGB{
		{150, 70, 200},
		{255, 140, 0},
	}
)

// teamRod is the bar rod color of a team, a dimmed team color
func teamRod(team int) RGB {
	return RgbTeam[team&1].Scale(0.55)
}
