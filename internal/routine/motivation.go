package routine

import (
	"fmt"
	"math/rand"
	"strings"
)

var (
	motivationStreakHigh = []string{
		"🔥 %d days in a row! The routine is getting into your bones!",
		"💪 Day %d! This is what real skill looks like!",
	}
	motivationStreakStart = []string{
		"👊 Day %d! Great start!",
		"🌱 The habit is growing!",
	}
	motivationLowMode = []string{
		"🌿 10% is ten times more than 0%!",
		"☘️ Low-stimulus still counts as showing up!",
	}
	motivationDefault = []string{
		"📚 You sat down! That's already 50% success!",
		"🎯 Showing up is the skill!",
		"💡 Just sit down and the study time grows on its own!",
	}
)

// Motivation picks a message for the current streak and mode.
func Motivation(streak int, mode Mode, r *rand.Rand) string {
	switch {
	case mode == ModeLow:
		return pick(motivationLowMode, r)
	case streak >= 7:
		return withStreak(pick(motivationStreakHigh, r), streak)
	case streak >= 2:
		return withStreak(pick(motivationStreakStart, r), streak)
	}
	return pick(motivationDefault, r)
}

func pick(pool []string, r *rand.Rand) string {
	return pool[r.Intn(len(pool))]
}

func withStreak(msg string, streak int) string {
	if strings.Contains(msg, "%d") {
		return fmt.Sprintf(msg, streak)
	}
	return msg
}
