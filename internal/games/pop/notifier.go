package pop

// Notifier receives fire-and-forget game events, typically for sound.
// Implementations must not block.
type Notifier interface {
	// OnPop fires once per pop in a stack; stackIndex counts from 0.
	OnPop(stackIndex int)
	OnStreakBreak()
	OnMilestone(value int)
	// OnSpeedBonus replaces OnPop for every pop of a rapid hit.
	OnSpeedBonus()
	OnCountdownTick(secondsLeft int)
	OnGameOver()
}

// NopNotifier ignores every event.
type NopNotifier struct{}

func (NopNotifier) OnPop(int)           {}
func (NopNotifier) OnStreakBreak()      {}
func (NopNotifier) OnMilestone(int)     {}
func (NopNotifier) OnSpeedBonus()       {}
func (NopNotifier) OnCountdownTick(int) {}
func (NopNotifier) OnGameOver()         {}
