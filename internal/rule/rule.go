// Package rule holds the structured form of a shutter schedule rule and the
// codecs that move it to and from its compact wire fields.
package rule

// ScheduleRule is a fully decoded rule. ID is empty until the command service
// has accepted the rule for the first time.
type ScheduleRule struct {
	ID            string
	Active        bool
	TimeTrigger   TimeTrigger
	RepeatPattern RepeatPattern
	Action        Action
	TargetIDs     []string
}

type ShutterRef struct {
	ID          string
	DisplayName string
}

// TimeTrigger is either Clock or Astro.
type TimeTrigger interface {
	isTimeTrigger()
}

// a fixed wall clock time, usually "HH:MM"
type Clock struct {
	Value string
}

type Anchor int

const (
	Sunrise Anchor = iota
	Sunset
)

func (a Anchor) String() string {
	if a == Sunset {
		return "sunset"
	}
	return "sunrise"
}

// a time relative to sunrise or sunset
type Astro struct {
	Anchor        Anchor
	OffsetMinutes int
}

func (Clock) isTimeTrigger() {}
func (Astro) isTimeTrigger() {}

// RepeatPattern is either Once or Weekdays.
type RepeatPattern interface {
	isRepeatPattern()
}

type Once struct {
	Date string
}

type Weekdays struct {
	Days DaySet
}

func (Once) isRepeatPattern()     {}
func (Weekdays) isRepeatPattern() {}

// Action is Up, Down or Stop.
type Action interface {
	isAction()
}

type Up struct {
	Percent int
}

type Down struct {
	Percent int
}

// Stop sends the shutter to its intermediate ("my") position.
type Stop struct{}

func (Up) isAction()   {}
func (Down) isAction() {}
func (Stop) isAction() {}
