package constants

import "time"

// delay between consecutive radio transmissions
const ShutterCommandSpacing = 5 * time.Second

const DefaultSendRepeat = 1

// rule state
const RuleActive = "active"
const RulePaused = "paused"
const RuleDeleted = "deleted"

// time trigger types
const TimeTypeClock = "clock"
const TimeTypeAstro = "astro"

// repeat pattern types
const RepeatTypeOnce = "once"
const RepeatTypeWeekday = "weekday"

// format of a once-only repeat date
const OnceDateFormat = "2006/01/02"

const ClockFormat = "15:04"

// command service
const CommandAddSchedule = "addSchedule"
const CommandEditSchedule = "editSchedule"
const CommandDeleteSchedule = "deleteSchedule"
const CommandGetConfig = "getConfig"
const CommandUp = "up"
const CommandDown = "down"
const CommandStop = "stop"

const StatusOK = "OK"
const StatusError = "ERROR"

// event stream
const EventStreamRules = "rules"

const ChangeTypeAdded = "added"
const ChangeTypeEdited = "edited"
const ChangeTypeDeleted = "deleted"

// nats subject for commands sent to a shutter, formatted with the shutter id
const ShutterCommandSubject = "shutters.%s.cmd"
