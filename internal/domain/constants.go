package domain

// Default schedule configuration values
const (
	DefaultBusinessStartHour   = 9
	DefaultBusinessEndHour     = 17
	DefaultSlotDurationMinutes = 30
	DefaultTimezone            = "UTC"
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	MaxNameLength   = 255
	MaxEmailLength  = 254
	MaxPhoneLength  = 50
	MaxReasonLength = 200
)

// DaysPerWeek is the schedule page length: page = week offset from the current one
const DaysPerWeek = 7
