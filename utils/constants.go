package utils

// AvailabilityCachePrefix is the prefix for cached slot-query responses.
const AvailabilityCachePrefix = "avail:"

// CalendarCachePrefix is the prefix for cached calendar-restriction responses.
const CalendarCachePrefix = "cal:"
