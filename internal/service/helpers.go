package service

import (
	"strconv"
	"strings"
	"time"
)

// EncodeHours serializes an hour list for storage, e.g. [9 13 18] -> "9,13,18".
func EncodeHours(hours []int) string {
	if len(hours) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, strconv.Itoa(h))
	}
	return strings.Join(parts, ",")
}

func DecodeHours(s string) []int {
	if s == "" {
		return nil
	}
	var hours []int
	for _, part := range strings.Split(s, ",") {
		h, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		hours = append(hours, h)
	}
	return hours
}

// FormatDisplayTime renders a slot time the way the preview cards show it.
func FormatDisplayTime(t time.Time) string {
	return t.Format("Mon, Jan 2 at 3:04 PM")
}
