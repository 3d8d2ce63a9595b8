package utils

import "time"

func TimeToTimestamp(t time.Time) int64 {
	return t.Unix()
}

func TimestampToTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
