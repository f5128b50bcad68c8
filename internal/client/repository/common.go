package repository

import (
	"fmt"
	"time"
)

// sqlite stores timestamps in whichever of these layouts the writer used.
var timeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15:04:05.999999-07:00",
}

func parseTime(t *string) (*time.Time, error) {
	if t == nil || *t == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if ti, err := time.Parse(layout, *t); err == nil {
			return &ti, nil
		}
	}
	return nil, fmt.Errorf("unparsable timestamp %q", *t)
}
