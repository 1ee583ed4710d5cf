package value

import (
	"fmt"
	"time"

	"github.com/focusguard/core/log"
)

// time

type Time time.Time

func NewTime(p *time.Time, val time.Time) *Time {
	*p = val

	return (*Time)(p)
}

func (u *Time) Set(val string) error {
	v, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return err
	}
	*u = Time(v)
	return nil
}

func (u *Time) String() string {
	v := time.Time(*u)
	return v.Format(time.RFC3339)
}

func (u *Time) Validate() error {
	return nil
}

func (u *Time) IsEmpty() bool {
	v := time.Time(*u)
	return v.IsZero()
}

// log level

type LogLevel string

func NewLogLevel(p *string, val string) *LogLevel {
	*p = val

	return (*LogLevel)(p)
}

func (l *LogLevel) Set(val string) error {
	*l = LogLevel(val)
	return nil
}

func (l *LogLevel) String() string {
	return string(*l)
}

func (l *LogLevel) Validate() error {
	if _, ok := log.ParseLevel(string(*l)); !ok {
		return fmt.Errorf("unknown log level '%s', use one of silent, error, warn, info, debug", string(*l))
	}

	return nil
}

func (l *LogLevel) IsEmpty() bool {
	return len(string(*l)) == 0
}

// log format

type LogFormat string

func NewLogFormat(p *string, val string) *LogFormat {
	*p = val

	return (*LogFormat)(p)
}

func (l *LogFormat) Set(val string) error {
	*l = LogFormat(val)
	return nil
}

func (l *LogFormat) String() string {
	return string(*l)
}

func (l *LogFormat) Validate() error {
	switch string(*l) {
	case "console", "json":
		return nil
	}

	return fmt.Errorf("unknown log format '%s', use one of console, json", string(*l))
}

func (l *LogFormat) IsEmpty() bool {
	return len(string(*l)) == 0
}
