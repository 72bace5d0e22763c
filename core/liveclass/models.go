package liveclass

import (
	"time"

	"github.com/sciencewithkalana/portal/core"
)

// LiveClass is a scheduled session tied to a Class. Date and Time are the
// naive local strings the original schedule used ("2006-01-02" / "15:04");
// there is no timezone handling.
type LiveClass struct {
	ID          string `json:"id"`
	ClassID     string `json:"classId"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	MeetingLink string `json:"meetingLink,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// StartsAt parses Date+Time in local time. Unparseable schedules yield the
// zero time and sort first.
func (lc LiveClass) StartsAt() time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", lc.Date+" "+lc.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewLiveClass contains information needed to schedule a session.
type NewLiveClass struct {
	ClassID     string `json:"classId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Duration    string `json:"duration"`
	MeetingLink string `json:"meetingLink" validate:"omitempty,url"`
}

func (nl *NewLiveClass) Clean() {
	nl.Title = core.CleanString(nl.Title)
	nl.Date = core.CleanString(nl.Date)
	nl.Time = core.CleanString(nl.Time)
	nl.MeetingLink = core.CleanString(nl.MeetingLink)
}
