package models

import "time"

// TimeSlots is the fixed set of one-hour roll-call slots in a school day,
// with the midday gap. The literal labels are part of the on-disk format and
// must not change.
var TimeSlots = []string{
	"8h30-9h30",
	"9h30-10h30",
	"10h30-11h30",
	"11h30-12h30",
	"13h30-14h30",
	"14h30-15h30",
	"15h30-16h30",
	"16h30-17h30",
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// RosterEntry is one student of a class roster, as derived from the uploaded
// spreadsheet by the (out of scope) extraction collaborator.
type RosterEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AbsenceRecord is persisted evidence that a student was marked absent in one
// (class, date, time-slot) roll call. Presence is implicit: present students
// produce no record.
type AbsenceRecord struct {
	StudentCode string    `json:"student_code"`
	StudentName string    `json:"student_name"`
	Date        time.Time `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	ClassName   string    `json:"class_name"`
}
