package models

// Class is a registered roster. Key is the stable filesystem identifier
// assigned by the class registry; it stays fixed even when another class
// would sanitize to the same directory name.
type Class struct {
	Name   string        `json:"name"`
	Key    string        `json:"key"`
	Roster []RosterEntry `json:"roster"`
}
