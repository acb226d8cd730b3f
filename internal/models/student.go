package models

import "strconv"

// Branch values accepted for students.
var BranchOptions = []string{"CS", "IS", "EC", "ME"}

type Student struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"size:120"`
	USN    string `gorm:"size:20;uniqueIndex"`
	Branch string `gorm:"size:5"`
	Sem    int
	Sec    string `gorm:"size:2"`
}

// ClassSection renders the class label this student belongs to, e.g. "CS - 6A".
func (s Student) ClassSection() string {
	return s.Branch + " - " + strconv.Itoa(s.Sem) + s.Sec
}
