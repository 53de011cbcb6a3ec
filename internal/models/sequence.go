package models

import "fmt"

// FormatHostelSeq renders a hostel sequence number as the two-digit
// zero-padded string used as the hostel's short id, e.g. 3 -> "03".
func FormatHostelSeq(n int) string {
	return fmt.Sprintf("%02d", n)
}

// FormatStudentSeq renders a student sequence number as the four-digit
// zero-padded string, e.g. 7 -> "0007".
func FormatStudentSeq(n int) string {
	return fmt.Sprintf("%04d", n)
}

// CombinedID composes the human-readable application/account number from the
// hostel and student sequence strings.
func CombinedID(hostelID, studentID string) string {
	return hostelID + "/" + studentID
}
