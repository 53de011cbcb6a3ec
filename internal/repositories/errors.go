package repositories

import "errors"

// ErrHostelNotFound is returned when a student creation references a hostel
// that does not exist at transaction read time. Unlike a missing owner (which
// hostel creation self-heals), this is a hard error: a student must belong to
// a real hostel.
var ErrHostelNotFound = errors.New("hostel not found")

// ErrStudentNotFound is returned when a transactional balance update finds
// the student row gone, e.g. deleted concurrently with a billing run.
var ErrStudentNotFound = errors.New("student not found")
