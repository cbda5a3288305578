// internal/loader/loader.go
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fitnexus/internal/calendar"
)

// ScheduleLine is one session read from a class schedule.
type ScheduleLine struct {
	ClassType  string
	Instructor string
	Timeslot   string
	Location   string
}

// MemberLine is one member read from a member list.
type MemberLine struct {
	FirstName  string
	LastName   string
	DOB        calendar.Date
	Expiration calendar.Date
	Location   string
}

// ParseSchedule reads "CLASS INSTRUCTOR [TIMESLOT] LOCATION" lines.
// Blank lines are skipped.
func ParseSchedule(r io.Reader) ([]ScheduleLine, error) {
	var lines []ScheduleLine
	err := scan(r, func(n int, fields []string) error {
		switch len(fields) {
		case 3:
			lines = append(lines, ScheduleLine{ClassType: fields[0], Instructor: fields[1], Location: fields[2]})
		case 4:
			lines = append(lines, ScheduleLine{ClassType: fields[0], Instructor: fields[1], Timeslot: fields[2], Location: fields[3]})
		default:
			return fmt.Errorf("schedule line %d: expected 3 or 4 fields, got %d", n, len(fields))
		}
		return nil
	})
	return lines, err
}

// ParseMembers reads "FIRST LAST DOB EXPIRATION LOCATION" lines with
// dates in M/D/YYYY. Blank lines are skipped.
func ParseMembers(r io.Reader) ([]MemberLine, error) {
	var lines []MemberLine
	err := scan(r, func(n int, fields []string) error {
		if len(fields) != 5 {
			return fmt.Errorf("member line %d: expected 5 fields, got %d", n, len(fields))
		}
		dob, err := calendar.Parse(fields[2])
		if err != nil {
			return fmt.Errorf("member line %d: date of birth: %w", n, err)
		}
		expiration, err := calendar.Parse(fields[3])
		if err != nil {
			return fmt.Errorf("member line %d: expiration: %w", n, err)
		}
		lines = append(lines, MemberLine{
			FirstName:  fields[0],
			LastName:   fields[1],
			DOB:        dob,
			Expiration: expiration,
			Location:   fields[4],
		})
		return nil
	})
	return lines, err
}

func scan(r io.Reader, line func(n int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := line(n, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
