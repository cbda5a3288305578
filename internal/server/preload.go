// internal/server/preload.go
package server

import (
	"context"
	"fmt"
	"log"
	"os"

	"fitnexus/internal/catalog"
	"fitnexus/internal/loader"
	"fitnexus/internal/membership"
)

// LoadSchedule adds every session in the schedule file. Lines the catalog
// rejects are logged and skipped. Returns the number of sessions added.
func (a *App) LoadSchedule(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open schedule: %w", err)
	}
	defer f.Close()

	lines, err := loader.ParseSchedule(f)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, line := range lines {
		_, err := a.Catalog.AddSession(ctx, catalog.AddSessionInput{
			ClassType:  line.ClassType,
			Instructor: line.Instructor,
			Timeslot:   line.Timeslot,
			Location:   line.Location,
		})
		if err != nil {
			log.Printf("Skipping schedule line %v: %v", line, err)
			continue
		}
		added++
	}
	return added, nil
}

// LoadMembers imports every member in the member list file as Standard.
// Rejected lines are logged and skipped. Returns the number imported.
func (a *App) LoadMembers(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open member list: %w", err)
	}
	defer f.Close()

	lines, err := loader.ParseMembers(f)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, line := range lines {
		_, err := a.Members.ImportMember(ctx, membership.ImportMemberInput{
			Identity:   membership.Identity{FirstName: line.FirstName, LastName: line.LastName, DOB: line.DOB},
			Expiration: line.Expiration,
			Location:   line.Location,
		})
		if err != nil {
			log.Printf("Skipping member %s %s: %v", line.FirstName, line.LastName, err)
			continue
		}
		added++
	}
	return added, nil
}
