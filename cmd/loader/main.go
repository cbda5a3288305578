// cmd/loader/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"fitnexus/internal/clients"
	"fitnexus/internal/config"
	"fitnexus/internal/loader"
)

func main() {
	var cfg config.Loader
	if err := config.ParseEnv(&cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SchedulePath == "" && cfg.MembersPath == "" {
		log.Fatal("Nothing to load: set SCHEDULE_PATH and/or MEMBERS_PATH")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	ctx := context.Background()

	if cfg.SchedulePath != "" {
		if err := loadSchedule(ctx, clients.NewCatalogClient(cfg.ServerURL, httpClient), cfg.SchedulePath); err != nil {
			log.Fatalf("Failed to load schedule: %v", err)
		}
	}
	if cfg.MembersPath != "" {
		if err := loadMembers(ctx, clients.NewMembershipClient(cfg.ServerURL, httpClient), cfg.MembersPath); err != nil {
			log.Fatalf("Failed to load members: %v", err)
		}
	}
}

func loadSchedule(ctx context.Context, client *clients.CatalogClient, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := loader.ParseSchedule(f)
	if err != nil {
		return err
	}
	for _, line := range lines {
		session, err := client.AddSession(ctx, clients.AddSessionRequest{
			ClassType:  line.ClassType,
			Instructor: line.Instructor,
			Timeslot:   line.Timeslot,
			Location:   line.Location,
		})
		if err != nil {
			log.Printf("Skipping %v: %v", line, err)
			continue
		}
		fmt.Printf("%s %s\n", session.SessionKey, session.Time)
	}
	return nil
}

func loadMembers(ctx context.Context, client *clients.MembershipClient, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := loader.ParseMembers(f)
	if err != nil {
		return err
	}
	for _, line := range lines {
		member, err := client.ImportMember(ctx, clients.ImportMemberRequest{
			FirstName:  line.FirstName,
			LastName:   line.LastName,
			DOB:        line.DOB.String(),
			Expiration: line.Expiration.String(),
			Location:   line.Location,
		})
		if err != nil {
			log.Printf("Skipping %s %s: %v", line.FirstName, line.LastName, err)
			continue
		}
		fmt.Printf("%s, Membership expires %s, Home Studio: %s, %s, %s\n",
			member.Identity, member.Expiration, member.Location, member.ZipCode, member.County)
	}
	return nil
}
