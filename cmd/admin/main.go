package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"careline/backend/internal/config"
	"careline/backend/internal/models"
	"careline/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "queue":
		limit := config.QueuePageDefault
		if len(os.Args) > 2 {
			limit, err = strconv.Atoi(os.Args[2])
			if err != nil {
				fmt.Println("Invalid limit. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := printQueue(s, limit); err != nil {
			log.Fatalf("Error listing queue: %v", err)
		}
	case "stats":
		stats, err := s.QueueStats()
		if err != nil {
			log.Fatalf("Error loading stats: %v", err)
		}
		fmt.Printf("Pending: %d\nProcessed today: %d (dismissed %d, actions %d)\n",
			stats.TotalPending, stats.ProcessedToday, stats.DismissedToday, stats.ActionsTakenToday)
	case "resolve":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin resolve <report_id> <action> [notes]")
			os.Exit(1)
		}
		notes := ""
		if len(os.Args) > 4 {
			notes = os.Args[4]
		}
		outcome, err := s.ResolveReport(storage.ResolveReportParams{
			ReportID: os.Args[2],
			AdminID:  "cli",
			Action:   os.Args[3],
			Notes:    notes,
		})
		if err != nil {
			log.Fatalf("Error resolving report: %v", err)
		}
		fmt.Printf("Report %s resolved as %s.\n", outcome.Report.ID, outcome.Report.Status)
		if outcome.SanctionedUserID != "" {
			fmt.Printf("Sanction applied to user %s.\n", outcome.SanctionedUserID)
		}
	case "restrict":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin restrict <user_id> <level> [duration_in_hours]")
			os.Exit(1)
		}
		userID, level := os.Args[2], os.Args[3]
		var duration int
		if len(os.Args) > 4 {
			duration, err = strconv.Atoi(os.Args[4])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := restrictUser(s, userID, level, duration); err != nil {
			log.Fatalf("Error restricting user: %v", err)
		}
		fmt.Printf("User %s restricted to level %s.\n", userID, level)
	case "unrestrict":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unrestrict <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		err := s.ApplyRestriction(storage.RestrictionParams{
			UserID:             userID,
			Level:              models.RestrictionNone,
			Reason:             "lifted via admin CLI",
			AppliedBy:          "cli",
			MessageLimitPerDay: config.DefaultMessagesPerDay,
		})
		if err != nil {
			log.Fatalf("Error lifting restriction: %v", err)
		}
		fmt.Printf("User %s has been unrestricted.\n", userID)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  queue [limit]                              list pending reports")
	fmt.Println("  stats                                      moderation queue stats")
	fmt.Println("  resolve <report_id> <action> [notes]       process a report")
	fmt.Println("  restrict <user_id> <level> [hours]         apply a restriction")
	fmt.Println("  unrestrict <user_id>                       lift a restriction")
}

func printQueue(s storage.AdminStore, limit int) error {
	items, err := s.PendingReports(limit, 0)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}
	for _, it := range items {
		fmt.Printf("%s  [%s]  message=%s  sender=%s\n",
			it.Report.ID, it.Report.Reason, it.Message.ID, it.Message.SenderID)
		fmt.Printf("    %s\n", it.Message.Content)
	}
	return nil
}

func restrictUser(s storage.AdminStore, userID, level string, duration int) error {
	switch level {
	case models.RestrictionLimited, models.RestrictionSuspended, models.RestrictionBanned:
	default:
		return fmt.Errorf("unknown restriction level %q", level)
	}

	p := storage.RestrictionParams{
		UserID:             userID,
		Level:              level,
		Reason:             "applied via admin CLI",
		AppliedBy:          "cli",
		MessageLimitPerDay: config.DefaultMessagesPerDay,
	}
	if level == models.RestrictionLimited {
		p.MessageLimitPerDay = config.LimitedMessagesPerDay
	}
	if level == models.RestrictionSuspended || level == models.RestrictionBanned {
		p.MessageLimitPerDay = 0
	}
	if duration > 0 {
		t := time.Now().Add(time.Duration(duration) * time.Hour)
		p.ExpiresAt = &t
	}
	return s.ApplyRestriction(p)
}
