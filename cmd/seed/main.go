package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"lashdiary/internal/database"
	"lashdiary/internal/domain"
)

func main() {
	db, err := database.Connect("lashdiary.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (bookings first to keep foreign keys happy)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM outbox_entries")
	db.Exec("DELETE FROM showcase_bookings")
	db.Exec("DELETE FROM consultations")
	db.Exec("DELETE FROM projects")

	// ================== PROJECTS ==================
	log.Println("Creating projects...")

	projects := []domain.Project{
		{
			Kind:        domain.ProjectWebsiteBuild,
			Name:        "Amara Beauty Website",
			ClientName:  "Amara Wanjiru",
			ClientEmail: "amara@example.com",
			Status:      domain.ProjectPending,
			InviteToken: uuid.NewString(),
		},
		{
			Kind:        domain.ProjectWebsiteBuild,
			Name:        "Naledi Lash Studio",
			ClientName:  "Naledi Mwangi",
			ClientEmail: "naledi@example.com",
			Status:      domain.ProjectPending,
			InviteToken: uuid.NewString(),
		},
		{
			Kind:        domain.ProjectOrder,
			Name:        "Brow Bar Starter Kit",
			ClientName:  "Zuri Achieng",
			ClientEmail: "zuri@example.com",
			Status:      domain.ProjectDelivered,
			InviteToken: uuid.NewString(),
		},
	}
	for i := range projects {
		db.Create(&projects[i])
		log.Printf("Project %q invite token: %s", projects[i].Name, projects[i].InviteToken)
	}

	// ================== CONSULTATIONS ==================
	log.Println("Creating consultations...")

	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	consultation := domain.Consultation{
		ClientName:    "Kemi Otieno",
		ClientEmail:   "kemi@example.com",
		Topic:         "New salon website",
		SlotDate:      nextWeek,
		SlotMinutes:   10 * 60,
		PreferredTime: "10:00 AM",
		Status:        domain.ConsultationActive,
	}
	db.Create(&consultation)

	// ================== SHOWCASE BOOKING ==================
	log.Println("Creating showcase booking...")

	booking := domain.ShowcaseBooking{
		ProjectID:   projects[0].ID,
		ClientName:  projects[0].ClientName,
		ClientEmail: projects[0].ClientEmail,
		MeetingType: domain.MeetingOnline,
		SlotDate:    nextWeek,
		SlotMinutes: 13 * 60,
		TimeLabel:   "1:00 PM",
		Status:      domain.BookingConfirmed,
	}
	db.Create(&booking)
	db.Model(&projects[0]).Update("showcase_booking_id", booking.ID)

	log.Println("Seed completed!")
	log.Printf("Book against project 1 with token: %s", projects[0].InviteToken)
}
