package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"frontdesk-backend/config"
	"frontdesk-backend/controllers"
	"frontdesk-backend/routes"
	"frontdesk-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	log.Println("database connected, migrations applied")

	codeService := services.NewCodeService(db)
	roomService := services.NewRoomService(db)
	categoryService := services.NewRoomCategoryService(db)
	guestService := services.NewGuestService(db)
	reservationService := services.NewReservationService(db, roomService, guestService, codeService)
	bookingService := services.NewBookingService(db, roomService, guestService, codeService)

	router := routes.SetupRouter(
		controllers.NewAuthController(db),
		controllers.NewCategoryController(categoryService),
		controllers.NewRoomController(roomService),
		controllers.NewReservationController(reservationService),
		controllers.NewBookingController(bookingService),
		controllers.NewGuestController(guestService),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
