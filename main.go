package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Krishnaraj-06/AttendIQ/auth"
	"github.com/Krishnaraj-06/AttendIQ/broadcast"
	"github.com/Krishnaraj-06/AttendIQ/config"
	"github.com/Krishnaraj-06/AttendIQ/database"
	"github.com/Krishnaraj-06/AttendIQ/handlers"
	"github.com/Krishnaraj-06/AttendIQ/sessions"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	ledger := database.NewLedger(db)
	directory := database.NewDirectory(db)
	archive := database.NewArchive(db)

	hub := broadcast.NewHub()
	store := sessions.NewStore()
	manager := sessions.NewManager(store, ledger, directory, archive, hub, sessions.Config{
		Window:        cfg.SessionWindow,
		LateThreshold: cfg.LateThreshold,
		BaseURL:       cfg.BaseURL,
	})

	authn := auth.New(directory, cfg.JWTSecret)
	defer authn.Stop()

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go manager.RunSweeper(sweepCtx, cfg.SweepInterval)

	h := &handlers.Handler{
		Manager:   manager,
		Ledger:    ledger,
		Archive:   archive,
		Directory: directory,
	}

	router := gin.Default()

	router.POST("/api/student/login", authn.StudentLogin)
	router.POST("/api/faculty/login", authn.FacultyLogin)

	router.POST("/api/student/scan-qr", authn.RequireRole(auth.RoleStudent), h.ScanQR)
	router.GET("/checkin/:sessionId", h.Checkin)

	faculty := router.Group("/api/faculty", authn.RequireRole(auth.RoleFaculty))
	faculty.POST("/generate-qr", h.GenerateQR)
	faculty.GET("/attendance/:sessionId", h.Attendance)
	faculty.GET("/sessions/:facultyId", h.FacultySessions)
	faculty.POST("/upload-students", h.UploadStudents)

	router.GET("/ws/dashboard", hub.HandleDashboard)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Println("AttendIQ server running on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	stopSweeper()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("forced shutdown:", err)
	}
}
