// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"github.com/PhangZT0803/EcoTrip/internal/app"
	"github.com/PhangZT0803/EcoTrip/internal/auth"
	"github.com/PhangZT0803/EcoTrip/internal/challenge"
	"github.com/PhangZT0803/EcoTrip/internal/config"
	"github.com/PhangZT0803/EcoTrip/internal/filestorage"
	"github.com/PhangZT0803/EcoTrip/internal/firebase"
	"github.com/PhangZT0803/EcoTrip/internal/jobs"
	"github.com/PhangZT0803/EcoTrip/internal/middleware"
	"github.com/PhangZT0803/EcoTrip/internal/platform/database"
	"github.com/PhangZT0803/EcoTrip/internal/platform/logger"
	"github.com/PhangZT0803/EcoTrip/internal/session"
	"github.com/PhangZT0803/EcoTrip/internal/shared"
	"github.com/PhangZT0803/EcoTrip/internal/submission"
	"github.com/PhangZT0803/EcoTrip/internal/user"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Firebase app, Firestore and the photo bucket
		firebase.NewService,
		wire.Bind(new(middleware.TokenVerifier), new(*firebase.Service)),

		// Profiles and legacy migration source
		user.NewFirestoreRepository,
		user.NewFirestoreLegacyRepository,
		user.NewService,
		wire.Bind(new(shared.Service), new(*user.Service)),
		user.NewHandler,

		// Challenge catalogue
		challenge.NewFirestoreRepository,
		challenge.NewService,
		challenge.NewHandler,

		// Photo submissions
		filestorage.NewGCSObjectStore,
		submission.NewFirestoreRepository,
		submission.NewService,
		submission.NewHandler,

		// Sessions and sign-in
		session.NewGORMRepository,
		auth.NewService,
		auth.NewHandler,

		// Jobs
		jobs.NewOrphanSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
