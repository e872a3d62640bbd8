// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/mindful-sync/internal/adapter"
	"github.com/MKhiriev/mindful-sync/internal/config"
	"github.com/MKhiriev/mindful-sync/internal/events"
	"github.com/MKhiriev/mindful-sync/internal/logger"
	"github.com/MKhiriev/mindful-sync/internal/store"
	"github.com/MKhiriev/mindful-sync/internal/validators"
	"github.com/MKhiriev/mindful-sync/models"
)

type ClientServices struct {
	AuthService   ClientAuthService
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
	StatusService ClientStatusService
	Connectivity  *ConnectivityMonitor

	Moods        RecordService[models.Mood]
	Journals     RecordService[models.Journal]
	Habits       RecordService[models.Habit]
	HabitEntries RecordService[models.HabitEntry]
}

func NewClientServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	bus *events.Bus,
	cfg config.ClientWorkers,
	log *logger.Logger,
) *ClientServices {
	syncSvc := NewSyncOrchestrator(storages, serverAdapter, bus, cfg, log)
	job := NewClientSyncJob(syncSvc, cfg.BackoffMin, cfg.BackoffMax)
	validator := validators.NewRecordValidator()
	auth := NewClientAuthService(storages.Sessions, serverAdapter, syncSvc, log)
	syncSvc.SetSessionSource(auth)

	return &ClientServices{
		AuthService:   auth,
		SyncService:   syncSvc,
		SyncJob:       job,
		StatusService: NewClientStatusService(storages),
		Connectivity:  NewConnectivityMonitor(serverAdapter, syncSvc, cfg.ConnectivityInterval, log),

		Moods:        NewRecordService[models.Mood, *models.Mood](storages.Moods, validator, job),
		Journals:     NewRecordService[models.Journal, *models.Journal](storages.Journals, validator, job),
		Habits:       NewRecordService[models.Habit, *models.Habit](storages.Habits, validator, job),
		HabitEntries: NewRecordService[models.HabitEntry, *models.HabitEntry](storages.HabitEntries, validator, job),
	}
}
