// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package devserver implements an in-memory remote authority speaking the
// same REST contract as the production backend: login, health, bulk_sync,
// incremental sync, full listing and a WebSocket live update feed.
//
// It exists for local development ("mindful devserver") and for end-to-end
// tests of the sync engine. Data lives only in memory and is partitioned by
// the user the bearer token was issued to.
package devserver
