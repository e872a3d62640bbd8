// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders the terminal output of the mindful command: build
// information, per-collection sync status and the report of a sync cycle.
// Rendering is pure; callers print the returned strings.
package tui
