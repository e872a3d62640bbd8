// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the mindful-sync client and dev server.
//
// Configuration is assembled from multiple sources; for each field the
// first source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetClientConfig] for the sync client and
// [GetDevServerConfig] for the in-memory remote authority.
package config
