// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client application runtime.
//
// It wires the local store, the server adapter, the client services and the
// background workers into a single process lifecycle. The command-line
// front end in cmd/client builds one [App] per invocation.
package client
