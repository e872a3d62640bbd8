// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/mindful-sync/internal/service"
)

// RenderStatus renders one row per collection with its pending count and
// last synced watermark.
func RenderStatus(statuses []service.CollectionStatus, online bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COLLECTION", "PENDING", "LAST SYNCED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, s := range statuses {
		pending := okStyle.Render("0")
		if s.Pending > 0 {
			pending = pendingStyle.Render(strconv.Itoa(s.Pending))
		}
		t.Row(s.Collection.String(), pending, timeOrNever(s.LastSyncedAt))
	}

	hint := "remote: offline"
	if online {
		hint = "remote: online"
	}
	return renderPage("SYNC STATUS", t.Render(), hint)
}
