// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mindful-sync/internal/service"
)

// RenderReport renders the outcome of one sync cycle.
func RenderReport(report service.CycleReport) string {
	if report.Skipped {
		return renderPage("SYNC SKIPPED", errorStyle.Render(humanizeError(report.SkipReason)), "")
	}

	var b strings.Builder
	for i, cr := range report.Collections {
		if i > 0 {
			b.WriteString("\n")
		}
		if cr.Err != nil {
			fmt.Fprintf(&b, "%-14s %s", cr.Collection, errorStyle.Render(humanizeError(cr.Err)))
			continue
		}
		fmt.Fprintf(&b, "%-14s %s pushed %d, received %d, applied %d, kept local %d",
			cr.Collection, okStyle.Render("ok"),
			cr.Push.Pushed, cr.Pull.Received, cr.Pull.Applied, cr.Pull.Skipped)
		if cr.Push.Superseded > 0 {
			fmt.Fprintf(&b, ", %d edited during push", cr.Push.Superseded)
		}
		if cr.Pull.Purged > 0 {
			fmt.Fprintf(&b, ", purged %d", cr.Pull.Purged)
		}
	}

	title := "SYNC DONE"
	if report.Failed() {
		title = "SYNC FAILED"
	}
	hint := fmt.Sprintf("cycle %s, %s in %s", report.CycleID, report.Reason,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	return renderPage(title, b.String(), hint)
}
