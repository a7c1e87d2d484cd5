//go:build integration

package store_test

import "caslkey/internal/guest"

func snapshotForm() guest.FormData {
	f := guest.NewFormData()
	f.Name = "Jane Doe"
	f.Email = "jane@example.com"
	f.CheckInDate = "2026-07-01"
	f.CheckOutDate = "2026-07-04"
	return f
}
