package notices

import (
	"strings"
	"testing"
	"time"

	"zephvault-backend/internal/tenants"
)

func testTenant() tenants.TenantUnit {
	return tenants.TenantUnit{
		TenantID:     "t1",
		FullName:     "John Doe",
		Email:        "john@example.com",
		RentDueDate:  time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		UnitNumber:   "A1",
		PropertyName: "Faith Plaza",
	}
}

func TestRentNoticeSubject(t *testing.T) {
	cm := Composer{FirmName: "AN. Zeph and Associates", FirmEmail: "admin@anzeph.com"}

	email, err := cm.RentNotice(testTenant(), tenants.Notice30Day)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	want := "OFFICIAL NOTICE: Rent Renewal for A1 - Faith Plaza"
	if email.Subject != want {
		t.Fatalf("expected subject %q, got %q", want, email.Subject)
	}
	if email.To != "john@example.com" {
		t.Fatalf("unexpected recipient %q", email.To)
	}
}

func TestRentNoticeBodyVariants(t *testing.T) {
	cm := Composer{FirmName: "AN. Zeph and Associates", FirmEmail: "admin@anzeph.com"}

	cases := []struct {
		noticeType string
		daysText   string
		marker     string
		urgent     bool
	}{
		{tenants.Notice30Day, "30 days", "We appreciate your continued tenancy", false},
		{tenants.Notice7Day, "7 days", "URGENT:", true},
		{tenants.Notice1Day, "1 day", "FINAL NOTICE:", true},
	}

	for _, tc := range cases {
		t.Run(tc.noticeType, func(t *testing.T) {
			email, err := cm.RentNotice(testTenant(), tc.noticeType)
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			if !strings.Contains(email.HTML, "due in "+tc.daysText) {
				t.Fatalf("expected days text %q in body", tc.daysText)
			}
			if !strings.Contains(email.HTML, tc.marker) {
				t.Fatalf("expected marker %q in body", tc.marker)
			}
			hasUrgentBox := strings.Contains(email.HTML, `notice-box urgent`)
			if hasUrgentBox != tc.urgent {
				t.Fatalf("urgent styling = %v, want %v", hasUrgentBox, tc.urgent)
			}
			for _, detail := range []string{"John Doe", "Faith Plaza", "A1", "AN. Zeph and Associates", "admin@anzeph.com"} {
				if !strings.Contains(email.HTML, detail) {
					t.Fatalf("expected %q in body", detail)
				}
			}
		})
	}
}
