package notices

import (
	"fmt"
	"html/template"
	"strings"

	"zephvault-backend/internal/tenants"
)

// Email is a rendered message ready for a Sender.
type Email struct {
	To      string
	Subject string
	HTML    string
}

type noticeEmailData struct {
	FirmName     string
	FirmEmail    string
	FullName     string
	PropertyName string
	UnitNumber   string
	RentDueDate  string
	DaysText     string
	NoticeType   string
	Urgent       bool
}

var noticeTemplate = template.Must(template.New("rent_notice").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .header { background: #f8f9fa; padding: 20px; text-align: center; }
    .content { padding: 20px; }
    .notice-box { background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; margin: 20px 0; }
    .footer { background: #f8f9fa; padding: 20px; text-align: center; font-size: 14px; color: #666; }
    .urgent { background: #f8d7da; border-color: #f5c6cb; }
  </style>
</head>
<body>
  <div class="header">
    <h1>{{.FirmName}}</h1>
    <p>Legal and Property Management Services</p>
  </div>

  <div class="content">
    <p>Dear {{.FullName}},</p>

    <div class="notice-box{{if .Urgent}} urgent{{end}}">
      <h2>RENT RENEWAL NOTICE</h2>
      <p><strong>Property:</strong> {{.PropertyName}}</p>
      <p><strong>Unit:</strong> {{.UnitNumber}}</p>
      <p><strong>Tenant:</strong> {{.FullName}}</p>
      <p><strong>Rent Due Date:</strong> {{.RentDueDate}}</p>
      <p><strong>Days Remaining:</strong> {{.DaysText}}</p>
    </div>

    <p>This is an official notice that your rent payment is due in {{.DaysText}}. Please ensure your payment is made on or before the due date to avoid any late fees or complications.</p>

    {{if eq .NoticeType "7_day_urgent"}}<p><strong>URGENT:</strong> This is a final reminder. Please contact our office immediately if you have any concerns about your payment.</p>
    {{else if eq .NoticeType "1_day_final"}}<p><strong>FINAL NOTICE:</strong> Your rent is due tomorrow. Immediate action is required to avoid late fees.</p>
    {{else}}<p>We appreciate your continued tenancy and prompt payment.</p>
    {{end}}

    <p>If you have any questions or concerns, please do not hesitate to contact our office.</p>

    <p>Best regards,<br>
    {{.FirmName}}<br>
    Property Management Department</p>
  </div>

  <div class="footer">
    <p>This is an automated message from {{.FirmName}}</p>
    <p>Email: {{.FirmEmail}}</p>
    <p>This notice is sent in accordance with your tenancy agreement.</p>
  </div>
</body>
</html>`))

// Composer renders rent notice emails for a firm.
type Composer struct {
	FirmName  string
	FirmEmail string
}

// RentNotice renders the notice email for a tenant.
func (cm Composer) RentNotice(tenant tenants.TenantUnit, noticeType string) (Email, error) {
	data := noticeEmailData{
		FirmName:     cm.FirmName,
		FirmEmail:    cm.FirmEmail,
		FullName:     tenant.FullName,
		PropertyName: tenant.PropertyName,
		UnitNumber:   tenant.UnitNumber,
		RentDueDate:  tenant.RentDueDate.Format("January 2, 2006"),
		DaysText:     daysText(noticeType),
		NoticeType:   noticeType,
		Urgent:       noticeType == tenants.Notice7Day || noticeType == tenants.Notice1Day,
	}

	var body strings.Builder
	if err := noticeTemplate.Execute(&body, data); err != nil {
		return Email{}, err
	}

	return Email{
		To:      tenant.Email,
		Subject: fmt.Sprintf("OFFICIAL NOTICE: Rent Renewal for %s - %s", tenant.UnitNumber, tenant.PropertyName),
		HTML:    body.String(),
	}, nil
}

func daysText(noticeType string) string {
	switch noticeType {
	case tenants.Notice30Day:
		return "30 days"
	case tenants.Notice7Day:
		return "7 days"
	default:
		return "1 day"
	}
}
