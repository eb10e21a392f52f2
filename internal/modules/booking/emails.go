package booking

import (
	"fmt"

	"lashdiary/internal/domain"
)

func clientConfirmationEmail(b *domain.ShowcaseBooking, projectName, location string) (subject, html string) {
	subject = fmt.Sprintf("Your showcase meeting is booked — %s", projectName)
	html = fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:560px;margin:0 auto">
  <h2>You're booked, %s!</h2>
  <p>Your showcase walkthrough for <strong>%s</strong> is confirmed.</p>
  <table cellpadding="6">
    <tr><td><strong>Date</strong></td><td>%s</td></tr>
    <tr><td><strong>Time</strong></td><td>%s (Nairobi time)</td></tr>
    <tr><td><strong>Where</strong></td><td>%s</td></tr>
  </table>
  <p>Need to reschedule? Just reply to this email.</p>
  <p>— LashDiary Labs</p>
</div>`, b.ClientName, projectName, b.SlotDate, b.TimeLabel, location)
	return subject, html
}

func ownerNotificationEmail(b *domain.ShowcaseBooking, projectName string) (subject, html string) {
	subject = fmt.Sprintf("New showcase booking: %s on %s", projectName, b.SlotDate)
	html = fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:560px;margin:0 auto">
  <h3>New showcase meeting booked</h3>
  <p><strong>%s</strong> (%s) booked a %s showcase for <strong>%s</strong>.</p>
  <p>%s at %s</p>
</div>`, b.ClientName, b.ClientEmail, b.MeetingType, projectName, b.SlotDate, b.TimeLabel)
	return subject, html
}

func cancellationEmail(b *domain.ShowcaseBooking, reason string) (subject, html string) {
	subject = fmt.Sprintf("Your showcase meeting on %s was cancelled", b.SlotDate)
	html = fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:560px;margin:0 auto">
  <p>Hi %s,</p>
  <p>Your showcase meeting on %s at %s has been cancelled.</p>
  <p>Reason: %s</p>
  <p>You can book a new slot with your original invite link.</p>
  <p>— LashDiary Labs</p>
</div>`, b.ClientName, b.SlotDate, b.TimeLabel, reason)
	return subject, html
}
