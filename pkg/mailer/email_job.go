package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Text is the fallback body when HTML is empty.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeEmail builds the signup welcome message.
func WelcomeEmail(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to DoseLog",
		Text: "Hi " + name + ",\n\n" +
			"Your account is ready. Sign in with your email and password, or link a Google account from your profile.\n\n" +
			"The DoseLog team",
	}
}
