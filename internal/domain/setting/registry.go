package setting

import "strings"

const (
	CategoryMailer  = "mailer"
	CategoryTickets = "tickets"

	// KeyMailerTicketType is the ticket type the mail importer assigns.
	KeyMailerTicketType = "check:ticketype"
)

// Definition describes a setting the application reads.
type Definition struct {
	Kind        Kind
	Description string
}

var known = map[string]Definition{
	CategoryMailer + ":" + KeyMailerTicketType: {KindInt, "Ticket type assigned to imported mail"},
	CategoryMailer + ":enable":                 {KindBool, "Import mail into tickets"},
	CategoryMailer + ":check:host":             {KindString, "Mailbox host"},
	CategoryMailer + ":check:username":         {KindString, "Mailbox user"},
	CategoryMailer + ":check:password":         {KindString, "Mailbox password"},
	CategoryTickets + ":allow_anonymous":       {KindBool, "Accept tickets from unknown senders"},
}

// Lookup returns the definition of a known setting.
func Lookup(category, name string) (Definition, bool) {
	def, ok := known[category+":"+name]
	return def, ok
}

var sensitiveSuffixes = []string{"password", "secret", "api_key", "token"}

// IsSensitive reports whether a setting name holds a credential.
func IsSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
