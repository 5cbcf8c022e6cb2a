package i18n

// T is the Danish string table the client renders with. The app ships in
// a single language; the profile carries the value for future use.
var T = map[string]string{
	"hjem":          "Hjem",
	"booking":       "Booking",
	"nyheder":       "Nyheder",
	"hej":           "Hej",
	"book":          "Book rengøring",
	"sendBooking":   "Send booking",
	"takBooking":    "Tak! Din booking er sendt.",
	"name":          "Navn",
	"address":       "Adresse",
	"phone":         "Telefon",
	"date":          "Foretrukken dato",
	"hoursQuestion": "Hvor mange timer ønsker du rengøring? ",
	"timer":         "timer",
	"settings":      "Indstillinger",
	"language":      "Sprog",
	"darkMode":      "Mørk tilstand",
	"light":         "Lys",
	"dark":          "Mørk",
	"logout":        "Log ud",
	"login":         "Log ind",
	"email":         "Email",
	"password":      "Adgangskode",
	"or":            "eller",
	"google":        "Fortsæt med Google",
	"upload":        "Upload billede",
	"save":          "Gem",
	"latestBooking": "Seneste booking",
	"upcoming":      "Kommende aftaler",
}
