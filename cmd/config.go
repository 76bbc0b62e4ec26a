package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string
	RedisAddr string

	MpesaBaseURL        string
	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortcode      string
	MpesaPasskey        string
	MpesaCallbackURL    string

	SMSBaseURL  string
	SMSAPIKey   string
	SMSUsername string
	SMSSenderID string

	WhatsAppBaseURL       string
	WhatsAppPhoneNumberID string
	WhatsAppAccessToken   string
}
