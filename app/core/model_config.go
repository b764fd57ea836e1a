package core

type Configuration struct {
	Database   ConfigurationDatabase   `json:"database"`
	Server     ConfigurationServer     `json:"server"`
	MailServer ConfigurationMailServer `json:"mail_server"`
	Delivery   ConfigurationDelivery   `json:"delivery"`
	Storage    ConfigurationStorage    `json:"storage"`
	OCR        ConfigurationOCR        `json:"ocr"`
}

type ConfigurationDatabase struct {
	Host          string `json:"host"`
	Database      string `json:"database"`
	User          string `json:"user"`
	Password      string `json:"password"`
	Port          int    `json:"port"`
	DoAutoMigrate bool   `json:"do_auto_migrate"`
	Debug         bool   `json:"debug"`
}

type ConfigurationServer struct {
	Hostname        string `json:"hostname"`
	InternalPort    int    `json:"internal_port"`
	WithSSL         bool   `json:"with_ssl"`
	SSLCertFile     string `json:"ssl_cert_file"`
	SSLKeyFile      string `json:"ssl_key_file"`
	DocumentsPath   string `json:"documents_path"`
	TmpPath         string `json:"tmp_path"`
	DeliverFrontEnd bool   `json:"deliver_front_end"`
	FrontEndPath    string `json:"front_end_path"`
	AdminKey        string `json:"admin_key"`
}

type ConfigurationMailServer struct {
	SmtpHost     string `json:"smtp_host"`
	SmtpPort     int    `json:"smtp_port"`
	SmtpUsername string `json:"smtp_username"`
	SmtpPassword string `json:"smtp_password"`
}

// ConfigurationDelivery switches the best-effort sinks a rendered fiche is
// forwarded to. Mail and cloud targets are only active when their credential
// sections are complete.
type ConfigurationDelivery struct {
	ArchivePath    string `json:"archive_path"`
	MailFrom       string `json:"mail_from"`
	MailTo         string `json:"mail_to"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type ConfigurationStorage struct {
	Region    string `json:"region"`
	Bucket    string `json:"bucket"`
	Folder    string `json:"folder"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
}

type ConfigurationOCR struct {
	Url            string `json:"url"`
	ApiKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}
