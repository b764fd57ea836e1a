package core

import (
	"os"
	"strconv"
)

// GetEnvironmentConfig overrides whatever the config file provided with
// values from the process environment. Credentials are expected to arrive
// this way in deployment.
func GetEnvironmentConfig(c *Configuration) {
	if os.Getenv("DATABASE_HOST") != "" {
		c.Database.Host = os.Getenv("DATABASE_HOST")
	}
	if os.Getenv("DATABASE_DATABASE") != "" {
		c.Database.Database = os.Getenv("DATABASE_DATABASE")
	}
	if os.Getenv("DATABASE_USER") != "" {
		c.Database.User = os.Getenv("DATABASE_USER")
	}
	if os.Getenv("DATABASE_PASSWORD") != "" {
		c.Database.Password = os.Getenv("DATABASE_PASSWORD")
	}
	if os.Getenv("DATABASE_PORT") != "" {
		c.Database.Port, _ = strconv.Atoi(os.Getenv("DATABASE_PORT"))
	}
	if os.Getenv("DATABASE_DO_AUTO_MIGRATE") != "" {
		c.Database.DoAutoMigrate, _ = strconv.ParseBool(os.Getenv("DATABASE_DO_AUTO_MIGRATE"))
	}
	if os.Getenv("DATABASE_DEBUG") != "" {
		c.Database.Debug, _ = strconv.ParseBool(os.Getenv("DATABASE_DEBUG"))
	}

	if os.Getenv("SERVER_HOSTNAME") != "" {
		c.Server.Hostname = os.Getenv("SERVER_HOSTNAME")
	}
	if os.Getenv("SERVER_INTERNAL_PORT") != "" {
		c.Server.InternalPort, _ = strconv.Atoi(os.Getenv("SERVER_INTERNAL_PORT"))
	}
	if os.Getenv("SERVER_WITH_SSL") != "" {
		c.Server.WithSSL, _ = strconv.ParseBool(os.Getenv("SERVER_WITH_SSL"))
	}
	if os.Getenv("SERVER_SSL_CERT_FILE") != "" {
		c.Server.SSLCertFile = os.Getenv("SERVER_SSL_CERT_FILE")
	}
	if os.Getenv("SERVER_SSL_KEY_FILE") != "" {
		c.Server.SSLKeyFile = os.Getenv("SERVER_SSL_KEY_FILE")
	}
	if os.Getenv("SERVER_DOCUMENTS_PATH") != "" {
		c.Server.DocumentsPath = os.Getenv("SERVER_DOCUMENTS_PATH")
	}
	if os.Getenv("SERVER_TMP_PATH") != "" {
		c.Server.TmpPath = os.Getenv("SERVER_TMP_PATH")
	}
	if os.Getenv("SERVER_DELIVER_FRONT_END") != "" {
		c.Server.DeliverFrontEnd, _ = strconv.ParseBool(os.Getenv("SERVER_DELIVER_FRONT_END"))
	}
	if os.Getenv("SERVER_FRONT_END_PATH") != "" {
		c.Server.FrontEndPath = os.Getenv("SERVER_FRONT_END_PATH")
	}
	if os.Getenv("SERVER_ADMIN_KEY") != "" {
		c.Server.AdminKey = os.Getenv("SERVER_ADMIN_KEY")
	}

	if os.Getenv("MAIL_SERVER_SMTP_HOST") != "" {
		c.MailServer.SmtpHost = os.Getenv("MAIL_SERVER_SMTP_HOST")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PORT") != "" {
		c.MailServer.SmtpPort, _ = strconv.Atoi(os.Getenv("MAIL_SERVER_SMTP_PORT"))
	}
	if os.Getenv("MAIL_SERVER_SMTP_USERNAME") != "" {
		c.MailServer.SmtpUsername = os.Getenv("MAIL_SERVER_SMTP_USERNAME")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PASSWORD") != "" {
		c.MailServer.SmtpPassword = os.Getenv("MAIL_SERVER_SMTP_PASSWORD")
	}

	if os.Getenv("DELIVERY_ARCHIVE_PATH") != "" {
		c.Delivery.ArchivePath = os.Getenv("DELIVERY_ARCHIVE_PATH")
	}
	if os.Getenv("DELIVERY_MAIL_FROM") != "" {
		c.Delivery.MailFrom = os.Getenv("DELIVERY_MAIL_FROM")
	}
	if os.Getenv("DELIVERY_MAIL_TO") != "" {
		c.Delivery.MailTo = os.Getenv("DELIVERY_MAIL_TO")
	}
	if os.Getenv("DELIVERY_TIMEOUT_SECONDS") != "" {
		c.Delivery.TimeoutSeconds, _ = strconv.Atoi(os.Getenv("DELIVERY_TIMEOUT_SECONDS"))
	}

	if os.Getenv("STORAGE_REGION") != "" {
		c.Storage.Region = os.Getenv("STORAGE_REGION")
	}
	if os.Getenv("STORAGE_BUCKET") != "" {
		c.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
	}
	if os.Getenv("STORAGE_FOLDER") != "" {
		c.Storage.Folder = os.Getenv("STORAGE_FOLDER")
	}
	if os.Getenv("STORAGE_ACCESS_KEY") != "" {
		c.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	}
	if os.Getenv("STORAGE_SECRET_KEY") != "" {
		c.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
	}

	if os.Getenv("OCR_URL") != "" {
		c.OCR.Url = os.Getenv("OCR_URL")
	}
	if os.Getenv("OCR_API_KEY") != "" {
		c.OCR.ApiKey = os.Getenv("OCR_API_KEY")
	}
	if os.Getenv("OCR_TIMEOUT_SECONDS") != "" {
		c.OCR.TimeoutSeconds, _ = strconv.Atoi(os.Getenv("OCR_TIMEOUT_SECONDS"))
	}
}
