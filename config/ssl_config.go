package config

// SSLConfig carries the Postgres SSL connection parameters.
type SSLConfig struct {
	Mode     string
	RootCert string
	Cert     string
	Key      string
}
