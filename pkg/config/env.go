package config

const (
	EnvPrefix = "HOTELOPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HOTELOPS_DB_DSN"
	EnvDBHost = "HOTELOPS_DB_HOST"
	EnvDBUser = "HOTELOPS_DB_USER"
	EnvDBName = "HOTELOPS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
