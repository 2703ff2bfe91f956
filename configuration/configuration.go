package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory"`
	LogLevel          string `usage:"log level: debug, info, warn, error"`
	EnableCompression bool   `usage:"enable gzip compression"`
	Version           bool   `usage:"show version and exit"`
	ShowConfig        bool   `usage:"print config"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr: ":8080",
		Dir:      "data",
		LogLevel: "info",
	}
}
