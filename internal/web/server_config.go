package web

// ServerConfig contains settings for running the preview HTTP server. It is
// filled from config.PreviewConfig and command-line flags.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}
