package commands

import (
	"github.com/spf13/cobra"

	"github.com/LCLAMEDIA/openorders/internal/pipeline"
	"github.com/LCLAMEDIA/openorders/internal/server"
	"github.com/LCLAMEDIA/openorders/internal/store"
)

var (
	servePort int
	devMode   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Server.Port = servePort
		}
		if devMode {
			cfg.Server.DevMode = true
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := store.New(cfg.DBPath())
		if err != nil {
			return err
		}
		defer st.Close()

		processor := pipeline.New(cfg, st, log)
		return server.NewServer(cfg, st, processor, log).Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides configuration)")
	serveCmd.Flags().BoolVar(&devMode, "dev", false, "development mode")
}
