package cmd

import (
	"log"
	"net/http"

	"github.com/jeremyhunt/jobscout/internal/dataset"
	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/logger"
	"github.com/jeremyhunt/jobscout/internal/profile"
	"github.com/jeremyhunt/jobscout/internal/query"
	"github.com/jeremyhunt/jobscout/internal/scoring"
	"github.com/jeremyhunt/jobscout/internal/server"
	"github.com/jeremyhunt/jobscout/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scored local dataset over the backend HTTP contract",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":8080", "listen address")
}

func serve(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	prof, err := profile.FromMap(config.Profile)
	if err != nil {
		logger.Fatal("building the candidate profile", zap.Error(err))
	}

	weights := profile.DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}

	local, err := dataset.Load()
	if err != nil {
		logger.Fatal("loading the local dataset", zap.Error(err))
	}

	scoring.New(prof, weights).ScoreAll(local)

	svc := service.New(query.New(prof.Region), &job.Jobs{Items: local})
	srv := server.New(svc, logger)

	addr, _ := cmd.Flags().GetString("listen")
	logger.Info("serving the local dataset", zap.String("addr", addr), zap.Int("jobs", len(local)))

	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
