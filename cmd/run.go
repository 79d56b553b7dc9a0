package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jeremyhunt/jobscout/internal/dataset"
	"github.com/jeremyhunt/jobscout/internal/job"
	"github.com/jeremyhunt/jobscout/internal/jobapi"
	"github.com/jeremyhunt/jobscout/internal/logger"
	"github.com/jeremyhunt/jobscout/internal/profile"
	"github.com/jeremyhunt/jobscout/internal/query"
	"github.com/jeremyhunt/jobscout/internal/retriever"
	"github.com/jeremyhunt/jobscout/internal/scoring"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptUpdateStatus = "Update application status"
	PromptStats        = "Show stats"
	PromptDumpToFile   = "Dump jobs to file"
	PromptExit         = "Exit"
	PromptBack         = "back"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search for jobs and rank them against the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("no-prompt", "y", false, "print the ranked results and exit without the interactive prompt")
	runCmd.Flags().IntP("limit", "l", 0, "maximum number of results (overrides the config file)")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobscout", zap.String("version", version))

	prof, err := profile.FromMap(config.Profile)
	if err != nil {
		logger.Fatal("building the candidate profile", zap.Error(err))
	}

	weights := profile.DefaultWeights()
	if config.Weights != nil {
		weights = *config.Weights
	}

	r, err := buildRetriever(config, prof, weights, logger)
	if err != nil {
		logger.Fatal("building the retriever", zap.Error(err))
	}

	params := *config.Search
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		params.Limit = limit
	}

	logger.Info("starting the search", zap.String("search", params.Search))

	result := r.Retrieve(ctx, params)
	if result.Error != "" {
		logger.Fatal("retrieval failed", zap.String("error", result.Error))
	}
	if result.Message != "" {
		logger.Info(result.Message)
	}

	if len(result.Jobs) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs matched"))
		return
	}

	logger.Info("search finished", zap.Int("returned", len(result.Jobs)), zap.Int("total", result.Total))

	jobs := &job.Jobs{Items: result.Jobs}
	for _, j := range jobs.Items {
		logger.Info(j.Title,
			zap.String("company", j.Company),
			zap.String("location", j.Location),
			zap.String("salary", j.Salary),
			zap.Int("relevance", j.RelevanceScore),
			zap.String("match", scoring.RelevanceLabel(j.RelevanceScore)),
			zap.String("url", j.URL),
		)
	}

	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); noPrompt {
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: []string{PromptUpdateStatus, PromptStats, PromptDumpToFile, PromptExit},
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, jobs, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func buildRetriever(config *Config, prof *profile.Profile, weights profile.Weights, logger *zap.Logger) (*retriever.Retriever, error) {
	local, err := dataset.Load()
	if err != nil {
		return nil, fmt.Errorf("loading the local dataset: %w", err)
	}

	api := jobapi.New(logger, config.Backend.URL)
	if config.Backend.HealthTimeout > 0 {
		api.HealthTimeout = config.Backend.HealthTimeout
	}
	if config.Backend.SearchTimeout > 0 {
		api.SearchTimeout = config.Backend.SearchTimeout
	}
	api.SetRateLimit(config.Backend.RateLimit, config.Backend.Burst)

	scorer := scoring.New(prof, weights)
	queries := query.New(prof.Region)

	return retriever.New(api, scorer, queries, local, prof.Region, logger), nil
}

func handleAction(action string, jobs *job.Jobs, logger *zap.Logger) error {
	switch action {
	case PromptUpdateStatus:
		return updateStatusPrompt(jobs, logger)
	case PromptStats:
		pretty, _ := json.MarshalIndent(jobs.Stats(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func updateStatusPrompt(jobs *job.Jobs, logger *zap.Logger) error {
	items := make([]string, 0, jobs.Len()+1)
	for _, j := range jobs.Items {
		items = append(items, fmt.Sprintf("%s %s / %s / %s", j.ID, j.Title, j.Company, j.ApplicationStatus))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	jobID := strings.Split(selected, " ")[0]

	statusPrompt := promptui.Select{
		Label: "New status",
		Items: []string{
			string(job.StatusNotApplied),
			string(job.StatusApplied),
			string(job.StatusInterview),
			string(job.StatusRejected),
		},
	}

	_, status, err := statusPrompt.Run()
	if err != nil {
		return err
	}

	updated, err := jobs.UpdateStatus(jobID, job.Status(status))
	if err != nil {
		return err
	}

	logger.Info("application status updated",
		zap.String("job_id", updated.ID),
		zap.String("job_title", updated.Title),
		zap.String("status", string(updated.ApplicationStatus)),
	)

	return nil
}
