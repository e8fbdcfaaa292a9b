package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"cvss-scorer/internal/epss"
	"cvss-scorer/internal/flags"
	"cvss-scorer/internal/logger"
	"cvss-scorer/internal/nvd"
	"cvss-scorer/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "cvss-scorer",
	Short: "Contextual CVSS scoring for Trivy reports",
	Long: `Reads a Trivy JSON report on stdin, scores every vulnerability with the
contextual metrics given as flags (CVSS 2.0, 3.0, 3.1 and 4.0) and writes the
report with Custom.ContextualMetrics attached to stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := flags.Bind(viper.GetViper(), cmd); err != nil {
			return err
		}
		lo := flags.LoadLogging(viper.GetViper())
		return logger.Configure(lo.Format, lo.Level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ro := flags.Load(viper.GetViper())
		inputData, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "failed to read from stdin")
		}
		var reportData map[string]any
		if err := json.Unmarshal(inputData, &reportData); err != nil {
			return errors.Wrap(err, "failed to parse JSON")
		}
		if err := processReport(cmd.Context(), reportData, ro); err != nil {
			log.Warn().Err(err).Msg("some vulnerabilities could not be scored")
		}
		output, err := json.MarshalIndent(reportData, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode report")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return nil
	},
}

func init() {
	flags.RegisterLogging(rootCmd)
	flags.Register(rootCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("cvss-scorer failed")
		os.Exit(1)
	}
}

// processReport enriches every vulnerability of the report in place. A
// vulnerability that cannot be scored is left untouched and reported in the
// returned error.
func processReport(ctx context.Context, reportData map[string]any, ro flags.RunOptions) error {
	results, _ := reportData["Results"].([]any)
	if results == nil {
		return nil
	}
	nvdVectors := map[string]string{}
	if ro.FetchCVSS {
		nvdVectors = fetchNVDVectors(ctx, nvd.NewClient(ro.NvdAPIKey), report.CollectCVEsWithoutCVSS(results), nvdThrottle(ro.NvdAPIKey))
	}
	epssData := map[string]epss.Data{}
	if ro.UseEPSS {
		epssData = fetchEPSSData(ctx, epss.NewClient(), report.CollectAllCVEIDs(results))
	}

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g, ctx := errgroup.WithContext(ctx)
	if ro.Concurrency > 0 {
		g.SetLimit(ro.Concurrency)
	}
	for _, vuln := range report.Vulnerabilities(results) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := report.ProcessVuln(vuln, nvdVectors, epssData, ro); err != nil {
				log.Debug().Err(err).Msg("vulnerability not scored")
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errs.ErrorOrNil()
}

// nvdThrottle keeps requests under the public NVD rate limits.
func nvdThrottle(apiKey string) time.Duration {
	if apiKey != "" {
		return time.Second
	}
	return 6 * time.Second
}

func fetchNVDVectors(ctx context.Context, client *nvd.Client, cveIDs []string, throttle time.Duration) map[string]string {
	out := make(map[string]string)
	for i, cveID := range cveIDs {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(throttle):
			}
		}
		vec, err := client.FetchVector(ctx, cveID)
		if err != nil {
			log.Warn().Err(err).Str("cve", cveID).Msg("nvd fetch failed")
			continue
		}
		if vec != "" {
			out[cveID] = vec
		}
	}
	return out
}

func fetchEPSSData(ctx context.Context, client *epss.Client, cveIDs []string) map[string]epss.Data {
	data, err := client.FetchScores(ctx, cveIDs)
	if err != nil {
		log.Warn().Err(err).Msg("epss fetch failed, exploit maturity is taken from --e")
		if data == nil {
			return map[string]epss.Data{}
		}
	}
	return data
}
