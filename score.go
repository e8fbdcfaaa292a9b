package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cvss-scorer/cvss"
	"cvss-scorer/internal/crosscheck"
)

var scoreCmd = &cobra.Command{
	Use:   "score [vector...]",
	Short: "Score CVSS vectors",
	Long: `Prints the standard and the Base, Temporal and Environmental scores of
each vector. Vectors are taken from the arguments, or one per line from stdin
when none are given.`,
	Example: `  cvss-scorer score CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H
  echo "AV:N/AC:L/Au:N/C:C/I:C/A:C" | cvss-scorer score --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		vectors := args
		if len(vectors) == 0 {
			var err error
			if vectors, err = readVectors(cmd.InOrStdin()); err != nil {
				return err
			}
		}
		if len(vectors) == 0 {
			return errors.New("no vectors given")
		}

		results, scoreErr := cvss.ScoreAll(cmd.Context(), vectors, viper.GetInt("concurrency"))
		if viper.GetBool("verify") {
			for i, vector := range vectors {
				if results[i].Version == cvss.VersionUnknown {
					continue
				}
				verifyScores(vector, results[i])
			}
		}
		if err := writeScores(cmd.OutOrStdout(), viper.GetString("output"), vectors, results); err != nil {
			return err
		}
		return scoreErr
	},
}

func init() {
	scoreCmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	scoreCmd.Flags().Bool("verify", false, "Cross-check every score against github.com/pandatix/go-cvss")
	scoreCmd.Flags().Int("concurrency", 8, "Number of vectors scored in parallel")
	rootCmd.AddCommand(scoreCmd)
}

func readVectors(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read vectors")
	}
	return out, nil
}

type scoredVector struct {
	Vector string `json:"vector"`
	cvss.Scores
	BaseRating          cvss.Severity `json:"baseRating"`
	EnvironmentalRating cvss.Severity `json:"environmentalRating"`
}

func writeScores(w io.Writer, format string, vectors []string, results []cvss.Scores) error {
	var rows []scoredVector
	for i, s := range results {
		// vectors that failed are reported through the returned error
		if s.Version == cvss.VersionUnknown {
			continue
		}
		rows = append(rows, scoredVector{
			Vector:              vectors[i],
			Scores:              s,
			BaseRating:          cvss.Rating(s.Base),
			EnvironmentalRating: cvss.Rating(s.Environmental),
		})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "text", "":
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\tbase %.1f (%s)\ttemporal %.1f\tenvironmental %.1f (%s)\n",
				r.Version, r.Vector, r.Base, r.BaseRating, r.Temporal, r.Environmental, r.EnvironmentalRating)
		}
		return nil
	}
	return errors.Newf("unknown output format %q", format)
}

func verifyScores(vector string, s cvss.Scores) {
	mismatches, err := crosscheck.Compare(vector, s)
	if err != nil {
		log.Debug().Err(err).Str("vector", vector).Msg("skipping cross-check")
		return
	}
	for _, m := range mismatches {
		log.Warn().Str("vector", vector).Stringer("score", m).Msg("score differs from go-cvss")
	}
}
