package flags

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cvss-scorer/cvss"
)

// RunOptions holds CVSS options and feature flags for a run.
type RunOptions struct {
	Opts           cvss.MetricsOptions
	ForceCtxRating bool
	UseEPSS        bool
	FetchCVSS      bool
	NvdAPIKey      string
	Verify         bool
	Concurrency    int
}

type metricFlag struct {
	name  string
	usage string
	dst   func(o *cvss.MetricsOptions) *string
}

var metricFlags = []metricFlag{
	{"e", "Exploit Code Maturity / Exploit Maturity (3.x: X, U, P, F, H; 4.0: X, U, P, A; 2.0: ND, U, POC, F, H)", func(o *cvss.MetricsOptions) *string { return &o.E }},
	{"rl", "Remediation Level (X, O, T, W, U)", func(o *cvss.MetricsOptions) *string { return &o.RL }},
	{"rc", "Report Confidence (X, U, R, C)", func(o *cvss.MetricsOptions) *string { return &o.RC }},
	{"cr", "Confidentiality Requirement (X, L, M, H)", func(o *cvss.MetricsOptions) *string { return &o.CR }},
	{"ir", "Integrity Requirement (X, L, M, H)", func(o *cvss.MetricsOptions) *string { return &o.IR }},
	{"ar", "Availability Requirement (X, L, M, H)", func(o *cvss.MetricsOptions) *string { return &o.AR }},
	{"mav", "Modified Attack Vector (X, N, A, L, P)", func(o *cvss.MetricsOptions) *string { return &o.MAV }},
	{"mac", "Modified Attack Complexity (X, L, H)", func(o *cvss.MetricsOptions) *string { return &o.MAC }},
	{"mpr", "Modified Privileges Required (X, N, L, H)", func(o *cvss.MetricsOptions) *string { return &o.MPR }},
	{"mui", "Modified User Interaction (3.x: X, N, R; 4.0: X, N, P, A)", func(o *cvss.MetricsOptions) *string { return &o.MUI }},
	{"mc", "Modified Confidentiality (X, N, L, H), also MVC on 4.0 vectors", func(o *cvss.MetricsOptions) *string { return &o.MC }},
	{"mi", "Modified Integrity (X, N, L, H), also MVI on 4.0 vectors", func(o *cvss.MetricsOptions) *string { return &o.MI }},
	{"ma", "Modified Availability (X, N, L, H), also MVA on 4.0 vectors", func(o *cvss.MetricsOptions) *string { return &o.MA }},
	{"mat", "Modified Attack Requirements, 4.0 only (X, N, P)", func(o *cvss.MetricsOptions) *string { return &o.MAT }},
	{"mvc", "Modified Vulnerable System Confidentiality, 4.0 only (X, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MVC }},
	{"mvi", "Modified Vulnerable System Integrity, 4.0 only (X, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MVI }},
	{"mva", "Modified Vulnerable System Availability, 4.0 only (X, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MVA }},
	{"msc", "Modified Subsequent System Confidentiality, 4.0 only (X, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MSC }},
	{"msi", "Modified Subsequent System Integrity, 4.0 only (X, S, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MSI }},
	{"msa", "Modified Subsequent System Availability, 4.0 only (X, S, H, L, N)", func(o *cvss.MetricsOptions) *string { return &o.MSA }},
	{"cdp", "Collateral Damage Potential, 2.0 only (ND, N, L, LM, MH, H)", func(o *cvss.MetricsOptions) *string { return &o.CDP }},
	{"td", "Target Distribution, 2.0 only (ND, N, L, M, H)", func(o *cvss.MetricsOptions) *string { return &o.TD }},
}

// LogOptions selects how the CLI logs.
type LogOptions struct {
	Level  string
	Format string
}

// RegisterLogging adds the logging flags to cmd and every subcommand.
func RegisterLogging(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	f.String("log-format", "console", "Log format: console, color or json")
}

// LoadLogging reads the logging options from v.
func LoadLogging(v *viper.Viper) LogOptions {
	return LogOptions{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
	}
}

// Register adds the contextual metric and feature flags to cmd.
func Register(cmd *cobra.Command) {
	f := cmd.Flags()
	for _, m := range metricFlags {
		f.String(m.name, "", m.usage)
	}
	f.Bool("smart", false, "Smartly apply environmental metrics only if the environmental score would be lowered, does not affect CR/IR/AR.")
	f.Bool("force-ctx-rating", false, "Force a contextual rating based on what Trivy gave even if CVSS doesn't exist from Trivy")
	f.Bool("epss", false, "Fetch EPSS per CVE and set Exploit Maturity (E) from EPSS score bands")
	f.Bool("fetch-cvss", false, "For CVEs with no CVSS source, fetch CVSS from NVD (rate limited without API key)")
	f.String("nvd-api-key", "", "NVD API key for higher rate limits (50/30s); or set NVD_API_KEY env")
	f.Bool("verify", false, "Cross-check every computed score against github.com/pandatix/go-cvss and log mismatches")
	f.Int("concurrency", 8, "Number of vulnerabilities scored in parallel")
}

// Bind connects the flags of cmd to v. Every flag can also be set through
// a CVSS_ prefixed environment variable; the NVD key additionally reads
// NVD_API_KEY.
func Bind(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("cvss")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v.BindEnv("nvd-api-key", "CVSS_NVD_API_KEY", "NVD_API_KEY")
}

// Load builds the run options from v.
func Load(v *viper.Viper) RunOptions {
	ro := RunOptions{
		Opts: cvss.MetricsOptions{
			Smart: v.GetBool("smart"),
		},
		ForceCtxRating: v.GetBool("force-ctx-rating"),
		UseEPSS:        v.GetBool("epss"),
		FetchCVSS:      v.GetBool("fetch-cvss"),
		NvdAPIKey:      v.GetString("nvd-api-key"),
		Verify:         v.GetBool("verify"),
		Concurrency:    v.GetInt("concurrency"),
	}
	for _, m := range metricFlags {
		*m.dst(&ro.Opts) = v.GetString(m.name)
	}
	if ro.Concurrency < 1 {
		ro.Concurrency = 1
	}
	return ro
}
