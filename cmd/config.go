package cmd

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
)

const (
	defaultScanTimeoutSeconds = 10
	defaultDNSTimeoutSeconds  = 5
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Scan ScanRuntimeConfig
}

// ScanRuntimeConfig consolidates flag-driven settings for a scan.
type ScanRuntimeConfig struct {
	TimeoutSecs int
	Deep        bool
	UserAgent   string
	RateLimit   int
	DNS         DNSConfig
	GeoEndpoint string
}

// DNSConfig groups DNS-specific runtime options.
type DNSConfig struct {
	Nameservers []string
	Timeout     int
}

type defaultOverrides struct {
	TimeoutSecs *int
	Deep        *bool
	UserAgent   string
	RateLimit   *int
	Nameservers []string
	DNSTimeout  *int
	GeoEndpoint string
}

var cliConfig = newCLIConfig()

func newCLIConfig() *CLIConfig {
	return &CLIConfig{
		Scan: ScanRuntimeConfig{
			TimeoutSecs: defaultScanTimeoutSeconds,
			Deep:        false,
			UserAgent:   consts.DefaultUserAgent,
			RateLimit:   consts.DefaultRateLimit,
			DNS: DNSConfig{
				Nameservers: []string{},
				Timeout:     defaultDNSTimeoutSeconds,
			},
			GeoEndpoint: "",
		},
	}
}

func loadDefaultOverrides() defaultOverrides {
	overrides := defaultOverrides{}

	if viper.IsSet("scan.timeout") {
		val := viper.GetInt("scan.timeout")
		overrides.TimeoutSecs = &val
	}

	if viper.IsSet("scan.deep") {
		val := viper.GetBool("scan.deep")
		overrides.Deep = &val
	}

	if viper.IsSet("scan.user_agent") {
		overrides.UserAgent = viper.GetString("scan.user_agent")
	}

	if viper.IsSet("scan.rate_limit") {
		val := viper.GetInt("scan.rate_limit")
		overrides.RateLimit = &val
	}

	if viper.IsSet("dns.nameservers") {
		overrides.Nameservers = viper.GetStringSlice("dns.nameservers")
	}

	if viper.IsSet("dns.timeout") {
		val := viper.GetInt("dns.timeout")
		overrides.DNSTimeout = &val
	}

	if viper.IsSet("geoip.endpoint") {
		overrides.GeoEndpoint = viper.GetString("geoip.endpoint")
	}

	return overrides
}

// applyConfigDefaults merges config file defaults into the runtime config when the user
// did not explicitly override the corresponding flag.
func applyConfigDefaults() {
	overrides := loadDefaultOverrides()
	flags := rootCmd.Flags()

	if overrides.TimeoutSecs != nil {
		applyIntDefault(flags, "timeout", *overrides.TimeoutSecs, func(v int) {
			cliConfig.Scan.TimeoutSecs = v
		})
	}

	if overrides.Deep != nil {
		applyBoolDefault(flags, "deep", *overrides.Deep, func(v bool) {
			cliConfig.Scan.Deep = v
		})
	}

	if overrides.UserAgent != "" {
		setStringFlagIfUnset(flags, "user-agent", overrides.UserAgent)
	}

	if overrides.RateLimit != nil {
		applyIntDefault(flags, "rate", *overrides.RateLimit, func(v int) {
			cliConfig.Scan.RateLimit = v
		})
	}

	if overrides.Nameservers != nil {
		applyStringSliceDefault(flags, "nameservers", overrides.Nameservers, func(v []string) {
			cliConfig.Scan.DNS.Nameservers = v
		})
	}

	if overrides.DNSTimeout != nil {
		applyIntDefault(flags, "dns-timeout", *overrides.DNSTimeout, func(v int) {
			cliConfig.Scan.DNS.Timeout = v
		})
	}

	if overrides.GeoEndpoint != "" {
		setStringFlagIfUnset(flags, "geoip-endpoint", overrides.GeoEndpoint)
	}
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyStringSliceDefault(flags *pflag.FlagSet, name string, value []string, setter func([]string)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func setStringFlagIfUnset(flags *pflag.FlagSet, name, value string) {
	if flags == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	_ = flag.Value.Set(value)
}
