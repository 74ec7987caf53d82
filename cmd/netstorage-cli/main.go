package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	netstorage "github.com/mailonline/netstorage-go"
	"github.com/mailonline/netstorage-go/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	host        string
	keyName     string
	key         string
	cpcode      string
	ssl         bool
	jsonOutput  bool
	quiet       bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:     "netstorage-cli",
	Version: version,
	Short:   "Client for Akamai NetStorage",
	Long: `NetStorage CLI - Client for the Akamai NetStorage HTTP API

Credentials resolve in order: config file profile, environment
variables (NETSTORAGE_HOST, NETSTORAGE_KEY_NAME, NETSTORAGE_KEY,
NETSTORAGE_CPCODE, NETSTORAGE_SSL), then flags. Profiles are stored
in ~/.netstorage/config.yaml and managed with 'configure'.

Remote paths are rooted under the configured CP code, so
'netstorage-cli upload ./a.txt docs/a.txt' writes /<cpcode>/docs/a.txt.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.netstorage/config.yaml, env: NETSTORAGE_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: NETSTORAGE_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "NetStorage host (env: NETSTORAGE_HOST)")
	rootCmd.PersistentFlags().StringVar(&keyName, "key-name", "", "upload account key name (env: NETSTORAGE_KEY_NAME)")
	rootCmd.PersistentFlags().StringVar(&key, "key", "", "upload account key (env: NETSTORAGE_KEY)")
	rootCmd.PersistentFlags().StringVar(&cpcode, "cpcode", "", "CP code remote paths are rooted under (env: NETSTORAGE_CPCODE)")
	rootCmd.PersistentFlags().BoolVar(&ssl, "ssl", false, "use HTTPS (env: NETSTORAGE_SSL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and include response bodies in errors")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(rmdirCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(duCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(symlinkCmd)
	rootCmd.AddCommand(mtimeCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath resolves the config file path: flag, env var, default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if fromEnv := clientcli.ConfigPathFromEnv(); fromEnv != "" {
		return fromEnv
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from profile, env vars, and flags (flags
// take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	// 1. Load from config file profile
	profileCfg, err := loadProfileConfig()
	if err != nil {
		return nil, err
	}
	if profileCfg != nil {
		configs = append(configs, profileCfg)
	}

	// 2. Load from environment variables
	configs = append(configs, clientcli.ConfigFromEnv())

	// 3. Load from flags
	configs = append(configs, &clientcli.Config{
		Host:    host,
		KeyName: keyName,
		Key:     key,
		CPCode:  cpcode,
		SSL:     ssl,
		Verbose: verbose,
	})

	return clientcli.MergeConfig(configs...), nil
}

func loadProfileConfig() (*clientcli.Config, error) {
	name := profileName
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	cfg, err := clientcli.LoadConfigFile(getConfigPath())
	if err != nil {
		// Missing default config file is fine unless a profile or
		// config path was explicitly requested.
		if name == "" && cfgFile == "" {
			return nil, nil
		}
		return nil, err
	}

	var p *clientcli.Profile
	if name != "" {
		p, err = cfg.GetProfile(name)
	} else {
		p, err = cfg.GetDefaultProfile()
		if errors.Is(err, clientcli.ErrNoProfiles) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}

	return clientcli.ConfigFromProfile(p), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg, netstorage.WithLogger(slog.Default()))
}

// remoteAbsPath roots a user-supplied path under the configured
// CP code, for verbs that bypass the transfer helpers.
func remoteAbsPath(cfg *clientcli.Config, path string) string {
	return netstorage.AbsolutePath(cfg.CPCode, path)
}

// handleError formats an error for the user and passes it back up so
// cobra exits nonzero.
func handleError(w io.Writer, err error) error {
	formatter := getFormatter()
	_ = formatter.FormatError(w, err)
	return &exitError{code: 1}
}

// exitError is returned when we want to exit with a specific code
// but don't want cobra to print an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}
