package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/salarypred-cli/internal/apperr"
	"github.com/idlab-discover/salarypred-cli/internal/encoding"
	"github.com/idlab-discover/salarypred-cli/internal/model"
	"github.com/idlab-discover/salarypred-cli/internal/modelcard"
	"github.com/idlab-discover/salarypred-cli/internal/predictor"
	"github.com/idlab-discover/salarypred-cli/internal/ui"
	"github.com/idlab-discover/salarypred-cli/internal/validator"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "salarypred",
	Short: "Predict whether an employee earns more than 50K",
	Long:  longDescription,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return initLogging(cmd.ErrOrStderr())
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile      string
	modelPath    string
	encodersPath string
	logLevel     string
	noColor      bool
	version      string
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.salarypred.yaml or ./config/defaults.yaml)")
	pf.StringVar(&modelPath, "model", "best_model.yaml", "Trained model artifact")
	pf.StringVar(&encodersPath, "encoders", "encoders.yaml", "Fitted categorical encoders")
	pf.StringVar(&logLevel, "log-level", "standard", "Log level: quiet|standard|debug")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored log prefixes")

	viper.BindPFlag("artifacts.model", pf.Lookup("model"))
	viper.BindPFlag("artifacts.encoders", pf.Lookup("encoders"))
	viper.BindPFlag("log-level", pf.Lookup("log-level"))
	viper.BindPFlag("no-color", pf.Lookup("no-color"))

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(predictCmd, batchCmd, vocabCmd, inspectCmd, validateCmd)
}

func initConfig() {
	// SALARYPRED_ARTIFACTS_MODEL overrides artifacts.model, and so on.
	viper.SetEnvPrefix("SALARYPRED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	notFound := &viper.ConfigFileNotFoundError{}
	var err error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		err = viper.ReadInConfig()
	} else {
		viper.SetConfigType("yaml")
		if home, herr := os.UserHomeDir(); herr == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("./config")

		viper.SetConfigName(".salarypred")
		err = viper.ReadInConfig()
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}
		// The config file is optional when none was asked for.
		if err != nil && errors.As(err, notFound) {
			return
		}
	}
	cobra.CheckErr(err)

	if viper.GetString("log-level") != "quiet" {
		fmt.Fprintln(os.Stderr, ui.Dim.Render("Using config file: ")+ui.Secondary.Render(viper.ConfigFileUsed()))
	}
}

const longDescription = "Predict if an employee earns more than 50K using demographic and job-related details. Loads a trained classifier and its categorical encoders, then scores a single record or a CSV file of records."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}

// resolveLogLevel validates the effective --log-level.
func resolveLogLevel() (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString("log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// initLogging wires the package loggers to w in debug mode.
func initLogging(w io.Writer) error {
	ui.Init(viper.GetBool("no-color"))
	level, err := resolveLogLevel()
	if err != nil {
		return err
	}
	var dst io.Writer
	if level == "debug" {
		dst = w
	}
	encoding.SetLogger(dst)
	model.SetLogger(dst)
	predictor.SetLogger(dst)
	modelcard.SetLogger(dst)
	validator.SetLogger(dst)
	return nil
}

// loadEngine reads the configured artifacts.
func loadEngine() (*predictor.Engine, error) {
	a := predictor.Artifacts{
		ModelPath:    viper.GetString("artifacts.model"),
		EncodersPath: viper.GetString("artifacts.encoders"),
	}
	for flag, p := range map[string]string{"--model": a.ModelPath, "--encoders": a.EncodersPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, apperr.Userf("cannot open %s file %q: set %s or the config file", strings.TrimPrefix(flag, "--"), p, flag)
		}
	}
	return predictor.Load(a)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
