package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lowkeylabs/presencectl/internal/logging"
	"github.com/lowkeylabs/presencectl/pkg/activity"
	"github.com/lowkeylabs/presencectl/pkg/client"
)

const version = "0.1.0"

var (
	cfgFile string

	flagClientID   string
	flagDetails    string
	flagState      string
	flagLargeImage string
	flagLargeText  string
	flagSmallImage string
	flagSmallText  string
	flagStartNow   bool
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var rootCmd = &cobra.Command{
	Use:           "presencectl",
	Short:         "Publish Discord rich presence from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.ConfigureRuntime()
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Connect, publish an activity, and hold it until interrupted",
	RunE:  runSet,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Connect and immediately close the session, dropping any presence",
	RunE:  runClear,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the presencectl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("presencectl " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "Discord application client id")

	setCmd.Flags().StringVar(&flagDetails, "details", "", "first presence line")
	setCmd.Flags().StringVar(&flagState, "state", "", "second presence line")
	setCmd.Flags().StringVar(&flagLargeImage, "large-image", "", "large image asset key")
	setCmd.Flags().StringVar(&flagLargeText, "large-text", "", "large image hover text")
	setCmd.Flags().StringVar(&flagSmallImage, "small-image", "", "small image asset key")
	setCmd.Flags().StringVar(&flagSmallText, "small-text", "", "small image hover text")
	setCmd.Flags().BoolVar(&flagStartNow, "start-now", false, "show elapsed time from now")

	rootCmd.AddCommand(setCmd, clearCmd, versionCmd)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("presencectl: "+err.Error()))
		os.Exit(1)
	}
}

// resolveConfig overlays config file values with any flags set on cmd.
func resolveConfig(cmd *cobra.Command) (cliConfig, error) {
	var cfg cliConfig
	if cfgFile != "" {
		loaded, err := loadConfig(cfgFile)
		if err != nil {
			return cliConfig{}, err
		}
		cfg = loaded
	}

	if flagClientID != "" {
		cfg.ClientID = flagClientID
	}
	if cmd.Flags().Changed("details") {
		cfg.Details = flagDetails
	}
	if cmd.Flags().Changed("state") {
		cfg.State = flagState
	}
	if cmd.Flags().Changed("large-image") {
		cfg.LargeImage = flagLargeImage
	}
	if cmd.Flags().Changed("large-text") {
		cfg.LargeText = flagLargeText
	}
	if cmd.Flags().Changed("small-image") {
		cfg.SmallImage = flagSmallImage
	}
	if cmd.Flags().Changed("small-text") {
		cfg.SmallText = flagSmallText
	}

	if err := cfg.validate(); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

// buildActivity maps the resolved config onto a presence value.
func buildActivity(cfg cliConfig) activity.Activity {
	a := activity.New().SetType(activity.Playing)
	if cfg.Details != "" {
		a = a.SetDetails(cfg.Details)
	}
	if cfg.State != "" {
		a = a.SetState(cfg.State)
	}
	if cfg.LargeImage != "" || cfg.SmallImage != "" {
		a = a.SetAssets(activity.Assets{
			LargeImage: cfg.LargeImage,
			LargeText:  cfg.LargeText,
			SmallImage: cfg.SmallImage,
			SmallText:  cfg.SmallText,
		})
	}
	if flagStartNow {
		a = a.SetTimestamps(activity.Timestamps{Start: uint64(time.Now().Unix())})
	}
	return a
}

func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	session, err := client.New(cfg.ClientID)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if err := session.SetActivity(buildActivity(cfg)); err != nil {
		_ = session.Close()
		return fmt.Errorf("set activity: %w", err)
	}
	fmt.Println(okStyle.Render("presence set") + "  (ctrl-c to clear and exit)")

	// Presence lives as long as the session does; hold until interrupted.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := session.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	fmt.Println(okStyle.Render("presence cleared"))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	session, err := client.New(cfg.ClientID)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := session.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	fmt.Println(okStyle.Render("presence cleared"))
	return nil
}
