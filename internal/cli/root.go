package cli

import (
	"fmt"
	"os"
	"strings"

	"halluclean/internal/task"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "halluclean",
	Short: "HalluClean - detect and revise hallucinations in model output",
	Long: `HalluClean detects and corrects factual and logical hallucinations in
text produced by a language model, across five task families: question
answering (qa), summarization (sum), dialogue (da), self-contradiction
(tsc) and math word problems (mwp).

Detection runs a three-stage prompting protocol (Plan, Reason, Judge)
against a model endpoint; revision reuses the detection analysis to
produce a corrected answer. No task-specific training or labeled data
is required.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for HalluClean.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("halluclean v0.2.0")
	},
}

// tasksCmd lists the supported task families and their required fields
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List supported task families",
	Long:  `Display the supported task families and the input fields each one requires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range task.Names() {
			t, err := task.Parse(name)
			if err != nil {
				return err
			}
			spec, err := task.SpecFor(t)
			if err != nil {
				return err
			}
			fmt.Printf("  %-4s  required fields: %v\n", name, spec.RequiredFields())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.halluclean/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tasksCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.halluclean")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match HALLUCLEAN_*
	viper.SetEnvPrefix("HALLUCLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
