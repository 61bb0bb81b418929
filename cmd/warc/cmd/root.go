/*
Copyright © 2021 National Library of Norway

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

type conf struct {
	cfgFile string
	verbose bool
}

// NewCommand returns a new cobra.Command implementing the root
// command for warc: iterating, listing and verifying WARC files.
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "warc",
		Short: "Inspect and verify WARC files",
		Long: `warc iterates WARC (Web ARChive) files without loading them fully
into memory, and can list record offsets or verify block/payload
digests.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cobra.OnInitialize(func() { c.initConfig() })

	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.warc.yaml)")
	cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose (debug) logging")

	cmd.AddCommand(newCatCommand())
	cmd.AddCommand(newLsCommand())
	cmd.AddCommand(newVerifyCommand())

	return cmd
}

// initConfig reads $HOME/.warc.yaml and WARC_-prefixed environment
// variables.
func (c *conf) initConfig() {
	if c.cfgFile != "" {
		viper.SetConfigFile(c.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			logrus.WithError(err).Fatal("could not resolve home directory")
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".warc")
	}

	viper.SetEnvPrefix("WARC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}
